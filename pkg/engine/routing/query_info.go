package routing

import (
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
)

// vertexEdgePair. predecessor of a labelled vertex: the vertex and the edge it was reached through.
type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func (ve vertexEdgePair) getEdge() da.Index {
	return ve.edge
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{
		vertex: vertex,
		edge:   edge,
	}
}

type VertexInfo struct {
	cost      float64 // g(v), cost of the best known path s -> v
	heuristic float64 // h(v)
	parent    vertexEdgePair
	scanned   bool // settled, cost is final
	heapNode  *da.PriorityQueueNode[da.Index]
}

func NewVertexInfo(cost, heuristic float64, parent vertexEdgePair, hnode *da.PriorityQueueNode[da.Index]) *VertexInfo {
	return &VertexInfo{
		cost:      cost,
		heuristic: heuristic,
		parent:    parent,
		heapNode:  hnode,
	}
}

func (vi *VertexInfo) GetCost() float64 {
	return vi.cost
}

func (vi *VertexInfo) UpdateCost(cost float64) {
	vi.cost = cost
}

func (vi *VertexInfo) UpdateParent(par vertexEdgePair) {
	vi.parent = par
}

func (vi *VertexInfo) Scan() {
	vi.scanned = true
}

func (vi *VertexInfo) IsScanned() bool {
	return vi.scanned
}

func (vi *VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[da.Index] {
	return vi.heapNode
}
