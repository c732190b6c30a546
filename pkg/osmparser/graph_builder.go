package osmparser

import (
	"fmt"
	"sort"

	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
)

// BuildGraph. build the forward-star graph from vertex coordinates and scanned edges.
// edges are grouped by tail, keeping scan order within a tail, and edge ids are assigned in
// that order. parallel edges are kept.
func BuildGraph(nodes []NodeCoord, scannedEdges []Edge) (*datastructure.Graph, error) {
	numV := len(nodes)
	vertices := make([]*datastructure.Vertex, numV+1)
	for v := 0; v < numV; v++ {
		vertices[v] = datastructure.NewVertex(nodes[v].lat, nodes[v].lon, datastructure.Index(v))
		vertices[v].SetOsmId(nodes[v].osmId)
	}
	vertices[numV] = datastructure.NewVertex(0, 0, datastructure.Index(numV))

	order := make([]int, len(scannedEdges))
	for i, e := range scannedEdges {
		if int(e.from) >= numV || int(e.to) >= numV {
			return nil, fmt.Errorf("edge %d (%d -> %d) references a vertex outside [0, %d)", i, e.from, e.to, numV)
		}
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scannedEdges[order[i]].from < scannedEdges[order[j]].from
	})

	outEdges := make([]*datastructure.OutEdge, len(scannedEdges))
	outDegree := make([]datastructure.Index, numV)
	for edgeId, pos := range order {
		e := scannedEdges[pos]
		outEdge := datastructure.NewOutEdge(datastructure.Index(edgeId), e.GetFrom(), e.GetTo(), e.distance)
		outEdge.SetOriginalEdgeId(datastructure.Index(e.edgeID))
		outEdges[edgeId] = outEdge
		outDegree[e.from]++
	}

	firstOut := datastructure.Index(0)
	for v := 0; v < numV; v++ {
		vertices[v].SetFirstOut(firstOut)
		firstOut += outDegree[v]
	}
	vertices[numV].SetFirstOut(firstOut)

	return datastructure.NewGraph(vertices, outEdges), nil
}
