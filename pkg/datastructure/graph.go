package datastructure

import (
	"math"

	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id       Index
	osmId    int64
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func (v *Vertex) SetFirstOut(firstOut Index) {
	v.firstOut = firstOut
}

func (v *Vertex) SetOsmId(osmId int64) {
	v.osmId = osmId
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetOsmId() int64 {
	return v.osmId
}

// OutEdge. directed road segment tail -> head. parallel edges between the same pair of vertices
// are distinct OutEdges with distinct edgeIds.
type OutEdge struct {
	dist              float64 // meter
	edgeId, oriEdgeId Index
	tail, head        Index
}

func NewOutEdge(edgeId, tail, head Index, dist float64) *OutEdge {
	return &OutEdge{
		edgeId: edgeId,
		tail:   tail,
		head:   head,
		dist:   dist,
	}
}

func (e *OutEdge) GetLength() float64 {
	return e.dist
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetTail() Index {
	return e.tail
}

func (e *OutEdge) GetEdgeId() Index {
	return e.edgeId
}

func (e *OutEdge) SetOriginalEdgeId(oriEdgeId Index) {
	e.oriEdgeId = oriEdgeId
}

// GetOriginalEdgeId. position of the edge in the loader's edge list
func (e *OutEdge) GetOriginalEdgeId() Index {
	return e.oriEdgeId
}

// Graph. static road network graph in forward-star layout: outEdges of vertex u are
// outEdges[vertices[u].firstOut : vertices[u+1].firstOut]. vertices has one extra sentinel vertex.
// read-only after construction, safe for concurrent readers.
type Graph struct {
	vertices []*Vertex
	outEdges []*OutEdge

	// strongly connected components
	sccs               []Index   // verticeId -> sccId
	sccCondensationAdj [][]Index // condensation connection of scc of u -> scc of v

	boundingBox *BoundingBox
	extent      *geo.Extent
}

// NewGraph. vertices must contain the sentinel vertex, outEdges must be sorted by tail.
func NewGraph(vertices []*Vertex, outEdges []*OutEdge) *Graph {
	g := &Graph{vertices: vertices, outEdges: outEdges}
	g.computeBoundingBox()
	return g
}

func (g *Graph) computeBoundingBox() {
	g.extent = geo.NewExtent()
	if g.NumberOfVertices() == 0 {
		g.boundingBox = NewBoundingBox(0, 0, 0, 0)
		return
	}
	minLat, minLon := math.MaxFloat64, math.MaxFloat64
	maxLat, maxLon := -math.MaxFloat64, -math.MaxFloat64
	for v := 0; v < g.NumberOfVertices(); v++ {
		vertex := g.vertices[v]
		minLat = math.Min(minLat, vertex.lat)
		minLon = math.Min(minLon, vertex.lon)
		maxLat = math.Max(maxLat, vertex.lat)
		maxLon = math.Max(maxLon, vertex.lon)
		g.extent.AddPoint(vertex.lat, vertex.lon)
	}
	g.boundingBox = NewBoundingBox(minLat, minLon, maxLat, maxLon)
}

func (g *Graph) NumberOfVertices() int {
	if len(g.vertices) == 0 {
		return 0
	}
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetOutEdge(e Index) *OutEdge {
	return g.outEdges[e]
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertices() []*Vertex {
	return g.vertices[:g.NumberOfVertices()]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetVertexCoordinate(u Index) geo.Coordinate {
	v := g.vertices[u]
	return geo.NewCoordinate(v.lat, v.lon)
}

func (g *Graph) IsValidVertex(u Index) bool {
	return int(u) < g.NumberOfVertices()
}

// ForOutEdgesOf. iterate outEdges of u in edge id order
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge, id Index)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.outEdges[e], e)
	}
}

// ForOutEdges. iterate all edges in edge id order
func (g *Graph) ForOutEdges(handle func(e *OutEdge, id Index)) {
	for e := range g.outEdges {
		handle(g.outEdges[e], Index(e))
	}
}

func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for v := 0; v < g.NumberOfVertices(); v++ {
		handle(g.vertices[v])
	}
}

// FindOutEdges. all (possibly parallel) edges u -> v
func (g *Graph) FindOutEdges(u, v Index) []Index {
	ids := make([]Index, 0, 1)
	g.ForOutEdgesOf(u, func(e *OutEdge, id Index) {
		if e.head == v {
			ids = append(ids, id)
		}
	})
	return ids
}

func (g *Graph) GetHaversineDistanceFromUtoV(u, v Index) float64 {
	uLat, uLon := g.GetVertexCoordinates(u)
	vLat, vLon := g.GetVertexCoordinates(v)
	return geo.CalculateHaversineDistanceMeter(uLat, uLon, vLat, vLon)
}

// HeuristicScale. largest factor c <= 1 such that c * straightLineDistance(u,v) <= max(length(u,v), eps)
// for every edge (u,v). scaled straight-line distance is then a consistent A* heuristic for any
// cost >= max(length, eps), even when the loader produced lengths shorter than the geometry.
func (g *Graph) HeuristicScale() float64 {
	scale := 1.0
	g.ForOutEdges(func(e *OutEdge, id Index) {
		straight := g.GetHaversineDistanceFromUtoV(e.tail, e.head)
		if straight <= 0 {
			return
		}
		length := math.Max(e.dist, pkg.MIN_EDGE_LENGTH_METER)
		if ratio := length / straight; ratio < scale {
			scale = ratio
		}
	})
	return scale
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

// InExtent. whether (lat, lon) lies inside the graph's lat/lon rectangle
func (g *Graph) InExtent(lat, lon float64) bool {
	return g.extent.Contains(lat, lon)
}

func (g *Graph) SetSCCs(sccs []Index) {
	g.sccs = sccs
}

func (g *Graph) SetSCCCondensationAdj(adj [][]Index) {
	g.sccCondensationAdj = adj
}

func (g *Graph) HasSCCs() bool {
	return len(g.sccs) == g.NumberOfVertices() && g.NumberOfVertices() > 0
}

func (g *Graph) GetSCCOfAVertex(u Index) Index {
	return g.sccs[u]
}

func (g *Graph) GetSCCS() []Index {
	return g.sccs
}

func (g *Graph) NumberOfSCCs() int {
	return len(g.sccCondensationAdj)
}

// VerticeUandVAreConnected. whether v is reachable from u. requires RunKosaraju, otherwise always true.
func (g *Graph) VerticeUandVAreConnected(u, v Index) bool {
	if !g.HasSCCs() {
		return true
	}
	sccOfU := g.GetSCCOfAVertex(u)
	sccOfV := g.GetSCCOfAVertex(v)
	if sccOfU == sccOfV {
		return true
	}

	return g.CondensationGraphOrigintoDestinationConnected(sccOfU, sccOfV)
}

// CondensationGraphOrigintoDestinationConnected. bfs over the condensation DAG from scc u to scc t
func (g *Graph) CondensationGraphOrigintoDestinationConnected(u, t Index) bool {
	visited := make([]bool, len(g.sccCondensationAdj))
	queue := []Index{u}
	visited[u] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == t {
			return true
		}
		for _, next := range g.sccCondensationAdj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
