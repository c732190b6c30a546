package datastructure

// testEdge. tail, head, length in meter
type testEdge struct {
	tail, head Index
	dist       float64
}

// newTestGraph. edges must be sorted by tail.
func newTestGraph(coords [][2]float64, edges []testEdge) *Graph {
	vertices := make([]*Vertex, len(coords)+1)
	for i, c := range coords {
		vertices[i] = NewVertex(c[0], c[1], Index(i))
	}
	vertices[len(coords)] = NewVertex(0, 0, Index(len(coords)))

	outEdges := make([]*OutEdge, len(edges))
	degree := make([]Index, len(coords))
	for i, e := range edges {
		outEdges[i] = NewOutEdge(Index(i), e.tail, e.head, e.dist)
		outEdges[i].SetOriginalEdgeId(Index(i))
		degree[e.tail]++
	}
	firstOut := Index(0)
	for v := range coords {
		vertices[v].SetFirstOut(firstOut)
		firstOut += degree[v]
	}
	vertices[len(coords)].SetFirstOut(firstOut)
	return NewGraph(vertices, outEdges)
}

// lineCoords. n vertices along the equator, ~111 m apart
func lineCoords(n int) [][2]float64 {
	coords := make([][2]float64, n)
	for i := 0; i < n; i++ {
		coords[i] = [2]float64{0, float64(i) * 0.001}
	}
	return coords
}
