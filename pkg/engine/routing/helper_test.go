package routing

import (
	"testing"

	"github.com/lintang-b-s/Ambulancex/pkg/costfunction"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/osmparser"
	"github.com/lintang-b-s/Ambulancex/pkg/spatialindex"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pairEdge struct {
	to     int
	length float64
}

func newPairEdge(to int, length float64) pairEdge {
	return pairEdge{to, length}
}

func flattenEdges(es [][]pairEdge) []osmparser.Edge {
	flatten := make([]osmparser.Edge, 0, len(es))
	eid := 0
	for from, edges := range es {
		for _, e := range edges {
			flatten = append(flatten, osmparser.NewEdge(uint32(from), uint32(e.to), e.length, uint32(eid)))
			eid++
		}
	}
	return flatten
}

func buildGraph(t *testing.T, coords [][2]float64, adjList [][]pairEdge) *da.Graph {
	nodes := make([]osmparser.NodeCoord, len(coords))
	for i, c := range coords {
		nodes[i] = osmparser.NewNodeCoord(c[0], c[1])
	}
	g, err := osmparser.BuildGraph(nodes, flattenEdges(adjList))
	require.NoError(t, err)
	return g
}

func buildSelector(t *testing.T, g *da.Graph, workers, maxSettledNodes int) (*RoutingEngine, *DestinationSelector) {
	rt := spatialindex.NewRtree()
	rt.Build(g, zap.NewNop())
	re := NewRoutingEngine(g, zap.NewNop(), maxSettledNodes)
	return re, NewDestinationSelector(re, rt, workers, zap.NewNop())
}

// lineGraph. A-B-C-D-E, ~9 m apart, static lengths 10 in both directions.
// F hangs off B with length 15, H is isolated.
const (
	A = iota
	B
	C
	D
	E
	F
	H
)

func lineGraph(t *testing.T) *da.Graph {
	coords := [][2]float64{
		{18.6300, 73.80000},
		{18.6300, 73.80008},
		{18.6300, 73.80016},
		{18.6300, 73.80024},
		{18.6300, 73.80032},
		{18.6301, 73.80008},
		{18.7000, 73.90000},
	}
	adj := make([][]pairEdge, len(coords))
	for u := A; u < E; u++ {
		adj[u] = append(adj[u], newPairEdge(u+1, 10))
		adj[u+1] = append(adj[u+1], newPairEdge(u, 10))
	}
	adj[B] = append(adj[B], newPairEdge(F, 15))
	adj[F] = append(adj[F], newPairEdge(B, 15))
	return buildGraph(t, coords, adj)
}

func candidateAt(g *da.Graph, name string, v da.Index) Candidate {
	lat, lon := g.GetVertexCoordinates(v)
	return NewCandidate(name, lat, lon)
}

func zeroTraffic(t *testing.T, g *da.Graph) *costfunction.TrafficOverlay {
	overlay, err := costfunction.NewTrafficOverlay(g, 0, 10, costfunction.NewRandomSource(1))
	require.NoError(t, err)
	return overlay
}
