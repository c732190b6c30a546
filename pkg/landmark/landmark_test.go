package landmark

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/costfunction"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/osmparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func randomGraph(t *testing.T, rd *rand.Rand, n int) *da.Graph {
	nodes := make([]osmparser.NodeCoord, n)
	for i := range nodes {
		nodes[i] = osmparser.NewNodeCoord(18.62+rd.Float64()*0.02, 73.79+rd.Float64()*0.02)
	}
	numEdges := n + rd.Intn(3*n)
	edges := make([]osmparser.Edge, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		u, v := rd.Intn(n), rd.Intn(n)
		edges = append(edges, osmparser.NewEdge(uint32(u), uint32(v), rd.Float64()*500, uint32(i)))
	}
	g, err := osmparser.BuildGraph(nodes, edges)
	require.NoError(t, err)
	return g
}

// floydWarshall. all pairs effective-length distances, +Inf if unreachable
func floydWarshall(g *da.Graph) [][]float64 {
	n := g.NumberOfVertices()
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = math.Inf(1)
		}
		dist[i][i] = 0
	}
	g.ForOutEdges(func(e *da.OutEdge, id da.Index) {
		w := costfunction.EffectiveLength(e.GetLength())
		if w < dist[e.GetTail()][e.GetHead()] {
			dist[e.GetTail()][e.GetHead()] = w
		}
	})
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
				}
			}
		}
	}
	return dist
}

func TestDijkstraMatchesFloydWarshall(t *testing.T) {
	rd := rand.New(rand.NewSource(3))
	g := randomGraph(t, rd, 25)
	want := floydWarshall(g)
	rev := reverseAdjacency(g)
	cf := costfunction.NewLengthCostFunction()

	for s := 0; s < g.NumberOfVertices(); s++ {
		forward := NewDijkstra(g, cf, nil).ShortestPath(da.Index(s))
		backward := NewDijkstra(g, cf, rev).ShortestPath(da.Index(s))
		for v := 0; v < g.NumberOfVertices(); v++ {
			if math.IsInf(want[s][v], 1) {
				assert.Equal(t, pkg.INF_WEIGHT, forward[v])
			} else {
				assert.InDelta(t, want[s][v], forward[v], 1e-6)
			}
			if math.IsInf(want[v][s], 1) {
				assert.Equal(t, pkg.INF_WEIGHT, backward[v])
			} else {
				assert.InDelta(t, want[v][s], backward[v], 1e-6)
			}
		}
	}
}

func TestLowerBoundIsConsistent(t *testing.T) {
	rd := rand.New(rand.NewSource(5))

	for iter := 0; iter < 30; iter++ {
		g := randomGraph(t, rd, 2+rd.Intn(20))
		dist := floydWarshall(g)

		lm := NewLandmark()
		require.NoError(t, lm.PreprocessALT(1+rd.Intn(6), g, zap.NewNop()))
		require.Greater(t, lm.NumberOfLandmarks(), 0)

		n := g.NumberOfVertices()
		for tgt := 0; tgt < n; tgt++ {
			assert.Equal(t, 0.0, lm.LowerBound(da.Index(tgt), da.Index(tgt)))

			for u := 0; u < n; u++ {
				lb := lm.LowerBound(da.Index(u), da.Index(tgt))
				assert.GreaterOrEqual(t, lb, 0.0)
				if lb >= pkg.INF_WEIGHT {
					assert.True(t, math.IsInf(dist[u][tgt], 1), "u %d cannot reach t %d", u, tgt)
					continue
				}
				// admissible
				assert.LessOrEqual(t, lb, dist[u][tgt]+1e-6)
			}

			// consistent: h(u) <= w(u,v) + h(v) for every edge with a finite h(v)
			g.ForOutEdges(func(e *da.OutEdge, id da.Index) {
				hu := lm.LowerBound(e.GetTail(), da.Index(tgt))
				hv := lm.LowerBound(e.GetHead(), da.Index(tgt))
				if hv >= pkg.INF_WEIGHT {
					return
				}
				assert.LessOrEqual(t, hu, costfunction.EffectiveLength(e.GetLength())+hv+1e-6)
			})
		}
	}
}

func TestSelectLandmarks(t *testing.T) {
	rd := rand.New(rand.NewSource(9))
	g := randomGraph(t, rd, 40)

	landmarks := SelectLandmarks(8, g)
	assert.NotEmpty(t, landmarks)
	assert.LessOrEqual(t, len(landmarks), 9)

	seen := make(map[da.Index]bool)
	for _, l := range landmarks {
		assert.True(t, g.IsValidVertex(l))
		assert.False(t, seen[l], "duplicate landmark %d", l)
		seen[l] = true
	}

	assert.Empty(t, SelectLandmarks(0, g))
}

func TestPreprocessALTTooManyLandmarks(t *testing.T) {
	rd := rand.New(rand.NewSource(1))
	g := randomGraph(t, rd, 5)
	assert.ErrorIs(t, NewLandmark().PreprocessALT(MAX_LANDMARKS+1, g, zap.NewNop()), ErrTooManyLandmarks)
}
