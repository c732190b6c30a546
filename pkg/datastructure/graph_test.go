package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphForwardStar(t *testing.T) {
	// 0 -> 1 twice (parallel edges), 1 -> 2, 2 -> 0
	g := newTestGraph(lineCoords(3), []testEdge{
		{0, 1, 150}, {0, 1, 120}, {1, 2, 111.2}, {2, 0, 300},
	})

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())
	assert.Equal(t, Index(2), g.GetOutDegree(0))
	assert.Equal(t, Index(1), g.GetOutDegree(2))
	assert.Equal(t, []Index{0, 1}, g.FindOutEdges(0, 1))
	assert.Empty(t, g.FindOutEdges(1, 0))

	heads := make([]Index, 0)
	g.ForOutEdgesOf(0, func(e *OutEdge, id Index) {
		heads = append(heads, e.GetHead())
		assert.Equal(t, Index(0), e.GetTail())
		assert.Equal(t, id, e.GetEdgeId())
	})
	assert.Equal(t, []Index{1, 1}, heads)

	assert.True(t, g.IsValidVertex(2))
	assert.False(t, g.IsValidVertex(3))
	assert.True(t, g.InExtent(0, 0.001))
	assert.False(t, g.InExtent(1, 1))
}

func TestGraphEmpty(t *testing.T) {
	g := newTestGraph(nil, nil)
	assert.Equal(t, 0, g.NumberOfVertices())
	assert.Equal(t, 0, g.NumberOfEdges())
	assert.Equal(t, 1.0, g.HeuristicScale())
	g.RunKosaraju()
	assert.False(t, g.HasSCCs())
}

func TestHeuristicScale(t *testing.T) {
	coords := lineCoords(3)
	straight := newTestGraph(coords, []testEdge{{0, 1, 0}}).GetHaversineDistanceFromUtoV(0, 1)

	testCases := []struct {
		name     string
		edges    []testEdge
		expected float64
	}{
		{
			name:     "lengths at least the straight line distance",
			edges:    []testEdge{{0, 1, straight * 2}, {1, 2, straight}},
			expected: 1.0,
		},
		{
			name:     "edge shorter than the straight line distance",
			edges:    []testEdge{{0, 1, straight / 4}, {1, 2, straight}},
			expected: 0.25,
		},
		{
			name:     "zero length edge is clamped",
			edges:    []testEdge{{0, 1, 0}},
			expected: 0.01 / straight,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(coords, tt.edges)
			assert.InDelta(t, tt.expected, g.HeuristicScale(), 1e-9)
		})
	}
}

func TestRunKosaraju(t *testing.T) {
	// {0,1,2} cycle -> {3,4} cycle -> 5 ; 6 isolated
	g := newTestGraph(lineCoords(7), []testEdge{
		{0, 1, 1}, {1, 2, 1}, {2, 0, 1}, {2, 3, 1},
		{3, 4, 1}, {4, 3, 1}, {4, 5, 1},
	})
	g.RunKosaraju()

	require.True(t, g.HasSCCs())
	assert.Equal(t, 4, g.NumberOfSCCs())
	assert.Equal(t, g.GetSCCOfAVertex(0), g.GetSCCOfAVertex(2))
	assert.Equal(t, g.GetSCCOfAVertex(3), g.GetSCCOfAVertex(4))
	assert.NotEqual(t, g.GetSCCOfAVertex(0), g.GetSCCOfAVertex(3))

	assert.True(t, g.VerticeUandVAreConnected(0, 5))
	assert.True(t, g.VerticeUandVAreConnected(1, 0))
	assert.False(t, g.VerticeUandVAreConnected(5, 0))
	assert.False(t, g.VerticeUandVAreConnected(3, 1))
	assert.False(t, g.VerticeUandVAreConnected(0, 6))
	assert.True(t, g.VerticeUandVAreConnected(6, 6))
}

func TestWriteReadGraph(t *testing.T) {
	coords := [][2]float64{{18.6298, 73.7997}, {18.6180, 73.8030}, {18.6350, 73.7900}}
	g := newTestGraph(coords, []testEdge{
		{0, 1, 1350.25}, {0, 1, 1400}, {1, 0, 1350.25}, {1, 2, 2500.5},
	})
	g.GetVertex(1).SetOsmId(123456789)
	g.RunKosaraju()

	filename := filepath.Join(t.TempDir(), "graph.bz2")
	require.NoError(t, g.WriteGraph(filename))

	loaded, err := ReadGraph(filename)
	require.NoError(t, err)

	require.Equal(t, g.NumberOfVertices(), loaded.NumberOfVertices())
	require.Equal(t, g.NumberOfEdges(), loaded.NumberOfEdges())
	for v := Index(0); int(v) < g.NumberOfVertices(); v++ {
		lat, lon := g.GetVertexCoordinates(v)
		loadedLat, loadedLon := loaded.GetVertexCoordinates(v)
		assert.Equal(t, lat, loadedLat)
		assert.Equal(t, lon, loadedLon)
		assert.Equal(t, g.GetOutDegree(v), loaded.GetOutDegree(v))
		assert.Equal(t, g.GetVertex(v).GetOsmId(), loaded.GetVertex(v).GetOsmId())
	}
	for e := Index(0); int(e) < g.NumberOfEdges(); e++ {
		assert.Equal(t, *g.GetOutEdge(e), *loaded.GetOutEdge(e))
	}
	assert.Equal(t, g.GetSCCS(), loaded.GetSCCS())
	assert.Equal(t, g.NumberOfSCCs(), loaded.NumberOfSCCs())
	assert.False(t, loaded.VerticeUandVAreConnected(2, 0))
}

func TestReadGraphMissingFile(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "missing.bz2"))
	assert.Error(t, err)
}

func TestGraphBoundingBoxCenter(t *testing.T) {
	tests := []struct {
		name    string
		coords  [][2]float64
		wantLat float64
		wantLon float64
	}{
		{"line", lineCoords(3), 0, 0.001},
		{"square", [][2]float64{{-1, -2}, {1, -2}, {1, 2}, {-1, 2}}, 0, 0},
		{"single vertex", [][2]float64{{18.63, 73.8}}, 18.63, 73.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(tt.coords, nil)
			lat, lon := g.GetBoundingBox().GetCenter()
			assert.InDelta(t, tt.wantLat, lat, 1e-9)
			assert.InDelta(t, tt.wantLon, lon, 1e-9)
		})
	}
}
