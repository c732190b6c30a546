package usecases

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/Ambulancex/pkg/engine"
	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/osmparser"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticStore struct {
	eng *engine.Engine
	err error
}

func (s *staticStore) Get(key engine.RegionKey) (*engine.Engine, error) {
	return s.eng, s.err
}

var region = engine.NewRegionKey(18.6298, 73.7997, 5000, "drive")

// A-B-C-D-E ~9 m apart with length 10 both ways, H isolated.
func lineEngine(t *testing.T, opts ...engine.EngineOption) *engine.Engine {
	nodes := []osmparser.NodeCoord{
		osmparser.NewNodeCoord(18.6300, 73.80000),
		osmparser.NewNodeCoord(18.6300, 73.80008),
		osmparser.NewNodeCoord(18.6300, 73.80016),
		osmparser.NewNodeCoord(18.6300, 73.80024),
		osmparser.NewNodeCoord(18.6300, 73.80032),
		osmparser.NewNodeCoord(18.7000, 73.90000),
	}
	edges := make([]osmparser.Edge, 0, 8)
	for u := uint32(0); u < 4; u++ {
		edges = append(edges, osmparser.NewEdge(u, u+1, 10, uint32(len(edges))))
		edges = append(edges, osmparser.NewEdge(u+1, u, 10, uint32(len(edges))))
	}
	g, err := osmparser.BuildGraph(nodes, edges)
	require.NoError(t, err)
	return engine.NewEngineDirect(g, zap.NewNop(), 0, opts...)
}

func newService(t *testing.T, candidates []routing.Candidate, workers int, opts ...engine.EngineOption) *RoutingService {
	return NewRoutingService(zap.NewNop(), &staticStore{eng: lineEngine(t, opts...)}, region, candidates, 10, workers, true)
}

func TestDispatch(t *testing.T) {
	candidates := []routing.Candidate{
		routing.NewCandidate("Isolated", 18.7000, 73.90000),
		routing.NewCandidate("Hospital E", 18.6300, 73.80032),
	}
	seed := uint64(7)

	for _, workers := range []int{1, 4} {
		// landmarks only change how fast the route is found
		svc := newService(t, candidates, workers, engine.WithLandmarks(workers))
		res, err := svc.Dispatch(context.Background(), DispatchQuery{
			StartLat: 18.6300, StartLon: 73.80000, TrafficLevel: 0, Seed: &seed,
		})
		require.NoError(t, err)

		assert.Equal(t, "Hospital E", res.Route.DestinationName)
		assert.Equal(t, 40.0, res.Route.TotalCost)
		assert.Len(t, res.Route.Path, 5)
		require.Len(t, res.Route.Directions, 2)
		assert.Equal(t, 40.0, res.Route.Directions[0].DistanceMeter)
		assert.Equal(t, seed, res.Seed)
		require.Len(t, res.Candidates, 2)
		assert.False(t, res.Candidates[0].Reachable)
		assert.NotEmpty(t, res.Candidates[0].Reason)
		assert.True(t, res.Candidates[1].Reachable)
		assert.Equal(t, 40.0, res.Candidates[1].Cost)
	}
}

func TestDispatchReplaysWithSeed(t *testing.T) {
	candidates := []routing.Candidate{routing.NewCandidate("Hospital E", 18.6300, 73.80032)}
	svc := newService(t, candidates, 1)
	seed := uint64(42)
	query := DispatchQuery{StartLat: 18.6300, StartLon: 73.80000, TrafficLevel: 5, Seed: &seed}

	first, err := svc.Dispatch(context.Background(), query)
	require.NoError(t, err)
	second, err := svc.Dispatch(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, first.Route.Cost, second.Route.Cost)
	assert.GreaterOrEqual(t, first.Route.Cost, 40.0)
	assert.LessOrEqual(t, first.Route.Cost, 40.0+4*5*10)
}

func TestDispatchErrors(t *testing.T) {
	candidates := []routing.Candidate{routing.NewCandidate("Isolated", 18.7000, 73.90000)}

	testCases := []struct {
		name     string
		query    DispatchQuery
		store    EngineStore
		wantCode error
	}{
		{
			name:     "latitude out of range",
			query:    DispatchQuery{StartLat: 91, StartLon: 73.8},
			wantCode: util.ErrBadParamInput,
		},
		{
			name:     "NaN longitude",
			query:    DispatchQuery{StartLat: 18.63, StartLon: math.NaN()},
			wantCode: util.ErrBadParamInput,
		},
		{
			name:     "traffic level above max",
			query:    DispatchQuery{StartLat: 18.63, StartLon: 73.8, TrafficLevel: 11},
			wantCode: util.ErrBadParamInput,
		},
		{
			name:     "negative traffic level",
			query:    DispatchQuery{StartLat: 18.63, StartLon: 73.8, TrafficLevel: -1},
			wantCode: util.ErrBadParamInput,
		},
		{
			name:     "all candidates unreachable",
			query:    DispatchQuery{StartLat: 18.6300, StartLon: 73.80000},
			wantCode: util.ErrNotFound,
		},
		{
			name:     "graph load failure",
			query:    DispatchQuery{StartLat: 18.6300, StartLon: 73.80000},
			store:    &staticStore{err: errors.New("disk on fire")},
			wantCode: util.ErrInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.store
			if store == nil {
				store = &staticStore{eng: lineEngine(t)}
			}
			svc := NewRoutingService(zap.NewNop(), store, region, candidates, 10, 1, true)

			res, err := svc.Dispatch(context.Background(), tc.query)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tc.wantCode, util.ErrorCode(err))
		})
	}
}

func TestDispatchUnreachableKeepsSentinel(t *testing.T) {
	svc := newService(t, []routing.Candidate{routing.NewCandidate("Isolated", 18.7000, 73.90000)}, 1)
	_, err := svc.Dispatch(context.Background(), DispatchQuery{StartLat: 18.6300, StartLon: 73.80000})
	assert.ErrorIs(t, err, routing.ErrAllCandidatesUnreachable)
}

func TestDestinations(t *testing.T) {
	candidates := []routing.Candidate{
		routing.NewCandidate("Hospital 1", 18.6180, 73.8030),
		routing.NewCandidate("Hospital 2", 18.6350, 73.7900),
	}
	svc := newService(t, candidates, 1)
	assert.Equal(t, candidates, svc.Destinations())
	assert.Equal(t, 10.0, svc.MaxTrafficLevel())
}
