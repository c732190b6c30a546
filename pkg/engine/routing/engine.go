package routing

import (
	"math"
	"sync"

	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"go.uber.org/zap"
)

type RoutingEngine struct {
	graph           *da.Graph
	logger          *zap.Logger
	heuristicScale  float64
	lowerBounder    LowerBounder
	maxSettledNodes int
	bufPool         sync.Pool
}

// NewRoutingEngine. maxSettledNodes <= 0 means unbounded searches.
func NewRoutingEngine(graph *da.Graph, logger *zap.Logger, maxSettledNodes int) *RoutingEngine {
	e := &RoutingEngine{
		graph:           graph,
		logger:          logger,
		heuristicScale:  graph.HeuristicScale(),
		maxSettledNodes: maxSettledNodes,
	}
	e.BuildBufferPool()
	if e.heuristicScale < 1 {
		logger.Warn("some edges are shorter than the straight line between their endpoints, scaling down the A* heuristic",
			zap.Float64("heuristicScale", e.heuristicScale))
	}
	return e
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) GetHeuristicScale() float64 {
	return re.heuristicScale
}

// SetLowerBounder. tighten the A* heuristic with lb (e.g. ALT landmarks). must be set before the first search.
func (re *RoutingEngine) SetLowerBounder(lb LowerBounder) {
	re.lowerBounder = lb
}

func (re *RoutingEngine) BuildBufferPool() {
	re.bufPool = sync.Pool{
		New: func() any {
			return newSearchStorage()
		},
	}
}

func (re *RoutingEngine) getSearchStorage() *searchStorage {
	return re.bufPool.Get().(*searchStorage)
}

func (re *RoutingEngine) putSearchStorage(s *searchStorage) {
	s.Reset()
	re.bufPool.Put(s)
}

// heuristic. max of the scaled straight line distance (meter) from u to t and the lower bounder's estimate.
// both are consistent, so their max is too.
func (re *RoutingEngine) heuristic(u, t da.Index) float64 {
	h := re.heuristicScale * re.graph.GetHaversineDistanceFromUtoV(u, t)
	if re.lowerBounder != nil {
		h = math.Max(h, re.lowerBounder.LowerBound(u, t))
	}
	return h
}
