package engine

import (
	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/landmark"
	"github.com/lintang-b-s/Ambulancex/pkg/spatialindex"
	"go.uber.org/zap"
)

// Engine. read-only routing state of one region, shared by all requests.
type Engine struct {
	graph         *datastructure.Graph
	rtree         *spatialindex.Rtree
	routingEngine *routing.RoutingEngine
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetSpatialIndex() *spatialindex.Rtree {
	return e.rtree
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

type engineOptions struct {
	numLandmarks int
}

type EngineOption func(*engineOptions)

// WithLandmarks. precompute k ALT landmarks to tighten the A* heuristic, k <= 0 disables them.
func WithLandmarks(k int) EngineOption {
	return func(o *engineOptions) {
		o.numLandmarks = k
	}
}

// NewEngine. read the graph file and build the routing engine.
func NewEngine(graphFilePath string, logger *zap.Logger, maxSettledNodes int, opts ...EngineOption) (*Engine, error) {
	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	return NewEngineDirect(graph, logger, maxSettledNodes, opts...), nil
}

// NewEngineDirect. build the spatial index and routing engine on an in-memory graph.
// strongly connected components are computed if the graph doesn't carry them yet.
func NewEngineDirect(graph *datastructure.Graph, logger *zap.Logger, maxSettledNodes int, opts ...EngineOption) *Engine {
	options := engineOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	logger.Info("Starting routing engine...", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))

	if !graph.HasSCCs() && graph.NumberOfVertices() > 0 {
		logger.Info("Computing strongly connected components...")
		graph.RunKosaraju()
		logger.Info("Strongly connected components computed.", zap.Int("sccs", graph.NumberOfSCCs()))
	}

	rt := spatialindex.NewRtree()
	rt.Build(graph, logger)

	re := routing.NewRoutingEngine(graph, logger, maxSettledNodes)
	if options.numLandmarks > 0 && graph.NumberOfVertices() > 0 {
		lm := landmark.NewLandmark()
		if err := lm.PreprocessALT(options.numLandmarks, graph, logger); err != nil {
			logger.Warn("landmarks disabled", zap.Error(err))
		} else {
			re.SetLowerBounder(lm)
		}
	}

	return &Engine{
		graph:         graph,
		rtree:         rt,
		routingEngine: re,
	}
}

func (e *Engine) NewDestinationSelector(workers int, logger *zap.Logger) *routing.DestinationSelector {
	return routing.NewDestinationSelector(e.routingEngine, e.rtree, workers, logger)
}
