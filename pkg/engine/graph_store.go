package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/osmparser"
	"go.uber.org/zap"
)

var ErrNoGraphSource = errors.New("graph store: no graph file and no osm file for region")

// RegionKey. road network of all ways of NetworkType within RadiusMeter of the center.
type RegionKey struct {
	CenterLat   float64
	CenterLon   float64
	RadiusMeter float64
	NetworkType string
}

func NewRegionKey(centerLat, centerLon, radiusMeter float64, networkType string) RegionKey {
	return RegionKey{
		CenterLat:   centerLat,
		CenterLon:   centerLon,
		RadiusMeter: radiusMeter,
		NetworkType: networkType,
	}
}

func (k RegionKey) Center() geo.Coordinate {
	return geo.NewCoordinate(k.CenterLat, k.CenterLon)
}

// GraphFile. graph file path of the region inside dir
func (k RegionKey) GraphFile(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("graph_%.5f_%.5f_%.0f_%s.bz2", k.CenterLat, k.CenterLon,
		k.RadiusMeter, k.NetworkType))
}

type GraphLoader interface {
	Load(key RegionKey) (*datastructure.Graph, error)
}

// FileLoader. read the region's graph file from GraphDir, otherwise parse OsmFile and write the graph file.
type FileLoader struct {
	GraphDir string
	OsmFile  string
	logger   *zap.Logger
}

func NewFileLoader(graphDir, osmFile string, logger *zap.Logger) *FileLoader {
	return &FileLoader{GraphDir: graphDir, OsmFile: osmFile, logger: logger}
}

func (fl *FileLoader) Load(key RegionKey) (*datastructure.Graph, error) {
	graphFile := key.GraphFile(fl.GraphDir)
	if _, err := os.Stat(graphFile); err == nil {
		fl.logger.Info("Reading graph from ", zap.String("graphFilePath", graphFile))
		return datastructure.ReadGraph(graphFile)
	}

	if fl.OsmFile == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoGraphSource, graphFile)
	}

	graph, err := BuildRegionGraph(key, fl.OsmFile, fl.logger)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(fl.GraphDir, 0o755); err != nil {
		return nil, err
	}
	fl.logger.Info("Writing graph to ", zap.String("graphFilePath", graphFile))
	if err := graph.WriteGraph(graphFile); err != nil {
		return nil, err
	}
	return graph, nil
}

// BuildRegionGraph. parse the osm extract into the region's road graph, with sccs computed.
func BuildRegionGraph(key RegionKey, osmFile string, logger *zap.Logger) (*datastructure.Graph, error) {
	logger.Info("Parsing openstreetmap extract...", zap.String("osmFile", osmFile),
		zap.Float64("centerLat", key.CenterLat), zap.Float64("centerLon", key.CenterLon),
		zap.Float64("radiusMeter", key.RadiusMeter), zap.String("networkType", key.NetworkType))

	op := osmparser.NewOSMParser(key.Center(), key.RadiusMeter, key.NetworkType)
	graph, err := op.Parse(osmFile, logger)
	if err != nil {
		return nil, err
	}
	graph.RunKosaraju()
	return graph, nil
}

// GraphStore. process-wide cache of loaded regions. each region is loaded once and shared read-only.
type GraphStore struct {
	mu              sync.Mutex
	cache           *lru.Cache[RegionKey, *Engine]
	loader          GraphLoader
	logger          *zap.Logger
	maxSettledNodes int
	opts            []EngineOption
}

func NewGraphStore(size int, loader GraphLoader, logger *zap.Logger, maxSettledNodes int,
	opts ...EngineOption) (*GraphStore, error) {
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[RegionKey, *Engine](size)
	if err != nil {
		return nil, err
	}
	return &GraphStore{
		cache:           cache,
		loader:          loader,
		logger:          logger,
		maxSettledNodes: maxSettledNodes,
		opts:            opts,
	}, nil
}

func (gs *GraphStore) Get(key RegionKey) (*Engine, error) {
	if e, ok := gs.cache.Get(key); ok {
		return e, nil
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if e, ok := gs.cache.Get(key); ok {
		return e, nil
	}

	graph, err := gs.loader.Load(key)
	if err != nil {
		return nil, err
	}
	e := NewEngineDirect(graph, gs.logger, gs.maxSettledNodes, gs.opts...)
	gs.cache.Add(key, e)
	return e, nil
}

func (gs *GraphStore) Len() int {
	return gs.cache.Len()
}
