package main

import (
	"flag"
	"os"

	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/engine"
	"github.com/lintang-b-s/Ambulancex/pkg/logger"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "config file path (default ./data/config.yaml)")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(*configFile); err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}

	region := engine.NewRegionKey(viper.GetFloat64("region.center_lat"), viper.GetFloat64("region.center_lon"),
		viper.GetFloat64("region.radius_m"), viper.GetString("region.network_type"))

	graph, err := engine.BuildRegionGraph(region, viper.GetString("graph.osm_file"), logger)
	if err != nil {
		logger.Fatal("failed to build road network", zap.Error(err))
	}

	graphDir := viper.GetString("graph.dir")
	if err := os.MkdirAll(graphDir, 0o755); err != nil {
		logger.Fatal("failed to create graph directory", zap.Error(err))
	}
	graphFile := region.GraphFile(graphDir)
	if err := graph.WriteGraph(graphFile); err != nil {
		logger.Fatal("failed to write graph", zap.Error(err))
	}

	// sanity check the written file
	if _, err := datastructure.ReadGraph(graphFile); err != nil {
		logger.Fatal("failed to read back graph", zap.Error(err))
	}

	logger.Info("Preprocessing completed successfully.", zap.String("graphFile", graphFile),
		zap.Int("numVertices", graph.NumberOfVertices()), zap.Int("numEdges", graph.NumberOfEdges()),
		zap.Int("numSCCs", graph.NumberOfSCCs()))
}
