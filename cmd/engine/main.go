package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/Ambulancex/pkg/engine"
	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/http"
	"github.com/lintang-b-s/Ambulancex/pkg/http/usecases"
	"github.com/lintang-b-s/Ambulancex/pkg/logger"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile   = flag.String("config", "", "config file path (default ./data/config.yaml)")
	useRateLimit = flag.Bool("rate_limit", false, "enable the global rate limiter")
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

	dests, err := util.ReadDestinations()
	if err != nil {
		logger.Fatal("failed to read destinations", zap.Error(err))
	}
	candidates := make([]routing.Candidate, 0, len(dests))
	for _, d := range dests {
		candidates = append(candidates, routing.NewCandidate(d.Name, d.Lat, d.Lon))
	}

	region := engine.NewRegionKey(viper.GetFloat64("region.center_lat"), viper.GetFloat64("region.center_lon"),
		viper.GetFloat64("region.radius_m"), viper.GetString("region.network_type"))

	loader := engine.NewFileLoader(viper.GetString("graph.dir"), viper.GetString("graph.osm_file"), logger)
	store, err := engine.NewGraphStore(viper.GetInt("graph.cache_size"), loader, logger,
		viper.GetInt("routing.max_settled_nodes"), engine.WithLandmarks(viper.GetInt("routing.landmarks")))
	if err != nil {
		logger.Fatal("failed to create graph store", zap.Error(err))
	}

	// load the configured region before accepting requests
	if _, err := store.Get(region); err != nil {
		logger.Fatal("failed to load road network", zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, store, region, candidates,
		viper.GetFloat64("traffic.max_intensity"), viper.GetInt("routing.workers"),
		viper.GetBool("routing.left_hand_traffic"))

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService,
		viper.GetFloat64("traffic.default_intensity")); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	cleanup()
	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("Ambulancex Dispatch Server Stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
