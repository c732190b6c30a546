package main

import (
	"context"
	"errors"
	"flag"
	"math"
	"math/rand"
	"time"

	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/concurrent"
	"github.com/lintang-b-s/Ambulancex/pkg/costfunction"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/engine"
	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/landmark"
	log "github.com/lintang-b-s/Ambulancex/pkg/logger"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile   = flag.String("config", "./data/config.yaml", "config file")
	numSources   = flag.Int("sources", 20, "number of random sources")
	trafficLevel = flag.Float64("traffic", 5, "traffic intensity of the overlay")
	seed         = flag.Int64("seed", 1, "seed for sources and the traffic overlay")
	workers      = flag.Int("workers", 8, "number of workers")
)

/*
go run cmd/stresstest/main.go -sources 50 -traffic 7

looks for a counterexample (an A* with landmarks route that is not a shortest path) on the configured region:
plain dijkstra single source shortest paths from random sources under a random traffic overlay, then A* point
to point queries from the same source to every reachable and some unreachable vertices.

stops at the first counterexample.
*/
type stressResult struct {
	source          da.Index
	queries         int
	settledAstar    int
	settledDijkstra int
	counterexample  *counterexample
}

type counterexample struct {
	s, t      da.Index
	want, got float64
	err       error
}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(*configFile); err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}

	region := engine.NewRegionKey(viper.GetFloat64("region.center_lat"), viper.GetFloat64("region.center_lon"),
		viper.GetFloat64("region.radius_m"), viper.GetString("region.network_type"))
	graph, err := engine.NewFileLoader(viper.GetString("graph.dir"), viper.GetString("graph.osm_file"), logger).
		Load(region)
	if err != nil {
		logger.Fatal("failed to load road network", zap.Error(err))
	}

	numLandmarks := viper.GetInt("routing.landmarks")
	if numLandmarks == 0 {
		numLandmarks = 8
	}
	eng := engine.NewEngineDirect(graph, logger, 0, engine.WithLandmarks(numLandmarks))
	re := eng.GetRoutingEngine()

	overlay, err := costfunction.NewTrafficOverlay(graph, *trafficLevel, viper.GetFloat64("traffic.max_intensity"),
		costfunction.NewRandomSource(uint64(*seed)))
	if err != nil {
		logger.Fatal("invalid traffic level", zap.Error(err))
	}

	n := graph.NumberOfVertices()
	if n == 0 {
		logger.Fatal("empty road network")
	}
	rd := rand.New(rand.NewSource(*seed))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	wp := concurrent.NewWorkerPool[da.Index, stressResult](*workers, *numSources)
	for i := 0; i < *numSources; i++ {
		wp.AddJob(da.Index(rd.Intn(n)))
	}
	wp.Close()

	wp.Start(func(s da.Index) stressResult {
		res := stressResult{source: s}
		if util.StopConcurrentOperation(ctx) {
			return res
		}

		dijkstra := landmark.NewDijkstra(graph, overlay, nil)
		dist := dijkstra.ShortestPath(s)
		res.settledDijkstra = dijkstra.GetNumSettledNodes()

		for t := 0; t < n; t++ {
			if util.StopConcurrentOperation(ctx) {
				return res
			}
			sp, err := re.ShortestPathSearch(ctx, s, da.Index(t), overlay)
			res.queries++

			if dist[t] >= pkg.INF_WEIGHT {
				if !errors.Is(err, routing.ErrNoPathFound) {
					res.counterexample = &counterexample{s: s, t: da.Index(t), want: math.Inf(1), err: err}
					cancel()
					return res
				}
				continue
			}
			if err != nil {
				res.counterexample = &counterexample{s: s, t: da.Index(t), want: dist[t], err: err}
				cancel()
				return res
			}
			res.settledAstar += sp.NumSettledNodes
			if math.Abs(sp.Cost-dist[t]) > 1e-6*math.Max(1, dist[t]) {
				res.counterexample = &counterexample{s: s, t: da.Index(t), want: dist[t], got: sp.Cost}
				cancel()
				return res
			}
		}
		logger.Sugar().Infof("done source %v", s)
		return res
	})
	wp.Wait()

	var (
		queries, settledAstar, settledDijkstra int
		found                                  *counterexample
	)
	for res := range wp.CollectResults() {
		queries += res.queries
		settledAstar += res.settledAstar
		settledDijkstra += res.settledDijkstra
		if res.counterexample != nil && found == nil {
			found = res.counterexample
		}
	}

	if found != nil {
		logger.Fatal("counterexample found", zap.Uint32("s", uint32(found.s)), zap.Uint32("t", uint32(found.t)),
			zap.Float64("want", found.want), zap.Float64("got", found.got), zap.Error(found.err))
	}

	avgSettled := 0.0
	if queries > 0 {
		avgSettled = float64(settledAstar) / float64(queries)
	}
	logger.Info("stress test passed", zap.Int("queries", queries), zap.Int("landmarks", numLandmarks),
		zap.Float64("avg A* settled nodes", avgSettled), zap.Int("dijkstra settled nodes", settledDijkstra),
		zap.Duration("elapsed", time.Since(start)))
}
