package usecases

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/lintang-b-s/Ambulancex/pkg/costfunction"
	"github.com/lintang-b-s/Ambulancex/pkg/engine"
	"github.com/lintang-b-s/Ambulancex/pkg/engine/routing"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/metrics"
	"github.com/lintang-b-s/Ambulancex/pkg/spatialindex"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"go.uber.org/zap"
)

type DispatchQuery struct {
	StartLat     float64
	StartLon     float64
	TrafficLevel float64
	Seed         *uint64 // nil: seeded from the clock
}

type CandidateReport struct {
	Name      string
	Lat       float64
	Lon       float64
	Reachable bool
	Cost      float64
	Distance  float64
	Reason    string
}

type DispatchResult struct {
	Route        *routing.RouteResult
	StartVertex  geo.Coordinate
	TrafficLevel float64
	Seed         uint64
	Candidates   []CandidateReport
}

type RoutingService struct {
	log          *zap.Logger
	store        EngineStore
	region       engine.RegionKey
	candidates   []routing.Candidate
	maxIntensity float64
	workers      int
	lefthand     bool
	clock        func() time.Time
}

func NewRoutingService(log *zap.Logger, store EngineStore, region engine.RegionKey,
	candidates []routing.Candidate, maxIntensity float64, workers int, lefthand bool) *RoutingService {
	return &RoutingService{
		log:          log,
		store:        store,
		region:       region,
		candidates:   candidates,
		maxIntensity: maxIntensity,
		workers:      workers,
		lefthand:     lefthand,
		clock:        time.Now,
	}
}

func (rs *RoutingService) Destinations() []routing.Candidate {
	return rs.candidates
}

func (rs *RoutingService) MaxTrafficLevel() float64 {
	return rs.maxIntensity
}

// Dispatch. snap the start position, build the traffic overlay and route to the cheapest reachable destination.
func (rs *RoutingService) Dispatch(ctx context.Context, query DispatchQuery) (*DispatchResult, error) {
	start := time.Now()
	defer func() {
		metrics.DispatchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	res, err := rs.dispatch(ctx, query)
	metrics.DispatchRequestsTotal.WithLabelValues(dispatchOutcome(err)).Inc()
	return res, err
}

func (rs *RoutingService) dispatch(ctx context.Context, query DispatchQuery) (*DispatchResult, error) {
	if err := rs.validate(query); err != nil {
		return nil, err
	}

	eng, err := rs.store.Get(rs.region)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to load road network")
	}
	graph := eng.GetGraph()

	if !graph.InExtent(query.StartLat, query.StartLon) {
		rs.log.Warn("start position outside road network extent",
			zap.Float64("lat", query.StartLat), zap.Float64("lon", query.StartLon))
	}

	startVertex, err := eng.GetSpatialIndex().NearestVertex(query.StartLat, query.StartLon)
	if err != nil {
		return nil, wrapEngineError(err)
	}

	seed := uint64(rs.clock().UnixNano())
	if query.Seed != nil {
		seed = *query.Seed
	}

	overlay, err := costfunction.NewTrafficOverlay(graph, query.TrafficLevel, rs.maxIntensity,
		costfunction.NewRandomSource(seed))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput,
			"traffic_level must be between 0 and %v", rs.maxIntensity)
	}

	selector := eng.NewDestinationSelector(rs.workers, rs.log)
	selection, err := selector.Select(ctx, startVertex, rs.candidates, overlay)
	if selection != nil {
		recordCandidateMetrics(selection)
	}
	if err != nil {
		return nil, wrapEngineError(err)
	}

	route := routing.BuildRouteResult(graph, selection, rs.lefthand)
	rs.log.Info("dispatch route computed", zap.String("destination", route.DestinationName),
		zap.Float64("cost", route.TotalCost), zap.Float64("traffic_level", query.TrafficLevel),
		zap.Uint64("seed", seed))

	return &DispatchResult{
		Route:        route,
		StartVertex:  graph.GetVertexCoordinate(startVertex),
		TrafficLevel: query.TrafficLevel,
		Seed:         seed,
		Candidates:   candidateReports(selection),
	}, nil
}

func (rs *RoutingService) validate(query DispatchQuery) error {
	if !geo.IsValidCoordinate(query.StartLat, query.StartLon) {
		return util.WrapErrorf(routing.ErrInvalidInput, util.ErrBadParamInput,
			"start position (%v, %v) is not a valid coordinate", query.StartLat, query.StartLon)
	}
	if math.IsNaN(query.TrafficLevel) || query.TrafficLevel < 0 || query.TrafficLevel > rs.maxIntensity {
		return util.WrapErrorf(routing.ErrInvalidInput, util.ErrBadParamInput,
			"traffic_level must be between 0 and %v", rs.maxIntensity)
	}
	return nil
}

func wrapEngineError(err error) error {
	switch {
	case errors.Is(err, routing.ErrAllCandidatesUnreachable):
		return util.WrapErrorf(err, util.ErrNotFound, "no destination is reachable from the start position")
	case errors.Is(err, spatialindex.ErrInvalidCoordinate):
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid coordinate")
	case errors.Is(err, spatialindex.ErrEmptyGraph):
		return util.WrapErrorf(err, util.ErrInternalServerError, "road network is empty")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return util.WrapErrorf(err, util.ErrInternalServerError, "dispatch request canceled")
	default:
		return util.WrapErrorf(err, util.ErrInternalServerError, "internal error")
	}
}

func dispatchOutcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	switch util.ErrorCode(err) {
	case util.ErrBadParamInput:
		return metrics.OutcomeBadRequest
	case util.ErrNotFound:
		return metrics.OutcomeUnreachable
	default:
		return metrics.OutcomeError
	}
}

func recordCandidateMetrics(selection *routing.Selection) {
	for _, outcome := range selection.Outcomes {
		result := metrics.ResultReachable
		switch {
		case errors.Is(outcome.Err, routing.ErrSearchLimitExceeded):
			result = metrics.ResultLimitExceeded
		case outcome.Err != nil:
			result = metrics.ResultNoPath
		}
		metrics.CandidateSearchesTotal.WithLabelValues(outcome.Candidate.Name, result).Inc()
		if outcome.Result != nil {
			metrics.SearchSettledNodes.Observe(float64(outcome.Result.NumSettledNodes))
		}
	}
}

func candidateReports(selection *routing.Selection) []CandidateReport {
	reports := make([]CandidateReport, 0, len(selection.Outcomes))
	for _, outcome := range selection.Outcomes {
		report := CandidateReport{
			Name:      outcome.Candidate.Name,
			Lat:       outcome.Candidate.Coordinate.GetLat(),
			Lon:       outcome.Candidate.Coordinate.GetLon(),
			Reachable: outcome.Reachable(),
		}
		if outcome.Reachable() {
			report.Cost = outcome.Result.Cost
			report.Distance = outcome.Result.Dist
		} else if outcome.Err != nil {
			report.Reason = outcome.Err.Error()
		}
		reports = append(reports, report)
	}
	return reports
}
