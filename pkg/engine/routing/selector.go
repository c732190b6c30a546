package routing

import (
	"context"

	"github.com/lintang-b-s/Ambulancex/pkg/concurrent"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
	"go.uber.org/zap"
)

type Candidate struct {
	Name       string
	Coordinate geo.Coordinate
}

func NewCandidate(name string, lat, lon float64) Candidate {
	return Candidate{Name: name, Coordinate: geo.NewCoordinate(lat, lon)}
}

// CandidateOutcome. result of routing to one candidate. Err is nil iff Result is set.
type CandidateOutcome struct {
	Candidate Candidate
	Vertex    da.Index // vertex the candidate was snapped to
	Result    *SearchResult
	Err       error
}

func (o CandidateOutcome) Reachable() bool {
	return o.Err == nil && o.Result != nil
}

// Selection. Outcomes has one entry per candidate in input order, Best indexes the winner.
type Selection struct {
	Start    da.Index
	Best     int
	Outcomes []CandidateOutcome
}

func (s *Selection) BestOutcome() CandidateOutcome {
	return s.Outcomes[s.Best]
}

type DestinationSelector struct {
	engine  *RoutingEngine
	index   SpatialIndex
	workers int
	logger  *zap.Logger
}

// NewDestinationSelector. workers > 1 evaluates candidates concurrently.
func NewDestinationSelector(engine *RoutingEngine, index SpatialIndex, workers int, logger *zap.Logger) *DestinationSelector {
	return &DestinationSelector{
		engine:  engine,
		index:   index,
		workers: workers,
		logger:  logger,
	}
}

type candidateJob struct {
	pos    int
	target da.Index
}

type candidateJobResult struct {
	pos    int
	result *SearchResult
	err    error
}

// Select. route from start to every candidate with the same cost function and keep the cheapest.
// candidates that can't be reached are recorded in their outcome and skipped. on equal cost the
// candidate earlier in the list wins, independent of the number of workers.
// with ErrAllCandidatesUnreachable the returned selection still carries every outcome, but no Best.
func (ds *DestinationSelector) Select(ctx context.Context, start da.Index, candidates []Candidate,
	cf CostFunction) (*Selection, error) {
	outcomes := make([]CandidateOutcome, len(candidates))
	for i, cand := range candidates {
		target, err := ds.index.NearestVertex(cand.Coordinate.GetLat(), cand.Coordinate.GetLon())
		if err != nil {
			return nil, err
		}
		outcomes[i] = CandidateOutcome{Candidate: cand, Vertex: target}
	}

	var err error
	if ds.workers > 1 && len(candidates) > 1 {
		err = ds.searchConcurrent(ctx, start, outcomes, cf)
	} else {
		err = ds.searchSequential(ctx, start, outcomes, cf)
	}
	if err != nil {
		return nil, err
	}

	selection := &Selection{Start: start, Best: -1, Outcomes: outcomes}
	for i, outcome := range outcomes {
		if !outcome.Reachable() {
			ds.logger.Debug("candidate destination skipped", zap.String("destination", outcome.Candidate.Name),
				zap.Error(outcome.Err))
			continue
		}
		if selection.Best == -1 || outcome.Result.Cost < outcomes[selection.Best].Result.Cost {
			selection.Best = i
		}
	}

	if selection.Best == -1 {
		return selection, ErrAllCandidatesUnreachable
	}
	return selection, nil
}

func (ds *DestinationSelector) searchSequential(ctx context.Context, start da.Index, outcomes []CandidateOutcome,
	cf CostFunction) error {
	for i := range outcomes {
		if util.StopConcurrentOperation(ctx) {
			return ctx.Err()
		}
		res, err := ds.engine.ShortestPathSearch(ctx, start, outcomes[i].Vertex, cf)
		if err != nil && !isCandidateFailure(err) {
			return err
		}
		outcomes[i].Result, outcomes[i].Err = res, err
	}
	return nil
}

func (ds *DestinationSelector) searchConcurrent(ctx context.Context, start da.Index, outcomes []CandidateOutcome,
	cf CostFunction) error {
	workers := concurrent.NewWorkerPool[candidateJob, candidateJobResult](min(ds.workers, len(outcomes)), len(outcomes))
	for i := range outcomes {
		workers.AddJob(candidateJob{pos: i, target: outcomes[i].Vertex})
	}
	workers.Close()

	workers.Start(func(job candidateJob) candidateJobResult {
		if util.StopConcurrentOperation(ctx) {
			return candidateJobResult{pos: job.pos, err: ctx.Err()}
		}
		res, err := ds.engine.ShortestPathSearch(ctx, start, job.target, cf)
		return candidateJobResult{pos: job.pos, result: res, err: err}
	})
	workers.Wait()

	var firstErr error
	for res := range workers.CollectResults() {
		if res.err != nil && !isCandidateFailure(res.err) {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		outcomes[res.pos].Result, outcomes[res.pos].Err = res.result, res.err
	}
	return firstErr
}
