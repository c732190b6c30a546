package routing

import (
	"github.com/lintang-b-s/Ambulancex/pkg"
	da "github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/lintang-b-s/Ambulancex/pkg/guidance"
	"github.com/lintang-b-s/Ambulancex/pkg/util"
)

type RouteResult struct {
	DestinationName       string
	DestinationCoordinate geo.Coordinate
	Path                  []geo.Coordinate // vertex coordinates from the start vertex to the destination vertex
	Polyline              string
	TotalCost             float64 // rounded to pkg.COST_DISPLAY_PRECISION decimals
	Cost                  float64
	DistanceMeter         float64
	InitialBearing        float64 // degrees, bearing of the first route segment, 0 for single vertex routes
	NumSettledNodes       int
	Directions            []guidance.DrivingDirection
}

// BuildRouteResult. route result of the winning candidate of selection, lefthand selects the side
// U-turns are made on.
func BuildRouteResult(graph *da.Graph, selection *Selection, lefthand bool) *RouteResult {
	best := selection.BestOutcome()

	path := make([]geo.Coordinate, 0, len(best.Result.Vertices))
	for _, v := range best.Result.Vertices {
		path = append(path, graph.GetVertexCoordinate(v))
	}

	initialBearing := 0.0
	if len(path) > 1 {
		initialBearing = geo.BearingTo(path[0].GetLat(), path[0].GetLon(), path[1].GetLat(), path[1].GetLon())
	}

	return &RouteResult{
		DestinationName:       best.Candidate.Name,
		DestinationCoordinate: best.Candidate.Coordinate,
		Path:                  path,
		Polyline:              geo.PoylineFromCoords(path),
		TotalCost:             util.RoundFloat(best.Result.Cost, pkg.COST_DISPLAY_PRECISION),
		Cost:                  best.Result.Cost,
		DistanceMeter:         best.Result.Dist,
		InitialBearing:        initialBearing,
		NumSettledNodes:       best.Result.NumSettledNodes,
		Directions:            guidance.NewDirectionBuilder(graph, lefthand).GetDrivingDirections(best.Result.Edges),
	}
}
