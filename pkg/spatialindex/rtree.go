package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"github.com/lintang-b-s/Ambulancex/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var (
	ErrEmptyGraph        = errors.New("spatial index: graph has no vertices")
	ErrInvalidCoordinate = errors.New("spatial index: invalid coordinate")
)

const (
	initialSearchRadiusKm = 0.05
	maxSearchRadiusKm     = 25.0
)

// Rtree. r-tree over graph vertices, each leaf is the vertex coordinate.
type Rtree struct {
	tr    *rtree.RTreeG[datastructure.Index]
	graph *datastructure.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph

	n := graph.NumberOfVertices()
	graph.ForVertices(func(v *datastructure.Vertex) {
		if n >= 10 && int(v.GetID())%(n/10) == 0 {
			log.Info("Building R-tree spatial index...",
				zap.Float64("progress", math.Round(100*float64(v.GetID())/float64(n))))
		}
		point := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(point, point, v.GetID())
	})

	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.tr.Len()))
}

// SearchWithinRadius search for all vertices inside the bounding box of the circle with radius (in km)
// around the query point (qLat, qLon). ok is false if the box wraps around a pole or the antimeridian.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) ([]datastructure.Index, bool) {
	maxLat, _ := geo.GetDestinationPoint(qLat, qLon, 0, radius)
	_, maxLon := geo.GetDestinationPoint(qLat, qLon, 90, radius)
	minLat, _ := geo.GetDestinationPoint(qLat, qLon, 180, radius)
	_, minLon := geo.GetDestinationPoint(qLat, qLon, 270, radius)
	if minLat >= qLat || maxLat <= qLat || minLon >= qLon || maxLon <= qLon {
		return nil, false
	}

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		func(min, max [2]float64, data datastructure.Index) bool {
			results = append(results, data)
			return true
		})
	return results, true
}

// NearestVertex. vertex with the smallest haversine distance to (lat, lon), ties go to the lowest vertex id.
// the search box doubles until the best candidate lies within half of the box radius, which
// guarantees no vertex outside the box is closer. falls back to a linear scan for far away queries.
func (rt *Rtree) NearestVertex(lat, lon float64) (datastructure.Index, error) {
	if rt.graph == nil || rt.graph.NumberOfVertices() == 0 {
		return datastructure.INVALID_VERTEX_ID, ErrEmptyGraph
	}
	if !geo.IsValidCoordinate(lat, lon) {
		return datastructure.INVALID_VERTEX_ID, ErrInvalidCoordinate
	}

	for radius := initialSearchRadiusKm; radius <= maxSearchRadiusKm; radius *= 2 {
		candidates, ok := rt.SearchWithinRadius(lat, lon, radius)
		if !ok {
			break
		}
		best, bestDist := rt.closest(lat, lon, candidates)
		if best != datastructure.INVALID_VERTEX_ID && bestDist <= radius*1000/2 {
			return best, nil
		}
	}

	best := datastructure.INVALID_VERTEX_ID
	bestDist := math.Inf(1)
	rt.graph.ForVertices(func(v *datastructure.Vertex) {
		dist := geo.CalculateHaversineDistanceMeter(lat, lon, v.GetLat(), v.GetLon())
		if dist < bestDist {
			best, bestDist = v.GetID(), dist
		}
	})
	return best, nil
}

func (rt *Rtree) closest(lat, lon float64, candidates []datastructure.Index) (datastructure.Index, float64) {
	best := datastructure.INVALID_VERTEX_ID
	bestDist := math.Inf(1)
	for _, v := range candidates {
		vLat, vLon := rt.graph.GetVertexCoordinates(v)
		dist := geo.CalculateHaversineDistanceMeter(lat, lon, vLat, vLon)
		if dist < bestDist || (dist == bestDist && v < best) {
			best, bestDist = v, dist
		}
	}
	return best, bestDist
}
