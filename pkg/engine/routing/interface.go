package routing

import (
	"github.com/lintang-b-s/Ambulancex/pkg/costfunction"
	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
)

// CostFunction. edge cost used by the search, must be >= costfunction.EffectiveLength(e.GetLength())
// for the A* heuristic to stay admissible.
type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
}

type SpatialIndex interface {
	NearestVertex(lat, lon float64) (datastructure.Index, error)
}

// LowerBounder. consistent lower bound of the remaining effective-length distance from u to t.
// pkg.INF_WEIGHT means t is unreachable from u.
type LowerBounder interface {
	LowerBound(u, t datastructure.Index) float64
}
