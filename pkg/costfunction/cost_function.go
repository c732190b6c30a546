package costfunction

import (
	"math"

	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
)

type EdgeAttributes interface {
	GetLength() float64
	GetEdgeId() datastructure.Index
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
}

// EffectiveLength. non-positive lengths are replaced by pkg.MIN_EDGE_LENGTH_METER
func EffectiveLength(length float64) float64 {
	if length <= 0 || math.IsNaN(length) {
		return pkg.MIN_EDGE_LENGTH_METER
	}
	return length
}

// LengthFunction. cost of an edge is its (effective) static length in meter
type LengthFunction struct {
}

func NewLengthCostFunction() *LengthFunction {
	return &LengthFunction{}
}

func (lf *LengthFunction) GetWeight(e EdgeAttributes) float64 {
	return EffectiveLength(e.GetLength())
}
