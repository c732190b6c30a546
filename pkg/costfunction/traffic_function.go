package costfunction

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/Ambulancex/pkg"
	"github.com/lintang-b-s/Ambulancex/pkg/datastructure"
	"golang.org/x/exp/rand"
)

var ErrInvalidIntensity = errors.New("traffic intensity out of range")

// RandomSource. uniform float64 in [0, 1)
type RandomSource interface {
	Float64() float64
}

func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// TrafficOverlay. per-request dynamic edge costs, indexed by edge id:
//
//	cost(e) = EffectiveLength(length(e)) + U_e * TRAFFIC_DELAY_FACTOR,  U_e ~ Uniform[0, intensity]
//
// U_e are drawn in edge id order. the graph itself is never modified.
type TrafficOverlay struct {
	weights   []float64
	intensity float64
}

// NewTrafficOverlay. intensity must be in [0, maxIntensity]. for intensity 0 nothing is drawn from rnd.
func NewTrafficOverlay(graph *datastructure.Graph, intensity, maxIntensity float64,
	rnd RandomSource) (*TrafficOverlay, error) {
	if math.IsNaN(intensity) || intensity < 0 || intensity > maxIntensity {
		return nil, fmt.Errorf("%w: %v not in [0, %v]", ErrInvalidIntensity, intensity, maxIntensity)
	}

	weights := make([]float64, graph.NumberOfEdges())
	graph.ForOutEdges(func(e *datastructure.OutEdge, id datastructure.Index) {
		weights[id] = EffectiveLength(e.GetLength())
		if intensity > 0 {
			weights[id] += rnd.Float64() * intensity * pkg.TRAFFIC_DELAY_FACTOR
		}
	})

	return &TrafficOverlay{weights: weights, intensity: intensity}, nil
}

func (t *TrafficOverlay) GetWeight(e EdgeAttributes) float64 {
	return t.weights[e.GetEdgeId()]
}

func (t *TrafficOverlay) GetEdgeWeight(edgeId datastructure.Index) float64 {
	return t.weights[edgeId]
}

func (t *TrafficOverlay) GetIntensity() float64 {
	return t.intensity
}

func (t *TrafficOverlay) NumberOfEdges() int {
	return len(t.weights)
}
