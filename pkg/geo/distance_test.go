package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name                string
		latOne, lonOne      float64
		latTwo, lonTwo      float64
		wantKm, toleranceKm float64
	}{
		{
			name:   "same point",
			latOne: 18.6298, lonOne: 73.7997,
			latTwo: 18.6298, lonTwo: 73.7997,
			wantKm: 0, toleranceKm: 1e-9,
		},
		{
			name:   "one degree of latitude",
			latOne: 0, lonOne: 0,
			latTwo: 1, lonTwo: 0,
			wantKm: 111.195, toleranceKm: 0.01,
		},
		{
			name:   "pimpri center to hospital 1",
			latOne: 18.6298, lonOne: 73.7997,
			latTwo: 18.6180, lonTwo: 73.8030,
			wantKm: 1.359, toleranceKm: 0.01,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.latOne, tt.lonOne, tt.latTwo, tt.lonTwo)
			assert.InDelta(t, tt.wantKm, got, tt.toleranceKm)
		})
	}
}

func TestLongitudeCompression(t *testing.T) {
	// one degree of longitude at ~18.6 degree is shorter than one degree of latitude
	dLat := CalculateHaversineDistance(18.6, 73.8, 18.61, 73.8)
	dLon := CalculateHaversineDistance(18.6, 73.8, 18.6, 73.81)
	assert.InDelta(t, math.Cos(18.6*math.Pi/180), dLon/dLat, 0.001)
	assert.Less(t, dLon, dLat)
}

func TestIsValidCoordinate(t *testing.T) {
	assert.True(t, IsValidCoordinate(18.6298, 73.7997))
	assert.True(t, IsValidCoordinate(-90, 180))
	assert.False(t, IsValidCoordinate(90.5, 0))
	assert.False(t, IsValidCoordinate(0, -180.1))
	assert.False(t, IsValidCoordinate(math.NaN(), 0))
	assert.False(t, IsValidCoordinate(0, math.Inf(1)))
}

func TestWithinRadius(t *testing.T) {
	center := NewCoordinate(18.6298, 73.7997)
	assert.True(t, WithinRadius(center, 18.6180, 73.8030, 5000))
	assert.False(t, WithinRadius(center, 18.6180, 73.8030, 1000))
}

func TestExtent(t *testing.T) {
	e := NewExtent()
	assert.True(t, e.IsEmpty())
	e.AddPoint(18.60, 73.79)
	e.AddPoint(18.64, 73.82)

	assert.True(t, e.Contains(18.62, 73.80))
	assert.False(t, e.Contains(18.70, 73.80))

	minLat, minLon, maxLat, maxLon := e.Bounds()
	assert.InDelta(t, 18.60, minLat, 1e-9)
	assert.InDelta(t, 73.79, minLon, 1e-9)
	assert.InDelta(t, 18.64, maxLat, 1e-9)
	assert.InDelta(t, 73.82, maxLon, 1e-9)
}

func TestPolylineRoundTrip(t *testing.T) {
	path := []Coordinate{NewCoordinate(18.6298, 73.7997), NewCoordinate(18.6180, 73.8030)}
	encoded := PoylineFromCoords(path)
	require.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	for i := range path {
		assert.InDelta(t, path[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, path[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestBearingTo(t *testing.T) {
	assert.InDelta(t, 0.0, BearingTo(0, 0, 1, 0), 1e-6)
	assert.InDelta(t, 90.0, BearingTo(0, 0, 0, 1), 1e-6)
}
