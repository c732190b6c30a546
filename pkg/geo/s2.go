package geo

import (
	"github.com/golang/geo/s2"
)

const earthRadiusMeter = earthRadiusKM * 1000

// WithinRadius. whether (lat, lon) lies within radiusMeter (great circle) of center
func WithinRadius(center Coordinate, lat, lon float64, radiusMeter float64) bool {
	c := s2.LatLngFromDegrees(center.Lat, center.Lon)
	p := s2.LatLngFromDegrees(lat, lon)
	return c.Distance(p).Radians()*earthRadiusMeter <= radiusMeter
}

// Extent. lat/lon rectangle covering a set of points (the graph's geographic extent)
type Extent struct {
	rect s2.Rect
}

func NewExtent() *Extent {
	return &Extent{rect: s2.EmptyRect()}
}

func (e *Extent) AddPoint(lat, lon float64) {
	e.rect = e.rect.AddPoint(s2.LatLngFromDegrees(lat, lon))
}

func (e *Extent) IsEmpty() bool {
	return e.rect.IsEmpty()
}

func (e *Extent) Contains(lat, lon float64) bool {
	return e.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

// Bounds. return minLat, minLon, maxLat, maxLon in degree
func (e *Extent) Bounds() (float64, float64, float64, float64) {
	lo := e.rect.Lo()
	hi := e.rect.Hi()
	return lo.Lat.Degrees(), lo.Lng.Degrees(), hi.Lat.Degrees(), hi.Lng.Degrees()
}
