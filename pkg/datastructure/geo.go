package datastructure

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

// GetCenter. center of the bounding box (lat, lon)
func (b *BoundingBox) GetCenter() (float64, float64) {
	return (b.minLat + b.maxLat) / 2, (b.minLon + b.maxLon) / 2
}
