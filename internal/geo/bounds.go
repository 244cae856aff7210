package geo

// Bounds represents a geographic bounding box
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBounds creates an empty envelope positioned at the given point
func NewBounds(p Point) *Bounds {
	return &Bounds{
		MinLat: p.Lat,
		MaxLat: p.Lat,
		MinLng: p.Lng,
		MaxLng: p.Lng,
	}
}

// Extend grows the envelope to include the given point
func (b *Bounds) Extend(p Point) {
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	if p.Lng < b.MinLng {
		b.MinLng = p.Lng
	}
	if p.Lng > b.MaxLng {
		b.MaxLng = p.Lng
	}
}

// Center returns the midpoint of the envelope.
// No antimeridian handling; boxes that cross ±180 are out of scope.
func (b *Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// SpanLat returns the latitude extent of the envelope in degrees
func (b *Bounds) SpanLat() float64 {
	return b.MaxLat - b.MinLat
}

// SpanLng returns the longitude extent of the envelope in degrees
func (b *Bounds) SpanLng() float64 {
	return b.MaxLng - b.MinLng
}

// Contains checks if a point is within the bounds
func (b *Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}
