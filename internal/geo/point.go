package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth in meters.
const EarthRadiusMeters = 6371000.0

// Point represents a geographic coordinate in decimal degrees
type Point struct {
	Lat float64
	Lng float64
}

// Valid returns true if the point is within valid coordinate ranges
// Latitude must be between -90 and 90, longitude between -180 and 180
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Finite returns true if both coordinates are finite numbers
func (p Point) Finite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}

// Distance calculates the great-circle distance between two points
// using the haversine formula. Returns the distance in meters.
func Distance(a, b Point) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	deltaLat := degToRad(b.Lat - a.Lat)
	deltaLng := degToRad(b.Lng - a.Lng)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
