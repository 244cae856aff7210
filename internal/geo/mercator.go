package geo

import "math"

const (
	// TileSize is the edge length in pixels of a slippy-map tile
	TileSize = 256.0

	// MaxMercatorLat is the latitude limit of the Web Mercator projection.
	// Latitudes beyond this cannot be represented on standard map tiles.
	MaxMercatorLat = 85.05112878
)

// LatToMercatorY converts a latitude in degrees to the Mercator "stretched"
// Y coordinate used by web map tiling schemes.
// Diverges toward ±Inf at the poles; callers must not pass exactly ±90.
func LatToMercatorY(lat float64) float64 {
	return math.Log(math.Tan(math.Pi/4 + lat*math.Pi/360))
}

// MercatorYToLat converts a Mercator Y coordinate back to latitude in degrees
func MercatorYToLat(y float64) float64 {
	return radToDeg(2*math.Atan(math.Exp(y)) - math.Pi/2)
}

// WorldPixels returns the width of the whole world in pixels at the given zoom
func WorldPixels(zoom float64) float64 {
	return TileSize * math.Pow(2, zoom)
}

// OffsetLatByPixels shifts a latitude by a vertical screen-pixel distance at
// the given zoom level. A positive offset moves the latitude north, so a map
// centered on the result shows the original latitude below the viewport
// center. Longitude is never touched by this shift; the horizontal component
// of a projection round-trip is deliberately discarded so repeated calls
// cannot accumulate horizontal drift.
func OffsetLatByPixels(lat, offsetPx, zoom float64) float64 {
	// Mercator Y spans 2π radians across the world height in pixels
	pixelsPerRadian := WorldPixels(zoom) / (2 * math.Pi)

	y := LatToMercatorY(lat) + offsetPx/pixelsPerRadian
	return MercatorYToLat(y)
}
