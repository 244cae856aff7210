package camera

import (
	"math"

	"hoodatlas/internal/config"
	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
)

// FitBounds computes the pose that frames all the given points inside a
// padded viewport. Points must be non-empty; viewport dimensions are pixels.
//
// The zoom is found by inverting the slippy-map tile formula independently
// for the latitude and longitude spans and taking the smaller candidate, so
// the tighter axis decides. No antimeridian handling; a set of points
// straddling ±180 produces a face-of-the-earth box, which is a known gap.
func FitBounds(points []geo.Point, viewportW, viewportH, paddingPx int, minZoom float64, tuning config.Tuning) ViewportState {
	env := geo.NewBounds(points[0])
	for _, p := range points[1:] {
		env.Extend(p)
	}
	center := env.Center()

	if math.IsNaN(minZoom) || minZoom < tuning.MinZoom {
		minZoom = tuning.MinZoom
	}

	usableW := float64(viewportW - 2*paddingPx)
	usableH := float64(viewportH - 2*paddingPx)
	if usableW < 1 {
		usableW = 1
	}
	if usableH < 1 {
		usableH = 1
	}

	spanLat := env.SpanLat()
	spanLng := env.SpanLng()

	// Coincident (or nearly so) points: dividing by the span would blow up,
	// so short-circuit to a fixed close zoom
	if spanLat < 1e-9 && spanLng < 1e-9 {
		return ViewportState{Center: center, Zoom: tuning.DegenerateZoom}
	}

	zoomLat := math.Inf(1)
	if spanLat > 1e-9 {
		// World height in degrees-of-latitude terms shrinks with Mercator
		// stretching; approximating with the raw degree span is what the
		// tile formula inversion expects
		zoomLat = math.Log2(usableH * 360 / (spanLat * geo.TileSize))
	}

	zoomLng := math.Inf(1)
	if spanLng > 1e-9 {
		// Horizontal scale depends on latitude under Mercator
		corrected := spanLng * math.Cos(degToRad(center.Lat))
		if corrected > 1e-9 {
			zoomLng = math.Log2(usableW * 360 / (corrected * geo.TileSize))
		}
	}

	zoom := math.Floor(math.Min(zoomLat, zoomLng))

	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		debug.Log("fitBounds: non-finite zoom for span (%.6f, %.6f), using fallback", spanLat, spanLng)
		zoom = tuning.FallbackZoom
	}

	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > tuning.MaxZoom {
		zoom = tuning.MaxZoom
	}

	return ViewportState{Center: center, Zoom: zoom}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
