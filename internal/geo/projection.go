package geo

import (
	"math"
)

// ScreenPoint represents a screen coordinate in terminal cells
type ScreenPoint struct {
	X int
	Y int
}

// Projection converts lat/lng to screen coordinates under Web Mercator,
// parameterized by a slippy-map zoom level. The terminal renders character
// cells rather than pixels, so the projection carries the pixel footprint of
// one cell; camera math stays in pixels and only the final placement is
// quantized to cells.
type Projection struct {
	center      Point
	zoom        float64
	widthCells  int
	heightCells int
	cellPxW     int
	cellPxH     int
}

// NewProjection creates a Mercator projection centered on the given point.
// Width and height are in terminal cells; cellPxW/cellPxH describe the pixel
// footprint of one cell (typically 8x16 for common terminal fonts).
func NewProjection(center Point, zoom float64, widthCells, heightCells, cellPxW, cellPxH int) *Projection {
	return &Projection{
		center:      center,
		zoom:        zoom,
		widthCells:  widthCells,
		heightCells: heightCells,
		cellPxW:     cellPxW,
		cellPxH:     cellPxH,
	}
}

// worldX returns the absolute horizontal world-pixel coordinate of a longitude
func (p *Projection) worldX(lng float64) float64 {
	return WorldPixels(p.zoom) * (lng + 180) / 360
}

// worldY returns the absolute vertical world-pixel coordinate of a latitude
func (p *Projection) worldY(lat float64) float64 {
	return WorldPixels(p.zoom) * (0.5 - LatToMercatorY(lat)/(2*math.Pi))
}

// ProjectPx converts lat/lng to pixel coordinates within the viewport,
// with (0, 0) at the top-left of the map container
func (p *Projection) ProjectPx(pt Point) (x, y float64) {
	x = p.worldX(pt.Lng) - p.worldX(p.center.Lng) + float64(p.widthCells*p.cellPxW)/2
	y = p.worldY(pt.Lat) - p.worldY(p.center.Lat) + float64(p.heightCells*p.cellPxH)/2
	return x, y
}

// Project converts lat/lng to terminal cell coordinates
// Returns screen coordinates with (0, 0) at top-left
func (p *Projection) Project(pt Point) ScreenPoint {
	x, y := p.ProjectPx(pt)
	return ScreenPoint{
		X: int(math.Floor(x / float64(p.cellPxW))),
		Y: int(math.Floor(y / float64(p.cellPxH))),
	}
}

// Unproject converts terminal cell coordinates back to lat/lng
func (p *Projection) Unproject(x, y int) Point {
	px := float64(x*p.cellPxW) + float64(p.cellPxW)/2
	py := float64(y*p.cellPxH) + float64(p.cellPxH)/2

	wx := px - float64(p.widthCells*p.cellPxW)/2 + p.worldX(p.center.Lng)
	wy := py - float64(p.heightCells*p.cellPxH)/2 + p.worldY(p.center.Lat)

	lng := wx/WorldPixels(p.zoom)*360 - 180
	mercY := (0.5 - wy/WorldPixels(p.zoom)) * 2 * math.Pi

	return Point{Lat: MercatorYToLat(mercY), Lng: lng}
}

// IsInBounds checks if a point would be visible on screen
func (p *Projection) IsInBounds(pt Point) bool {
	sp := p.Project(pt)
	return sp.X >= 0 && sp.X < p.widthCells &&
		sp.Y >= 0 && sp.Y < p.heightCells
}

// Center returns the current center point
func (p *Projection) Center() Point {
	return p.center
}

// Zoom returns the current zoom level
func (p *Projection) Zoom() float64 {
	return p.zoom
}

// SetCamera moves the projection to a new center and zoom
func (p *Projection) SetCamera(center Point, zoom float64) {
	p.center = center
	p.zoom = zoom
}

// UpdateDimensions updates the screen dimensions when the terminal is resized
func (p *Projection) UpdateDimensions(widthCells, heightCells int) {
	p.widthCells = widthCells
	p.heightCells = heightCells
}

// SizePx returns the viewport dimensions in pixels
func (p *Projection) SizePx() (w, h int) {
	return p.widthCells * p.cellPxW, p.heightCells * p.cellPxH
}

// CellPx returns the pixel footprint of one terminal cell
func (p *Projection) CellPx() (w, h int) {
	return p.cellPxW, p.cellPxH
}

// VisibleBounds returns the geographic bounds visible on screen
func (p *Projection) VisibleBounds() *Bounds {
	topLeft := p.Unproject(0, 0)
	bottomRight := p.Unproject(p.widthCells-1, p.heightCells-1)

	b := NewBounds(topLeft)
	b.Extend(bottomRight)
	return b
}
