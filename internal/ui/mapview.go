package ui

import (
	"github.com/gdamore/tcell/v2"

	"hoodatlas/internal/camera"
	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
	"hoodatlas/internal/hood"
	"hoodatlas/internal/render"
)

// Pixel footprint of one terminal cell, typical for an 8x16 terminal font.
// The camera engine works in pixels; these constants anchor its math to
// the cell grid.
const (
	cellPxW = 8
	cellPxH = 16
)

// MapView displays the map and implements the camera engine's host
// interfaces (MapHandle, ViewportSizer) over the Mercator projection
type MapView struct {
	projection *geo.Projection
	renderer   *render.MapRenderer
	canvas     *render.Canvas
	boundaries *geo.BoundaryLoader // nil when the shapefile is unavailable
	shown      []*geo.Boundary
	width      int
	height     int
}

// NewMapView creates a map view centered on the given point
func NewMapView(width, height int, center geo.Point, zoom float64, boundaries *geo.BoundaryLoader) *MapView {
	projection := geo.NewProjection(center, zoom, width, height, cellPxW, cellPxH)
	canvas := render.NewCanvas(width, height)
	renderer := render.NewMapRenderer(projection, canvas)

	return &MapView{
		projection: projection,
		renderer:   renderer,
		canvas:     canvas,
		boundaries: boundaries,
		width:      width,
		height:     height,
	}
}

// Camera returns the current pose (camera.MapHandle)
func (m *MapView) Camera() camera.ViewportState {
	return camera.ViewportState{
		Center: m.projection.Center(),
		Zoom:   m.projection.Zoom(),
	}
}

// MoveTo applies a pose synchronously (camera.MapHandle)
func (m *MapView) MoveTo(state camera.ViewportState) {
	m.projection.SetCamera(state.Center, state.Zoom)
}

// ScreenPosition converts a point to container pixels (camera.MapHandle)
func (m *MapView) ScreenPosition(p geo.Point) (x, y float64) {
	return m.projection.ProjectPx(p)
}

// ViewportSize returns the container size in pixels (camera.ViewportSizer)
func (m *MapView) ViewportSize() (w, h int) {
	return m.projection.SizePx()
}

// ShowBoundary lazily loads and displays the outline for a place id.
// Loading failure is cosmetic; the marker still renders.
func (m *MapView) ShowBoundary(placeID string) {
	if m.boundaries == nil {
		return
	}

	b, err := m.boundaries.Load(placeID)
	if err != nil {
		debug.Log("boundary load failed for %s: %v", placeID, err)
		return
	}
	if b == nil {
		return
	}

	for _, shown := range m.shown {
		if shown.PlaceID == placeID {
			return
		}
	}
	m.shown = append(m.shown, b)
}

// Render fills the canvas with the current frame. Blitting is separate so
// overlays (the info card) can draw on the canvas before it hits the screen.
func (m *MapView) Render(hoods []*hood.Neighborhood, selectedID string) {
	m.canvas.Clear()

	m.renderer.RenderBoundaries(m.shown)
	m.renderer.RenderNeighborhoods(hoods, selectedID)
}

// Blit copies the composed canvas to the screen
func (m *MapView) Blit(screen tcell.Screen) {
	m.canvas.Blit(screen, 0, 0)
}

// Canvas exposes the cell canvas for overlay drawing on top of the map
func (m *MapView) Canvas() *render.Canvas {
	return m.canvas
}

// Project converts a point to cell coordinates
func (m *MapView) Project(p geo.Point) geo.ScreenPoint {
	return m.projection.Project(p)
}

// ManualZoom steps the zoom by delta, clamped to slippy-map limits,
// keeping the current center
func (m *MapView) ManualZoom(delta float64) {
	zoom := m.projection.Zoom() + delta
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 18 {
		zoom = 18
	}
	m.projection.SetCamera(m.projection.Center(), zoom)
	debug.Log("manual zoom to %.1f", zoom)
}

// UpdateDimensions updates the view dimensions when the terminal is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.projection.UpdateDimensions(width, height)

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
}
