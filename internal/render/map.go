package render

import (
	"github.com/gdamore/tcell/v2"

	"hoodatlas/internal/debug"
	"hoodatlas/internal/geo"
	"hoodatlas/internal/hood"
)

// MapRenderer renders boundaries and neighborhood markers to a canvas
type MapRenderer struct {
	projection *geo.Projection
	canvas     *Canvas
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(projection *geo.Projection, canvas *Canvas) *MapRenderer {
	return &MapRenderer{
		projection: projection,
		canvas:     canvas,
	}
}

// RenderBoundaries traces the outline polygons that are visible on screen
func (m *MapRenderer) RenderBoundaries(boundaries []*geo.Boundary) {
	bounds := m.projection.VisibleBounds()

	drawn := 0
	for _, b := range boundaries {
		if b == nil || !b.Visible(bounds) {
			continue
		}
		m.renderBoundary(b)
		drawn++
	}

	if debug.Enabled() && drawn > 0 {
		debug.Log("render: %d boundaries visible", drawn)
	}
}

func (m *MapRenderer) renderBoundary(b *geo.Boundary) {
	for i := 0; i < len(b.Points)-1; i++ {
		p1 := m.projection.Project(b.Points[i])
		p2 := m.projection.Project(b.Points[i+1])
		m.canvas.DrawLine(p1.X, p1.Y, p2.X, p2.Y, BoundaryChar, StyleBoundary)
	}
}

// RenderNeighborhoods draws markers, with labels where room allows.
// The selected neighborhood is drawn last so its marker wins overlaps.
func (m *MapRenderer) RenderNeighborhoods(hoods []*hood.Neighborhood, selectedID string) {
	var selected *hood.Neighborhood

	for _, n := range hoods {
		if n.ID == selectedID {
			selected = n
			continue
		}
		m.renderMarker(n, StyleMarker)
	}

	if selected != nil {
		m.renderMarker(selected, StyleSelected)
	}
}

func (m *MapRenderer) renderMarker(n *hood.Neighborhood, style tcell.Style) {
	if !m.projection.IsInBounds(n.Location) {
		return
	}

	sp := m.projection.Project(n.Location)
	m.canvas.Set(sp.X, sp.Y, MarkerChar, style)

	// Label to the right of the marker when it fits
	if n.Name != "" && sp.X+1+len(n.Name) < m.canvas.Width() {
		m.canvas.DrawText(sp.X+2, sp.Y, n.Name, StyleLabel)
	}
}

// UpdateProjection updates the renderer's projection
func (m *MapRenderer) UpdateProjection(projection *geo.Projection) {
	m.projection = projection
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}
