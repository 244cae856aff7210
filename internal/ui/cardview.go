package ui

import (
	"fmt"
	"strings"

	"hoodatlas/internal/hood"
	"hoodatlas/internal/render"
)

const (
	cardWidthCells = 32
	tailCells      = 1
)

// CardView is the info card that opens above a selected marker. Its height
// depends on the record's content, so the height the camera engine estimated
// before the flight rarely matches exactly; the view doubles as the
// camera.OverlayMeasurer the correction loop reads the real height from.
type CardView struct {
	current  *hood.Neighborhood
	lines    []string
	visible  bool
	rendered bool
}

// NewCardView creates an empty, hidden card view
func NewCardView() *CardView {
	return &CardView{}
}

// Show opens the card for a neighborhood. The card is not measurable until
// it has actually been drawn once, mirroring how DOM overlays report no
// height on the frame they are inserted.
func (c *CardView) Show(n *hood.Neighborhood) {
	c.current = n
	c.lines = buildCardLines(n)
	c.visible = true
	c.rendered = false
}

// Hide closes the card
func (c *CardView) Hide() {
	c.current = nil
	c.lines = nil
	c.visible = false
	c.rendered = false
}

// Visible reports whether a card is open
func (c *CardView) Visible() bool {
	return c.visible
}

// Current returns the neighborhood the open card belongs to
func (c *CardView) Current() *hood.Neighborhood {
	return c.current
}

// OverlayHeight returns the rendered card height in pixels, or ok=false
// before the first draw (camera.OverlayMeasurer)
func (c *CardView) OverlayHeight() (int, bool) {
	if !c.visible || !c.rendered {
		return 0, false
	}
	// Border rows are part of the card box
	heightCells := len(c.lines) + 2
	return heightCells * cellPxH, true
}

// Draw renders the card above the marker cell, with a tail connecting the
// card bottom to the marker
func (c *CardView) Draw(canvas *render.Canvas, markerX, markerY int) {
	if !c.visible || c.current == nil {
		return
	}

	heightCells := len(c.lines) + 2
	top := markerY - tailCells - heightCells
	left := markerX - cardWidthCells/2
	if left < 0 {
		left = 0
	}
	if left+cardWidthCells > canvas.Width() {
		left = canvas.Width() - cardWidthCells
	}

	canvas.FillRect(left, top, cardWidthCells, heightCells, ' ', render.StyleCardText)
	canvas.DrawBox(left, top, cardWidthCells, heightCells, render.StyleCardBorder)

	for i, line := range c.lines {
		style := render.StyleCardText
		if i == 0 {
			style = render.StyleCardTitle
		}
		canvas.DrawTextClipped(left+2, top+1+i, line, cardWidthCells-4, style)
	}

	// Tail from card bottom down to the marker
	canvas.Set(markerX, markerY-1, '┬', render.StyleCardTail)

	c.rendered = true
}

// buildCardLines formats the card body; line count varies with content,
// which is exactly what makes the measured height differ from the estimate
func buildCardLines(n *hood.Neighborhood) []string {
	lines := []string{n.Name}

	if n.City != "" || n.Region != "" {
		lines = append(lines, strings.Trim(fmt.Sprintf("%s, %s", n.City, n.Region), ", "))
	}
	if n.MedianPrice > 0 {
		lines = append(lines, fmt.Sprintf("Median price  $%d", n.MedianPrice))
	}
	if n.Homes > 0 {
		lines = append(lines, fmt.Sprintf("Active homes  %d", n.Homes))
	}
	if len(n.Tags) > 0 {
		lines = append(lines, strings.Join(n.Tags, " · "))
	}
	lines = append(lines, fmt.Sprintf("%.4f, %.4f", n.Location.Lat, n.Location.Lng))

	return lines
}
