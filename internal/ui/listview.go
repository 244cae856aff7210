package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"hoodatlas/internal/hood"
	"hoodatlas/internal/render"
)

// ListView displays a scrollable list of neighborhood results
type ListView struct {
	hoods         []*hood.Neighborhood
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	x, y          int
	width, height int
}

// NewListView creates a new results list view
func NewListView(x, y, width, height int) *ListView {
	maxVisible := height - 2 // Account for border
	if maxVisible < 1 {
		maxVisible = 1
	}

	return &ListView{
		hoods:      make([]*hood.Neighborhood, 0),
		maxVisible: maxVisible,
		x:          x,
		y:          y,
		width:      width,
		height:     height,
	}
}

// Update refreshes the result set, keeping the selection in range
func (l *ListView) Update(hoods []*hood.Neighborhood) {
	l.hoods = hoods

	if l.selectedIndex >= len(l.hoods) {
		l.selectedIndex = len(l.hoods) - 1
	}
	if l.selectedIndex < 0 {
		l.selectedIndex = 0
	}

	l.adjustScroll()
}

// SelectNext moves selection down
func (l *ListView) SelectNext() {
	if l.selectedIndex < len(l.hoods)-1 {
		l.selectedIndex++
		l.adjustScroll()
	}
}

// SelectPrev moves selection up
func (l *ListView) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.adjustScroll()
	}
}

// adjustScroll adjusts scroll offset to keep selected item visible
func (l *ListView) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}

	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// GetSelected returns the currently selected neighborhood
func (l *ListView) GetSelected() *hood.Neighborhood {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.hoods) {
		return l.hoods[l.selectedIndex]
	}
	return nil
}

// Draw renders the list view to the screen
func (l *ListView) Draw(screen tcell.Screen) {
	// Clear the entire panel area first (make it opaque)
	defaultStyle := tcell.StyleDefault
	for row := l.y + 1; row < l.y+l.height-1; row++ {
		for col := l.x + 1; col < l.x+l.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, defaultStyle)
		}
	}

	l.drawBorder(screen)

	title := fmt.Sprintf("Results (%d)", len(l.hoods))
	titleX := l.x + (l.width-len(title))/2
	for i, ch := range title {
		screen.SetContent(titleX+i, l.y, ch, nil, render.StyleLabel)
	}

	visibleCount := min(l.maxVisible, len(l.hoods)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i
		if idx >= len(l.hoods) {
			break
		}

		text := []rune(l.hoods[idx].ListDisplay())

		style := render.StyleListItem
		if idx == l.selectedIndex {
			style = render.StyleListSelected
		}

		x := l.x + 1
		y := l.y + i + 1
		for j := 0; j < min(len(text), l.width-2); j++ {
			screen.SetContent(x+j, y, text[j], nil, style)
		}

		for j := len(text); j < l.width-2; j++ {
			screen.SetContent(x+j, y, ' ', nil, style)
		}
	}

	if len(l.hoods) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StyleLabel)
	}
}

// drawBorder draws the list border
func (l *ListView) drawBorder(screen tcell.Screen) {
	style := render.StyleLabel

	screen.SetContent(l.x, l.y, '┌', nil, style)
	screen.SetContent(l.x+l.width-1, l.y, '┐', nil, style)
	screen.SetContent(l.x, l.y+l.height-1, '└', nil, style)
	screen.SetContent(l.x+l.width-1, l.y+l.height-1, '┘', nil, style)

	for i := 1; i < l.width-1; i++ {
		screen.SetContent(l.x+i, l.y, '─', nil, style)
		screen.SetContent(l.x+i, l.y+l.height-1, '─', nil, style)
	}

	for i := 1; i < l.height-1; i++ {
		screen.SetContent(l.x, l.y+i, '│', nil, style)
		screen.SetContent(l.x+l.width-1, l.y+i, '│', nil, style)
	}
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = height - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.adjustScroll()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
