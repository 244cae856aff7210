package render

import (
	"github.com/gdamore/tcell/v2"
)

// Style definitions for map elements
var (
	StyleBoundary     = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	StyleMarker       = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	StyleSelected     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true).Reverse(true)
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleCardBorder   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	StyleCardText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleCardTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	StyleCardTail     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleStatusBar    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

const (
	// MarkerChar is the glyph drawn at a neighborhood anchor
	MarkerChar = '▼'
	// BoundaryChar traces neighborhood outlines
	BoundaryChar = '·'
)
