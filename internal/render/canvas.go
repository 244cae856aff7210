package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas represents a 2D grid of cells for ASCII rendering
type Canvas struct {
	width  int
	height int
	cells  []Cell // row-major, len = width*height
}

// Cell represents a single character cell with style
type Cell struct {
	Char  rune
	Style tcell.Style
}

var blank = Cell{Char: ' ', Style: tcell.StyleDefault}

// NewCanvas creates a new blank canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c.Clear()
	return c
}

// Set sets the character and style at the given position
// Coordinates are 0-indexed with (0,0) at top-left
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y*c.width+x] = Cell{Char: char, Style: style}
	}
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.cells[y*c.width+x]
	}
	return blank
}

// Clear resets the entire canvas to spaces with default style
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// DrawText draws a string at the given position
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	for i, char := range text {
		c.Set(x+i, y, char, style)
	}
}

// DrawTextClipped draws a string truncated to maxWidth cells
func (c *Canvas) DrawTextClipped(x, y int, text string, maxWidth int, style tcell.Style) {
	i := 0
	for _, char := range text {
		if i >= maxWidth {
			break
		}
		c.Set(x+i, y, char, style)
		i++
	}
}

// DrawBox draws a box outline using box-drawing characters
func (c *Canvas) DrawBox(x, y, width, height int, style tcell.Style) {
	if width < 2 || height < 2 {
		return
	}

	c.Set(x, y, '┌', style)
	c.Set(x+width-1, y, '┐', style)
	c.Set(x, y+height-1, '└', style)
	c.Set(x+width-1, y+height-1, '┘', style)

	for i := 1; i < width-1; i++ {
		c.Set(x+i, y, '─', style)
		c.Set(x+i, y+height-1, '─', style)
	}

	for i := 1; i < height-1; i++ {
		c.Set(x, y+i, '│', style)
		c.Set(x+width-1, y+i, '│', style)
	}
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, char rune, style tcell.Style) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.Set(x+dx, y+dy, char, style)
		}
	}
}

// DrawLine draws a line between two cells using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		c.Set(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			screen.SetContent(offsetX+x, offsetY+y, cell.Char, nil, cell.Style)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
