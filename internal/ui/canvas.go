package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellStyle indexes canvasStyles.
type cellStyle uint8

const (
	styleNone cellStyle = iota
	styleLabel
	styleValue
	styleTrack
	styleFill
	styleThumb
	styleHover
	styleActive
	stylePressed
)

var canvasStyles = [...]lipgloss.Style{
	styleNone:    lipgloss.NewStyle(),
	styleLabel:   LabelStyle,
	styleValue:   ValueStyle,
	styleTrack:   TrackStyle,
	styleFill:    FillStyle,
	styleThumb:   ThumbStyle,
	styleHover:   HoverStyle,
	styleActive:  ActiveStyle,
	stylePressed: PressedStyle,
}

type cell struct {
	r     rune
	style cellStyle
}

// canvas is a fixed grid of styled terminal cells. Writes outside the grid
// are dropped.
type canvas struct {
	width, height int
	cells         []cell
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) set(col, row int, r rune, style cellStyle) {
	if col < 0 || row < 0 || col >= c.width || row >= c.height {
		return
	}
	c.cells[row*c.width+col] = cell{r: r, style: style}
}

// text writes s starting at col, one rune per cell.
func (c *canvas) text(col, row int, s string, style cellStyle) {
	for _, r := range s {
		c.set(col, row, r, style)
		col++
	}
}

func (c *canvas) at(col, row int) cell {
	return c.cells[row*c.width+col]
}

// String renders the grid, one styled run per stretch of equal style.
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder

	for row := 0; row < c.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		style := styleNone
		run.Reset()

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style == styleNone {
				b.WriteString(run.String())
			} else {
				b.WriteString(canvasStyles[style].Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < c.width; col++ {
			cl := c.at(col, row)
			if cl.style != style {
				flush()
				style = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}
