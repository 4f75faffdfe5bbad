package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/handler"
	"github.com/bnema/knobkit/internal/widget"
)

// grid maps panel pixels onto terminal cells.
type grid struct {
	cellW, cellH float64
}

// cells returns the cell span covered by r: first column and row, and the
// number of columns and rows, each at least one.
func (g grid) cells(r geom.Rect) (col, row, cols, rows int) {
	col = int(math.Floor(r.Min.X / g.cellW))
	row = int(math.Floor(r.Min.Y / g.cellH))
	cols = int(math.Ceil(r.Max.X/g.cellW)) - col
	rows = int(math.Ceil(r.Max.Y/g.cellH)) - row
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return col, row, cols, rows
}

// center returns the panel position at the middle of cell (col, row).
func (g grid) center(col, row int) geom.Point {
	return geom.Pt((float64(col)+0.5)*g.cellW, (float64(row)+0.5)*g.cellH)
}

func (g grid) size(panel geom.Point) (cols, rows int) {
	return int(math.Ceil(panel.X / g.cellW)), int(math.Ceil(panel.Y / g.cellH))
}

// formatValue keeps values short enough to sit next to a label.
func formatValue(v float64) string {
	switch a := math.Abs(v); {
	case a >= 100:
		return fmt.Sprintf("%.0f", v)
	case a >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// renderPanel draws every widget of p onto a fresh canvas.
func renderPanel(p *widget.Panel, g grid) *canvas {
	cols, rows := g.size(p.Size())
	c := newCanvas(cols, rows)
	for _, w := range p.Widgets() {
		renderWidget(c, g, w)
	}
	return c
}

func renderWidget(c *canvas, g grid, w widget.Widget) {
	col, row, cols, rows := g.cells(w.Bounds())

	switch w := w.(type) {
	case *widget.Slider:
		c.text(col, row-1, w.Name()+" "+formatValue(w.Value()), styleLabel)
		renderSlider(c, col, row, cols, rows, w)

	case *widget.Knob:
		c.text(col, row-1, w.Name()+" "+formatValue(w.Value()), styleLabel)
		renderKnob(c, col, row, cols, w)

	case *widget.Spinner:
		c.text(col, row-1, w.Name(), styleLabel)
		renderSpinner(c, col, row, cols, w)

	case *widget.Switch:
		c.text(col, row-1, w.Name(), styleLabel)
		if w.IsDown() {
			c.text(col, row, "[ ON ]", styleActive)
		} else {
			c.text(col, row, "[ OFF]", styleTrack)
		}

	case *widget.Radio:
		c.text(col, row-1, w.Name(), styleLabel)
		renderRadio(c, g, col, row, w)

	case *widget.Button:
		renderButton(c, col, row, cols, w)
	}
}

func renderSlider(c *canvas, col, row, cols, rows int, w *widget.Slider) {
	style := styleThumb
	if w.State()&handler.SliderStateDragging != 0 {
		style = styleActive
	} else if w.State()&handler.SliderStateHover != 0 {
		style = styleHover
	}

	n := w.Normalized()
	if w.Inverted() {
		n = 1 - n
	}

	if w.Orientation() == handler.Horizontal {
		thumb := int(math.Round(n * float64(cols-1)))
		for i := 0; i < cols; i++ {
			switch {
			case i == thumb:
				c.set(col+i, row, '●', style)
			case i < thumb:
				c.set(col+i, row, '━', styleFill)
			default:
				c.set(col+i, row, '─', styleTrack)
			}
		}
		return
	}

	thumb := int(math.Round(n * float64(rows-1)))
	for i := 0; i < rows; i++ {
		switch {
		case i == thumb:
			c.set(col, row+i, '●', style)
		case i < thumb:
			c.set(col, row+i, '┃', styleFill)
		default:
			c.set(col, row+i, '│', styleTrack)
		}
	}
}

func renderKnob(c *canvas, col, row, cols int, w *widget.Knob) {
	style := styleFill
	if w.Dragging() {
		style = styleActive
	}

	inner := cols - 2
	if inner < 1 {
		inner = 1
	}
	filled := int(math.Round(w.Normalized() * float64(inner)))

	c.set(col, row, '(', styleLabel)
	for i := 0; i < inner; i++ {
		if i < filled {
			c.set(col+1+i, row, '■', style)
		} else {
			c.set(col+1+i, row, '□', styleTrack)
		}
	}
	c.set(col+1+inner, row, ')', styleLabel)
}

func renderSpinner(c *canvas, col, row, cols int, w *widget.Spinner) {
	c.text(col, row, "[-]", styleFill)
	c.text(col+cols-3, row, "[+]", styleFill)

	value := formatValue(w.Value())
	start := col + (cols-len(value))/2
	c.text(start, row, value, styleValue)
}

func renderRadio(c *canvas, g grid, col, row int, w *widget.Radio) {
	selected, ok := w.Selected()
	for i, o := range w.Options() {
		_, r, _, _ := g.cells(o.Hitbox)
		if ok && i == selected {
			c.text(col, row+r, "(•) "+o.Name, styleActive)
		} else {
			c.text(col, row+r, "( ) "+o.Name, styleTrack)
		}
	}
}

func renderButton(c *canvas, col, row, cols int, w *widget.Button) {
	style := styleLabel
	switch {
	case w.State()&handler.ButtonStateActive != 0:
		style = stylePressed
	case w.IsChecked():
		style = styleActive
	case w.State()&handler.ButtonStateHover != 0:
		style = styleHover
	}

	label := "[" + w.Name() + "]"
	if pad := cols - len(label); pad > 0 {
		label = "[" + strings.Repeat(" ", pad/2) + w.Name() + strings.Repeat(" ", pad-pad/2) + "]"
	}
	c.text(col, row, label, style)
}
