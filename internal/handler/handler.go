// Package handler turns pointer events into widget values.
//
// A handler is embedded by a widget (its Host) and fed the host's mouse,
// motion and scroll events in the host's local coordinates. Every entry
// point reports whether the event was consumed. Handlers are not safe for
// concurrent use; they run on the goroutine that owns the widget.
package handler

import (
	"errors"
	"math"

	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/logger"
)

// ErrInvalidRange is returned when a range is empty or inverted, or when a
// logarithmic scale is requested over a non-positive minimum.
var ErrInvalidRange = errors.New("invalid range")

// Host is the widget that owns a handler.
type Host interface {
	// Contains reports whether p, in local coordinates, hits the widget.
	Contains(p geom.Point) bool
	// Size returns the widget's width and height.
	Size() geom.Point
	// Repaint schedules a redraw.
	Repaint()
}

// Orientation is the axis a slider or knob responds to.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

const epsilon = 1e-7

func isEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func isZero(v float64) bool {
	return math.Abs(v) < epsilon
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(v, lo))
}

// dragDivisor is the number of pixels, or scroll notches times ten, needed
// to sweep the whole range. Ctrl selects fine adjustment.
func dragDivisor(mod event.Modifiers) float64 {
	if mod.Contain(event.ModCtrl) {
		return 2000
	}
	return 200
}

// notify runs a caller-supplied callback. A panic inside it is logged and
// discarded so that a faulty listener cannot take down the event loop.
func notify(where string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("callback panicked", "handler", where, "panic", r)
		}
	}()
	fn()
}
