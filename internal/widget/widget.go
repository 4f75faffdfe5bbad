// Package widget hosts the input handlers inside concrete widgets and lays
// them out on a panel.
//
// A widget embeds a Base, which implements handler.Host in the widget's
// local coordinates, and exactly one handler. The panel translates pointer
// events from panel coordinates before handing them to a widget.
package widget

import (
	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/handler"
)

// ChangeFunc is notified with the widget name and new value whenever a
// widget's value changes through its handler callback.
type ChangeFunc func(name string, value float64)

// Widget is a handler bound to a named rectangle of the panel.
type Widget interface {
	handler.Host

	Name() string
	Kind() string
	// Bounds returns the widget rectangle in panel coordinates.
	Bounds() geom.Rect

	Value() float64
	SetValue(value float64, sendCallback bool) bool

	Mouse(ev *event.Mouse) bool
	Motion(ev *event.Motion) bool
	Scroll(ev *event.Scroll) bool

	// TakeDirty reports whether the widget asked for a repaint since the
	// last call, and clears the request.
	TakeDirty() bool
	SetOnChange(fn ChangeFunc)
}

// Base carries the parts every widget shares.
type Base struct {
	name     string
	kind     string
	bounds   geom.Rect
	dirty    bool
	onChange ChangeFunc
}

func newBase(name, kind string, bounds geom.Rect) Base {
	return Base{name: name, kind: kind, bounds: bounds, dirty: true}
}

func (b *Base) Name() string { return b.name }

func (b *Base) Kind() string { return b.kind }

func (b *Base) Bounds() geom.Rect { return b.bounds }

// Contains reports whether p, relative to the widget's top-left corner,
// lies inside the widget.
func (b *Base) Contains(p geom.Point) bool {
	return geom.Rect{Max: b.bounds.Size()}.Contains(p)
}

func (b *Base) Size() geom.Point { return b.bounds.Size() }

func (b *Base) Repaint() { b.dirty = true }

func (b *Base) TakeDirty() bool {
	d := b.dirty
	b.dirty = false
	return d
}

func (b *Base) SetOnChange(fn ChangeFunc) { b.onChange = fn }

func (b *Base) changed(value float64) {
	if b.onChange != nil {
		b.onChange(b.name, value)
	}
}

func boolValue(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
