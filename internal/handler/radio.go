package handler

import (
	"fmt"
	"math"

	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
)

// RadioCallback is notified when a radio group's value changes.
type RadioCallback interface {
	RadioValueChanged(w Host, value float64)
}

// RadioFunc adapts a function to RadioCallback.
type RadioFunc func(w Host, value float64)

func (f RadioFunc) RadioValueChanged(w Host, value float64) { f(w, value) }

// Option is one choice of a radio group.
type Option struct {
	Name   string
	Value  float64
	Hitbox geom.Rect
}

// Radio selects one of several options by clicking its row.
type Radio struct {
	host     Host
	callback RadioCallback

	minimum float64
	maximum float64
	value   float64
	options []Option
}

// NewRadio returns an empty radio group over [0, 1] with value 0.
func NewRadio(host Host) *Radio {
	return &Radio{
		host:    host,
		minimum: 0,
		maximum: 1,
	}
}

// CopyFrom copies other's options, value and callback into r, keeping r's
// host. Hitboxes are recomputed for r's host.
func (r *Radio) CopyFrom(other *Radio) {
	r.callback = other.callback
	r.minimum = other.minimum
	r.maximum = other.maximum
	r.value = other.value
	r.options = append([]Option(nil), other.options...)
	r.InitHitboxes()
}

func (r *Radio) Value() float64 {
	return r.value
}

// SetValue sets the value, clamped to the range. It returns false and does
// nothing if the value is unchanged or NaN.
func (r *Radio) SetValue(value float64, sendCallback bool) bool {
	if math.IsNaN(value) {
		return false
	}
	value = clamp(value, r.minimum, r.maximum)
	if isEqual(r.value, value) {
		return false
	}
	r.value = value
	r.host.Repaint()

	if sendCallback && r.callback != nil {
		notify("radio", func() { r.callback.RadioValueChanged(r.host, value) })
	}
	return true
}

// SetRange sets the range, clamping the current value into it.
func (r *Radio) SetRange(min, max float64) error {
	if !(max > min) {
		return fmt.Errorf("%w: maximum %g must exceed minimum %g", ErrInvalidRange, max, min)
	}
	r.minimum, r.maximum = min, max
	if v := clamp(r.value, min, max); !isEqual(v, r.value) {
		r.value = v
		r.host.Repaint()
	}
	return nil
}

// AddOption appends an option, widening the range to include its value,
// and recomputes the hitboxes.
func (r *Radio) AddOption(name string, value float64) {
	if value < r.minimum {
		r.minimum = value
	}
	if value > r.maximum {
		r.maximum = value
	}
	r.options = append(r.options, Option{Name: name, Value: value})
	r.InitHitboxes()
}

// InitHitboxes lays the options out as equal-height rows spanning the
// host's width. Call it after the host is resized.
func (r *Radio) InitHitboxes() {
	if len(r.options) == 0 {
		return
	}

	size := r.host.Size()
	h := size.Y / float64(len(r.options))
	for i := range r.options {
		r.options[i].Hitbox = geom.XYWH(0, float64(i)*h, size.X, h)
	}
}

// Hitboxes returns a copy of the option hitboxes in option order.
func (r *Radio) Hitboxes() []geom.Rect {
	boxes := make([]geom.Rect, 0, len(r.options))
	for _, o := range r.options {
		boxes = append(boxes, o.Hitbox)
	}
	return boxes
}

// Options returns a copy of the options.
func (r *Radio) Options() []Option {
	return append([]Option(nil), r.options...)
}

// Selected returns the index of the option matching the current value.
func (r *Radio) Selected() (int, bool) {
	for i, o := range r.options {
		if isEqual(o.Value, r.value) {
			return i, true
		}
	}
	return -1, false
}

func (r *Radio) SetCallback(cb RadioCallback) {
	r.callback = cb
}

// Mouse selects the first option whose hitbox contains a primary press.
func (r *Radio) Mouse(ev *event.Mouse) bool {
	if ev.Button != event.ButtonLeft || !ev.Press || !r.host.Contains(ev.Pos) {
		return false
	}

	for _, o := range r.options {
		if o.Hitbox.Contains(ev.Pos) {
			r.SetValue(o.Value, true)
			return true
		}
	}
	return false
}
