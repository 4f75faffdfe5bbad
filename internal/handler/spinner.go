package handler

import (
	"fmt"
	"math"

	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
)

// SpinnerCallback is notified when a spinner's value changes.
type SpinnerCallback interface {
	SpinnerValueChanged(w Host, value float64)
}

// SpinnerFunc adapts a function to SpinnerCallback.
type SpinnerFunc func(w Host, value float64)

func (f SpinnerFunc) SpinnerValueChanged(w Host, value float64) { f(w, value) }

// Spinner steps its value up or down from increment and decrement areas
// and from the scroll wheel.
type Spinner struct {
	host     Host
	callback SpinnerCallback

	minimum float64
	maximum float64
	step    float64
	value   float64

	incArea geom.Rect
	decArea geom.Rect
}

// NewSpinner returns a spinner over [0, 1] with value 0.5 and a zero step.
func NewSpinner(host Host) *Spinner {
	return &Spinner{
		host:    host,
		minimum: 0,
		maximum: 1,
		value:   0.5,
	}
}

// CopyFrom copies other's configuration, value and callback into s,
// keeping s's host.
func (s *Spinner) CopyFrom(other *Spinner) {
	s.callback = other.callback
	s.minimum = other.minimum
	s.maximum = other.maximum
	s.step = other.step
	s.value = other.value
	s.incArea = other.incArea
	s.decArea = other.decArea
}

func (s *Spinner) Value() float64 {
	return s.value
}

// SetValue sets the value, clamped to the range. It returns false and does
// nothing if the value is unchanged or NaN.
func (s *Spinner) SetValue(value float64, sendCallback bool) bool {
	if math.IsNaN(value) {
		return false
	}
	value = clamp(value, s.minimum, s.maximum)
	if isEqual(s.value, value) {
		return false
	}
	s.value = value
	s.host.Repaint()

	if sendCallback && s.callback != nil {
		notify("spinner", func() { s.callback.SpinnerValueChanged(s.host, value) })
	}
	return true
}

func (s *Spinner) Minimum() float64 { return s.minimum }

func (s *Spinner) Maximum() float64 { return s.maximum }

func (s *Spinner) SetIncrementArea(x, y, w, h float64) {
	s.incArea = geom.XYWH(x, y, w, h)
}

func (s *Spinner) SetDecrementArea(x, y, w, h float64) {
	s.decArea = geom.XYWH(x, y, w, h)
}

func (s *Spinner) IncrementArea() geom.Rect {
	return s.incArea
}

func (s *Spinner) DecrementArea() geom.Rect {
	return s.decArea
}

// SetRange sets the range, clamping the current value into it.
func (s *Spinner) SetRange(min, max float64) error {
	if !(max > min) {
		return fmt.Errorf("%w: maximum %g must exceed minimum %g", ErrInvalidRange, max, min)
	}
	s.minimum, s.maximum = min, max

	if v := clamp(s.value, min, max); !isEqual(v, s.value) {
		s.value = v
		s.host.Repaint()
	}
	return nil
}

func (s *Spinner) SetStep(step float64) {
	s.step = step
}

func (s *Spinner) SetCallback(cb SpinnerCallback) {
	s.callback = cb
}

// Mouse steps the value on a primary press inside either area. Overlapping
// areas cancel out.
func (s *Spinner) Mouse(ev *event.Mouse) bool {
	if ev.Button != event.ButtonLeft || !ev.Press {
		return false
	}

	inc := s.incArea.Contains(ev.Pos)
	dec := s.decArea.Contains(ev.Pos)
	if !inc && !dec {
		return false
	}

	value := s.value
	if inc {
		value += s.step
	}
	if dec {
		value -= s.step
	}
	s.SetValue(value, true)
	return true
}

// Motion is not used by spinners.
func (s *Spinner) Motion(ev *event.Motion) bool {
	return false
}

func (s *Spinner) Scroll(ev *event.Scroll) bool {
	if !s.host.Contains(ev.Pos) {
		return false
	}

	s.SetValue(s.value+ev.VerticalSign()*s.step, true)
	return true
}
