package handler

import (
	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
)

// SliderState describes pointer interaction with a slider.
type SliderState uint8

const (
	SliderStateDefault  SliderState = 0x0
	SliderStateHover    SliderState = 0x1
	SliderStateDragging SliderState = 0x2

	SliderStateDraggingHover = SliderStateDragging | SliderStateHover
)

// SliderCallback receives slider drag and value notifications.
type SliderCallback interface {
	SliderDragStarted(w Host)
	SliderDragFinished(w Host)
	SliderValueChanged(w Host, value float64)
}

// SliderFuncs adapts plain functions to SliderCallback. Nil fields are
// skipped.
type SliderFuncs struct {
	DragStarted  func(w Host)
	DragFinished func(w Host)
	ValueChanged func(w Host, value float64)
}

func (f SliderFuncs) SliderDragStarted(w Host) {
	if f.DragStarted != nil {
		f.DragStarted(w)
	}
}

func (f SliderFuncs) SliderDragFinished(w Host) {
	if f.DragFinished != nil {
		f.DragFinished(w)
	}
}

func (f SliderFuncs) SliderValueChanged(w Host, value float64) {
	if f.ValueChanged != nil {
		f.ValueChanged(w, value)
	}
}

// Slider maps a pointer position inside its area to a value.
//
// The value is the raw value; with a log scale it is already scaled, and
// Normalized undoes the scaling. The slider is horizontal when its start
// and end positions share a Y coordinate, vertical otherwise.
type Slider struct {
	valueRange

	host     Host
	callback SliderCallback

	area     geom.Rect
	startPos geom.Point
	endPos   geom.Point
	inverted bool
	dragging bool
	hover    bool
}

// NewSlider returns a horizontal slider over [0, 1] with value 0.5 and an
// empty area.
func NewSlider(host Host) *Slider {
	return &Slider{
		valueRange: newValueRange(),
		host:       host,
	}
}

// CopyFrom copies other's configuration, value and callback into s,
// keeping s's host. Drag state is not copied.
func (s *Slider) CopyFrom(other *Slider) {
	s.valueRange = other.valueRange
	s.valueTmp = s.value
	s.callback = other.callback
	s.area = other.area
	s.startPos = other.startPos
	s.endPos = other.endPos
	s.inverted = other.inverted
	s.dragging = false
	s.hover = false
}

// Value returns the raw value.
func (s *Slider) Value() float64 {
	return s.value
}

// SetValue sets the value, clamped to the range. It returns false and does
// nothing if the value is unchanged or NaN.
func (s *Slider) SetValue(value float64, sendCallback bool) bool {
	if !s.set(value) {
		return false
	}
	return s.valueChanged(sendCallback)
}

// settleValue applies a value computed from pointer input, keeping the
// unquantized accumulator.
func (s *Slider) settleValue(value float64) bool {
	if !s.store(value) {
		return false
	}
	return s.valueChanged(true)
}

func (s *Slider) valueChanged(sendCallback bool) bool {
	s.host.Repaint()

	if sendCallback && s.callback != nil {
		v := s.value
		notify("slider", func() { s.callback.SliderValueChanged(s.host, v) })
	}
	return true
}

// Normalized returns the value as a 0-1 position, with the log scale undone.
func (s *Slider) Normalized() float64 {
	return s.normalized()
}

// Minimum returns the lower end of the range.
func (s *Slider) Minimum() float64 { return s.minimum }

// Maximum returns the upper end of the range.
func (s *Slider) Maximum() float64 { return s.maximum }

// SetDefault sets the value restored by Shift+click.
func (s *Slider) SetDefault(def float64) {
	s.setDefault(def)
}

// SetArea sets the hit area in local coordinates.
func (s *Slider) SetArea(x, y, w, h float64) {
	s.area = geom.XYWH(x, y, w, h)
}

// Area returns the hit area.
func (s *Slider) Area() geom.Rect {
	return s.area
}

func (s *Slider) SetInverted(inverted bool) {
	if s.inverted == inverted {
		return
	}
	s.inverted = inverted
	s.host.Repaint()
}

func (s *Slider) Inverted() bool {
	return s.inverted
}

// SetRange sets the range, clamping the current value into it.
func (s *Slider) SetRange(min, max float64) error {
	changed, err := s.setRange(min, max)
	if err != nil {
		return err
	}
	if changed {
		s.host.Repaint()
	}
	return nil
}

// SetStep sets the quantization step. Zero disables quantization.
func (s *Slider) SetStep(step float64) {
	s.step = step
}

// SetUsingLogScale enables or disables the logarithmic mapping.
func (s *Slider) SetUsingLogScale(on bool) error {
	return s.setUsingLog(on)
}

func (s *Slider) SetStartPos(x, y float64) {
	s.startPos = geom.Pt(x, y)
}

func (s *Slider) SetEndPos(x, y float64) {
	s.endPos = geom.Pt(x, y)
}

// Orientation reports the axis derived from the start and end positions.
func (s *Slider) Orientation() Orientation {
	if s.startPos.Y == s.endPos.Y {
		return Horizontal
	}
	return Vertical
}

func (s *Slider) State() SliderState {
	var st SliderState
	if s.hover {
		st |= SliderStateHover
	}
	if s.dragging {
		st |= SliderStateDragging
	}
	return st
}

func (s *Slider) SetCallback(cb SliderCallback) {
	s.callback = cb
}

// valueAt maps p onto the range along the slider's axis. Positions outside
// the area clamp to the nearest end.
func (s *Slider) valueAt(p geom.Point) float64 {
	var portion float64
	if s.Orientation() == Horizontal {
		if s.area.Dx() <= 0 {
			return s.value
		}
		portion = (p.X - s.area.X()) / s.area.Dx()
	} else {
		if s.area.Dy() <= 0 {
			return s.value
		}
		portion = (p.Y - s.area.Y()) / s.area.Dy()
	}
	return s.atPortion(portion, s.inverted)
}

// Mouse starts a drag on a primary press inside the area and ends it on
// release. Shift+press restores the default value when one is set.
func (s *Slider) Mouse(ev *event.Mouse) bool {
	if ev.Button != event.ButtonLeft {
		return false
	}

	if ev.Press {
		if !s.area.Contains(ev.Pos) {
			return false
		}

		if ev.Mod.Contain(event.ModShift) && s.usingDefault {
			s.SetValue(s.valueDef, true)
			return true
		}

		value := s.valueAt(ev.Pos)
		s.dragging = true

		if s.callback != nil {
			notify("slider", func() { s.callback.SliderDragStarted(s.host) })
		}

		if !s.settleValue(value) {
			s.host.Repaint()
		}
		return true
	}

	if s.dragging {
		if s.callback != nil {
			notify("slider", func() { s.callback.SliderDragFinished(s.host) })
		}
		s.dragging = false
		s.host.Repaint()
		return true
	}
	return false
}

// Motion tracks hover and, while dragging, follows the pointer.
func (s *Slider) Motion(ev *event.Motion) bool {
	if hover := s.area.Contains(ev.Pos); hover != s.hover {
		s.hover = hover
		s.host.Repaint()
	}

	if !s.dragging {
		return false
	}

	s.settleValue(s.valueAt(ev.Pos))
	return true
}

// Scroll moves the value by a tenth of the drag sensitivity per notch while
// the pointer is over the area.
func (s *Slider) Scroll(ev *event.Scroll) bool {
	if !s.area.Contains(ev.Pos) {
		return false
	}

	dir := ev.VerticalSign()
	if dir == 0 {
		return false
	}

	s.settleValue(s.nudge(10*dir/dragDivisor(ev.Mod)))
	return true
}
