package handler

import (
	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
)

// KnobCallback receives knob drag and value notifications.
type KnobCallback interface {
	KnobDragStarted(w Host)
	KnobDragFinished(w Host)
	KnobValueChanged(w Host, value float64)
}

// KnobFuncs adapts plain functions to KnobCallback. Nil fields are skipped.
type KnobFuncs struct {
	DragStarted  func(w Host)
	DragFinished func(w Host)
	ValueChanged func(w Host, value float64)
}

func (f KnobFuncs) KnobDragStarted(w Host) {
	if f.DragStarted != nil {
		f.DragStarted(w)
	}
}

func (f KnobFuncs) KnobDragFinished(w Host) {
	if f.DragFinished != nil {
		f.DragFinished(w)
	}
}

func (f KnobFuncs) KnobValueChanged(w Host, value float64) {
	if f.ValueChanged != nil {
		f.ValueChanged(w, value)
	}
}

// Knob is a relative-drag control: the value follows pointer movement
// along one axis rather than the absolute pointer position.
type Knob struct {
	valueRange

	host        Host
	callback    KnobCallback
	orientation Orientation
	dragging    bool
	last        geom.Point
}

// NewKnob returns a vertical knob over [0, 1] with value 0.5.
func NewKnob(host Host) *Knob {
	return &Knob{
		valueRange:  newValueRange(),
		host:        host,
		orientation: Vertical,
	}
}

// CopyFrom copies other's configuration, value and callback into k,
// keeping k's host.
func (k *Knob) CopyFrom(other *Knob) {
	k.valueRange = other.valueRange
	k.valueTmp = k.value
	k.callback = other.callback
	k.orientation = other.orientation
	k.dragging = false
}

func (k *Knob) Value() float64 {
	return k.value
}

// SetValue sets the value, clamped to the range. It returns false and does
// nothing if the value is unchanged or NaN.
func (k *Knob) SetValue(value float64, sendCallback bool) bool {
	if !k.set(value) {
		return false
	}
	return k.valueChanged(sendCallback)
}

// settleValue applies a value computed from pointer input, keeping the
// unquantized accumulator.
func (k *Knob) settleValue(value float64) bool {
	if !k.store(value) {
		return false
	}
	return k.valueChanged(true)
}

func (k *Knob) valueChanged(sendCallback bool) bool {
	k.host.Repaint()

	if sendCallback && k.callback != nil {
		v := k.value
		notify("knob", func() { k.callback.KnobValueChanged(k.host, v) })
	}
	return true
}

func (k *Knob) Normalized() float64 {
	return k.normalized()
}

func (k *Knob) Minimum() float64 { return k.minimum }

func (k *Knob) Maximum() float64 { return k.maximum }

func (k *Knob) SetDefault(def float64) {
	k.setDefault(def)
}

func (k *Knob) SetRange(min, max float64) error {
	changed, err := k.setRange(min, max)
	if err != nil {
		return err
	}
	if changed {
		k.host.Repaint()
	}
	return nil
}

func (k *Knob) SetStep(step float64) {
	k.step = step
}

func (k *Knob) SetUsingLogScale(on bool) error {
	return k.setUsingLog(on)
}

func (k *Knob) SetOrientation(o Orientation) {
	if k.orientation == o {
		return
	}
	k.orientation = o
	k.host.Repaint()
}

func (k *Knob) Orientation() Orientation {
	return k.orientation
}

// Dragging reports whether a drag is in progress.
func (k *Knob) Dragging() bool {
	return k.dragging
}

func (k *Knob) SetCallback(cb KnobCallback) {
	k.callback = cb
}

func (k *Knob) Mouse(ev *event.Mouse) bool {
	if ev.Button != event.ButtonLeft {
		return false
	}

	if ev.Press {
		if !k.host.Contains(ev.Pos) {
			return false
		}

		if ev.Mod.Contain(event.ModShift) && k.usingDefault {
			k.SetValue(k.valueDef, true)
			return true
		}

		k.dragging = true
		k.last = ev.Pos

		if k.callback != nil {
			notify("knob", func() { k.callback.KnobDragStarted(k.host) })
		}
		k.host.Repaint()
		return true
	}

	if k.dragging {
		if k.callback != nil {
			notify("knob", func() { k.callback.KnobDragFinished(k.host) })
		}
		k.dragging = false
		k.host.Repaint()
		return true
	}
	return false
}

// Motion moves the value by the pointer displacement since the last event.
// Moving right or up increases it.
func (k *Knob) Motion(ev *event.Motion) bool {
	if !k.dragging {
		return false
	}

	var movement float64
	if k.orientation == Horizontal {
		movement = ev.Pos.X - k.last.X
	} else {
		movement = k.last.Y - ev.Pos.Y
	}
	k.last = ev.Pos

	if movement == 0 {
		return true
	}

	k.settleValue(k.nudge(movement/dragDivisor(ev.Mod)))
	return true
}

func (k *Knob) Scroll(ev *event.Scroll) bool {
	if !k.host.Contains(ev.Pos) {
		return false
	}

	dir := ev.VerticalSign()
	if dir == 0 {
		return false
	}

	k.settleValue(k.nudge(10*dir/dragDivisor(ev.Mod)))
	return true
}
