package widget

import (
	"math"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/handler"
)

// Slider is a linear fader. Its hit area is the whole widget and it runs
// along the widget's longer side unless told otherwise.
type Slider struct {
	Base
	*handler.Slider
}

func NewSlider(name string, bounds geom.Rect, orientation handler.Orientation) *Slider {
	w := &Slider{Base: newBase(name, config.KindSlider, bounds)}
	w.Slider = handler.NewSlider(w)

	size := bounds.Size()
	w.Slider.SetArea(0, 0, size.X, size.Y)
	if orientation == handler.Vertical {
		w.Slider.SetStartPos(size.X/2, 0)
		w.Slider.SetEndPos(size.X/2, size.Y)
	} else {
		w.Slider.SetStartPos(0, size.Y/2)
		w.Slider.SetEndPos(size.X, size.Y/2)
	}

	w.Slider.SetCallback(handler.SliderFuncs{
		ValueChanged: func(_ handler.Host, v float64) { w.changed(v) },
	})
	return w
}

// Knob is a rotary control driven by relative drags.
type Knob struct {
	Base
	*handler.Knob
}

func NewKnob(name string, bounds geom.Rect) *Knob {
	w := &Knob{Base: newBase(name, config.KindKnob, bounds)}
	w.Knob = handler.NewKnob(w)
	w.Knob.SetCallback(handler.KnobFuncs{
		ValueChanged: func(_ handler.Host, v float64) { w.changed(v) },
	})
	return w
}

// Spinner shows its value between a decrement area on the left quarter and
// an increment area on the right quarter.
type Spinner struct {
	Base
	*handler.Spinner
}

func NewSpinner(name string, bounds geom.Rect) *Spinner {
	w := &Spinner{Base: newBase(name, config.KindSpinner, bounds)}
	w.Spinner = handler.NewSpinner(w)

	size := bounds.Size()
	w.Spinner.SetDecrementArea(0, 0, size.X/4, size.Y)
	w.Spinner.SetIncrementArea(size.X*3/4, 0, size.X/4, size.Y)

	w.Spinner.SetCallback(handler.SpinnerFunc(func(_ handler.Host, v float64) { w.changed(v) }))
	return w
}

// Switch is an on/off toggle. Its value is 1 when down and 0 otherwise.
type Switch struct {
	Base
	*handler.Switch
}

func NewSwitch(name string, bounds geom.Rect) *Switch {
	w := &Switch{Base: newBase(name, config.KindSwitch, bounds)}
	w.Switch = handler.NewSwitch(w)
	w.Switch.SetCallback(handler.SwitchFunc(func(_ handler.Host, down bool) { w.changed(boolValue(down)) }))
	return w
}

func (w *Switch) Value() float64 { return boolValue(w.IsDown()) }

// SetValue puts the switch down for values of 0.5 and above. NaN is
// ignored.
func (w *Switch) SetValue(value float64, sendCallback bool) bool {
	if math.IsNaN(value) {
		return false
	}
	down := value >= 0.5
	if down == w.IsDown() {
		return false
	}
	w.SetDown(down)
	if sendCallback {
		w.changed(boolValue(down))
	}
	return true
}

func (w *Switch) Motion(*event.Motion) bool { return false }

func (w *Switch) Scroll(*event.Scroll) bool { return false }

// Radio is a vertical list of options, one row per option.
type Radio struct {
	Base
	*handler.Radio
}

func NewRadio(name string, bounds geom.Rect) *Radio {
	w := &Radio{Base: newBase(name, config.KindRadio, bounds)}
	w.Radio = handler.NewRadio(w)
	w.Radio.SetCallback(handler.RadioFunc(func(_ handler.Host, v float64) { w.changed(v) }))
	return w
}

func (w *Radio) Motion(*event.Motion) bool { return false }

func (w *Radio) Scroll(*event.Scroll) bool { return false }

// Button is a push button. A checkable button reports 1 while checked; a
// plain one always reports 0 and notifies on every click.
type Button struct {
	Base
	*handler.Button
}

func NewButton(name string, bounds geom.Rect) *Button {
	w := &Button{Base: newBase(name, config.KindButton, bounds)}
	w.Button = handler.NewButton(w)
	w.Button.SetCallback(handler.ButtonFunc(func(_ handler.Host, _ event.Button) { w.changed(w.Value()) }))
	return w
}

func (w *Button) Value() float64 { return boolValue(w.IsChecked()) }

// SetValue checks a checkable button for values of 0.5 and above. Plain
// buttons ignore it, as does every button for NaN.
func (w *Button) SetValue(value float64, sendCallback bool) bool {
	checked := value >= 0.5
	if math.IsNaN(value) || !w.IsCheckable() || checked == w.IsChecked() {
		return false
	}
	w.SetChecked(checked, sendCallback)
	return true
}

func (w *Button) Scroll(*event.Scroll) bool { return false }
