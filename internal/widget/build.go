package widget

import (
	"fmt"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/handler"
)

// ranged is implemented by the widgets whose range can be configured.
type ranged interface {
	SetRange(min, max float64) error
}

// Build creates the widget described by c.
func Build(c config.WidgetConfig) (Widget, error) {
	bounds := geom.XYWH(c.X, c.Y, c.W, c.H)

	var w Widget
	switch c.Kind {
	case config.KindSlider:
		s := NewSlider(c.Name, bounds, orientation(c))
		if err := setupValueRange(s.Slider, c); err != nil {
			return nil, fmt.Errorf("widget %q: %w", c.Name, err)
		}
		s.SetInverted(c.Inverted)
		w = s

	case config.KindKnob:
		k := NewKnob(c.Name, bounds)
		if c.Orientation == "horizontal" {
			k.SetOrientation(handler.Horizontal)
		}
		if err := setupValueRange(k.Knob, c); err != nil {
			return nil, fmt.Errorf("widget %q: %w", c.Name, err)
		}
		w = k

	case config.KindSpinner:
		s := NewSpinner(c.Name, bounds)
		if err := setRange(s.Spinner, c); err != nil {
			return nil, fmt.Errorf("widget %q: %w", c.Name, err)
		}
		s.SetStep(c.Step)
		w = s

	case config.KindSwitch:
		w = NewSwitch(c.Name, bounds)

	case config.KindRadio:
		r := NewRadio(c.Name, bounds)
		if err := setRange(r.Radio, c); err != nil {
			return nil, fmt.Errorf("widget %q: %w", c.Name, err)
		}
		for _, o := range c.Options {
			r.AddOption(o.Name, o.Value)
		}
		w = r

	case config.KindButton:
		b := NewButton(c.Name, bounds)
		b.SetCheckable(c.Checkable)
		w = b

	default:
		return nil, fmt.Errorf("widget %q: unknown kind %q", c.Name, c.Kind)
	}

	if c.Value != nil {
		w.SetValue(*c.Value, false)
	} else if c.Default != nil {
		w.SetValue(*c.Default, false)
	}
	return w, nil
}

// orientation picks the configured axis, or the widget's longer side.
func orientation(c config.WidgetConfig) handler.Orientation {
	switch c.Orientation {
	case "vertical":
		return handler.Vertical
	case "horizontal":
		return handler.Horizontal
	}
	if c.H > c.W {
		return handler.Vertical
	}
	return handler.Horizontal
}

func setRange(r ranged, c config.WidgetConfig) error {
	if c.Min == 0 && c.Max == 0 {
		return nil
	}
	return r.SetRange(c.Min, c.Max)
}

// valueRanged is the shared setup surface of sliders and knobs.
type valueRanged interface {
	ranged
	SetUsingLogScale(on bool) error
	SetStep(step float64)
	SetDefault(def float64)
}

func setupValueRange(r valueRanged, c config.WidgetConfig) error {
	if err := setRange(r, c); err != nil {
		return err
	}
	if c.LogScale {
		if err := r.SetUsingLogScale(true); err != nil {
			return err
		}
	}
	r.SetStep(c.Step)
	if c.Default != nil {
		r.SetDefault(*c.Default)
	}
	return nil
}
