package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/knobkit/internal/config"
	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/handler"
)

func TestBaseHostsInLocalCoordinates(t *testing.T) {
	w := NewSwitch("s", geom.XYWH(10, 10, 20, 20))

	assert.True(t, w.Contains(geom.Pt(0, 0)))
	assert.True(t, w.Contains(geom.Pt(19, 19)))
	assert.False(t, w.Contains(geom.Pt(20, 0)))
	assert.False(t, w.Contains(geom.Pt(-1, 5)))
	assert.Equal(t, geom.Pt(20, 20), w.Size())

	assert.True(t, w.TakeDirty(), "new widgets start dirty")
	assert.False(t, w.TakeDirty())
	w.Repaint()
	assert.True(t, w.TakeDirty())
}

func TestSwitchValue(t *testing.T) {
	w := NewSwitch("s", geom.XYWH(0, 0, 10, 10))

	var got []float64
	w.SetOnChange(func(_ string, v float64) { got = append(got, v) })

	assert.True(t, w.SetValue(1, false))
	assert.Equal(t, 1.0, w.Value())
	assert.False(t, w.SetValue(0.9, true), "already down")
	assert.True(t, w.SetValue(0, true))
	assert.Equal(t, []float64{0}, got)

	assert.True(t, w.Mouse(&event.Mouse{Button: event.ButtonLeft, Press: true, Pos: geom.Pt(1, 1)}))
	assert.Equal(t, []float64{0, 1}, got)
	assert.False(t, w.Motion(&event.Motion{}))
	assert.False(t, w.Scroll(&event.Scroll{}))
}

func TestButtonValue(t *testing.T) {
	t.Run("checkable", func(t *testing.T) {
		w := NewButton("b", geom.XYWH(0, 0, 10, 10))
		w.SetCheckable(true)

		var got []float64
		w.SetOnChange(func(_ string, v float64) { got = append(got, v) })

		assert.True(t, w.SetValue(1, true))
		assert.Equal(t, 1.0, w.Value())
		assert.Equal(t, []float64{1}, got)

		pos := geom.Pt(5, 5)
		w.Mouse(&event.Mouse{Button: event.ButtonLeft, Press: true, Pos: pos})
		w.Mouse(&event.Mouse{Button: event.ButtonLeft, Pos: pos})
		assert.Equal(t, 0.0, w.Value())
		assert.Equal(t, []float64{1, 0}, got)
	})

	t.Run("plain buttons ignore SetValue", func(t *testing.T) {
		w := NewButton("b", geom.XYWH(0, 0, 10, 10))
		assert.False(t, w.SetValue(1, true))
		assert.Equal(t, 0.0, w.Value())
	})
}

func TestBuild(t *testing.T) {
	c := config.DefaultConfig

	widgets := make(map[string]Widget)
	for _, wc := range c.Widgets {
		w, err := Build(wc)
		require.NoError(t, err, wc.Name)
		assert.Equal(t, wc.Kind, w.Kind())
		assert.Equal(t, geom.XYWH(wc.X, wc.Y, wc.W, wc.H), w.Bounds())
		widgets[wc.Name] = w
	}

	assert.InDelta(t, 1000, widgets["cutoff"].Value(), 1e-9)
	assert.InDelta(t, 0.5, widgets["resonance"].Value(), 1e-9)
	assert.InDelta(t, 0, widgets["gain"].Value(), 1e-9)
	assert.InDelta(t, 8, widgets["voices"].Value(), 1e-9)
	assert.InDelta(t, 0, widgets["waveform"].Value(), 1e-9)

	gain := widgets["gain"].(*Slider)
	assert.Equal(t, handler.Vertical, gain.Orientation())
	assert.True(t, gain.Inverted())

	resonance := widgets["resonance"].(*Knob)
	assert.Equal(t, handler.Vertical, resonance.Orientation())

	waveform := widgets["waveform"].(*Radio)
	require.Len(t, waveform.Options(), 4)
	assert.Equal(t, 3.0, waveform.Options()[3].Value)

	voices := widgets["voices"].(*Spinner)
	assert.Equal(t, geom.XYWH(0, 0, 40, 16), voices.DecrementArea())
	assert.Equal(t, geom.XYWH(120, 0, 40, 16), voices.IncrementArea())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.WidgetConfig
		isErr error
	}{
		{
			name: "unknown kind",
			cfg:  config.WidgetConfig{Name: "x", Kind: "fader", W: 1, H: 1},
		},
		{
			name:  "empty range",
			cfg:   config.WidgetConfig{Name: "x", Kind: config.KindSlider, W: 1, H: 1, Min: 1, Max: 1},
			isErr: handler.ErrInvalidRange,
		},
		{
			name:  "log scale over zero",
			cfg:   config.WidgetConfig{Name: "x", Kind: config.KindKnob, W: 1, H: 1, Min: 0, Max: 10, LogScale: true},
			isErr: handler.ErrInvalidRange,
		},
		{
			name:  "inverted spinner range",
			cfg:   config.WidgetConfig{Name: "x", Kind: config.KindSpinner, W: 1, H: 1, Min: 5, Max: -5},
			isErr: handler.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), `widget "x"`)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestBuildOrientationFollowsShape(t *testing.T) {
	w, err := Build(config.WidgetConfig{Name: "tall", Kind: config.KindSlider, W: 10, H: 100})
	require.NoError(t, err)
	assert.Equal(t, handler.Vertical, w.(*Slider).Orientation())

	w, err = Build(config.WidgetConfig{Name: "wide", Kind: config.KindSlider, W: 100, H: 10, Orientation: "vertical"})
	require.NoError(t, err)
	assert.Equal(t, handler.Vertical, w.(*Slider).Orientation())

	w, err = Build(config.WidgetConfig{Name: "knob", Kind: config.KindKnob, W: 10, H: 10, Orientation: "horizontal"})
	require.NoError(t, err)
	assert.Equal(t, handler.Horizontal, w.(*Knob).Orientation())
}
