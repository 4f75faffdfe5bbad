package handler

import (
	"errors"
	"math"
	"testing"

	"github.com/bnema/knobkit/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliderRecorder struct {
	started  int
	finished int
	values   []float64
}

func (r *sliderRecorder) SliderDragStarted(Host)  { r.started++ }
func (r *sliderRecorder) SliderDragFinished(Host) { r.finished++ }
func (r *sliderRecorder) SliderValueChanged(_ Host, v float64) {
	r.values = append(r.values, v)
}

func newTestSlider() (*Slider, *fakeHost, *sliderRecorder) {
	host := newFakeHost(100, 10)
	s := NewSlider(host)
	s.SetArea(0, 0, 100, 10)
	s.SetStartPos(0, 5)
	s.SetEndPos(100, 5)
	rec := &sliderRecorder{}
	s.SetCallback(rec)
	return s, host, rec
}

func TestSliderDefaults(t *testing.T) {
	s := NewSlider(newFakeHost(10, 10))

	assert.Equal(t, 0.5, s.Value())
	assert.Equal(t, 0.5, s.Normalized())
	assert.Equal(t, Horizontal, s.Orientation())
	assert.Equal(t, SliderStateDefault, s.State())
}

func TestSliderPressDragRelease(t *testing.T) {
	s, _, rec := newTestSlider()

	assert.True(t, s.Mouse(press(25, 5)))
	assert.InDelta(t, 0.25, s.Value(), 1e-9)
	assert.Equal(t, SliderStateDragging, s.State())

	assert.True(t, s.Motion(motion(75, 5)))
	assert.InDelta(t, 0.75, s.Value(), 1e-9)

	assert.True(t, s.Mouse(release(75, 5)))
	assert.False(t, s.Mouse(release(75, 5)), "second release has no drag to finish")

	assert.Equal(t, 1, rec.started)
	assert.Equal(t, 1, rec.finished)
	require.Len(t, rec.values, 2)
	assert.InDelta(t, 0.25, rec.values[0], 1e-9)
	assert.InDelta(t, 0.75, rec.values[1], 1e-9)
}

func TestSliderCallbackOncePerDistinctChange(t *testing.T) {
	s, _, rec := newTestSlider()

	s.Mouse(press(25, 5))
	s.Motion(motion(25, 5))
	s.Motion(motion(25, 9))
	s.Motion(motion(30, 5))

	assert.Len(t, rec.values, 2)
}

func TestSliderIgnoresOtherButtonsAndOutsidePress(t *testing.T) {
	s, _, rec := newTestSlider()

	assert.False(t, s.Mouse(&event.Mouse{Button: event.ButtonRight, Press: true, Pos: press(10, 5).Pos}))
	assert.False(t, s.Mouse(press(150, 5)))
	assert.False(t, s.Motion(motion(10, 5)), "motion without a drag is not consumed")

	assert.Equal(t, 0.5, s.Value())
	assert.Zero(t, rec.started)
}

func TestSliderStepQuantization(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"rounds down", 23, 0.2},
		{"rounds up", 26, 0.3},
		{"exact step", 40, 0.4},
		{"near maximum", 99, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSlider()
			s.SetStep(0.1)

			s.Mouse(press(tt.x, 5))
			assert.InDelta(t, tt.want, s.Value(), 1e-9)
		})
	}
}

func TestSliderMotionClampsOutsideArea(t *testing.T) {
	s, _, _ := newTestSlider()
	s.Mouse(press(50, 5))

	s.Motion(motion(-40, 5))
	assert.Equal(t, 0.0, s.Value())

	s.Motion(motion(400, 5))
	assert.Equal(t, 1.0, s.Value())

	s.SetInverted(true)
	s.Motion(motion(-40, 5))
	assert.Equal(t, 1.0, s.Value())
	s.Motion(motion(400, 5))
	assert.Equal(t, 0.0, s.Value())
}

func TestSliderInverted(t *testing.T) {
	s, _, _ := newTestSlider()
	s.SetInverted(true)

	s.Mouse(press(25, 5))
	assert.InDelta(t, 0.75, s.Value(), 1e-9)
	assert.True(t, s.Inverted())
}

func TestSliderVertical(t *testing.T) {
	host := newFakeHost(10, 100)
	s := NewSlider(host)
	s.SetArea(0, 0, 10, 100)
	s.SetStartPos(5, 0)
	s.SetEndPos(5, 100)

	require.Equal(t, Vertical, s.Orientation())

	s.Mouse(press(5, 80))
	assert.InDelta(t, 0.8, s.Value(), 1e-9)

	s.Motion(motion(500, 20))
	assert.InDelta(t, 0.2, s.Value(), 1e-9, "horizontal offset is ignored")
}

func TestSliderShiftClickRestoresDefault(t *testing.T) {
	s, _, rec := newTestSlider()
	s.SetDefault(0.2)

	ev := press(90, 5)
	ev.Mod = event.ModShift
	assert.True(t, s.Mouse(ev))

	assert.InDelta(t, 0.2, s.Value(), 1e-9)
	assert.Zero(t, rec.started, "restoring the default does not start a drag")
	assert.False(t, s.Motion(motion(10, 5)))
}

func TestSliderShiftClickWithoutDefaultDrags(t *testing.T) {
	s, _, rec := newTestSlider()

	ev := press(90, 5)
	ev.Mod = event.ModShift
	s.Mouse(ev)

	assert.InDelta(t, 0.9, s.Value(), 1e-9)
	assert.Equal(t, 1, rec.started)
}

func TestSliderSetValue(t *testing.T) {
	s, host, rec := newTestSlider()

	assert.True(t, s.SetValue(0.3, false))
	assert.Empty(t, rec.values)
	assert.False(t, s.SetValue(0.3, true), "unchanged value")
	assert.True(t, s.SetValue(7, true))
	assert.Equal(t, 1.0, s.Value(), "value is clamped")
	assert.Equal(t, []float64{1}, rec.values)
	assert.Equal(t, 2, host.repaints)
}

func TestSliderSetRange(t *testing.T) {
	s, _, _ := newTestSlider()

	err := s.SetRange(5, 5)
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.Equal(t, 0.0, s.Minimum())
	assert.Equal(t, 1.0, s.Maximum())

	require.NoError(t, s.SetRange(2, 10))
	assert.Equal(t, 2.0, s.Value(), "value clamps into the new range")

	s.Mouse(press(50, 5))
	assert.InDelta(t, 6, s.Value(), 1e-9)
}

func TestSliderLogScale(t *testing.T) {
	s, _, _ := newTestSlider()

	assert.ErrorIs(t, s.SetUsingLogScale(true), ErrInvalidRange, "minimum is zero")

	require.NoError(t, s.SetRange(20, 20000))
	require.NoError(t, s.SetUsingLogScale(true))
	assert.ErrorIs(t, s.SetRange(0, 100), ErrInvalidRange)

	s.Mouse(press(0, 5))
	assert.InDelta(t, 20, s.Value(), 1e-6)
	assert.InDelta(t, 0, s.Normalized(), 1e-9)

	s.Motion(motion(50, 5))
	assert.InDelta(t, 20000/math.Sqrt(1000), s.Value(), 1e-6)
	assert.InDelta(t, 0.5, s.Normalized(), 1e-9)

	s.Motion(motion(100, 5))
	assert.InDelta(t, 20000, s.Value(), 1e-6)
}

func TestSliderScroll(t *testing.T) {
	s, _, rec := newTestSlider()

	assert.True(t, s.Scroll(scroll(50, 5, event.ScrollUp)))
	assert.InDelta(t, 0.55, s.Value(), 1e-9)

	assert.True(t, s.Scroll(scroll(50, 5, event.ScrollDown)))
	assert.InDelta(t, 0.5, s.Value(), 1e-9)

	fine := scroll(50, 5, event.ScrollDown)
	fine.Mod = event.ModCtrl
	s.Scroll(fine)
	assert.InDelta(t, 0.495, s.Value(), 1e-9)

	assert.False(t, s.Scroll(scroll(500, 5, event.ScrollUp)))
	assert.False(t, s.Scroll(scroll(50, 5, event.ScrollLeft)))
	assert.Len(t, rec.values, 3)
}

func TestSliderScrollKeepsSubStepMovement(t *testing.T) {
	s, _, rec := newTestSlider()
	s.SetStep(0.1)

	s.Scroll(scroll(50, 5, event.ScrollUp))
	assert.InDelta(t, 0.6, s.Value(), 1e-9)

	s.Scroll(scroll(50, 5, event.ScrollDown))
	assert.InDelta(t, 0.5, s.Value(), 1e-9, "down notch undoes the up notch")
	assert.Len(t, rec.values, 2)

	// Fine notches accumulate until they pass half a step
	fine := scroll(50, 5, event.ScrollUp)
	fine.Mod = event.ModCtrl
	for i := 0; i < 9; i++ {
		s.Scroll(fine)
	}
	assert.InDelta(t, 0.5, s.Value(), 1e-9)
	s.Scroll(fine)
	s.Scroll(fine)
	assert.InDelta(t, 0.6, s.Value(), 1e-9)
}

func TestSliderSetValueRestartsAccumulator(t *testing.T) {
	s, _, _ := newTestSlider()
	s.SetStep(0.25)

	for i := 0; i < 3; i++ {
		s.Scroll(scroll(50, 5, event.ScrollUp))
	}
	assert.InDelta(t, 0.75, s.Value(), 1e-9)

	require.True(t, s.SetValue(0.25, false))

	s.Scroll(scroll(50, 5, event.ScrollDown))
	assert.InDelta(t, 0.25, s.Value(), 1e-9, "accumulates from the new value")
	s.Scroll(scroll(50, 5, event.ScrollDown))
	s.Scroll(scroll(50, 5, event.ScrollDown))
	assert.InDelta(t, 0, s.Value(), 1e-9)
}

func TestSliderRejectsNaN(t *testing.T) {
	s, _, rec := newTestSlider()

	assert.False(t, s.SetValue(math.NaN(), true))
	assert.Equal(t, 0.5, s.Value())
	assert.Empty(t, rec.values)
}

func TestSliderHoverState(t *testing.T) {
	s, _, _ := newTestSlider()

	s.Motion(motion(10, 5))
	assert.Equal(t, SliderStateHover, s.State())

	s.Mouse(press(10, 5))
	assert.Equal(t, SliderStateDraggingHover, s.State())

	s.Motion(motion(300, 5))
	assert.Equal(t, SliderStateDragging, s.State())

	s.Mouse(release(300, 5))
	assert.Equal(t, SliderStateDefault, s.State())
}

func TestSliderCallbackPanicIsRecovered(t *testing.T) {
	s, _, _ := newTestSlider()
	s.SetCallback(SliderFuncs{ValueChanged: func(Host, float64) { panic("listener bug") }})

	assert.NotPanics(t, func() {
		assert.True(t, s.Mouse(press(30, 5)))
	})
	assert.InDelta(t, 0.3, s.Value(), 1e-9)
}

func TestSliderCopyFrom(t *testing.T) {
	src, _, rec := newTestSlider()
	require.NoError(t, src.SetRange(20, 20000))
	require.NoError(t, src.SetUsingLogScale(true))
	src.SetInverted(true)
	src.SetValue(1000, false)
	src.Mouse(press(10, 5))

	host := newFakeHost(100, 10)
	dst := NewSlider(host)
	dst.CopyFrom(src)

	assert.Equal(t, src.Value(), dst.Value())
	assert.True(t, dst.usingLog)
	assert.True(t, dst.Inverted())
	assert.Equal(t, SliderStateDefault, dst.State())

	dst.SetValue(500, true)
	assert.Contains(t, rec.values, 500.0, "callback is shared")
}
