package handler

import (
	"testing"

	"github.com/bnema/knobkit/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKnob() (*Knob, *fakeHost, *[]float64) {
	host := newFakeHost(100, 100)
	k := NewKnob(host)
	values := &[]float64{}
	k.SetCallback(KnobFuncs{
		ValueChanged: func(_ Host, v float64) { *values = append(*values, v) },
	})
	return k, host, values
}

func TestKnobVerticalDrag(t *testing.T) {
	k, _, values := newTestKnob()

	assert.True(t, k.Mouse(press(50, 50)))
	assert.True(t, k.Dragging())
	assert.Equal(t, 0.5, k.Value(), "pressing does not move a knob")

	assert.True(t, k.Motion(motion(50, 30)))
	assert.InDelta(t, 0.6, k.Value(), 1e-9)

	fine := motion(50, 10)
	fine.Mod = event.ModCtrl
	k.Motion(fine)
	assert.InDelta(t, 0.61, k.Value(), 1e-9)

	k.Motion(motion(90, 10))
	assert.InDelta(t, 0.61, k.Value(), 1e-9, "horizontal movement is ignored")

	assert.True(t, k.Mouse(release(300, 300)), "release outside still ends the drag")
	assert.False(t, k.Dragging())
	assert.False(t, k.Motion(motion(50, 0)))
	assert.Len(t, *values, 2)
}

func TestKnobHorizontalDrag(t *testing.T) {
	k, _, _ := newTestKnob()
	k.SetOrientation(Horizontal)

	k.Mouse(press(50, 50))
	k.Motion(motion(30, 0))
	assert.InDelta(t, 0.4, k.Value(), 1e-9)
}

func TestKnobClampsAtEnds(t *testing.T) {
	k, _, _ := newTestKnob()

	k.Mouse(press(50, 99))
	k.Motion(motion(50, -1000))
	assert.Equal(t, 1.0, k.Value())

	// the accumulator is clamped too, so coming back moves immediately
	k.Motion(motion(50, -990))
	assert.InDelta(t, 0.95, k.Value(), 1e-9)
}

func TestKnobStepAccumulates(t *testing.T) {
	k, _, values := newTestKnob()
	k.SetStep(0.25)

	k.Mouse(press(50, 50))
	k.Motion(motion(50, 40))
	k.Motion(motion(50, 30))
	assert.Equal(t, 0.5, k.Value(), "sub-step movement is held back")
	assert.Empty(t, *values)

	k.Motion(motion(50, 20))
	assert.InDelta(t, 0.75, k.Value(), 1e-9)
	assert.Len(t, *values, 1)
}

func TestKnobShiftClickRestoresDefault(t *testing.T) {
	k, _, _ := newTestKnob()
	k.SetDefault(0.1)

	ev := press(50, 50)
	ev.Mod = event.ModShift
	assert.True(t, k.Mouse(ev))
	assert.InDelta(t, 0.1, k.Value(), 1e-9)
	assert.False(t, k.Dragging())
}

func TestKnobIgnoresOutsideAndOtherButtons(t *testing.T) {
	k, _, _ := newTestKnob()

	assert.False(t, k.Mouse(press(150, 50)))
	assert.False(t, k.Mouse(&event.Mouse{Button: event.ButtonMiddle, Press: true}))
	assert.False(t, k.Mouse(release(50, 50)))
}

func TestKnobScroll(t *testing.T) {
	k, _, _ := newTestKnob()

	assert.True(t, k.Scroll(scroll(10, 10, event.ScrollDown)))
	assert.InDelta(t, 0.45, k.Value(), 1e-9)
	assert.False(t, k.Scroll(scroll(200, 10, event.ScrollDown)))
}

func TestKnobScrollIsSymmetricWithStep(t *testing.T) {
	k, _, values := newTestKnob()
	k.SetStep(0.25)

	for i := 0; i < 3; i++ {
		k.Scroll(scroll(10, 10, event.ScrollUp))
	}
	assert.InDelta(t, 0.75, k.Value(), 1e-9)

	k.Scroll(scroll(10, 10, event.ScrollDown))
	assert.InDelta(t, 0.5, k.Value(), 1e-9, "one notch back crosses the half step again")
	assert.Len(t, *values, 2)
}

func TestKnobLogScaleDrag(t *testing.T) {
	k, _, _ := newTestKnob()
	require.NoError(t, k.SetRange(20, 20000))
	require.NoError(t, k.SetUsingLogScale(true))
	k.SetValue(20, false)

	k.Mouse(press(50, 99))
	k.Motion(motion(50, -1))
	assert.InDelta(t, 0.5, k.Normalized(), 1e-9)
}

func TestKnobDragCallbacks(t *testing.T) {
	host := newFakeHost(10, 10)
	k := NewKnob(host)

	var seq []string
	k.SetCallback(KnobFuncs{
		DragStarted:  func(Host) { seq = append(seq, "start") },
		DragFinished: func(Host) { seq = append(seq, "finish") },
		ValueChanged: func(Host, float64) { seq = append(seq, "value") },
	})

	k.Mouse(press(5, 5))
	k.Motion(motion(5, 4))
	k.Mouse(release(5, 4))

	assert.Equal(t, []string{"start", "value", "finish"}, seq)
}
