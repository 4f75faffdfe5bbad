package handler

import (
	"testing"

	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/stretchr/testify/assert"
)

func newTestButton() (*Button, *[]event.Button) {
	b := NewButton(newFakeHost(40, 20))
	clicks := &[]event.Button{}
	b.SetCallback(ButtonFunc(func(_ Host, button event.Button) { *clicks = append(*clicks, button) }))
	return b, clicks
}

func TestButtonClick(t *testing.T) {
	b, clicks := newTestButton()

	assert.True(t, b.Mouse(press(10, 10)))
	assert.Equal(t, ButtonStateActive, b.State())

	assert.True(t, b.Mouse(release(12, 10)))
	assert.Equal(t, ButtonStateDefault, b.State())
	assert.Equal(t, []event.Button{event.ButtonLeft}, *clicks)
}

func TestButtonReleaseOutsideCancels(t *testing.T) {
	b, clicks := newTestButton()

	b.Mouse(press(10, 10))
	assert.True(t, b.Mouse(release(100, 10)))
	assert.Empty(t, *clicks)
	assert.Equal(t, ButtonStateDefault, b.State())
}

func TestButtonIgnoresOtherButtonRelease(t *testing.T) {
	b, clicks := newTestButton()

	b.Mouse(&event.Mouse{Button: event.ButtonRight, Press: true, Pos: geom.Pt(5, 5)})
	assert.True(t, b.Mouse(release(5, 5)), "left release while right is held")
	assert.Equal(t, ButtonStateActive, b.State())

	b.Mouse(&event.Mouse{Button: event.ButtonRight, Pos: geom.Pt(5, 5)})
	assert.Equal(t, []event.Button{event.ButtonRight}, *clicks)
}

func TestButtonCheckable(t *testing.T) {
	b, _ := newTestButton()
	b.SetCheckable(true)

	b.Mouse(press(1, 1))
	b.Mouse(release(1, 1))
	assert.True(t, b.IsChecked())

	b.Mouse(press(1, 1))
	b.Mouse(release(1, 1))
	assert.False(t, b.IsChecked())
}

func TestButtonSetChecked(t *testing.T) {
	b, clicks := newTestButton()
	b.SetCheckable(true)

	b.SetChecked(true, false)
	assert.Empty(t, *clicks)
	b.SetChecked(true, true)
	assert.Empty(t, *clicks, "unchanged")
	b.SetChecked(false, true)
	assert.Equal(t, []event.Button{event.ButtonNone}, *clicks)
}

func TestButtonSetCheckedIgnoredWhenNotCheckable(t *testing.T) {
	b, clicks := newTestButton()

	b.SetChecked(true, true)
	assert.False(t, b.IsChecked())
	assert.Empty(t, *clicks)
}

func TestButtonHover(t *testing.T) {
	b, _ := newTestButton()

	assert.True(t, b.Motion(motion(5, 5)))
	assert.Equal(t, ButtonStateHover, b.State())

	b.Mouse(press(5, 5))
	assert.Equal(t, ButtonStateActiveHover, b.State())
	assert.True(t, b.Motion(motion(500, 5)), "pressed button keeps the pointer")

	b.Mouse(release(500, 5))
	assert.False(t, b.Motion(motion(500, 5)))
	assert.Equal(t, ButtonStateDefault, b.State())
}

func TestButtonPressOutside(t *testing.T) {
	b, _ := newTestButton()

	assert.False(t, b.Mouse(press(50, 5)))
	assert.False(t, b.Mouse(release(5, 5)))
}
