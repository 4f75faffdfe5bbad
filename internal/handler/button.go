package handler

import "github.com/bnema/knobkit/internal/event"

// ButtonState is a set of button interaction flags.
type ButtonState uint8

const (
	ButtonStateDefault ButtonState = 0x0
	ButtonStateHover   ButtonState = 0x1
	ButtonStateActive  ButtonState = 0x2

	ButtonStateActiveHover = ButtonStateActive | ButtonStateHover
)

// ButtonCallback is notified when a button is clicked: pressed and then
// released inside the host.
type ButtonCallback interface {
	ButtonClicked(w Host, button event.Button)
}

// ButtonFunc adapts a function to ButtonCallback.
type ButtonFunc func(w Host, button event.Button)

func (f ButtonFunc) ButtonClicked(w Host, button event.Button) { f(w, button) }

// Button is a push button, optionally checkable.
type Button struct {
	host     Host
	callback ButtonCallback

	// pressed is the button that started the current press.
	pressed   event.Button
	state     ButtonState
	checkable bool
	checked   bool
}

func NewButton(host Host) *Button {
	return &Button{host: host}
}

// CopyFrom copies other's configuration and callback into b, keeping b's
// host.
func (b *Button) CopyFrom(other *Button) {
	b.callback = other.callback
	b.checkable = other.checkable
	b.checked = other.checked
}

func (b *Button) State() ButtonState {
	return b.state
}

func (b *Button) SetCheckable(checkable bool) {
	if b.checkable == checkable {
		return
	}
	b.checkable = checkable
	b.host.Repaint()
}

func (b *Button) IsCheckable() bool {
	return b.checkable
}

func (b *Button) IsChecked() bool {
	return b.checked
}

// SetChecked sets the checked state of a checkable button. Plain buttons
// ignore it. The callback receives ButtonNone when sendCallback is set.
func (b *Button) SetChecked(checked, sendCallback bool) {
	if !b.checkable || b.checked == checked {
		return
	}
	b.checked = checked
	b.host.Repaint()

	if sendCallback && b.callback != nil {
		notify("button", func() { b.callback.ButtonClicked(b.host, event.ButtonNone) })
	}
}

func (b *Button) SetCallback(cb ButtonCallback) {
	b.callback = cb
}

// Mouse activates the button on a press inside the host. Releasing the same
// button clicks it if the pointer is still inside, and cancels otherwise.
func (b *Button) Mouse(ev *event.Mouse) bool {
	if b.pressed != event.ButtonNone && !ev.Press {
		if b.pressed != ev.Button {
			return true
		}

		button := b.pressed
		b.pressed = event.ButtonNone
		b.state &^= ButtonStateActive
		b.host.Repaint()

		if !b.host.Contains(ev.Pos) {
			return true
		}

		if b.checkable {
			b.checked = !b.checked
		}
		if b.callback != nil {
			notify("button", func() { b.callback.ButtonClicked(b.host, button) })
		}
		return true
	}

	if ev.Press && ev.Button != event.ButtonNone && b.host.Contains(ev.Pos) {
		b.pressed = ev.Button
		b.state |= ButtonStateActive
		b.host.Repaint()
		return true
	}

	return false
}

// Motion keeps a pressed button captured and otherwise tracks hover.
func (b *Button) Motion(ev *event.Motion) bool {
	if b.pressed != event.ButtonNone {
		return true
	}

	if b.host.Contains(ev.Pos) {
		if b.state&ButtonStateHover == 0 {
			b.state |= ButtonStateHover
			b.host.Repaint()
		}
		return true
	}

	if b.state&ButtonStateHover != 0 {
		b.state &^= ButtonStateHover
		b.host.Repaint()
	}
	return false
}
