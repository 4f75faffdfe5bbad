package handler

import "github.com/bnema/knobkit/internal/event"

// SwitchCallback is notified when a switch is toggled by the pointer.
type SwitchCallback interface {
	SwitchClicked(w Host, down bool)
}

// SwitchFunc adapts a function to SwitchCallback.
type SwitchFunc func(w Host, down bool)

func (f SwitchFunc) SwitchClicked(w Host, down bool) { f(w, down) }

// Switch is a two-state toggle.
type Switch struct {
	host     Host
	callback SwitchCallback
	down     bool
}

// NewSwitch returns a switch in the up state.
func NewSwitch(host Host) *Switch {
	return &Switch{host: host}
}

// CopyFrom copies other's state and callback into s, keeping s's host.
func (s *Switch) CopyFrom(other *Switch) {
	s.callback = other.callback
	s.down = other.down
}

// IsDown reports whether the switch is on.
func (s *Switch) IsDown() bool {
	return s.down
}

// SetDown sets the state without notifying the callback.
func (s *Switch) SetDown(down bool) {
	s.down = down
	s.host.Repaint()
}

func (s *Switch) SetCallback(cb SwitchCallback) {
	s.callback = cb
}

// Mouse toggles the switch on any button press inside the host.
func (s *Switch) Mouse(ev *event.Mouse) bool {
	if !ev.Press || !s.host.Contains(ev.Pos) {
		return false
	}

	s.down = !s.down
	s.host.Repaint()

	if s.callback != nil {
		down := s.down
		notify("switch", func() { s.callback.SwitchClicked(s.host, down) })
	}
	return true
}
