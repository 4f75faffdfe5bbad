package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
	"github.com/bnema/knobkit/internal/trace"
)

// pointer turns terminal mouse reports into panel events. Terminals report
// cells, so every event lands on the center of its cell.
type pointer struct {
	grid    grid
	start   time.Time
	now     func() time.Time
	pressed event.Button
}

func newPointer(g grid) *pointer {
	return &pointer{grid: g, start: time.Now(), now: time.Now}
}

func modifiers(msg tea.MouseMsg) event.Modifiers {
	var mod event.Modifiers
	if msg.Shift {
		mod |= event.ModShift
	}
	if msg.Ctrl {
		mod |= event.ModCtrl
	}
	if msg.Alt {
		mod |= event.ModAlt
	}
	return mod
}

func buttonOf(b tea.MouseButton) event.Button {
	switch b {
	case tea.MouseButtonLeft:
		return event.ButtonLeft
	case tea.MouseButtonMiddle:
		return event.ButtonMiddle
	case tea.MouseButtonRight:
		return event.ButtonRight
	}
	return event.ButtonNone
}

// translate converts msg. It reports false for reports that carry nothing
// the panel understands, such as extra mouse buttons.
func (p *pointer) translate(msg tea.MouseMsg) (trace.Record, bool) {
	base := event.Base{
		Mod:  modifiers(msg),
		Time: uint32(p.now().Sub(p.start).Milliseconds()),
	}
	pos := p.grid.center(msg.X, msg.Y)

	if tea.MouseEvent(msg).IsWheel() {
		if msg.Action != tea.MouseActionPress {
			return trace.Record{}, false
		}
		ev := event.Scroll{Base: base, Pos: pos}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			ev.Direction, ev.Delta = event.ScrollUp, geom.Pt(0, 1)
		case tea.MouseButtonWheelDown:
			ev.Direction, ev.Delta = event.ScrollDown, geom.Pt(0, -1)
		case tea.MouseButtonWheelLeft:
			ev.Direction, ev.Delta = event.ScrollLeft, geom.Pt(-1, 0)
		case tea.MouseButtonWheelRight:
			ev.Direction, ev.Delta = event.ScrollRight, geom.Pt(1, 0)
		}
		return trace.FromScroll(ev), true
	}

	switch msg.Action {
	case tea.MouseActionPress:
		button := buttonOf(msg.Button)
		if button == event.ButtonNone {
			return trace.Record{}, false
		}
		p.pressed = button
		return trace.FromMouse(event.Mouse{Base: base, Button: button, Press: true, Pos: pos}), true

	case tea.MouseActionRelease:
		// Some terminals do not say which button went up.
		button := buttonOf(msg.Button)
		if button == event.ButtonNone {
			button = p.pressed
		}
		if button == event.ButtonNone {
			return trace.Record{}, false
		}
		if button == p.pressed {
			p.pressed = event.ButtonNone
		}
		return trace.FromMouse(event.Mouse{Base: base, Button: button, Pos: pos}), true

	case tea.MouseActionMotion:
		return trace.FromMotion(event.Motion{Base: base, Pos: pos}), true
	}
	return trace.Record{}, false
}
