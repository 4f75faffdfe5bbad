// Package event defines the pointer events delivered to widget handlers.
package event

import (
	"strings"

	"github.com/bnema/knobkit/internal/geom"
)

// Modifiers is the set of keyboard modifiers held during an event.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Contain reports whether m contains all modifiers in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var mods []string
	if m.Contain(ModCtrl) {
		mods = append(mods, "ctrl")
	}
	if m.Contain(ModAlt) {
		mods = append(mods, "alt")
	}
	if m.Contain(ModShift) {
		mods = append(mods, "shift")
	}
	if m.Contain(ModSuper) {
		mods = append(mods, "super")
	}
	return strings.Join(mods, "+")
}

// Button identifies a mouse button. The numbering follows the host
// framework: 1 is the primary button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// ScrollDirection is the direction of a scroll event.
type ScrollDirection uint8

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
	// ScrollSmooth carries a precise delta instead of discrete notches.
	ScrollSmooth
)

func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "smooth"
	}
}

// Base holds the fields shared by every event.
type Base struct {
	Mod Modifiers
	// Time is a timestamp in milliseconds relative to an undefined base.
	Time uint32
}

// Mouse is a button press or release.
type Mouse struct {
	Base
	Button Button
	Press  bool
	// Pos is in the local coordinates of the receiving widget.
	Pos geom.Point
}

// Motion is a pointer move.
type Motion struct {
	Base
	Pos geom.Point
}

// Scroll is a wheel or touchpad scroll. Positive Delta.Y scrolls up.
type Scroll struct {
	Base
	Pos       geom.Point
	Delta     geom.Point
	Direction ScrollDirection
}

// Offset returns a copy of ev with its position moved by -origin.
func (ev Mouse) Offset(origin geom.Point) Mouse {
	ev.Pos = ev.Pos.Sub(origin)
	return ev
}

// Offset returns a copy of ev with its position moved by -origin.
func (ev Motion) Offset(origin geom.Point) Motion {
	ev.Pos = ev.Pos.Sub(origin)
	return ev
}

// Offset returns a copy of ev with its position moved by -origin.
func (ev Scroll) Offset(origin geom.Point) Scroll {
	ev.Pos = ev.Pos.Sub(origin)
	return ev
}

// VerticalSign returns +1 for an upward scroll, -1 for a downward one and 0
// when the event carries no vertical component.
func (ev Scroll) VerticalSign() float64 {
	switch {
	case ev.Delta.Y > 0:
		return 1
	case ev.Delta.Y < 0:
		return -1
	}
	switch ev.Direction {
	case ScrollUp:
		return 1
	case ScrollDown:
		return -1
	}
	return 0
}
