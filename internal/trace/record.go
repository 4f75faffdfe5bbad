// Package trace records pointer events to a file and plays them back.
//
// A trace starts with a short magic header followed by records. Each record
// is a 4-byte big-endian length and a protobuf-encoded body, so traces stay
// readable by newer versions that add fields.
package trace

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
)

// Kind identifies which event a record holds.
type Kind uint8

const (
	KindMouse Kind = iota + 1
	KindMotion
	KindScroll
)

func (k Kind) String() string {
	switch k {
	case KindMouse:
		return "mouse"
	case KindMotion:
		return "motion"
	case KindScroll:
		return "scroll"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Record is one pointer event in panel coordinates.
type Record struct {
	Kind Kind
	Time uint32
	Mod  event.Modifiers
	Pos  geom.Point

	// Mouse only
	Button event.Button
	Press  bool

	// Scroll only
	Delta     geom.Point
	Direction event.ScrollDirection
}

func FromMouse(ev event.Mouse) Record {
	return Record{Kind: KindMouse, Time: ev.Time, Mod: ev.Mod, Pos: ev.Pos, Button: ev.Button, Press: ev.Press}
}

func FromMotion(ev event.Motion) Record {
	return Record{Kind: KindMotion, Time: ev.Time, Mod: ev.Mod, Pos: ev.Pos}
}

func FromScroll(ev event.Scroll) Record {
	return Record{Kind: KindScroll, Time: ev.Time, Mod: ev.Mod, Pos: ev.Pos, Delta: ev.Delta, Direction: ev.Direction}
}

func (r Record) base() event.Base {
	return event.Base{Mod: r.Mod, Time: r.Time}
}

func (r Record) Mouse() event.Mouse {
	return event.Mouse{Base: r.base(), Button: r.Button, Press: r.Press, Pos: r.Pos}
}

func (r Record) Motion() event.Motion {
	return event.Motion{Base: r.base(), Pos: r.Pos}
}

func (r Record) Scroll() event.Scroll {
	return event.Scroll{Base: r.base(), Pos: r.Pos, Delta: r.Delta, Direction: r.Direction}
}

// Field numbers of the record body.
const (
	fieldKind      protowire.Number = 1
	fieldTime      protowire.Number = 2
	fieldMod       protowire.Number = 3
	fieldX         protowire.Number = 4
	fieldY         protowire.Number = 5
	fieldButton    protowire.Number = 6
	fieldPress     protowire.Number = 7
	fieldDeltaX    protowire.Number = 8
	fieldDeltaY    protowire.Number = 9
	fieldDirection protowire.Number = 10
)

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// marshal encodes r. Zero-valued fields are omitted.
func (r Record) marshal() []byte {
	b := make([]byte, 0, 48)
	b = appendVarint(b, fieldKind, uint64(r.Kind))
	b = appendVarint(b, fieldTime, uint64(r.Time))
	b = appendVarint(b, fieldMod, uint64(r.Mod))
	b = appendDouble(b, fieldX, r.Pos.X)
	b = appendDouble(b, fieldY, r.Pos.Y)
	b = appendVarint(b, fieldButton, uint64(r.Button))
	b = appendVarint(b, fieldPress, protowire.EncodeBool(r.Press))
	b = appendDouble(b, fieldDeltaX, r.Delta.X)
	b = appendDouble(b, fieldDeltaY, r.Delta.Y)
	b = appendVarint(b, fieldDirection, uint64(r.Direction))
	return b
}

// unmarshal decodes b into r, skipping fields it does not know.
func (r *Record) unmarshal(b []byte) error {
	*r = Record{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("failed to read tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType && isVarintField(num):
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("failed to read field %d: %w", num, protowire.ParseError(n))
			}
			if err := r.setVarint(num, v); err != nil {
				return err
			}
			b = b[n:]

		case typ == protowire.Fixed64Type && isDoubleField(num):
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return fmt.Errorf("failed to read field %d: %w", num, protowire.ParseError(n))
			}
			r.setDouble(num, math.Float64frombits(v))
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("failed to skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if r.Kind < KindMouse || r.Kind > KindScroll {
		return fmt.Errorf("unknown record kind %d", r.Kind)
	}
	return nil
}

func isVarintField(num protowire.Number) bool {
	switch num {
	case fieldKind, fieldTime, fieldMod, fieldButton, fieldPress, fieldDirection:
		return true
	}
	return false
}

func isDoubleField(num protowire.Number) bool {
	switch num {
	case fieldX, fieldY, fieldDeltaX, fieldDeltaY:
		return true
	}
	return false
}

func (r *Record) setVarint(num protowire.Number, v uint64) error {
	switch num {
	case fieldKind:
		if v < uint64(KindMouse) || v > uint64(KindScroll) {
			return fmt.Errorf("unknown record kind %d", v)
		}
		r.Kind = Kind(v)
	case fieldTime:
		r.Time = uint32(v)
	case fieldMod:
		r.Mod = event.Modifiers(v)
	case fieldButton:
		r.Button = event.Button(v)
	case fieldPress:
		r.Press = protowire.DecodeBool(v)
	case fieldDirection:
		r.Direction = event.ScrollDirection(v)
	}
	return nil
}

func (r *Record) setDouble(num protowire.Number, v float64) {
	switch num {
	case fieldX:
		r.Pos.X = v
	case fieldY:
		r.Pos.Y = v
	case fieldDeltaX:
		r.Delta.X = v
	case fieldDeltaY:
		r.Delta.Y = v
	}
}
