package handler

import (
	"github.com/bnema/knobkit/internal/event"
	"github.com/bnema/knobkit/internal/geom"
)

type fakeHost struct {
	size     geom.Point
	repaints int
}

func newFakeHost(w, h float64) *fakeHost {
	return &fakeHost{size: geom.Pt(w, h)}
}

func (h *fakeHost) Contains(p geom.Point) bool {
	return geom.Rect{Max: h.size}.Contains(p)
}

func (h *fakeHost) Size() geom.Point { return h.size }

func (h *fakeHost) Repaint() { h.repaints++ }

func press(x, y float64) *event.Mouse {
	return &event.Mouse{Button: event.ButtonLeft, Press: true, Pos: geom.Pt(x, y)}
}

func release(x, y float64) *event.Mouse {
	return &event.Mouse{Button: event.ButtonLeft, Pos: geom.Pt(x, y)}
}

func motion(x, y float64) *event.Motion {
	return &event.Motion{Pos: geom.Pt(x, y)}
}

func scroll(x, y float64, dir event.ScrollDirection) *event.Scroll {
	return &event.Scroll{Pos: geom.Pt(x, y), Direction: dir}
}
