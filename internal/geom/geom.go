/*
Package geom provides the float64 point and rectangle types used for
hit-testing widget input.

The coordinate space has the origin in the top left corner with the axes
extending right and down.
*/
package geom

// A Point is a two dimensional point.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the point p+p2.
func (p Point) Add(p2 Point) Point {
	return Point{X: p.X + p2.X, Y: p.Y + p2.Y}
}

// Sub returns the vector p-p2.
func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// A Rect contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y.
type Rect struct {
	Min, Max Point
}

// XYWH returns the rectangle with top left corner (x, y) and size w by h.
func XYWH(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// X returns the left edge of r.
func (r Rect) X() float64 { return r.Min.X }

// Y returns the top edge of r.
func (r Rect) Y() float64 { return r.Min.Y }

// Dx returns r's width.
func (r Rect) Dx() float64 {
	return r.Max.X - r.Min.X
}

// Dy returns r's height.
func (r Rect) Dy() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns r's width and height.
func (r Rect) Size() Point {
	return Point{X: r.Dx(), Y: r.Dy()}
}

// Empty reports whether r represents the empty area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Add offsets r with the vector p.
func (r Rect) Add(p Point) Rect {
	return Rect{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

// Sub offsets r with the vector -p.
func (r Rect) Sub(p Point) Rect {
	return Rect{Min: r.Min.Sub(p), Max: r.Max.Sub(p)}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return r.ContainsX(p.X) && r.ContainsY(p.Y)
}

// ContainsX reports whether x lies within r's horizontal span.
func (r Rect) ContainsX(x float64) bool {
	return r.Min.X <= x && x < r.Max.X
}

// ContainsY reports whether y lies within r's vertical span.
func (r Rect) ContainsY(y float64) bool {
	return r.Min.Y <= y && y < r.Max.Y
}
