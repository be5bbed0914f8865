// Package geom holds the integer pixel geometry shared by the circle table,
// the wheel layout and the hosts that display it.
//
// Coordinates follow screen conventions: x grows to the right and y grows
// downward, so walking a circle with increasing angle is clockwise on screen.
package geom

import "fmt"

// Point is an integer pixel coordinate. Points compare by value and can be
// used directly as map keys.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Set overwrites p in place. Scroll passes use it on a single caller-owned
// buffer instead of allocating a point per view.
func (p *Point) Set(x, y int) {
	p.X = x
	p.Y = y
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an axis-aligned box given by its edges. Right and Bottom are
// exclusive in the usual pixel sense: Width is Right-Left.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// RectAround returns the box of the given half extents centered on c.
func RectAround(c Point, halfWidth, halfHeight int) Rect {
	return Rect{
		Left:   c.X - halfWidth,
		Top:    c.Y - halfHeight,
		Right:  c.X + halfWidth,
		Bottom: c.Y + halfHeight,
	}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Center returns the midpoint of r, rounded toward the top-left.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width()/2, Y: r.Top + r.Height()/2}
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}
