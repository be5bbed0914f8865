// Package circle builds the point table that every wheel placement walks.
//
// A [Table] is a dense, immutable bijection between indices [0, N) and the
// integer pixels that approximate a circle's circumference. Index 0 is the
// rightmost point of the circle (angle 0) and indices grow clockwise on
// screen (y grows downward), one pixel step at a time in the dominant axis.
//
// Only the active quadrants are generated, in clockwise order:
//
//	1: bottom-right
//	2: bottom-right, bottom-left
//	3: bottom-right, bottom-left, top-left
//	4: the full circle
//
// Only a full circle is [Table.Circular]; shorter tables are arcs whose two
// ends do not meet.
package circle

import (
	"iter"

	"github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

// Table maps indices to circumference points and back. It is read-only after
// Build and safe for concurrent readers.
type Table struct {
	radius    int
	origin    geom.Point
	quadrants int
	points    []geom.Point
	index     map[geom.Point]int
}

// Build generates the table for a circle of the given radius centered on
// origin, restricted to the first quadrants (1 to 4) in clockwise order.
func Build(radius int, origin geom.Point, quadrants int) (*Table, error) {
	if err := errors.ValidateRadius(radius); err != nil {
		return nil, err
	}
	if quadrants < 1 || quadrants > errors.MaxQuadrants {
		return nil, errors.New(errors.ErrCodeInvalidQuadrants, "table needs 1 to %d quadrants, got %d", errors.MaxQuadrants, quadrants)
	}

	rel := octant(radius)
	rel = mirrorOctant(rel)
	if quadrants >= 2 {
		rel = mirrorQuadrant(rel)
	}
	switch quadrants {
	case 3:
		rel = mirrorSemicircle(rel, true)
	case 4:
		rel = mirrorSemicircle(rel, false)
	}

	t := &Table{
		radius:    radius,
		origin:    origin,
		quadrants: quadrants,
		points:    make([]geom.Point, len(rel)),
		index:     make(map[geom.Point]int, len(rel)),
	}
	for i, p := range rel {
		abs := p.Add(origin)
		if _, dup := t.index[abs]; dup {
			return nil, errors.New(errors.ErrCodeInvariantViolation, "duplicate circle point %v at index %d", abs, i)
		}
		t.points[i] = abs
		t.index[abs] = i
	}
	return t, nil
}

// octant runs the midpoint circle algorithm from (r, 0) toward the 45° diagonal.
// With y pointing down this is the clockwise direction.
func octant(r int) []geom.Point {
	pts := make([]geom.Point, 0, r)
	x, y, d := r, 0, 1-r
	for y <= x {
		pts = append(pts, geom.Pt(x, y))
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
	return pts
}

// mirrorOctant completes the quadrant from the diagonal down to (0, r).
// A point on the diagonal is its own mirror image and is not repeated.
func mirrorOctant(pts []geom.Point) []geom.Point {
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		if p.X == p.Y {
			continue
		}
		pts = append(pts, geom.Pt(p.Y, p.X))
	}
	return pts
}

// mirrorQuadrant continues from (0, r) to (-r, 0) across the vertical axis.
func mirrorQuadrant(pts []geom.Point) []geom.Point {
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		if p.X == 0 {
			continue
		}
		pts = append(pts, geom.Pt(-p.X, p.Y))
	}
	return pts
}

// mirrorSemicircle continues from (-r, 0) over the top back toward (r, 0).
// With leftOnly set it stops once the top-left quadrant is complete.
func mirrorSemicircle(pts []geom.Point, leftOnly bool) []geom.Point {
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		if leftOnly && p.X > 0 {
			break
		}
		if p.Y == 0 {
			continue
		}
		pts = append(pts, geom.Pt(p.X, -p.Y))
	}
	return pts
}

// Len returns the number of points N.
func (t *Table) Len() int { return len(t.points) }

// Radius returns the radius the table was built for.
func (t *Table) Radius() int { return t.radius }

// Origin returns the circle center.
func (t *Table) Origin() geom.Point { return t.origin }

// Quadrants returns the number of active quadrants.
func (t *Table) Quadrants() int { return t.quadrants }

// Circular reports whether the last index is a circumferential neighbor of
// index 0, which only holds for the full circle.
func (t *Table) Circular() bool { return t.quadrants == errors.MaxQuadrants }

// At returns the point stored at index i.
func (t *Table) At(i int) (geom.Point, bool) {
	if i < 0 || i >= len(t.points) {
		return geom.Point{}, false
	}
	return t.points[i], true
}

// IndexOf returns the index of p. Only exact table members are found.
func (t *Table) IndexOf(p geom.Point) (int, bool) {
	i, ok := t.index[p]
	return i, ok
}

// Wrap folds an index that drifted at most one lap outside [0, N) back into
// range. It reports false when raw is further away than that.
func (t *Table) Wrap(raw int) (int, bool) {
	n := len(t.points)
	switch {
	case raw < 0:
		raw += n
	case raw >= n:
		raw -= n
	}
	if raw < 0 || raw >= n {
		return 0, false
	}
	return raw, true
}

// Points returns a copy of the points in index order.
func (t *Table) Points() []geom.Point {
	out := make([]geom.Point, len(t.points))
	copy(out, t.points)
	return out
}

// All iterates over index/point pairs in clockwise order.
func (t *Table) All() iter.Seq2[int, geom.Point] {
	return func(yield func(int, geom.Point) bool) {
		for i, p := range t.points {
			if !yield(i, p) {
				return
			}
		}
	}
}
