package wheel

import (
	"errors"

	"github.com/matzehuels/ferris/pkg/circle"
	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

// ErrArcExhausted is returned by a table walk that ran past either end of a
// partial arc. Full circles wrap around and never return it.
var ErrArcExhausted = errors.New("arc exhausted")

// QuadrantHelper finds capsule centers on the circle and answers the
// index and viewport queries the layouter and the scroll handlers need.
type QuadrantHelper interface {
	// FindNextViewCenter walks clockwise from prev's center and stores in out
	// the first center whose box of the given half extents clears prev.
	FindNextViewCenter(prev *ViewData, halfWidth, halfHeight int, out *geom.Point) error
	// FindPreviousViewCenter is the counter-clockwise mirror of FindNextViewCenter.
	FindPreviousViewCenter(next *ViewData, halfWidth, halfHeight int, out *geom.Point) error

	ViewCenterPointIndex(p geom.Point) (int, error)
	ViewCenterPoint(index int) (geom.Point, error)
	// NewCenterPointIndex folds raw back into the table by at most one lap.
	NewCenterPointIndex(raw int) (int, error)

	// CheckBoundsReached converts a requested scroll dy into the index delta
	// to apply, clamped at the data boundaries.
	CheckBoundsReached(viewportHeight, paddingTop, dy int, first, last geom.Rect, firstReached, lastReached bool) (int, error)
	// Offset reports how far r protrudes out of the viewport along the edge the
	// arc leaves through. Negative values protrude, positive values are a gap.
	Offset(viewportHeight int, r geom.Rect) int

	Table() *circle.Table
	Radius() int
}

// AutoQuadrants picks how many quadrants a circle centered on origin needs:
// one when the center sits on or left of the viewport's left edge, two when
// it sits on or above the top edge, and the full circle otherwise.
func AutoQuadrants(origin geom.Point) int {
	switch {
	case origin.X <= 0:
		return 1
	case origin.Y <= 0:
		return 2
	default:
		return 4
	}
}

// NewQuadrantHelper builds the point table for the circle and returns the
// helper that walks it. quadrants 0 selects AutoQuadrants.
func NewQuadrantHelper(radius int, origin geom.Point, quadrants int) (QuadrantHelper, error) {
	if err := ferrors.ValidateQuadrants(quadrants); err != nil {
		return nil, err
	}
	if quadrants == 0 {
		quadrants = AutoQuadrants(origin)
	}
	t, err := circle.Build(radius, origin, quadrants)
	if err != nil {
		return nil, err
	}
	return &arcHelper{table: t}, nil
}

// arcHelper serves every quadrant count. Only the wrap behavior differs
// between full circles and partial arcs.
type arcHelper struct {
	table *circle.Table
}

func (h *arcHelper) Table() *circle.Table { return h.table }
func (h *arcHelper) Radius() int          { return h.table.Radius() }

func (h *arcHelper) FindNextViewCenter(prev *ViewData, halfWidth, halfHeight int, out *geom.Point) error {
	start, err := h.ViewCenterPointIndex(prev.Center)
	if err != nil {
		return err
	}
	n := h.table.Len()
	for step := 1; step < n; step++ {
		i, ok := h.step(start, step)
		if !ok {
			return ErrArcExhausted
		}
		p, _ := h.table.At(i)
		top, bottom, right := p.Y-halfHeight, p.Y+halfHeight, p.X+halfWidth
		if top >= prev.Bottom || bottom <= prev.Top || right <= prev.Left {
			out.Set(p.X, p.Y)
			return nil
		}
	}
	return ferrors.New(ferrors.ErrCodeInvariantViolation, "no free center after %v in a full lap", prev.Center)
}

func (h *arcHelper) FindPreviousViewCenter(next *ViewData, halfWidth, halfHeight int, out *geom.Point) error {
	start, err := h.ViewCenterPointIndex(next.Center)
	if err != nil {
		return err
	}
	n := h.table.Len()
	for step := 1; step < n; step++ {
		i, ok := h.step(start, -step)
		if !ok {
			return ErrArcExhausted
		}
		p, _ := h.table.At(i)
		top, bottom, left := p.Y-halfHeight, p.Y+halfHeight, p.X-halfWidth
		if bottom <= next.Top || top >= next.Bottom || left >= next.Right {
			out.Set(p.X, p.Y)
			return nil
		}
	}
	return ferrors.New(ferrors.ErrCodeInvariantViolation, "no free center before %v in a full lap", next.Center)
}

// step moves by steps from start, wrapping only on a full circle.
func (h *arcHelper) step(start, steps int) (int, bool) {
	raw := start + steps
	if raw >= 0 && raw < h.table.Len() {
		return raw, true
	}
	if !h.table.Circular() {
		return 0, false
	}
	return h.table.Wrap(raw)
}

func (h *arcHelper) ViewCenterPointIndex(p geom.Point) (int, error) {
	i, ok := h.table.IndexOf(p)
	if !ok {
		return 0, ferrors.New(ferrors.ErrCodeInvariantViolation, "center %v is not on the circle", p)
	}
	return i, nil
}

func (h *arcHelper) ViewCenterPoint(index int) (geom.Point, error) {
	p, ok := h.table.At(index)
	if !ok {
		return geom.Point{}, ferrors.New(ferrors.ErrCodeInvariantViolation, "index %d out of range [0, %d)", index, h.table.Len())
	}
	return p, nil
}

func (h *arcHelper) NewCenterPointIndex(raw int) (int, error) {
	i, ok := h.table.Wrap(raw)
	if !ok {
		return 0, ferrors.New(ferrors.ErrCodeInvariantViolation, "index %d is more than one lap out of range [0, %d)", raw, h.table.Len())
	}
	return i, nil
}

func (h *arcHelper) CheckBoundsReached(viewportHeight, paddingTop, dy int, first, last geom.Rect, firstReached, lastReached bool) (int, error) {
	switch {
	case dy > 0 && lastReached:
		return max(-dy, min(h.Offset(viewportHeight, last), 0)), nil
	case dy < 0 && firstReached:
		home, err := h.stepsToHome(first.Center())
		if err != nil {
			return 0, err
		}
		delta := min(-dy, home)
		if offset := first.Top - paddingTop; offset < 0 {
			delta = min(delta, -offset)
		}
		return delta, nil
	default:
		return -dy, nil
	}
}

// stepsToHome counts the forward steps that bring a center back to index 0,
// where the first data item rests. Centers at or past index 0 are home.
// On a partial arc that is always the case: the first item is clamped to
// index 0 when it would leave through the start of the arc, and settleHome
// parks it there after head extension.
func (h *arcHelper) stepsToHome(center geom.Point) (int, error) {
	i, err := h.ViewCenterPointIndex(center)
	if err != nil {
		return 0, err
	}
	n := h.table.Len()
	if h.table.Circular() && i > n/2 {
		return n - i, nil
	}
	return 0, nil
}

func (h *arcHelper) Offset(viewportHeight int, r geom.Rect) int {
	bottomOffset := r.Bottom - viewportHeight
	if r.Left <= 0 {
		if bottomOffset > 0 {
			return min(r.Left, -bottomOffset)
		}
		return r.Left
	}
	return -bottomOffset
}

var _ QuadrantHelper = (*arcHelper)(nil)
