package wheel

import (
	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

// Layouter places single views on the circle and updates the pass's
// ViewData after each placement.
type Layouter struct {
	helper QuadrantHelper
	host   Host
}

// NewLayouter returns a layouter placing views of host with helper.
func NewLayouter(helper QuadrantHelper, host Host) *Layouter {
	return &Layouter{helper: helper, host: host}
}

// halfExtents measures v and rejects views that do not fit in the circle.
func (l *Layouter) halfExtents(v View) (int, int, error) {
	w, h := l.host.Measure(v)
	if d := 2 * l.helper.Radius(); w > d || h > d {
		return 0, 0, ferrors.New(ferrors.ErrCodeOversizeItem, "view of %dx%d exceeds the circle diameter %d", w, h, d)
	}
	return w / 2, h / 2, nil
}

// LayoutViewAt places v centered on center, which must be a table point.
func (l *Layouter) LayoutViewAt(v View, center geom.Point, data *ViewData) error {
	hw, hh, err := l.halfExtents(v)
	if err != nil {
		return err
	}
	l.place(v, center, hw, hh, data)
	return nil
}

// LayoutFirstView places v on table index 0, the rest position of the first data item.
func (l *Layouter) LayoutFirstView(v View, data *ViewData) error {
	p, err := l.helper.ViewCenterPoint(0)
	if err != nil {
		return err
	}
	return l.LayoutViewAt(v, p, data)
}

// LayoutNextView places v after the view described by prev, then makes prev
// describe v. scratch receives the new center.
func (l *Layouter) LayoutNextView(v View, prev *ViewData, scratch *geom.Point) error {
	hw, hh, err := l.halfExtents(v)
	if err != nil {
		return err
	}
	if err := l.helper.FindNextViewCenter(prev, hw, hh, scratch); err != nil {
		return err
	}
	l.place(v, *scratch, hw, hh, prev)
	return nil
}

// LayoutPreviousView places v before the view described by next, then makes
// next describe v.
func (l *Layouter) LayoutPreviousView(v View, next *ViewData, scratch *geom.Point) error {
	hw, hh, err := l.halfExtents(v)
	if err != nil {
		return err
	}
	if err := l.helper.FindPreviousViewCenter(next, hw, hh, scratch); err != nil {
		return err
	}
	l.place(v, *scratch, hw, hh, next)
	return nil
}

func (l *Layouter) place(v View, center geom.Point, hw, hh int, data *ViewData) {
	r := geom.RectAround(center, hw, hh)
	l.host.Place(v, r)
	data.Update(r, center, l.host.ViewportHeight())
}

// LeftMode reports whether the arc leaves the viewport through its left edge,
// which happens when the viewport is taller than the radius. Otherwise it
// leaves through the bottom edge.
func (l *Layouter) LeftMode() bool {
	return l.host.ViewportHeight() > l.helper.Radius()
}

// IsLastLaidOutView reports whether a view placed at r is the last one worth
// materializing because it reached the edge the arc leaves through.
func (l *Layouter) IsLastLaidOutView(r geom.Rect) bool {
	if l.LeftMode() {
		return r.Left <= 0
	}
	return r.Bottom >= l.host.ViewportHeight()
}
