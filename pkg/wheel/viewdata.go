package wheel

import "github.com/matzehuels/ferris/pkg/geom"

// ViewData describes the most recently placed view of a layout pass. One
// value is threaded by pointer through the pass and overwritten after each
// placement, so it always describes the view the next placement is relative to.
type ViewData struct {
	Top     int
	Bottom  int
	Left    int
	Right   int
	Center  geom.Point
	Visible bool
}

// Update records a placement.
func (d *ViewData) Update(r geom.Rect, center geom.Point, viewportHeight int) {
	d.Top = r.Top
	d.Bottom = r.Bottom
	d.Left = r.Left
	d.Right = r.Right
	d.Center = center
	d.Visible = r.Bottom > 0 && r.Top < viewportHeight && r.Right > 0
}

// Rect returns the recorded edges.
func (d *ViewData) Rect() geom.Rect {
	return geom.Rect{Left: d.Left, Top: d.Top, Right: d.Right, Bottom: d.Bottom}
}
