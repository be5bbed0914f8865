package wheel

import "github.com/matzehuels/ferris/pkg/geom"

// View is a positioned child of the host.
type View interface {
	// Bounds returns the rectangle the view was last placed at.
	Bounds() geom.Rect
}

// Host is the scrollable container the wheel lays its views out in.
type Host interface {
	// Measure returns the view's desired size.
	Measure(v View) (width, height int)
	// Place positions the view at r.
	Place(v View, r geom.Rect)

	ChildCount() int
	ChildAt(i int) View
	// AddView appends v after the last child.
	AddView(v View)
	// AddViewAt inserts v before the child at index i.
	AddViewAt(v View, i int)
	RemoveView(v View)

	ViewportHeight() int
	PaddingTop() int
	// ItemCount returns the number of data items behind the views.
	ItemCount() int
}

// Recycler materializes views for data positions and takes them back.
type Recycler interface {
	ViewForPosition(position int) View
	Recycle(v View)
}

// Window is the range of data positions backed by child views.
// First is inclusive, Last exclusive.
type Window struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Len returns the number of positions in the window.
func (w Window) Len() int { return w.Last - w.First }

// Contains reports whether position is backed by a view.
func (w Window) Contains(position int) bool { return position >= w.First && position < w.Last }
