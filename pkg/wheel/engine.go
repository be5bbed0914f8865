package wheel

import (
	"errors"

	"github.com/charmbracelet/log"

	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

// engine holds the state a layout or scroll pass works on and the edge
// operations shared by both scroll strategies.
type engine struct {
	helper   QuadrantHelper
	layouter *Layouter
	host     Host
	window   Window
	logger   *log.Logger
}

// passStats counts what a pass did at the window edges.
type passStats struct {
	recycled int
	added    int
}

func (e *engine) childBounds(i int) geom.Rect { return e.host.ChildAt(i).Bounds() }

func (e *engine) lastIndex() int { return e.host.ChildCount() - 1 }

func (e *engine) discard(v View, rec Recycler) {
	e.host.RemoveView(v)
	rec.Recycle(v)
}

// dropHead recycles the first child and advances the window start.
func (e *engine) dropHead(rec Recycler, st *passStats) {
	e.discard(e.host.ChildAt(0), rec)
	e.window.First++
	st.recycled++
}

// dropTail recycles the last child and pulls the window end back.
func (e *engine) dropTail(rec Recycler, st *passStats) {
	e.discard(e.host.ChildAt(e.lastIndex()), rec)
	e.window.Last--
	st.recycled++
}

// dropFrom recycles child i and every child after it.
func (e *engine) dropFrom(i int, rec Recycler, st *passStats) {
	for e.host.ChildCount() > i {
		e.dropTail(rec, st)
	}
}

// clear recycles every child and empties the window.
func (e *engine) clear(rec Recycler) {
	for e.host.ChildCount() > 0 {
		e.discard(e.host.ChildAt(e.lastIndex()), rec)
	}
	e.window = Window{}
}

// recycleHead drops leading children that moved further than their own
// height above the top padding. The last child is never dropped.
func (e *engine) recycleHead(rec Recycler, st *passStats) {
	top := e.host.PaddingTop()
	for e.host.ChildCount() > 1 {
		r := e.childBounds(0)
		if r.Bottom >= top-r.Height() {
			return
		}
		e.dropHead(rec, st)
	}
}

// recycleTail drops trailing children that moved further than their own
// size past the edge the arc leaves through.
func (e *engine) recycleTail(rec Recycler, st *passStats) {
	height := e.host.ViewportHeight()
	left := e.layouter.LeftMode()
	for e.host.ChildCount() > 1 {
		r := e.childBounds(e.lastIndex())
		gone := r.Top > height+r.Height()
		if left {
			gone = r.Right < -r.Width()
		}
		if !gone {
			return
		}
		e.dropTail(rec, st)
	}
}

// fillTail materializes data items after the window until the last one
// reaches the edge the arc leaves through or the data runs out.
func (e *engine) fillTail(rec Recycler, scratch *geom.Point, st *passStats) error {
	height := e.host.ViewportHeight()
	for e.window.Last < e.host.ItemCount() {
		last := e.childBounds(e.lastIndex())
		if e.layouter.IsLastLaidOutView(last) {
			return nil
		}
		var data ViewData
		data.Update(last, last.Center(), height)

		v := rec.ViewForPosition(e.window.Last)
		e.host.AddView(v)
		err := e.layouter.LayoutNextView(v, &data, scratch)
		if errors.Is(err, ErrArcExhausted) {
			e.discard(v, rec)
			return nil
		}
		if err != nil {
			e.discard(v, rec)
			return err
		}
		// A full circle can bring the tail back around onto the head.
		if e.host.ChildCount() > 2 && data.Rect().Overlaps(e.childBounds(0)) {
			e.discard(v, rec)
			return nil
		}
		e.window.Last++
		st.added++
	}
	return nil
}

// fillHead materializes data items before the window while the first view
// leaves a gap below the top padding.
func (e *engine) fillHead(rec Recycler, scratch *geom.Point, st *passStats) error {
	height := e.host.ViewportHeight()
	top := e.host.PaddingTop()
	for e.window.First > 0 {
		first := e.childBounds(0)
		if first.Top <= top {
			return nil
		}
		var data ViewData
		data.Update(first, first.Center(), height)

		v := rec.ViewForPosition(e.window.First - 1)
		e.host.AddViewAt(v, 0)
		err := e.layouter.LayoutPreviousView(v, &data, scratch)
		if errors.Is(err, ErrArcExhausted) {
			e.discard(v, rec)
			return nil
		}
		if err != nil {
			e.discard(v, rec)
			return err
		}
		if e.host.ChildCount() > 2 && data.Rect().Overlaps(e.childBounds(e.lastIndex())) {
			e.discard(v, rec)
			return nil
		}
		e.window.First--
		st.added++
	}
	return nil
}

// checkWindow verifies the window against the host's children.
func (e *engine) checkWindow() error {
	w, count := e.window, e.host.ItemCount()
	if w.First < 0 || w.First > w.Last || w.Last > count {
		return ferrors.New(ferrors.ErrCodeInvariantViolation, "window [%d, %d) outside [0, %d]", w.First, w.Last, count)
	}
	if w.Len() != e.host.ChildCount() {
		return ferrors.New(ferrors.ErrCodeInvariantViolation, "window [%d, %d) does not match %d children", w.First, w.Last, e.host.ChildCount())
	}
	return nil
}
