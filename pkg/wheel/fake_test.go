package wheel

import (
	"slices"
	"testing"

	"github.com/matzehuels/ferris/pkg/geom"
)

type fakeView struct {
	pos    int
	w, h   int
	bounds geom.Rect
}

func (v *fakeView) Bounds() geom.Rect { return v.bounds }

// fakeHost is a minimal Host and Recycler over items of one size.
type fakeHost struct {
	height     int
	paddingTop int
	items      int
	w, h       int
	sizes      map[int][2]int
	children   []*fakeView
	recycled   int
	created    int
}

func newFakeHost(height, items, w, h int) *fakeHost {
	return &fakeHost{height: height, items: items, w: w, h: h}
}

func (f *fakeHost) Measure(v View) (int, int) {
	fv := v.(*fakeView)
	return fv.w, fv.h
}

func (f *fakeHost) Place(v View, r geom.Rect) { v.(*fakeView).bounds = r }
func (f *fakeHost) ChildCount() int          { return len(f.children) }
func (f *fakeHost) ChildAt(i int) View       { return f.children[i] }
func (f *fakeHost) AddView(v View)           { f.children = append(f.children, v.(*fakeView)) }
func (f *fakeHost) AddViewAt(v View, i int) {
	f.children = slices.Insert(f.children, i, v.(*fakeView))
}
func (f *fakeHost) RemoveView(v View) {
	if i := slices.Index(f.children, v.(*fakeView)); i >= 0 {
		f.children = slices.Delete(f.children, i, i+1)
	}
}
func (f *fakeHost) ViewportHeight() int { return f.height }
func (f *fakeHost) PaddingTop() int     { return f.paddingTop }
func (f *fakeHost) ItemCount() int      { return f.items }

func (f *fakeHost) ViewForPosition(pos int) View {
	f.created++
	w, h := f.w, f.h
	if s, ok := f.sizes[pos]; ok {
		w, h = s[0], s[1]
	}
	return &fakeView{pos: pos, w: w, h: h}
}

func (f *fakeHost) Recycle(View) { f.recycled++ }

// checkLayout verifies the structural properties every pass must keep.
func checkLayout(t *testing.T, m *Manager, f *fakeHost) {
	t.Helper()
	w := m.Window()
	if w.First < 0 || w.First > w.Last || w.Last > f.items {
		t.Fatalf("window %+v outside [0, %d]", w, f.items)
	}
	if w.Len() != len(f.children) {
		t.Fatalf("window %+v holds %d children", w, len(f.children))
	}
	tbl := m.Helper().Table()
	for i, c := range f.children {
		if c.pos != w.First+i {
			t.Fatalf("child %d bound to position %d, want %d", i, c.pos, w.First+i)
		}
		if _, ok := tbl.IndexOf(c.bounds.Center()); !ok {
			t.Fatalf("child %d center %v is not on the circle", i, c.bounds.Center())
		}
	}
}

// checkTouching verifies consecutive children clear each other the way
// FindNextViewCenter accepts them.
func checkTouching(t *testing.T, f *fakeHost) {
	t.Helper()
	for i := 1; i < len(f.children); i++ {
		a, b := f.children[i-1].bounds, f.children[i].bounds
		if !(b.Top >= a.Bottom || b.Bottom <= a.Top || b.Right <= a.Left) {
			t.Fatalf("children %d %v and %d %v overlap", i-1, a, i, b)
		}
	}
}

// checkDisjoint verifies that no two children overlap, wherever they sit
// on the circle.
func checkDisjoint(t *testing.T, f *fakeHost) {
	t.Helper()
	for i := range f.children {
		for j := i + 1; j < len(f.children); j++ {
			a, b := f.children[i].bounds, f.children[j].bounds
			if a.Overlaps(b) {
				t.Fatalf("child %d %v overlaps child %d %v", j, b, i, a)
			}
		}
	}
}
