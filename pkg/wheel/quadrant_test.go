package wheel

import (
	"errors"
	"testing"

	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

func mustHelper(t *testing.T, radius int, origin geom.Point, quadrants int) QuadrantHelper {
	t.Helper()
	h, err := NewQuadrantHelper(radius, origin, quadrants)
	if err != nil {
		t.Fatalf("NewQuadrantHelper: %v", err)
	}
	return h
}

func dataAt(t *testing.T, h QuadrantHelper, index, hw, hh int) *ViewData {
	t.Helper()
	p, err := h.ViewCenterPoint(index)
	if err != nil {
		t.Fatal(err)
	}
	var d ViewData
	d.Update(geom.RectAround(p, hw, hh), p, 10000)
	return &d
}

func TestAutoQuadrants(t *testing.T) {
	tests := []struct {
		origin geom.Point
		want   int
	}{
		{geom.Pt(0, 500), 1},
		{geom.Pt(-20, 300), 1},
		{geom.Pt(540, 0), 2},
		{geom.Pt(540, -100), 2},
		{geom.Pt(540, 960), 4},
	}
	for _, tt := range tests {
		if got := AutoQuadrants(tt.origin); got != tt.want {
			t.Errorf("AutoQuadrants(%v) = %d, want %d", tt.origin, got, tt.want)
		}
	}
}

func TestNewQuadrantHelperErrors(t *testing.T) {
	if _, err := NewQuadrantHelper(0, geom.Point{}, 1); !ferrors.Is(err, ferrors.ErrCodeInvalidRadius) {
		t.Errorf("radius 0: error = %v", err)
	}
	if _, err := NewQuadrantHelper(100, geom.Point{}, 7); !ferrors.Is(err, ferrors.ErrCodeInvalidQuadrants) {
		t.Errorf("quadrants 7: error = %v", err)
	}
	h := mustHelper(t, 100, geom.Pt(0, 100), 0)
	if h.Table().Quadrants() != 1 {
		t.Errorf("auto quadrants = %d, want 1", h.Table().Quadrants())
	}
}

func TestFindNextViewCenterFirstClearPoint(t *testing.T) {
	h := mustHelper(t, 500, geom.Pt(0, 500), 1)
	prev := dataAt(t, h, 0, 50, 30)

	var got geom.Point
	if err := h.FindNextViewCenter(prev, 50, 30, &got); err != nil {
		t.Fatal(err)
	}

	// Brute force: the first index after 0 whose box clears the previous box.
	want := geom.Point{}
	for i, p := range h.Table().All() {
		if i == 0 {
			continue
		}
		r := geom.RectAround(p, 50, 30)
		if r.Top >= prev.Bottom || r.Bottom <= prev.Top || r.Right <= prev.Left {
			want = p
			break
		}
	}
	if got != want {
		t.Fatalf("FindNextViewCenter() = %v, want %v", got, want)
	}
	if got.Y != 560 {
		t.Errorf("next center y = %d, want 560 (boxes touch)", got.Y)
	}
}

func TestFindNextViewCenterNeverOverlaps(t *testing.T) {
	for q := 1; q <= 4; q++ {
		h := mustHelper(t, 300, geom.Pt(320, 320), q)
		d := dataAt(t, h, 0, 40, 25)
		var next geom.Point
		for step := 0; step < 30; step++ {
			err := h.FindNextViewCenter(d, 40, 25, &next)
			if errors.Is(err, ErrArcExhausted) {
				if h.Table().Circular() {
					t.Fatalf("q=%d: full circle reported exhaustion", q)
				}
				break
			}
			if err != nil {
				t.Fatalf("q=%d: %v", q, err)
			}
			r := geom.RectAround(next, 40, 25)
			if !(r.Top >= d.Bottom || r.Bottom <= d.Top || r.Right <= d.Left) {
				t.Fatalf("q=%d: %v overlaps %v", q, r, d.Rect())
			}
			d.Update(r, next, 10000)
		}
	}
}

func TestFindNextViewCenterArcExhausted(t *testing.T) {
	h := mustHelper(t, 200, geom.Pt(0, 0), 1)
	last := h.Table().Len() - 1
	prev := dataAt(t, h, last, 20, 20)
	var p geom.Point
	if err := h.FindNextViewCenter(prev, 20, 20, &p); !errors.Is(err, ErrArcExhausted) {
		t.Errorf("error = %v, want ErrArcExhausted", err)
	}
}

func TestFindNextViewCenterWrapsFullCircle(t *testing.T) {
	h := mustHelper(t, 200, geom.Pt(300, 300), 4)
	n := h.Table().Len()
	prev := dataAt(t, h, n-3, 10, 10)
	var p geom.Point
	if err := h.FindNextViewCenter(prev, 10, 10, &p); err != nil {
		t.Fatal(err)
	}
	i, _ := h.ViewCenterPointIndex(p)
	if i >= n-3 {
		t.Errorf("next index = %d, want a wrapped index", i)
	}
}

func TestFindPreviousViewCenterMirrorsNext(t *testing.T) {
	h := mustHelper(t, 500, geom.Pt(0, 500), 1)
	first := dataAt(t, h, 0, 50, 30)
	var next geom.Point
	if err := h.FindNextViewCenter(first, 50, 30, &next); err != nil {
		t.Fatal(err)
	}
	nextIdx, _ := h.ViewCenterPointIndex(next)

	// Step a few indices further so there is room before it.
	far := dataAt(t, h, nextIdx+40, 50, 30)
	var prev geom.Point
	if err := h.FindPreviousViewCenter(far, 50, 30, &prev); err != nil {
		t.Fatal(err)
	}
	r := geom.RectAround(prev, 50, 30)
	if !(r.Bottom <= far.Top || r.Top >= far.Bottom || r.Left >= far.Right) {
		t.Fatalf("previous box %v overlaps %v", r, far.Rect())
	}
	prevIdx, _ := h.ViewCenterPointIndex(prev)
	if prevIdx >= nextIdx+40 {
		t.Errorf("previous index %d not before %d", prevIdx, nextIdx+40)
	}

	// Nothing fits before the start of the arc.
	if err := h.FindPreviousViewCenter(first, 50, 30, &prev); !errors.Is(err, ErrArcExhausted) {
		t.Errorf("error at arc start = %v, want ErrArcExhausted", err)
	}
}

func TestIndexLookups(t *testing.T) {
	h := mustHelper(t, 80, geom.Pt(100, 100), 4)
	n := h.Table().Len()

	for i := 0; i < n; i++ {
		p, err := h.ViewCenterPoint(i)
		if err != nil {
			t.Fatal(err)
		}
		j, err := h.ViewCenterPointIndex(p)
		if err != nil || j != i {
			t.Fatalf("ViewCenterPointIndex(ViewCenterPoint(%d)) = %d, %v", i, j, err)
		}
	}

	if _, err := h.ViewCenterPointIndex(geom.Pt(100, 100)); !ferrors.Is(err, ferrors.ErrCodeInvariantViolation) {
		t.Errorf("center lookup error = %v, want invariant violation", err)
	}
	if _, err := h.ViewCenterPoint(n); !ferrors.Is(err, ferrors.ErrCodeInvariantViolation) {
		t.Errorf("out of range point error = %v", err)
	}

	tests := []struct {
		raw, want int
	}{
		{n, 0},
		{-1, n - 1},
		{5, 5},
		{n + 7, 7},
	}
	for _, tt := range tests {
		got, err := h.NewCenterPointIndex(tt.raw)
		if err != nil || got != tt.want {
			t.Errorf("NewCenterPointIndex(%d) = %d, %v, want %d", tt.raw, got, err, tt.want)
		}
	}
	if _, err := h.NewCenterPointIndex(3 * n); !ferrors.Is(err, ferrors.ErrCodeInvariantViolation) {
		t.Errorf("NewCenterPointIndex(3N) error = %v", err)
	}
}

func TestOffset(t *testing.T) {
	h := mustHelper(t, 500, geom.Pt(0, 500), 1)
	tests := []struct {
		name string
		r    geom.Rect
		want int
	}{
		{"inside", geom.Rect{Left: 100, Top: 100, Right: 200, Bottom: 160}, 740},
		{"below bottom", geom.Rect{Left: 100, Top: 880, Right: 200, Bottom: 940}, -40},
		{"past left", geom.Rect{Left: -30, Top: 500, Right: 70, Bottom: 560}, -30},
		{"past both", geom.Rect{Left: -10, Top: 880, Right: 90, Bottom: 940}, -40},
		{"on left edge", geom.Rect{Left: 0, Top: 500, Right: 100, Bottom: 560}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Offset(900, tt.r); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckBoundsReached(t *testing.T) {
	h := mustHelper(t, 200, geom.Pt(300, 300), 4)
	n := h.Table().Len()
	home, _ := h.ViewCenterPoint(0)
	away, _ := h.ViewCenterPoint(n - 12)
	first := geom.RectAround(home, 20, 20)
	above := geom.RectAround(away, 20, 20)
	last := geom.Rect{Left: 100, Top: 700, Right: 140, Bottom: 740}
	inside := geom.Rect{Left: 100, Top: 400, Right: 140, Bottom: 440}

	tests := []struct {
		name           string
		dy             int
		first, last    geom.Rect
		fReach, lReach bool
		want           int
	}{
		{"free forward", 15, first, inside, false, false, -15},
		{"free backward", -15, first, inside, false, false, 15},
		{"last inside", 15, first, inside, false, true, 0},
		{"last protrudes", 15, first, last, false, true, -15},
		{"last protrudes less", 200, first, last, false, true, -(740 - 600)},
		{"first at home", -15, first, inside, true, false, 0},
		{"first before home", -15, above, inside, true, false, 12},
		{"first before home small dy", -5, above, inside, true, false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.CheckBoundsReached(600, 0, tt.dy, tt.first, tt.last, tt.fReach, tt.lReach)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("CheckBoundsReached() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStepsToHome(t *testing.T) {
	arc := mustHelper(t, 200, geom.Pt(0, 200), 1).(*arcHelper)
	ring := mustHelper(t, 200, geom.Pt(300, 300), 4).(*arcHelper)
	n := ring.Table().Len()

	tests := []struct {
		name  string
		h     *arcHelper
		index int
		want  int
	}{
		{"arc home", arc, 0, 0},
		{"arc along", arc, arc.Table().Len() / 2, 0},
		{"ring home", ring, 0, 0},
		{"ring before home", ring, n - 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.h.ViewCenterPoint(tt.index)
			if err != nil {
				t.Fatal(err)
			}
			got, err := tt.h.stepsToHome(p)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("stepsToHome(index %d) = %d, want %d", tt.index, got, tt.want)
			}
		})
	}
}

func TestCheckBoundsReachedTopClamp(t *testing.T) {
	h := mustHelper(t, 200, geom.Pt(300, 100), 4)
	n := h.Table().Len()
	p, _ := h.ViewCenterPoint(n - 120)
	first := geom.RectAround(p, 20, 20)
	if first.Top >= 0 {
		t.Fatalf("test setup: first view top %d should be above the viewport", first.Top)
	}
	got, err := h.CheckBoundsReached(600, 0, -500, first, first, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if got > -first.Top {
		t.Errorf("delta = %d exceeds top offset %d", got, -first.Top)
	}
	if got != -first.Top {
		t.Errorf("delta = %d, want %d", got, -first.Top)
	}
}
