package circle

import (
	"testing"

	"github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mustBuild(t *testing.T, radius int, origin geom.Point, quadrants int) *Table {
	t.Helper()
	tbl, err := Build(radius, origin, quadrants)
	if err != nil {
		t.Fatalf("Build(%d, %v, %d): %v", radius, origin, quadrants, err)
	}
	return tbl
}

func TestBuildRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		radius    int
		quadrants int
		code      errors.Code
	}{
		{"zero radius", 0, 4, errors.ErrCodeInvalidRadius},
		{"negative radius", -3, 1, errors.ErrCodeInvalidRadius},
		{"no quadrants", 10, 0, errors.ErrCodeInvalidQuadrants},
		{"too many quadrants", 10, 5, errors.ErrCodeInvalidQuadrants},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.radius, geom.Point{}, tt.quadrants)
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBuildStartsAtAngleZero(t *testing.T) {
	origin := geom.Pt(0, 500)
	tbl := mustBuild(t, 500, origin, 1)
	p, ok := tbl.At(0)
	if !ok || p != geom.Pt(500, 500) {
		t.Fatalf("At(0) = %v,%v, want (500,500)", p, ok)
	}
	last, _ := tbl.At(tbl.Len() - 1)
	if last != geom.Pt(0, 1000) {
		t.Errorf("last point = %v, want (0,1000)", last)
	}
}

func TestBuildSizes(t *testing.T) {
	for _, r := range []int{1, 2, 7, 50, 333, 500} {
		q1 := mustBuild(t, r, geom.Point{}, 1).Len()
		q2 := mustBuild(t, r, geom.Point{}, 2).Len()
		q3 := mustBuild(t, r, geom.Point{}, 3).Len()
		q4 := mustBuild(t, r, geom.Point{}, 4).Len()
		if q2 != 2*q1-1 {
			t.Errorf("r=%d: 2 quadrants = %d, want %d", r, q2, 2*q1-1)
		}
		if q3 != q2+q1-1 {
			t.Errorf("r=%d: 3 quadrants = %d, want %d", r, q3, q2+q1-1)
		}
		if q4 != 2*q2-2 {
			t.Errorf("r=%d: 4 quadrants = %d, want %d", r, q4, 2*q2-2)
		}
	}
}

func TestBuildBijection(t *testing.T) {
	for q := 1; q <= 4; q++ {
		tbl := mustBuild(t, 250, geom.Pt(40, -30), q)
		seen := make(map[geom.Point]bool, tbl.Len())
		for i, p := range tbl.All() {
			if seen[p] {
				t.Fatalf("q=%d: point %v appears twice", q, p)
			}
			seen[p] = true
			j, ok := tbl.IndexOf(p)
			if !ok || j != i {
				t.Fatalf("q=%d: IndexOf(At(%d)) = %d,%v", q, i, j, ok)
			}
		}
		if len(seen) != tbl.Len() {
			t.Errorf("q=%d: %d distinct points, want %d", q, len(seen), tbl.Len())
		}
	}
}

func TestBuildNeighborsAreAdjacent(t *testing.T) {
	for q := 1; q <= 4; q++ {
		tbl := mustBuild(t, 120, geom.Pt(7, 9), q)
		pts := tbl.Points()
		for i := 1; i < len(pts); i++ {
			dx, dy := abs(pts[i].X-pts[i-1].X), abs(pts[i].Y-pts[i-1].Y)
			if dx > 1 || dy > 1 || dx+dy == 0 {
				t.Fatalf("q=%d: step %d from %v to %v", q, i, pts[i-1], pts[i])
			}
		}
		if tbl.Circular() {
			first, last := pts[0], pts[len(pts)-1]
			if abs(first.X-last.X) > 1 || abs(first.Y-last.Y) > 1 {
				t.Errorf("q=%d: seam from %v to %v is not adjacent", q, last, first)
			}
		}
	}
}

func TestBuildClockwise(t *testing.T) {
	tbl := mustBuild(t, 100, geom.Point{}, 4)
	checkpoints := []geom.Point{geom.Pt(100, 0), geom.Pt(0, 100), geom.Pt(-100, 0), geom.Pt(0, -100)}
	prev := -1
	for _, c := range checkpoints {
		i, ok := tbl.IndexOf(c)
		if !ok {
			t.Fatalf("%v missing from table", c)
		}
		if i <= prev {
			t.Errorf("%v at index %d, want after %d", c, i, prev)
		}
		prev = i
	}
}

func TestBuildStaysOnCircle(t *testing.T) {
	r := 500
	tbl := mustBuild(t, r, geom.Point{}, 4)
	for _, p := range tbl.All() {
		if diff := abs(p.X*p.X + p.Y*p.Y - r*r); diff > 2*r {
			t.Fatalf("point %v is %d off the circle", p, diff)
		}
	}
}

func TestBuildOctantSymmetry(t *testing.T) {
	tbl := mustBuild(t, 321, geom.Point{}, 4)
	for _, p := range tbl.All() {
		for _, m := range []geom.Point{geom.Pt(p.Y, p.X), geom.Pt(-p.X, p.Y), geom.Pt(p.X, -p.Y)} {
			if _, ok := tbl.IndexOf(m); !ok {
				t.Fatalf("%v present but mirror %v missing", p, m)
			}
		}
	}
}

func TestBuildQuadrantCoverage(t *testing.T) {
	tests := []struct {
		quadrants int
		allowed   func(geom.Point) bool
	}{
		{1, func(p geom.Point) bool { return p.X >= 0 && p.Y >= 0 }},
		{2, func(p geom.Point) bool { return p.Y >= 0 }},
		{3, func(p geom.Point) bool { return p.Y >= 0 || p.X <= 0 }},
		{4, func(geom.Point) bool { return true }},
	}
	for _, tt := range tests {
		tbl := mustBuild(t, 64, geom.Point{}, tt.quadrants)
		for _, p := range tbl.All() {
			if !tt.allowed(p) {
				t.Errorf("q=%d: point %v outside active quadrants", tt.quadrants, p)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	tbl := mustBuild(t, 50, geom.Point{}, 4)
	n := tbl.Len()
	tests := []struct {
		raw  int
		want int
		ok   bool
	}{
		{0, 0, true},
		{n - 1, n - 1, true},
		{n, 0, true},
		{-1, n - 1, true},
		{n + 5, 5, true},
		{-n, 0, true},
		{2 * n, 0, false},
		{-n - 1, 0, false},
	}
	for _, tt := range tests {
		got, ok := tbl.Wrap(tt.raw)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Wrap(%d) = %d,%v, want %d,%v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	tbl := mustBuild(t, 10, geom.Point{}, 1)
	if _, ok := tbl.At(-1); ok {
		t.Error("At(-1) should fail")
	}
	if _, ok := tbl.At(tbl.Len()); ok {
		t.Error("At(Len()) should fail")
	}
	if _, ok := tbl.IndexOf(geom.Pt(3, 3)); ok {
		t.Error("IndexOf() of an interior point should fail")
	}
}
