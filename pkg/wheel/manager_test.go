package wheel

import (
	"testing"

	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

func newManager(t *testing.T, cfg Config, f *fakeHost) *Manager {
	t.Helper()
	m, err := New(cfg, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.LayoutChildren(f); err != nil {
		t.Fatalf("LayoutChildren: %v", err)
	}
	checkLayout(t, m, f)
	return m
}

// exampleConfig is a quarter circle hanging from the left edge.
var exampleConfig = Config{Radius: 500, Origin: geom.Pt(0, 500), Quadrants: 1}

func TestLayoutChildrenExample(t *testing.T) {
	f := newFakeHost(900, 6, 100, 60)
	m := newManager(t, exampleConfig, f)

	if got := m.Window(); got != (Window{First: 0, Last: 6}) {
		t.Fatalf("Window() = %+v, want {0 6}", got)
	}
	if c := f.children[0].bounds.Center(); c != geom.Pt(500, 500) {
		t.Errorf("item 0 center = %v, want (500,500)", c)
	}
	for k, c := range f.children {
		if got, want := c.bounds.Center().Y, 500+60*k; got != want {
			t.Errorf("item %d center y = %d, want %d", k, got, want)
		}
	}
	checkTouching(t, f)

	// Everything fits, so there is nothing to scroll toward.
	consumed, err := m.ScrollVerticallyBy(10, f)
	if err != nil || consumed != 0 {
		t.Errorf("ScrollVerticallyBy(10) = %d, %v, want 0", consumed, err)
	}
}

func TestLayoutChildrenStopsAtArcEnd(t *testing.T) {
	f := newFakeHost(900, 40, 100, 60)
	m := newManager(t, exampleConfig, f)

	w := m.Window()
	if w.First != 0 || w.Last >= 40 || w.Last < 8 {
		t.Fatalf("Window() = %+v, want a partial window from 0", w)
	}
	for k := 0; k <= 7; k++ {
		if got, want := f.children[k].bounds.Center().Y, 500+60*k; got != want {
			t.Errorf("item %d center y = %d, want %d", k, got, want)
		}
	}
	checkTouching(t, f)

	// The last child either reached the left edge or nothing fits after it.
	last := f.children[len(f.children)-1]
	var data ViewData
	data.Update(last.bounds, last.bounds.Center(), 900)
	var p geom.Point
	err := m.Helper().FindNextViewCenter(&data, 50, 30, &p)
	if last.bounds.Left > 0 && err == nil {
		t.Errorf("layout stopped at %v although %v still fits", last.bounds, p)
	}
}

func TestLayoutChildrenEmpty(t *testing.T) {
	f := newFakeHost(900, 0, 100, 60)
	m := newManager(t, exampleConfig, f)
	if m.Window() != (Window{}) || len(f.children) != 0 {
		t.Fatalf("empty data laid out %d children, window %+v", len(f.children), m.Window())
	}
	consumed, err := m.ScrollVerticallyBy(25, f)
	if err != nil || consumed != 0 {
		t.Errorf("ScrollVerticallyBy() on empty wheel = %d, %v", consumed, err)
	}
}

func TestLayoutChildrenOversize(t *testing.T) {
	f := newFakeHost(900, 5, 100, 60)
	f.sizes = map[int][2]int{2: {1200, 60}}
	m, err := New(exampleConfig, f)
	if err != nil {
		t.Fatal(err)
	}
	err = m.LayoutChildren(f)
	if !ferrors.Is(err, ferrors.ErrCodeOversizeItem) {
		t.Fatalf("LayoutChildren() error = %v, want %s", err, ferrors.ErrCodeOversizeItem)
	}
	if m.Window().Len() != len(f.children) {
		t.Errorf("window %+v out of sync with %d children", m.Window(), len(f.children))
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	f := newFakeHost(900, 1, 10, 10)
	tests := []struct {
		name string
		cfg  Config
		code ferrors.Code
	}{
		{"radius", Config{Radius: 0}, ferrors.ErrCodeInvalidRadius},
		{"quadrants", Config{Radius: 10, Quadrants: 9}, ferrors.ErrCodeInvalidQuadrants},
		{"strategy", Config{Radius: 10, Strategy: "zigzag"}, ferrors.ErrCodeInvalidStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, f); !ferrors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", PixelPerfect, false},
		{"pixel_perfect", PixelPerfect, false},
		{"Pixel-Perfect", PixelPerfect, false},
		{"natural", Natural, false},
		{"linear", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestPixelPerfectScrollRoundTrip(t *testing.T) {
	f := newFakeHost(900, 40, 100, 60)
	m := newManager(t, exampleConfig, f)

	initial := make([]geom.Rect, len(f.children))
	for i, c := range f.children {
		initial[i] = c.bounds
	}
	initialWindow := m.Window()

	forward := 0
	for i := 0; i < 2000; i++ {
		consumed, err := m.ScrollVerticallyBy(10, f)
		if err != nil {
			t.Fatalf("forward scroll %d: %v", i, err)
		}
		checkLayout(t, m, f)
		checkTouching(t, f)
		if consumed == 0 {
			break
		}
		if consumed < 0 || consumed > 10 {
			t.Fatalf("forward scroll %d consumed %d", i, consumed)
		}
		forward++
	}
	if m.Window().Last != 40 {
		t.Fatalf("forward scrolling stopped at window %+v before the last item", m.Window())
	}
	if forward == 0 {
		t.Fatal("nothing scrolled")
	}

	for i := 0; i < 2000; i++ {
		consumed, err := m.ScrollVerticallyBy(-10, f)
		if err != nil {
			t.Fatalf("backward scroll %d: %v", i, err)
		}
		checkLayout(t, m, f)
		checkTouching(t, f)
		if consumed == 0 {
			break
		}
		if consumed > 0 || consumed < -10 {
			t.Fatalf("backward scroll %d consumed %d", i, consumed)
		}
	}

	if m.Window() != initialWindow {
		t.Fatalf("window after round trip = %+v, want %+v", m.Window(), initialWindow)
	}
	for i, c := range f.children {
		if c.bounds != initial[i] {
			t.Errorf("child %d at %v after round trip, want %v", i, c.bounds, initial[i])
		}
	}
}

// centered is a full circle in the middle of a tall viewport.
var centered = Config{Radius: 300, Origin: geom.Pt(540, 960), Quadrants: 4}

func TestFullCircleLayoutDoesNotLapItself(t *testing.T) {
	f := newFakeHost(1920, 100, 120, 80)
	newManager(t, centered, f)
	checkTouching(t, f)
	checkDisjoint(t, f)
}

func TestScrollStrategiesFullCircle(t *testing.T) {
	for _, strategy := range ValidStrategies {
		t.Run(string(strategy), func(t *testing.T) {
			cfg := centered
			cfg.Strategy = strategy
			f := newFakeHost(1920, 100, 120, 80)
			m := newManager(t, cfg, f)

			home := f.children[0].bounds

			consumed, err := m.ScrollVerticallyBy(5, f)
			if err != nil || consumed != 5 {
				t.Fatalf("ScrollVerticallyBy(5) = %d, %v, want 5", consumed, err)
			}
			checkLayout(t, m, f)
			if strategy == PixelPerfect {
				checkDisjoint(t, f)
			}

			// Back toward the start: only the five steps are available.
			consumed, err = m.ScrollVerticallyBy(-20, f)
			if err != nil || consumed != -5 {
				t.Fatalf("ScrollVerticallyBy(-20) = %d, %v, want -5", consumed, err)
			}
			checkLayout(t, m, f)
			if strategy == PixelPerfect {
				checkDisjoint(t, f)
			}
			if m.Window().First != 0 || f.children[0].bounds != home {
				t.Errorf("first child at %v (window %+v), want %v", f.children[0].bounds, m.Window(), home)
			}

			consumed, err = m.ScrollVerticallyBy(-20, f)
			if err != nil || consumed != 0 {
				t.Errorf("scroll past the start consumed %d, %v", consumed, err)
			}
		})
	}
}

func TestFullCircleScrollDoesNotLapItself(t *testing.T) {
	f := newFakeHost(1920, 40, 120, 80)
	m := newManager(t, centered, f)
	home := m.Window()

	for _, dy := range []int{30, 30, -60, 45, 200, -120, -155} {
		if _, err := m.ScrollVerticallyBy(dy, f); err != nil {
			t.Fatalf("ScrollVerticallyBy(%d): %v", dy, err)
		}
		checkLayout(t, m, f)
		checkTouching(t, f)
		checkDisjoint(t, f)
	}
	if _, err := m.ScrollVerticallyBy(-1000, f); err != nil {
		t.Fatal(err)
	}
	if m.Window() != home {
		t.Errorf("window %+v after returning to the start, want %+v", m.Window(), home)
	}
}

func TestScrollClampsToOneLap(t *testing.T) {
	f := newFakeHost(1920, 1000, 20, 20)
	m := newManager(t, centered, f)
	n := m.Helper().Table().Len()

	consumed, err := m.ScrollVerticallyBy(10*n, f)
	if err != nil {
		t.Fatal(err)
	}
	if consumed > n-1 {
		t.Errorf("consumed %d, want at most one lap (%d)", consumed, n-1)
	}
	checkLayout(t, m, f)
}

func TestNaturalScrollPartialArc(t *testing.T) {
	cfg := exampleConfig
	cfg.Strategy = Natural
	f := newFakeHost(900, 40, 100, 60)
	m := newManager(t, cfg, f)

	for i := 0; i < 50; i++ {
		if _, err := m.ScrollVerticallyBy(15, f); err != nil {
			t.Fatalf("scroll %d: %v", i, err)
		}
		checkLayout(t, m, f)
	}
	if m.Window().First == 0 {
		t.Error("natural scrolling never recycled the head")
	}
	for i := 0; i < 50; i++ {
		if _, err := m.ScrollVerticallyBy(-15, f); err != nil {
			t.Fatalf("scroll back %d: %v", i, err)
		}
		checkLayout(t, m, f)
	}
}

func TestRecycleThresholds(t *testing.T) {
	f := newFakeHost(900, 3, 100, 60)
	m, err := New(exampleConfig, f)
	if err != nil {
		t.Fatal(err)
	}
	place := func(bounds ...geom.Rect) {
		f.children = nil
		for i, b := range bounds {
			f.children = append(f.children, &fakeView{pos: i, w: 100, h: 60, bounds: b})
		}
		m.window = Window{First: 0, Last: len(bounds)}
	}
	mid := geom.Rect{Left: 100, Top: 300, Right: 200, Bottom: 360}

	tests := []struct {
		name   string
		bounds []geom.Rect
		head   bool
		want   int
	}{
		{"head partially visible", []geom.Rect{{Left: 0, Top: -50, Right: 100, Bottom: 10}, mid}, true, 2},
		{"head exactly one height above", []geom.Rect{{Left: 0, Top: -120, Right: 100, Bottom: -60}, mid}, true, 2},
		{"head gone", []geom.Rect{{Left: 0, Top: -121, Right: 100, Bottom: -61}, mid}, true, 1},
		{"sole head kept", []geom.Rect{{Left: 0, Top: -500, Right: 100, Bottom: -440}}, true, 1},
		{"tail partially off left", []geom.Rect{mid, {Left: -150, Top: 300, Right: -50, Bottom: 360}}, false, 2},
		{"tail exactly one width off", []geom.Rect{mid, {Left: -200, Top: 300, Right: -100, Bottom: 360}}, false, 2},
		{"tail gone", []geom.Rect{mid, {Left: -201, Top: 300, Right: -101, Bottom: 360}}, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place(tt.bounds...)
			var st passStats
			if tt.head {
				m.recycleHead(f, &st)
			} else {
				m.recycleTail(f, &st)
			}
			if len(f.children) != tt.want {
				t.Errorf("%d children left, want %d", len(f.children), tt.want)
			}
			if err := m.checkWindow(); err != nil {
				t.Error(err)
			}
		})
	}
}
