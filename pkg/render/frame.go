package render

import (
	"github.com/matzehuels/ferris/pkg/geom"
	"github.com/matzehuels/ferris/pkg/viewport"
	"github.com/matzehuels/ferris/pkg/wheel"
)

// Frame is a snapshot of a laid out wheel.
type Frame struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	PaddingTop int          `json:"padding_top"`
	Radius     int          `json:"radius"`
	Origin     geom.Point   `json:"origin"`
	Quadrants  int          `json:"quadrants"`
	Strategy   string       `json:"strategy"`
	LeftMode   bool         `json:"left_mode"`
	ItemCount  int          `json:"item_count"`
	Window     wheel.Window `json:"window"`
	Arc        []geom.Point `json:"-"`
	Capsules   []Capsule    `json:"capsules"`
}

// Capsule is one laid out view.
type Capsule struct {
	Position int        `json:"position"`
	Label    string     `json:"label"`
	Rect     geom.Rect  `json:"rect"`
	Center   geom.Point `json:"center"`
	// Index is the table index of Center.
	Index   int  `json:"index"`
	Visible bool `json:"visible"`
}

// Capture snapshots the wheel m laid out over vp.
func Capture(m *wheel.Manager, vp *viewport.Viewport) Frame {
	cfg := m.Config()
	tbl := m.Helper().Table()
	f := Frame{
		Width:      vp.Width(),
		Height:     vp.ViewportHeight(),
		PaddingTop: vp.PaddingTop(),
		Radius:     cfg.Radius,
		Origin:     cfg.Origin,
		Quadrants:  cfg.Quadrants,
		Strategy:   string(cfg.Strategy),
		LeftMode:   m.LeftMode(),
		ItemCount:  vp.ItemCount(),
		Window:     m.Window(),
		Arc:        tbl.Points(),
	}
	for _, c := range vp.Children() {
		r := c.Bounds()
		idx, _ := tbl.IndexOf(r.Center())
		f.Capsules = append(f.Capsules, Capsule{
			Position: c.Position,
			Label:    c.Label,
			Rect:     r,
			Center:   r.Center(),
			Index:    idx,
			Visible:  c.Visible(f.Width, f.Height),
		})
	}
	return f
}

// VisibleCount returns the number of capsules at least partly on screen.
func (f Frame) VisibleCount() int {
	n := 0
	for _, c := range f.Capsules {
		if c.Visible {
			n++
		}
	}
	return n
}
