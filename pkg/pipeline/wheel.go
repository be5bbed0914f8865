package pipeline

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ferris/pkg/config"
	"github.com/matzehuels/ferris/pkg/render"
	"github.com/matzehuels/ferris/pkg/viewport"
	"github.com/matzehuels/ferris/pkg/wheel"
)

// Wheel is a live wheel: a layout manager over an in-memory viewport with
// a recycling pool. It is not safe for concurrent use.
type Wheel struct {
	Manager  *wheel.Manager
	Viewport *viewport.Viewport
	Pool     *viewport.Pool
}

// Build creates the wheel described by cfg without laying it out.
// logger may be nil.
func Build(cfg *config.Config, logger *log.Logger) (*Wheel, error) {
	items, err := cfg.Adapter()
	if err != nil {
		return nil, err
	}
	vp, err := viewport.New(cfg.Viewport.Width, cfg.Viewport.Height, cfg.Viewport.PaddingTop, items)
	if err != nil {
		return nil, err
	}
	m, err := wheel.New(cfg.Wheel(), vp, wheel.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Wheel{Manager: m, Viewport: vp, Pool: viewport.NewPool(items)}, nil
}

// Layout discards the current views and lays the items out from item 0.
func (w *Wheel) Layout() error {
	if err := w.Manager.LayoutChildren(w.Pool); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// Scroll scrolls by dy pixels and returns the amount consumed.
func (w *Wheel) Scroll(dy int) (int, error) {
	return w.Manager.ScrollVerticallyBy(dy, w.Pool)
}

// Replay applies deltas in order and returns the summed requested and
// consumed amounts. It stops at the first error.
func (w *Wheel) Replay(deltas []int) (requested, consumed int, err error) {
	for i, dy := range deltas {
		c, err := w.Scroll(dy)
		if err != nil {
			return requested, consumed, fmt.Errorf("scroll step %d: %w", i, err)
		}
		requested += dy
		consumed += c
	}
	return requested, consumed, nil
}

// Frame snapshots the wheel.
func (w *Wheel) Frame() render.Frame {
	return render.Capture(w.Manager, w.Viewport)
}
