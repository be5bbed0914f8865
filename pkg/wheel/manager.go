package wheel

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ferris/pkg/geom"
)

// Config describes the circle and the scroll strategy of a wheel.
type Config struct {
	Radius int
	Origin geom.Point
	// Quadrants is the number of active quadrants, 0 to pick from Origin.
	Quadrants int
	Strategy  Strategy
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger receiving per-pass debug lines.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager adapts the wheel to a host: it performs the initial layout and
// handles scroll requests, tracking the visible window.
type Manager struct {
	engine
	cfg     Config
	handler ScrollHandler
}

// New builds the circle for cfg and returns a manager laying out the
// children of host.
func New(cfg Config, host Host, opts ...Option) (*Manager, error) {
	if cfg.Strategy == "" {
		cfg.Strategy = DefaultStrategy
	}
	helper, err := NewQuadrantHelper(cfg.Radius, cfg.Origin, cfg.Quadrants)
	if err != nil {
		return nil, err
	}
	cfg.Quadrants = helper.Table().Quadrants()

	m := &Manager{
		engine: engine{
			helper:   helper,
			layouter: NewLayouter(helper, host),
			host:     host,
			logger:   log.New(io.Discard),
		},
		cfg: cfg,
	}
	for _, opt := range opts {
		opt(m)
	}
	handler, err := newScrollHandler(cfg.Strategy, &m.engine)
	if err != nil {
		return nil, err
	}
	m.handler = handler
	return m, nil
}

// LayoutChildren discards all children and lays the data out from the
// first item, which rests on table index 0. It stops once a view reaches
// the edge the arc leaves through or the data runs out. No data is not an
// error: the window stays empty.
func (m *Manager) LayoutChildren(rec Recycler) error {
	m.clear(rec)
	if m.host.ItemCount() == 0 {
		m.logger.Debug("nothing to lay out")
		return nil
	}

	v := rec.ViewForPosition(0)
	m.host.AddView(v)
	var data ViewData
	if err := m.layouter.LayoutFirstView(v, &data); err != nil {
		m.discard(v, rec)
		return err
	}
	m.window = Window{First: 0, Last: 1}

	var (
		scratch geom.Point
		st      passStats
	)
	if err := m.fillTail(rec, &scratch, &st); err != nil {
		return err
	}
	if err := m.checkWindow(); err != nil {
		return err
	}
	m.logger.Debug("laid out",
		"items", m.window.Len(),
		"of", m.host.ItemCount(),
		"table", m.helper.Table().Len())
	return nil
}

// ScrollVerticallyBy scrolls by dy pixels and returns the amount consumed.
// Positive dy reveals later items. A single call moves at most one lap.
func (m *Manager) ScrollVerticallyBy(dy int, rec Recycler) (int, error) {
	limit := m.helper.Table().Len() - 1
	dy = max(-limit, min(dy, limit))
	consumed, err := m.handler.ScrollVerticallyBy(dy, rec)
	if err != nil {
		return 0, fmt.Errorf("scroll by %d: %w", dy, err)
	}
	return consumed, nil
}

// Window returns the data positions currently backed by views.
func (m *Manager) Window() Window { return m.window }

// Helper returns the quadrant helper, for hosts drawing the circle.
func (m *Manager) Helper() QuadrantHelper { return m.helper }

// Config returns the resolved configuration.
func (m *Manager) Config() Config { return m.cfg }

// LeftMode reports whether the arc leaves the viewport to the left.
func (m *Manager) LeftMode() bool { return m.layouter.LeftMode() }
