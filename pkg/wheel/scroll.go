package wheel

import (
	"errors"
	"strings"

	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
)

// Strategy selects how visible views are repositioned on scroll.
type Strategy string

const (
	// PixelPerfect moves the first view along the table and re-runs the
	// placement search for the others, so views keep touching.
	PixelPerfect Strategy = "pixel_perfect"
	// Natural moves every view by the same number of table steps.
	Natural Strategy = "natural"
)

// DefaultStrategy is used when none is configured.
const DefaultStrategy = PixelPerfect

// ValidStrategies lists the accepted strategy names.
var ValidStrategies = []Strategy{PixelPerfect, Natural}

// ParseStrategy resolves a strategy name. The empty string selects DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultStrategy, nil
	case PixelPerfect, "pixel-perfect", "pixelperfect":
		return PixelPerfect, nil
	case Natural:
		return Natural, nil
	}
	return "", ferrors.New(ferrors.ErrCodeInvalidStrategy, "unknown scroll strategy %q (must be %s or %s)", s, PixelPerfect, Natural)
}

// ScrollHandler applies a vertical scroll to the laid out views and returns
// the scroll amount it consumed.
type ScrollHandler interface {
	ScrollVerticallyBy(dy int, rec Recycler) (int, error)
}

// repositioner moves the current children by delta table steps.
type repositioner interface {
	reposition(delta int, rec Recycler, scratch *geom.Point, st *passStats) error
}

// scrollHandler runs the steps every strategy shares: clamp, reposition,
// recycle, fill.
type scrollHandler struct {
	*engine
	strategy Strategy
	mover    repositioner
}

// newScrollHandler returns the handler for strategy over e.
func newScrollHandler(strategy Strategy, e *engine) (*scrollHandler, error) {
	h := &scrollHandler{engine: e, strategy: strategy}
	switch strategy {
	case PixelPerfect:
		h.mover = pixelPerfect{e}
	case Natural:
		h.mover = natural{e}
	default:
		return nil, ferrors.New(ferrors.ErrCodeInvalidStrategy, "unknown scroll strategy %q", strategy)
	}
	return h, nil
}

func (h *scrollHandler) ScrollVerticallyBy(dy int, rec Recycler) (int, error) {
	count := h.host.ChildCount()
	if count == 0 || dy == 0 {
		return 0, nil
	}
	first, last := h.childBounds(0), h.childBounds(count-1)
	firstReached := h.window.First == 0
	lastReached := h.window.Last == h.host.ItemCount()

	delta, err := h.helper.CheckBoundsReached(h.host.ViewportHeight(), h.host.PaddingTop(), dy, first, last, firstReached, lastReached)
	if err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, nil
	}

	var (
		scratch geom.Point
		st      passStats
	)
	if err := h.mover.reposition(delta, rec, &scratch, &st); err != nil {
		return 0, err
	}
	if delta < 0 {
		h.recycleHead(rec, &st)
		err = h.fillTail(rec, &scratch, &st)
	} else {
		h.recycleTail(rec, &st)
		if err = h.fillHead(rec, &scratch, &st); err == nil {
			delta, err = h.settleHome(delta, rec, &scratch, &st)
		}
		// A full circle frees room at the tail when the lap guard dropped views.
		if err == nil && h.helper.Table().Circular() {
			err = h.fillTail(rec, &scratch, &st)
		}
	}
	if err != nil {
		return 0, err
	}
	if err := h.checkWindow(); err != nil {
		return 0, err
	}

	h.logger.Debug("scrolled",
		"strategy", h.strategy,
		"dy", dy,
		"delta", delta,
		"recycled", st.recycled,
		"added", st.added,
		"first", h.window.First,
		"last", h.window.Last)
	return -delta, nil
}

// settleHome moves the first data item back onto index 0 when head
// extension re-materialized it further along a partial arc. The correction is
// taken out of delta, so the content never ends up past its start.
func (h *scrollHandler) settleHome(delta int, rec Recycler, scratch *geom.Point, st *passStats) (int, error) {
	if h.window.First != 0 || h.helper.Table().Circular() {
		return delta, nil
	}
	idx, err := h.centerIndex(0)
	if err != nil || idx == 0 {
		return delta, err
	}
	shift := min(idx, delta)
	if err := h.mover.reposition(-shift, rec, scratch, st); err != nil {
		return 0, err
	}
	if err := h.fillTail(rec, scratch, st); err != nil {
		return 0, err
	}
	return delta - shift, nil
}

// centerIndex returns the table index of child i's center.
func (e *engine) centerIndex(i int) (int, error) {
	return e.helper.ViewCenterPointIndex(e.childBounds(i).Center())
}

// ===== Pixel-perfect strategy =====

type pixelPerfect struct{ *engine }

func (s pixelPerfect) reposition(delta int, rec Recycler, scratch *geom.Point, st *passStats) error {
	anchor, err := s.anchorIndex(delta, rec, st)
	if err != nil {
		return err
	}
	center, err := s.helper.ViewCenterPoint(anchor)
	if err != nil {
		return err
	}
	var data ViewData
	if err := s.layouter.LayoutViewAt(s.host.ChildAt(0), center, &data); err != nil {
		return err
	}
	circular := s.helper.Table().Circular()
	for i := 1; i < s.host.ChildCount(); i++ {
		err := s.layouter.LayoutNextView(s.host.ChildAt(i), &data, scratch)
		if errors.Is(err, ErrArcExhausted) {
			s.dropFrom(i, rec, st)
			return nil
		}
		if err != nil {
			return err
		}
		// On a full circle the search can carry the tail around onto the head.
		if circular && i >= 2 && data.Rect().Overlaps(s.childBounds(0)) {
			s.dropFrom(i, rec, st)
			return nil
		}
	}
	return nil
}

// anchorIndex returns the new table index of the first child. On a partial
// arc, leading children that would leave through the start of the arc are
// recycled first. A sole survivor is clamped to the arc.
func (s pixelPerfect) anchorIndex(delta int, rec Recycler, st *passStats) (int, error) {
	n := s.helper.Table().Len()
	for {
		idx, err := s.centerIndex(0)
		if err != nil {
			return 0, err
		}
		raw := idx + delta
		switch {
		case s.helper.Table().Circular():
			return s.helper.NewCenterPointIndex(raw)
		case raw >= n:
			return n - 1, nil
		case raw >= 0:
			return raw, nil
		case s.host.ChildCount() == 1:
			return 0, nil
		}
		s.dropHead(rec, st)
	}
}

// ===== Natural strategy =====

type natural struct{ *engine }

func (s natural) reposition(delta int, rec Recycler, _ *geom.Point, st *passStats) error {
	tbl := s.helper.Table()
	n := tbl.Len()
	if !tbl.Circular() {
		if err := s.trimOffArc(delta, n, rec, st); err != nil {
			return err
		}
	}
	for i := 0; i < s.host.ChildCount(); i++ {
		idx, err := s.centerIndex(i)
		if err != nil {
			return err
		}
		raw := idx + delta
		if !tbl.Circular() {
			raw = max(0, min(raw, n-1))
		}
		next, err := s.helper.NewCenterPointIndex(raw)
		if err != nil {
			return err
		}
		center, err := s.helper.ViewCenterPoint(next)
		if err != nil {
			return err
		}
		var data ViewData
		if err := s.layouter.LayoutViewAt(s.host.ChildAt(i), center, &data); err != nil {
			return err
		}
	}
	return nil
}

// trimOffArc recycles children that the shift would push past either end of
// a partial arc, keeping at least one.
func (s natural) trimOffArc(delta, n int, rec Recycler, st *passStats) error {
	for s.host.ChildCount() > 1 {
		idx, err := s.centerIndex(0)
		if err != nil {
			return err
		}
		if idx+delta >= 0 {
			break
		}
		s.dropHead(rec, st)
	}
	for s.host.ChildCount() > 1 {
		idx, err := s.centerIndex(s.lastIndex())
		if err != nil {
			return err
		}
		if idx+delta < n {
			break
		}
		s.dropTail(rec, st)
	}
	return nil
}
