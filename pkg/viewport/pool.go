package viewport

import "github.com/matzehuels/ferris/pkg/wheel"

// PoolStats counts pool traffic.
type PoolStats struct {
	Created  int `json:"created"`
	Reused   int `json:"reused"`
	Recycled int `json:"recycled"`
}

// Pool hands out capsules bound to data positions and keeps recycled
// capsules for reuse.
type Pool struct {
	adapter Adapter
	free    []*Capsule
	stats   PoolStats
}

// NewPool returns an empty pool binding capsules to the items of adapter.
func NewPool(adapter Adapter) *Pool {
	return &Pool{adapter: adapter}
}

// ViewForPosition returns a capsule bound to the item at position.
func (p *Pool) ViewForPosition(position int) wheel.View {
	var c *Capsule
	if n := len(p.free); n > 0 {
		c = p.free[n-1]
		p.free = p.free[:n-1]
		p.stats.Reused++
	} else {
		c = &Capsule{}
		p.stats.Created++
	}
	item := p.adapter.Item(position)
	*c = Capsule{Position: position, Label: item.Label, Width: item.Width, Height: item.Height}
	return c
}

// Recycle takes a capsule back.
func (p *Pool) Recycle(v wheel.View) {
	if c, ok := v.(*Capsule); ok {
		p.free = append(p.free, c)
		p.stats.Recycled++
	}
}

// Stats returns the traffic counters.
func (p *Pool) Stats() PoolStats { return p.stats }

// Idle returns the number of capsules waiting for reuse.
func (p *Pool) Idle() int { return len(p.free) }

var _ wheel.Recycler = (*Pool)(nil)
