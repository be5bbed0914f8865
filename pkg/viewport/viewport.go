package viewport

import (
	"slices"

	"github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
	"github.com/matzehuels/ferris/pkg/wheel"
)

// Capsule is a view bound to one data item.
type Capsule struct {
	Position int
	Label    string
	Width    int
	Height   int

	bounds geom.Rect
}

// Bounds returns where the capsule was last placed.
func (c *Capsule) Bounds() geom.Rect { return c.bounds }

// Visible reports whether any part of the capsule lies inside a viewport
// of the given size.
func (c *Capsule) Visible(width, height int) bool {
	r := c.bounds
	return r.Right > 0 && r.Left < width && r.Bottom > 0 && r.Top < height
}

// Viewport holds the capsules currently laid out, in data order.
type Viewport struct {
	width      int
	height     int
	paddingTop int
	adapter    Adapter
	children   []*Capsule
}

// New returns an empty viewport showing the items of adapter.
func New(width, height, paddingTop int, adapter Adapter) (*Viewport, error) {
	if err := errors.ValidateViewport(width, height, paddingTop); err != nil {
		return nil, err
	}
	if adapter == nil {
		adapter = Items(nil)
	}
	return &Viewport{width: width, height: height, paddingTop: paddingTop, adapter: adapter}, nil
}

func (vp *Viewport) Width() int          { return vp.width }
func (vp *Viewport) ViewportHeight() int { return vp.height }
func (vp *Viewport) PaddingTop() int     { return vp.paddingTop }
func (vp *Viewport) ItemCount() int      { return vp.adapter.ItemCount() }
func (vp *Viewport) Adapter() Adapter    { return vp.adapter }

// Children returns the laid out capsules in data order.
func (vp *Viewport) Children() []*Capsule { return slices.Clone(vp.children) }

func (vp *Viewport) Measure(v wheel.View) (int, int) {
	c, ok := v.(*Capsule)
	if !ok {
		return 0, 0
	}
	return c.Width, c.Height
}

func (vp *Viewport) Place(v wheel.View, r geom.Rect) {
	if c, ok := v.(*Capsule); ok {
		c.bounds = r
	}
}

func (vp *Viewport) ChildCount() int { return len(vp.children) }

func (vp *Viewport) ChildAt(i int) wheel.View { return vp.children[i] }

func (vp *Viewport) AddView(v wheel.View) {
	vp.children = append(vp.children, v.(*Capsule))
}

func (vp *Viewport) AddViewAt(v wheel.View, i int) {
	vp.children = slices.Insert(vp.children, i, v.(*Capsule))
}

func (vp *Viewport) RemoveView(v wheel.View) {
	c, ok := v.(*Capsule)
	if !ok {
		return
	}
	if i := slices.Index(vp.children, c); i >= 0 {
		vp.children = slices.Delete(vp.children, i, i+1)
	}
}

var _ wheel.Host = (*Viewport)(nil)
