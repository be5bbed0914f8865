package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
	"github.com/matzehuels/ferris/pkg/render"
)

var (
	rgbBackground = color.RGBA{253, 253, 253, 255}
	rgbArc        = color.RGBA{200, 200, 200, 255}
	rgbCapsule    = color.RGBA{232, 241, 251, 255}
	rgbHidden     = color.RGBA{243, 243, 243, 255}
	rgbStroke     = color.RGBA{21, 101, 192, 255}
	rgbCross      = color.RGBA{216, 67, 21, 255}
	rgbText       = color.RGBA{34, 34, 34, 255}
	rgbPadding    = color.RGBA{255, 204, 128, 255}
)

// supersample is the factor the frame is drawn at before downsampling.
const supersample = 2

// MaxPNGPixels bounds both the supersampled canvas and the encoded image.
const MaxPNGPixels = 1 << 26

// CheckPNGSize reports whether a width x height frame drawn at scale fits
// within MaxPNGPixels.
func CheckPNGSize(width, height int, scale float64) error {
	canvas := float64(width) * float64(height) * supersample * supersample
	out := float64(width) * float64(height) * scale * scale
	if canvas > MaxPNGPixels || out > MaxPNGPixels {
		return ferrors.New(ferrors.ErrCodeInvalidViewport, "png of %dx%d at scale %g exceeds %d pixels", width, height, scale, MaxPNGPixels)
	}
	return nil
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale  float64
	arc    bool
	cross  bool
	labels bool
}

// WithScale sets the output scale factor (default 1.0, viewport size).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

func WithPNGArc() PNGOption       { return func(r *pngRenderer) { r.arc = true } }
func WithPNGCross() PNGOption     { return func(r *pngRenderer) { r.cross = true } }
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = false } }

// canvas draws at supersampled resolution.
type canvas struct {
	img  *image.RGBA
	k    int
	face font.Face
}

// RenderPNG draws the frame natively and encodes it as PNG.
func RenderPNG(f render.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	if err := CheckPNGSize(f.Width, f.Height, r.scale); err != nil {
		return nil, err
	}
	c, err := newCanvas(f.Width, f.Height)
	if err != nil {
		return nil, err
	}
	c.fill(image.Rect(0, 0, f.Width, f.Height), rgbBackground)
	if f.PaddingTop > 0 {
		c.hline(0, f.Width, f.PaddingTop, rgbPadding)
	}
	if r.arc {
		for _, p := range f.Arc {
			c.dot(p, rgbArc)
		}
	}
	for _, cp := range f.Capsules {
		c.capsule(&r, cp)
	}

	w := max(1, int(float64(f.Width)*r.scale))
	h := max(1, int(float64(f.Height)*r.scale))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func newCanvas(width, height int) (*canvas, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(13 * supersample),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, width*supersample, height*supersample)),
		k:    supersample,
		face: face,
	}, nil
}

// fill paints r, given in frame coordinates.
func (c *canvas) fill(r image.Rectangle, col color.Color) {
	r = image.Rect(r.Min.X*c.k, r.Min.Y*c.k, r.Max.X*c.k, r.Max.Y*c.k)
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) hline(x0, x1, y int, col color.Color) {
	c.fill(image.Rect(x0, y, x1, y+1), col)
}

func (c *canvas) vline(x, y0, y1 int, col color.Color) {
	c.fill(image.Rect(x, y0, x+1, y1), col)
}

func (c *canvas) dot(p geom.Point, col color.Color) {
	c.fill(image.Rect(p.X, p.Y, p.X+1, p.Y+1), col)
}

func (c *canvas) capsule(r *pngRenderer, cp render.Capsule) {
	b := cp.Rect
	fill := rgbCapsule
	if !cp.Visible {
		fill = rgbHidden
	}
	c.fill(image.Rect(b.Left, b.Top, b.Right, b.Bottom), fill)
	c.hline(b.Left, b.Right, b.Top, rgbStroke)
	c.hline(b.Left, b.Right, b.Bottom-1, rgbStroke)
	c.vline(b.Left, b.Top, b.Bottom, rgbStroke)
	c.vline(b.Right-1, b.Top, b.Bottom, rgbStroke)

	if r.cross {
		c.hline(b.Left, b.Right, cp.Center.Y, rgbCross)
		c.vline(cp.Center.X, b.Top, b.Bottom, rgbCross)
	}
	if r.labels && cp.Label != "" {
		c.text(cp.Center, cp.Label, rgbText)
	}
}

// text draws s centered on p.
func (c *canvas) text(p geom.Point, s string, col color.Color) {
	width := font.MeasureString(c.face, s).Ceil()
	ascent := c.face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot: fixed.Point26_6{
			X: fixed.I(p.X*c.k - width/2),
			Y: fixed.I(p.Y*c.k + ascent*2/5),
		},
	}
	d.DrawString(s)
}
