package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/ferris/pkg/geom"
	"github.com/matzehuels/ferris/pkg/render"
)

const (
	colorBackground = "#fdfdfd"
	colorArc        = "#c8c8c8"
	colorCapsule    = "#e8f1fb"
	colorHidden     = "#f3f3f3"
	colorStroke     = "#1565c0"
	colorCross      = "#d84315"
	colorText       = "#222222"
	colorPadding    = "#ffcc80"
)

// arcStep is the table stride used when drawing the arc.
const arcStep = 4

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	arc    bool
	cross  bool
	labels bool
}

func WithArc() SVGOption       { return func(r *svgRenderer) { r.arc = true } }
func WithCross() SVGOption     { return func(r *svgRenderer) { r.cross = true } }
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws the frame at viewport size.
func RenderSVG(f render.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="%s"/>`+"\n", f.Width, f.Height, colorBackground)

	if f.PaddingTop > 0 {
		fmt.Fprintf(&buf, `  <line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="6 4"/>`+"\n",
			f.PaddingTop, f.Width, f.PaddingTop, colorPadding)
	}
	if r.arc {
		renderArc(&buf, f.Arc)
	}
	for _, c := range f.Capsules {
		renderCapsule(&buf, &r, c)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderArc(buf *bytes.Buffer, arc []geom.Point) {
	if len(arc) == 0 {
		return
	}
	buf.WriteString(`  <polyline class="arc" fill="none" stroke="` + colorArc + `" stroke-width="2" points="`)
	for i := 0; i < len(arc); i += arcStep {
		fmt.Fprintf(buf, "%d,%d ", arc[i].X, arc[i].Y)
	}
	last := arc[len(arc)-1]
	fmt.Fprintf(buf, "%d,%d\"/>\n", last.X, last.Y)
}

func renderCapsule(buf *bytes.Buffer, r *svgRenderer, c render.Capsule) {
	fill := colorCapsule
	if !c.Visible {
		fill = colorHidden
	}
	rx := min(c.Rect.Width(), c.Rect.Height()) / 2
	fmt.Fprintf(buf, `  <rect id="capsule-%d" class="capsule" x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		c.Position, c.Rect.Left, c.Rect.Top, c.Rect.Width(), c.Rect.Height(), rx, fill, colorStroke)

	if r.cross {
		fmt.Fprintf(buf, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`+"\n",
			c.Rect.Left, c.Center.Y, c.Rect.Right, c.Center.Y, colorCross)
		fmt.Fprintf(buf, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`+"\n",
			c.Center.X, c.Rect.Top, c.Center.X, c.Rect.Bottom, colorCross)
	}
	if r.labels && c.Label != "" {
		fmt.Fprintf(buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="14" fill="%s">%s</text>`+"\n",
			c.Center.X, c.Center.Y, colorText, html.EscapeString(c.Label))
	}
}
