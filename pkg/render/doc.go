// Package render captures the state of a wheel as a [Frame] and converts
// rendered SVG to other formats.
//
// # Overview
//
// A [Frame] is a plain snapshot of everything needed to draw a wheel: the
// viewport size, the circle and its active arc, the laid out capsules and the
// visible window. Frames are serializable and are what the pipeline caches.
// Output formats live in the [sink] subpackage:
//
//	frame := render.Capture(manager, vp)
//	svg := sink.RenderSVG(frame, sink.WithArc(), sink.WithCross())
//	pdf, err := render.ToPDF(svg)
//
// # Format Conversion
//
// [ToPDF] converts SVG using the external rsvg-convert tool (from librsvg).
// PNG output is rendered natively by the sink package.
package render
