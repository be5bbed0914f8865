// Package sink provides output format renderers for wheel frames.
//
// # Overview
//
// A "sink" transforms a captured [render.Frame] into a final output format:
//
//   - SVG: vector drawing of the viewport, the arc and the capsules
//   - PNG: raster image drawn natively (no external tools)
//   - JSON: frame data export for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//
// Every renderer takes functional options:
//
//	svg := sink.RenderSVG(frame, sink.WithArc(), sink.WithCross())
//	png, err := sink.RenderPNG(frame, sink.WithScale(2), sink.WithPNGArc())
package sink
