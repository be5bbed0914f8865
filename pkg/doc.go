// Package pkg provides the libraries behind Ferris, a circular list layout.
//
// # Overview
//
// Ferris places the items of a list as capsules whose centers ride on a
// circle, like the gondolas of a Ferris wheel, and scrolls them around it.
// Only the capsules near the viewport exist at any time; the rest are
// recycled. The pkg directory is organized into these areas:
//
//  1. [geom], [circle] - Pixel geometry and the precomputed circle table
//  2. [wheel] - The layout manager: placement, scrolling and recycling
//  3. [viewport] - An in-memory host with items and a view pool
//  4. [render] - Frame snapshots and their SVG/PNG/PDF/JSON sinks
//  5. [pipeline] - Orchestration (layout → scroll → render) with caching
//  6. [session], [server] - Live wheels over HTTP
//  7. [config], [cache], [errors], [observability] - Ambient infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	config.Config
//	     ↓
//	circle.Build (table of arc points)
//	     ↓
//	wheel.Manager over a viewport.Viewport (layout, scroll)
//	     ↓
//	render.Capture (Frame)
//	     ↓
//	SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Lay out thirty items, scroll forward and draw the result:
//
//	import (
//	    "github.com/matzehuels/ferris/pkg/config"
//	    "github.com/matzehuels/ferris/pkg/pipeline"
//	    "github.com/matzehuels/ferris/pkg/render/sink"
//	)
//
//	cfg := config.Default()
//	w, err := pipeline.Build(cfg, nil)
//	if err != nil {
//	    return err
//	}
//	if err := w.Layout(); err != nil {
//	    return err
//	}
//	if _, err := w.Scroll(120); err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(w.Frame(), sink.WithArc())
package pkg
