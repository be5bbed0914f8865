// Package pipeline runs a configured wheel end to end.
//
// A run has three stages:
//
//  1. Layout: build the circle and lay the items out from item 0
//  2. Scroll: replay the configured scroll deltas
//  3. Render: draw the resulting frame in the requested formats
//
// The frame produced by the first two stages depends only on the
// configuration, so it is cached by configuration hash. Artifacts are
// cached by frame hash and render settings.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Interactive hosts (the TUI and the HTTP server) drive a live [Wheel]
// built by [Build] instead.
package pipeline

import (
	"time"

	"github.com/matzehuels/ferris/pkg/render"
	"github.com/matzehuels/ferris/pkg/viewport"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// Frame is the wheel after layout and scroll replay.
	Frame render.Frame

	// FrameHash is the content hash of Frame.
	FrameHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics. Scroll and pool figures are zero when the
// frame came from the cache.
type Stats struct {
	ItemCount int
	Visible   int
	// Requested and Consumed sum the replayed scroll deltas.
	Requested int
	Consumed  int
	Pool      viewport.PoolStats

	LayoutTime time.Duration
	ScrollTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	FrameHit  bool // layout and scroll came from cache
	RenderHit bool // all artifacts came from cache
}
