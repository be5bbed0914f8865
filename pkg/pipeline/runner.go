package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ferris/pkg/cache"
	"github.com/matzehuels/ferris/pkg/circle"
	"github.com/matzehuels/ferris/pkg/config"
	"github.com/matzehuels/ferris/pkg/observability"
	"github.com/matzehuels/ferris/pkg/render"
	"github.com/matzehuels/ferris/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different configurations.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Refresh ignores cached entries and overwrites them.
	Refresh bool
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs layout, scroll replay and render for cfg.
func (r *Runner) Execute(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	result := &Result{}
	frame, hit, err := r.FrameWithCacheInfo(ctx, cfg, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Frame = frame
	result.CacheInfo.FrameHit = hit
	result.Stats.ItemCount = frame.ItemCount
	result.Stats.Visible = frame.VisibleCount()

	frameData, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("serialize frame: %w", err)
	}
	result.FrameHash = cache.Hash(frameData)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, frame, result.FrameHash, cfg)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", cfg.Render.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FrameWithCacheInfo returns the frame cfg produces and whether it came
// from the cache. Timings and counters of a fresh run are written to st.
func (r *Runner) FrameWithCacheInfo(ctx context.Context, cfg *config.Config, st *Stats) (render.Frame, bool, error) {
	key := r.Keyer.FrameKey(cfg.Hash())

	if !r.Refresh {
		var f render.Frame
		err := cache.GetJSON(ctx, r.Cache, key, &f)
		if err == nil {
			if err := restoreArc(&f); err == nil {
				observability.Cache().OnCacheHit(ctx, "frame")
				r.Logger.Debug("frame from cache", "key", key)
				return f, true, nil
			}
		} else if err != cache.ErrCacheMiss {
			r.Logger.Warn("frame cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "frame")
	}

	f, err := r.run(ctx, cfg, st)
	if err != nil {
		return render.Frame{}, false, err
	}

	if data, err := json.Marshal(f); err == nil {
		if err := r.Cache.Set(ctx, key, data, cfg.Cache.TTL.Duration); err != nil {
			r.Logger.Warn("frame cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "frame", len(data))
		}
	}
	return f, false, nil
}

// run lays out a fresh wheel and replays the scroll deltas.
func (r *Runner) run(ctx context.Context, cfg *config.Config, st *Stats) (render.Frame, error) {
	hooks := observability.Pipeline()

	w, err := Build(cfg, r.Logger)
	if err != nil {
		return render.Frame{}, err
	}

	hooks.OnLayoutStart(ctx, cfg.Items.Count)
	start := time.Now()
	err = w.Layout()
	st.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, w.Manager.Window().Len(), st.LayoutTime, err)
	if err != nil {
		return render.Frame{}, err
	}
	r.Logger.Info("laid out wheel",
		"items", cfg.Items.Count,
		"window", fmt.Sprintf("[%d,%d)", w.Manager.Window().First, w.Manager.Window().Last),
		"duration", st.LayoutTime)

	if len(cfg.Scroll.Deltas) > 0 {
		hooks.OnScrollStart(ctx, len(cfg.Scroll.Deltas))
		start = time.Now()
		st.Requested, st.Consumed, err = w.Replay(cfg.Scroll.Deltas)
		st.ScrollTime = time.Since(start)
		hooks.OnScrollComplete(ctx, st.Requested, st.Consumed, st.ScrollTime, err)
		if err != nil {
			return render.Frame{}, err
		}
		r.Logger.Info("replayed scroll",
			"steps", len(cfg.Scroll.Deltas),
			"requested", st.Requested,
			"consumed", st.Consumed,
			"duration", st.ScrollTime)
	}

	st.Pool = w.Pool.Stats()
	return w.Frame(), nil
}

// RenderWithCacheInfo renders every configured format, reusing cached
// artifacts when all of them are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f render.Frame, frameHash string, cfg *config.Config) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	opts := cfg.SinkOptions()
	formats := cfg.Render.Formats

	keys := make(map[string]string, len(formats))
	for _, format := range formats {
		keys[format] = r.Keyer.ArtifactKey(frameHash, artifactKeyOpts(format, opts))
	}

	if !r.Refresh {
		artifacts := make(map[string][]byte, len(formats))
		for _, format := range formats {
			data, hit, err := r.Cache.Get(ctx, keys[format])
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks.OnRenderStart(ctx, formats)
	start := time.Now()
	artifacts, err := Render(f, formats, opts)
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, cfg.Cache.TTL.Duration); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func artifactKeyOpts(format string, o sink.Options) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Arc:      o.Arc,
		Cross:    o.Cross,
		NoLabels: o.NoLabels,
		Scale:    o.Scale,
	}
}

// restoreArc rebuilds the arc points, which frames do not serialize.
func restoreArc(f *render.Frame) error {
	tbl, err := circle.Build(f.Radius, f.Origin, f.Quadrants)
	if err != nil {
		return err
	}
	f.Arc = tbl.Points()
	return nil
}
