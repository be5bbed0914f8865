package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline, cache and HTTP events as debug logs.
// It is installed by --verbose.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLayoutStart(_ context.Context, itemCount int) {
	h.logger.Debug("layout started", "items", itemCount)
}

func (h logHooks) OnLayoutComplete(_ context.Context, visible int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "error", err, "duration", dur)
		return
	}
	h.logger.Debug("layout complete", "visible", visible, "duration", dur)
}

func (h logHooks) OnScrollStart(_ context.Context, steps int) {
	h.logger.Debug("scroll replay started", "steps", steps)
}

func (h logHooks) OnScrollComplete(_ context.Context, requested, consumed int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("scroll replay failed", "error", err, "duration", dur)
		return
	}
	h.logger.Debug("scroll replay complete", "requested", requested, "consumed", consumed, "duration", dur)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", dur)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h logHooks) OnResponse(_ context.Context, method, route string, status int, dur time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", dur)
}

func (h logHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Debug("request error", "method", method, "route", route, "error", err)
}
