// Package config loads ferris configuration from TOML.
//
// A configuration file describes one wheel: the circle, the viewport it is
// drawn into, the data items, a scroll replay and how results are rendered,
// cached and served. Every field has a default, so a file only needs the
// values it changes:
//
//	[circle]
//	radius = 500
//	origin_x = 0
//	origin_y = 500
//
//	[items]
//	count = 12
//	labels = ["alpha", "beta"]
//
//	[scroll]
//	strategy = "natural"
//	deltas = [40, 40, -80]
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/geom"
	"github.com/matzehuels/ferris/pkg/render/sink"
	"github.com/matzehuels/ferris/pkg/viewport"
	"github.com/matzehuels/ferris/pkg/wheel"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultRadius    = 500
	DefaultOriginX   = 0
	DefaultOriginY   = 500
	DefaultWidth     = 1080
	DefaultHeight    = 1000
	DefaultItemCount = 30
	DefaultItemW     = 100
	DefaultItemH     = 60
	DefaultScale     = 1.0

	// DefaultRedisAddr is used by the redis cache backend when no address is set.
	DefaultRedisAddr = "localhost:6379"
	// DefaultAddr is the HTTP listen address of `ferris serve`.
	DefaultAddr = ":8080"
)

const (
	DefaultCacheTTL   = 24 * time.Hour
	DefaultSessionTTL = 30 * time.Minute
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// maxItems bounds the data set of a single wheel.
const maxItems = 100_000

// =============================================================================
// Configuration
// =============================================================================

// Config is the complete configuration of a wheel run.
type Config struct {
	Circle   Circle   `toml:"circle" json:"circle"`
	Viewport Viewport `toml:"viewport" json:"viewport"`
	Items    Items    `toml:"items" json:"items"`
	Scroll   Scroll   `toml:"scroll" json:"scroll"`
	Render   Render   `toml:"render" json:"render"`
	Cache    Cache    `toml:"cache" json:"-"`
	Server   Server   `toml:"server" json:"-"`
}

// Circle is the circle the capsules ride on.
type Circle struct {
	Radius  int `toml:"radius" json:"radius"`
	OriginX int `toml:"origin_x" json:"origin_x"`
	OriginY int `toml:"origin_y" json:"origin_y"`
	// Quadrants is the number of active quadrants; 0 picks from the origin.
	Quadrants int `toml:"quadrants" json:"quadrants"`
}

// Origin returns the circle center.
func (c Circle) Origin() geom.Point { return geom.Pt(c.OriginX, c.OriginY) }

// Viewport is the visible area.
type Viewport struct {
	Width      int `toml:"width" json:"width"`
	Height     int `toml:"height" json:"height"`
	PaddingTop int `toml:"padding_top" json:"padding_top"`
}

// Items describes the data set. Labels and Sizes override the defaults for
// the first items; the rest get "#i" labels and the default size.
type Items struct {
	Count  int      `toml:"count" json:"count"`
	Width  int      `toml:"width" json:"width"`
	Height int      `toml:"height" json:"height"`
	Labels []string `toml:"labels" json:"labels,omitempty"`
	Sizes  [][2]int `toml:"sizes" json:"sizes,omitempty"`
}

// Scroll is the scroll strategy and a replay of scroll requests applied
// after the initial layout.
type Scroll struct {
	Strategy string `toml:"strategy" json:"strategy"`
	Deltas   []int  `toml:"deltas" json:"deltas,omitempty"`
}

// Render selects output formats and drawing options.
type Render struct {
	Formats []string `toml:"formats" json:"-"`
	Scale   float64  `toml:"scale" json:"scale"`
	Arc     bool     `toml:"arc" json:"arc"`
	Cross   bool     `toml:"cross" json:"cross"`
	Labels  *bool    `toml:"labels" json:"labels,omitempty"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Server configures `ferris serve`.
type Server struct {
	Addr       string   `toml:"addr"`
	SessionTTL Duration `toml:"session_ttl"`
}

// Duration is a time.Duration written as a string ("30m") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Circle:   Circle{Radius: DefaultRadius, OriginX: DefaultOriginX, OriginY: DefaultOriginY},
		Viewport: Viewport{Width: DefaultWidth, Height: DefaultHeight},
		Items:    Items{Count: DefaultItemCount, Width: DefaultItemW, Height: DefaultItemH},
		Scroll:   Scroll{Strategy: string(wheel.DefaultStrategy)},
		Render:   Render{Formats: []string{sink.FormatSVG}, Scale: DefaultScale, Arc: true},
		Cache:    Cache{Backend: BackendFile, RedisAddr: DefaultRedisAddr, TTL: Duration{DefaultCacheTTL}},
		Server:   Server{Addr: DefaultAddr, SessionTTL: Duration{DefaultSessionTTL}},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and normalizes the scroll strategy name.
func (c *Config) Validate() error {
	if err := errors.ValidateRadius(c.Circle.Radius); err != nil {
		return err
	}
	if err := errors.ValidateQuadrants(c.Circle.Quadrants); err != nil {
		return err
	}
	if err := errors.ValidateViewport(c.Viewport.Width, c.Viewport.Height, c.Viewport.PaddingTop); err != nil {
		return err
	}
	if c.Items.Count < 0 || c.Items.Count > maxItems {
		return errors.New(errors.ErrCodeInvalidConfig, "items.count must be between 0 and %d, got %d", maxItems, c.Items.Count)
	}
	if _, err := c.Adapter(); err != nil {
		return err
	}
	strategy, err := wheel.ParseStrategy(c.Scroll.Strategy)
	if err != nil {
		return err
	}
	c.Scroll.Strategy = string(strategy)
	if err := errors.ValidateFormats(c.Render.Formats, sink.ValidFormats); err != nil {
		return err
	}
	if c.Render.Scale <= 0 || c.Render.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be in (0, 8], got %g", c.Render.Scale)
	}
	if slices.Contains(c.Render.Formats, sink.FormatPNG) {
		if err := sink.CheckPNGSize(c.Viewport.Width, c.Viewport.Height, c.Render.Scale); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of: file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 || c.Server.SessionTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	return nil
}

// Adapter builds the data items.
func (c *Config) Adapter() (viewport.Items, error) {
	return viewport.NewItems(c.Items.Count, c.Items.Width, c.Items.Height, c.Items.Labels, c.Items.Sizes)
}

// Wheel returns the wheel configuration.
func (c *Config) Wheel() wheel.Config {
	return wheel.Config{
		Radius:    c.Circle.Radius,
		Origin:    c.Circle.Origin(),
		Quadrants: c.Circle.Quadrants,
		Strategy:  wheel.Strategy(c.Scroll.Strategy),
	}
}

// SinkOptions returns the drawing switches for the sinks.
func (c *Config) SinkOptions() sink.Options {
	return sink.Options{
		Arc:      c.Render.Arc,
		Cross:    c.Render.Cross,
		NoLabels: c.Render.Labels != nil && !*c.Render.Labels,
		Scale:    c.Render.Scale,
	}
}

// Hash identifies the frame this configuration produces. Output formats,
// cache and server settings do not change the frame and are excluded.
func (c *Config) Hash() string {
	data, _ := json.Marshal(struct {
		Circle   Circle
		Viewport Viewport
		Items    Items
		Scroll   Scroll
	}{c.Circle, c.Viewport, c.Items, c.Scroll})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
