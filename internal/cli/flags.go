package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ferris/pkg/config"
)

// wheelFlags are the geometry and data flags shared by the wheel commands.
// Only flags the user set override the loaded configuration.
type wheelFlags struct {
	radius     int
	originX    int
	originY    int
	quadrants  int
	width      int
	height     int
	paddingTop int
	items      int
	itemWidth  int
	itemHeight int
	labels     []string
	strategy   string
}

func (f *wheelFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.IntVarP(&f.radius, "radius", "r", d.Circle.Radius, "circle radius in pixels")
	fs.IntVar(&f.originX, "origin-x", d.Circle.OriginX, "circle center x")
	fs.IntVar(&f.originY, "origin-y", d.Circle.OriginY, "circle center y")
	fs.IntVarP(&f.quadrants, "quadrants", "q", 0, "active quadrants: 1 to 4 (0 picks from the origin)")
	fs.IntVar(&f.width, "width", d.Viewport.Width, "viewport width")
	fs.IntVar(&f.height, "height", d.Viewport.Height, "viewport height")
	fs.IntVar(&f.paddingTop, "padding-top", 0, "viewport top padding")
	fs.IntVarP(&f.items, "items", "n", d.Items.Count, "number of items")
	fs.IntVar(&f.itemWidth, "item-width", d.Items.Width, "capsule width")
	fs.IntVar(&f.itemHeight, "item-height", d.Items.Height, "capsule height")
	fs.StringSliceVar(&f.labels, "labels", nil, "labels for the first items (comma-separated)")
	fs.StringVarP(&f.strategy, "strategy", "s", "", "scroll strategy: pixel_perfect (default), natural")
}

func (f *wheelFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	set := func(name string, dst *int, v int) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("radius", &cfg.Circle.Radius, f.radius)
	set("origin-x", &cfg.Circle.OriginX, f.originX)
	set("origin-y", &cfg.Circle.OriginY, f.originY)
	set("quadrants", &cfg.Circle.Quadrants, f.quadrants)
	set("width", &cfg.Viewport.Width, f.width)
	set("height", &cfg.Viewport.Height, f.height)
	set("padding-top", &cfg.Viewport.PaddingTop, f.paddingTop)
	set("items", &cfg.Items.Count, f.items)
	set("item-width", &cfg.Items.Width, f.itemWidth)
	set("item-height", &cfg.Items.Height, f.itemHeight)
	if fs.Changed("labels") {
		cfg.Items.Labels = f.labels
	}
	if fs.Changed("strategy") {
		cfg.Scroll.Strategy = f.strategy
	}
}
