package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ferris/pkg/config"
	"github.com/matzehuels/ferris/pkg/pipeline"
	"github.com/matzehuels/ferris/pkg/render"
)

// frameOpts holds the flags shared by layout and scroll.
type frameOpts struct {
	wheel   wheelFlags
	json    bool
	noCache bool
}

func (o *frameOpts) register(cmd *cobra.Command) {
	o.wheel.register(cmd)
	cmd.Flags().BoolVar(&o.json, "json", false, "print the frame as JSON")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts frameOpts

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Lay the items out from item 0 and print the capsules",
		Long: `Lay the items out along the circle starting with item 0 and print where
each capsule landed. Scroll deltas from the configuration file are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts.wheel)
			if err != nil {
				return err
			}
			cfg.Scroll.Deltas = nil
			return c.runFrame(cmd.Context(), cfg, &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// scrollCommand creates the scroll command.
func (c *CLI) scrollCommand() *cobra.Command {
	var (
		opts   frameOpts
		deltas []int
	)

	cmd := &cobra.Command{
		Use:   "scroll",
		Short: "Lay out, replay scroll deltas and print the capsules",
		Long: `Lay the items out, then replay scroll requests in order. Positive deltas
scroll forward, negative deltas scroll back. Without --dy the deltas from
the configuration file are replayed.`,
		Example: `  ferris scroll --dy 40,40,-120
  ferris scroll --dy=-300 --strategy natural`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts.wheel)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dy") {
				cfg.Scroll.Deltas = deltas
			}
			return c.runFrame(cmd.Context(), cfg, &opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().IntSliceVar(&deltas, "dy", nil, "scroll deltas in pixels (comma-separated)")
	return cmd
}

func (c *CLI) runFrame(ctx context.Context, cfg *config.Config, opts *frameOpts) error {
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	var st pipeline.Stats
	f, hit, err := runner.FrameWithCacheInfo(ctx, cfg, &st)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d items", f.ItemCount))

	if opts.json {
		return writeFrameJSON(f)
	}

	printSuccess("Frame ready")
	printStats(f.ItemCount, f.VisibleCount(), hit)
	if len(cfg.Scroll.Deltas) > 0 && !hit {
		printDetail("scrolled %d of %d px over %d steps", st.Consumed, st.Requested, len(cfg.Scroll.Deltas))
	}
	printNewline()
	printFrame(f)
	return nil
}

func writeFrameJSON(f render.Frame) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
