package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ferris/pkg/config"
	"github.com/matzehuels/ferris/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	wheel    wheelFlags
	output   string  // output file path (or base path for multiple formats)
	formats  string  // comma-separated output formats
	deltas   []int   // scroll deltas replayed before drawing
	scale    float64 // raster scale for png
	arc      bool    // draw the arc
	cross    bool    // draw center crosses
	noLabels bool    // omit capsule labels
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command for drawing a frame.
func (c *CLI) renderCommand() *cobra.Command {
	d := config.Default()
	opts := renderOpts{scale: d.Render.Scale, arc: d.Render.Arc}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the wheel to SVG, PNG, PDF or JSON",
		Example: `  ferris render -o wheel.svg
  ferris render -f svg,png --dy 200 -o out/wheel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts.wheel)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, &opts)
		},
	}

	opts.register(cmd)
	return cmd
}

// register adds the wheel and render flags to cmd.
func (o *renderOpts) register(cmd *cobra.Command) {
	o.wheel.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&o.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.IntSliceVar(&o.deltas, "dy", nil, "scroll deltas replayed before drawing (comma-separated)")
	fs.Float64Var(&o.scale, "scale", o.scale, "raster scale for png output")
	fs.BoolVar(&o.arc, "arc", o.arc, "draw the arc")
	fs.BoolVar(&o.cross, "cross", false, "draw capsule center crosses")
	fs.BoolVar(&o.noLabels, "no-labels", false, "omit capsule labels")
	fs.BoolVar(&o.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&o.refresh, "refresh", false, "ignore cached results and overwrite them")
}

// apply copies the render flags the user set into cfg.
func (o *renderOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("format") || len(cfg.Render.Formats) == 0 {
		cfg.Render.Formats = parseFormats(o.formats)
	}
	if fs.Changed("dy") {
		cfg.Scroll.Deltas = o.deltas
	}
	if fs.Changed("scale") {
		cfg.Render.Scale = o.scale
	}
	if fs.Changed("arc") {
		cfg.Render.Arc = o.arc
	}
	if fs.Changed("cross") {
		cfg.Render.Cross = o.cross
	}
	if fs.Changed("no-labels") {
		labels := !o.noLabels
		cfg.Render.Labels = &labels
	}
}

func (c *CLI) runRender(ctx context.Context, cfg *config.Config, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Refresh = opts.refresh

	spinner := newSpinnerWithContext(ctx, "Rendering wheel...")
	spinner.Start()
	result, err := runner.Execute(ctx, cfg)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result, cfg.Render.Formats, opts.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", strings.Join(cfg.Render.Formats, ", "))
	printStats(result.Stats.ItemCount, result.Stats.Visible, result.CacheInfo.FrameHit && result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes one file per format. A single format goes to
// output as given; several formats share output as a base path with the
// format as extension. The default base is "wheel".
func writeArtifacts(result *pipeline.Result, formats []string, output string) ([]string, error) {
	base := output
	if base == "" {
		base = "wheel"
	}
	if len(formats) > 1 || output == "" {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	formats = slices.Clone(formats)
	slices.Sort(formats)
	var paths []string
	for _, format := range formats {
		path := base
		if len(formats) > 1 || output == "" {
			path = base + "." + format
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
