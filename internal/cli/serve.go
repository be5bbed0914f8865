package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ferris/pkg/config"
	"github.com/matzehuels/ferris/pkg/server"
	"github.com/matzehuels/ferris/pkg/session"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		wf          wheelFlags
		addr        string
		maxSessions int
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve wheel sessions over HTTP",
		Long: `Serve wheel sessions over HTTP. Create requests are applied over the
loaded configuration, so --config and the wheel flags set the defaults.`,
		Example: `  ferris serve --addr :8080
  curl -X POST localhost:8080/wheels -d '{"items":{"count":50}}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &wf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			ch, err := newCache(ctx, cfg.Cache, noCache)
			if err != nil {
				return err
			}
			defer ch.Close()

			store := session.NewMemoryStore(cfg.Server.SessionTTL.Duration, c.Logger)
			store.SetMaxSessions(maxSessions)

			srv := server.New(store,
				server.WithLogger(c.Logger),
				server.WithCache(ch, cfg.Cache.TTL.Duration),
				server.WithDefaults(func() *config.Config { return cloneConfig(cfg) }),
			)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	wf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", session.DefaultMaxSessions, "maximum live sessions")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// cloneConfig returns a copy of cfg that shares no slices or pointers.
func cloneConfig(cfg *config.Config) *config.Config {
	out := *cfg
	out.Items.Labels = slices.Clone(cfg.Items.Labels)
	out.Items.Sizes = slices.Clone(cfg.Items.Sizes)
	out.Scroll.Deltas = slices.Clone(cfg.Scroll.Deltas)
	out.Render.Formats = slices.Clone(cfg.Render.Formats)
	if cfg.Render.Labels != nil {
		labels := *cfg.Render.Labels
		out.Render.Labels = &labels
	}
	return &out
}
