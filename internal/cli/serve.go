package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/internal/server"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		maxSolves int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Routes: POST /v1/color, GET /v1/version, GET /healthz and GET /metrics.
The cache backend comes from the config file; use backend = "redis" to share
solutions between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("max-solves") {
				maxSolves = c.Config.Server.MaxSolves
			}

			hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
			observability.SetSolveHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			runner, err := c.newRunner(ctx, false, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithLogger(c.Logger),
				server.WithGatherer(prometheus.DefaultGatherer),
				server.WithDefaults(pipeline.Options{
					UsageForcing: c.Config.UsageForcing,
					Timeout:      c.Config.Timeout.Duration,
					MaxVertices:  c.Config.MaxVertices,
				}),
				server.WithMaxSolves(maxSolves),
			)
			c.Logger.Info("starting server", "addr", addr, "cache", c.Config.Cache.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxSolves, "max-solves", 0, "concurrent solver searches (default GOMAXPROCS)")
	return cmd
}
