package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/funnel/internal/server"
	"github.com/matzehuels/funnel/pkg/cache"
	"github.com/matzehuels/funnel/pkg/pipeline"
)

// redisPrefix scopes the server's keys in a shared Redis.
const redisPrefix = appName + ":"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Serve the renderer over HTTP.

Routes:
  POST /render/{svg,png,pdf}  render a JSON input body
  POST /validate              return the annotated rows as JSON
  GET  /healthz               build information

Artifacts are cached in Redis when --redis-url is given, and in the local
cache directory otherwise.`,
		Example: `  funnel serve --addr :9000
  funnel serve --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.Server.Addr != "" {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("redis-url") {
				redisURL = cfg.Server.RedisURL
			}
			defaults, err := pipeline.FromConfig(cfg)
			if err != nil {
				return err
			}

			var runner *pipeline.Runner
			switch {
			case redisURL != "" && !noCache:
				rc, err := cache.NewRedisCache(ctx, redisURL)
				if err != nil {
					return err
				}
				logger.Info("using redis cache", "prefix", redisPrefix)
				runner = pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisPrefix), logger)
			default:
				runner, err = c.newRunner(noCache)
				if err != nil {
					return err
				}
			}
			defer runner.Close()

			cacheDesc := "local"
			switch {
			case noCache:
				cacheDesc = "disabled"
			case redisURL != "":
				cacheDesc = "redis"
			}
			printKeyValue("Address", addr)
			printKeyValue("Cache", cacheDesc)

			srv := server.New(server.Config{
				Runner:   runner,
				Defaults: defaults,
				Logger:   logger,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
