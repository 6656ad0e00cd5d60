package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonlens/internal/server"
	"github.com/matzehuels/jsonlens/pkg/cache"
	"github.com/matzehuels/jsonlens/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSONLens HTTP API",
		Long: `Serve exposes document analysis over HTTP. Documents are held in
memory unless a MongoDB URL is configured, and analysis results are
cached locally unless a Redis URL points at a shared cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cch, err := c.serveCache(ctx, redisURL, noCache)
			if err != nil {
				return err
			}
			defer cch.Close()

			st, err := c.serveStore(ctx, mongoURL)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			srv := server.New(server.Config{
				Addr:         addr,
				MaxBodyBytes: c.Config.Serve.MaxBodyBytes,
				CacheTTL:     c.Config.Cache.TTL.Duration(),
			}, st, cch, c.Logger)

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", c.Config.Cache.RedisURL, "Redis URL for a shared analysis cache")
	cmd.Flags().StringVar(&mongoURL, "mongo", c.Config.Serve.MongoURL, "MongoDB URL for persistent document storage")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache")

	return cmd
}

// serveCache picks the cache backend for the server: Redis when
// configured, otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		c.Logger.Info("Using Redis cache", "url", redisURL)
		return cache.NewRedisCache(ctx, redisURL)
	}
	return c.newCache(false)
}

// serveStore picks the document store: MongoDB when configured,
// otherwise in-memory.
func (c *CLI) serveStore(ctx context.Context, mongoURL string) (store.Store, error) {
	if mongoURL != "" {
		c.Logger.Info("Using MongoDB store", "url", mongoURL)
		return store.NewMongoStore(ctx, mongoURL)
	}
	return store.NewMemoryStore(), nil
}
