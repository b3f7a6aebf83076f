package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/forcelay/forcelay/internal/server"
	"github.com/forcelay/forcelay/pkg/cache"
	"github.com/forcelay/forcelay/pkg/pipeline"
	"github.com/forcelay/forcelay/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the layout HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The server accepts graphs as JSON, computes layouts through the same
pipeline as the layout command, and persists results so clients can fetch
them by ID.

By default layouts are cached on the local filesystem and stored in memory.
Pass --redis to share the layout cache between instances, and --mongo to
persist layouts across restarts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared layout cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for persistent layout storage (e.g. mongodb://localhost:27017)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

// runServe builds the server from the selected backends and serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string, noCache bool) error {
	layoutCache, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	layoutStore, err := c.serveStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	// Serve-mode keys carry an api: prefix so a Redis instance shared
	// with other tools never collides on layout hashes.
	keyer := cache.NewScopedKeyer(nil, "api:")

	srv := server.New(server.Options{
		Runner: pipeline.NewRunner(layoutCache, keyer, c.Logger),
		Store:  layoutStore,
		Logger: c.Logger,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return srv.Close(shutdownCtx)
}

// serveCache picks the cache backend: redis when requested, the local file
// cache otherwise, or no cache at all.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: redisAddr})
	}
	return newCache(false)
}

// serveStore picks the store backend: mongo when requested, memory otherwise.
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.LayoutStore, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoOptions{URI: mongoURI})
}
