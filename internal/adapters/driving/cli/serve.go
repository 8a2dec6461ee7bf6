package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sourcy-labs/sourcy/internal/adapters/driven/watcher"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/httpapi"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Starts the HTTP API.

Routes:
  GET /health
  GET /metrics
  GET /api/v1/products/search?q=&limit=
  GET /api/v1/products/{id}
  GET /api/v1/products/{id}/recommendations?n=&threshold=

With recommender.cache_corpus enabled the corpus is built at startup and
dropped whenever the catalog database changes on disk.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if recommendService == nil || catalogService == nil {
		return errNotConfigured("recommend")
	}

	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *s
	}
	if serveAddr != "" {
		settings.Server.Addr = serveAddr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Recommend: recommendService,
		Catalog:   catalogService,
	}, settings.Server)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if settings.Recommender.CacheCorpus {
		stats, err := recommendService.Rebuild(gctx)
		if err != nil {
			logger.Warn("corpus warm-up failed: %v", err)
		} else {
			logger.Info("corpus warm: %d documents, %d terms", stats.Documents, stats.Vocabulary)
		}

		if catalogPath != "" {
			w, err := watcher.New(catalogPath, watcher.DefaultDebounce, recommendService.Invalidate)
			if err != nil {
				return fmt.Errorf("watching catalog: %w", err)
			}
			defer w.Close() //nolint:errcheck
			g.Go(func() error {
				return w.Run(gctx)
			})
		}
	}

	g.Go(func() error {
		return server.Run(gctx, settings.Server.Addr)
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\n", settings.Server.Addr)
	return g.Wait()
}
