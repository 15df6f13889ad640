package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP search API",
	Long: `Start an HTTP server exposing the search pipeline.

Endpoints:
  GET /api/search?q=<topic>&max=<n>&web=<bool>&videos=<bool>
  GET /healthz
  GET /metrics   Prometheus metrics

The config file is watched while the server runs; edited credentials take
effect without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if svc.Watcher != nil {
		go watchConfig(ctx, svc)
	}

	server := httpapi.NewServer(svc.Aggregator, searchDefaultsFunc(svc), svc.Metrics)
	fmt.Fprintf(cmd.OutOrStdout(), "trustsearch API listening on %s\n", serveAddr)
	return server.ListenAndServe(ctx, serveAddr)
}

// watchConfig reloads services whenever the config file changes.
func watchConfig(ctx context.Context, svc *Services) {
	err := svc.Watcher.Watch(ctx, func() {
		if svc.Reload == nil {
			return
		}
		if err := svc.Reload(); err != nil {
			logger.Warn("config reload failed: %v", err)
			return
		}
		logger.Info("configuration reloaded")
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("config watcher stopped: %v", err)
	}
}

// searchDefaultsFunc reads search defaults from settings on every call so
// reloaded values apply to the next request.
func searchDefaultsFunc(svc *Services) httpapi.DefaultsFunc {
	return func() domain.SearchSettings {
		if svc.Settings == nil {
			return domain.DefaultAppSettings().Search
		}
		settings, err := svc.Settings.Get()
		if err != nil {
			logger.Warn("using default search settings: %v", err)
			return domain.DefaultAppSettings().Search
		}
		return settings.Search
	}
}
