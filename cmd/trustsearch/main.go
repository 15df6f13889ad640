// Command trustsearch aggregates trust-scored research results for a topic.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/trustsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/trustsearch/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/trustsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/trustsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/trustsearch/internal/connectors"
	"github.com/custodia-labs/trustsearch/internal/connectors/preview"
	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/services"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the config store, providers, pipeline and cache.
func buildServices(configDir string) (*cli.Services, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(store)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("invalid settings in %s, using defaults for cache and pipeline: %v", store.Path(), err)
		defaults := domain.DefaultAppSettings()
		settings.Cache = defaults.Cache
		settings.Pipeline = defaults.Pipeline
	}

	metrics := prometheus.New()
	client := webclient.New()
	providers := connectors.DefaultProviders(client, preview.New(client))

	pipeline := services.NewAggregationService(providers, settings.Credentials,
		services.WithWorkers(settings.Pipeline.Workers),
		services.WithMetrics(metrics),
	)

	cache, err := memory.NewResultCache(settings.Cache.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	cached := services.NewCachedAggregator(pipeline, cache, settings.Cache.Window,
		services.WithCacheMetrics(metrics),
	)

	// The store has already re-read the file when the watcher calls reload.
	reload := func() error {
		fresh, err := settingsService.Get()
		if err != nil {
			return err
		}
		pipeline.SetCredentials(fresh.Credentials)
		// cached results may have been built without the new keys
		cached.Purge()
		return nil
	}

	return &cli.Services{
		Aggregator: cached,
		Settings:   settingsService,
		Providers:  services.NewProviderRegistry(connectors.Catalog()),
		Watcher:    store,
		Reload:     reload,
		Metrics:    metrics.Handler(),
	}, nil
}
