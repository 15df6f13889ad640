// Package cli provides the cobra command tree for trustsearch.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// errNotConfigured is returned when a command runs without services.
var errNotConfigured = errors.New("services not configured")

// Services bundles the core services driven by the commands.
type Services struct {
	Aggregator driving.AggregationService
	Settings   driving.SettingsService
	Providers  driving.ProviderRegistry

	// Watcher reports config file changes. Optional.
	Watcher driven.ConfigWatcher

	// Reload re-reads settings into running services. Optional.
	Reload func() error

	// Metrics serves the Prometheus registry. Optional.
	Metrics http.Handler
}

// ServiceFactory builds the services for a config directory. An empty
// directory selects the default location.
type ServiceFactory func(configDir string) (*Services, error)

var (
	serviceFactory ServiceFactory
	services       *Services
)

var rootCmd = &cobra.Command{
	Use:   "trustsearch",
	Short: "Trust-scored research across open sources",
	Long: `trustsearch queries encyclopedias, scholarly indexes, web search and video
platforms for a topic, scores every result for trustworthiness and groups them
into sections: Overview, Research, Articles and Videos.

Run 'trustsearch search <topic>' for a one-shot search or 'trustsearch tui'
for the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.trustsearch)")
}

// SetServiceFactory registers how services are built. Services are created
// lazily so commands such as version never touch the config directory.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
	services = nil
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// loadServices returns the services, building them on first use.
func loadServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if serviceFactory == nil {
		return nil, errNotConfigured
	}

	s, err := serviceFactory(configDir)
	if err != nil {
		return nil, fmt.Errorf("initialising services: %w", err)
	}
	if s == nil || s.Aggregator == nil {
		return nil, errNotConfigured
	}
	services = s
	return s, nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
