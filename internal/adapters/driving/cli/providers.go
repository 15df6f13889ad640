package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

var providersJSON bool

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List source providers and their readiness",
	Long: `Lists every source provider in pipeline order with its toggle group and
whether the configured credentials let it contribute results.`,
	Args: cobra.NoArgs,
	RunE: runProviders,
}

func init() {
	providersCmd.Flags().BoolVar(&providersJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Providers == nil {
		return errors.New("provider registry not configured")
	}

	var creds domain.Credentials
	if svc.Settings != nil {
		settings, err := svc.Settings.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		creds = settings.Credentials
	}
	statuses := svc.Providers.Status(creds)

	if providersJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal providers: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(statuses) == 0 {
		cmd.Println("No providers registered.")
		return nil
	}

	for _, st := range statuses {
		state := "needs key"
		if st.Ready {
			state = "ready"
		}
		cmd.Printf("%-24s %-6s %-9s %s\n", st.Provider.Label, st.Provider.Group, state, kindList(st.Provider.Kinds))
	}
	return nil
}

func kindList(kinds []domain.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}
