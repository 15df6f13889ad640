package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	coreservices "github.com/custodia-labs/trustsearch/internal/core/services"
)

// readSecret reads a secret from the terminal. Replaced in tests.
var readSecret = readPassword

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change search defaults and provider API keys.

Settings live in config.toml inside the config directory. Environment
variables override stored keys: SERPAPI_KEY, GOOGLE_CSE_ID, GOOGLE_CSE_KEY,
YOUTUBE_DATA_API_KEY and GITHUB_TOKEN.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: fmt.Sprintf(`Set a single config value.

Keys:
  %s`, strings.Join(coreservices.SettingKeys(), "\n  ")),
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <credential>",
	Short: "Store a provider API key",
	Long: fmt.Sprintf(`Store an API key without echoing it to the terminal.

Credentials:
%s`, credentialHelp()),
	Args:      cobra.ExactArgs(1),
	ValidArgs: credentialNames(),
	RunE:      runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Max items per section: %d\n", settings.Search.MaxItems)
	cmd.Printf("  Include web: %s\n", yesNo(settings.Search.IncludeWeb))
	cmd.Printf("  Include videos: %s\n", yesNo(settings.Search.IncludeVideos))
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Window: %s\n", settings.Cache.Window)
	cmd.Printf("  Max entries: %d\n", settings.Cache.MaxEntries)
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Workers: %d\n", settings.Pipeline.Workers)
	cmd.Println()

	cmd.Println("[Credentials]")
	for _, name := range domain.AllCredentialNames() {
		value := settings.Credentials.Value(name)
		if value == "" {
			cmd.Printf("  %s: (not set)\n", name.Description())
			continue
		}
		cmd.Printf("  %s: %s\n", name.Description(), maskAPIKey(value))
	}
	cmd.Println()

	if svc.Providers != nil {
		cmd.Println("[Providers]")
		for _, st := range svc.Providers.Status(settings.Credentials) {
			state := "needs key"
			if st.Ready {
				state = "ready"
			}
			cmd.Printf("  %-24s %s\n", st.Provider.Label, state)
		}
		cmd.Println()
	}

	if err := svc.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'trustsearch config set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := svc.Settings.SetValue(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	name := domain.CredentialName(args[0])
	if !name.IsValid() {
		return fmt.Errorf("%w: unknown credential %q (expected one of: %s)",
			domain.ErrInvalidInput, args[0], strings.Join(credentialNames(), ", "))
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	cmd.Printf("Enter %s: ", name.Description())
	secret := strings.TrimSpace(readSecret())
	cmd.Println()
	if secret == "" {
		return errors.New("no value entered")
	}

	if err := svc.Settings.SetCredential(name, secret); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	cmd.Printf("Stored %s: %s\n", name.Description(), maskAPIKey(secret))

	if env := coreservices.CredentialEnvVar(name); env != "" {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			cmd.Printf("Note: %s is set and takes precedence over the stored key.\n", env)
		}
	}
	return nil
}

func credentialNames() []string {
	names := domain.AllCredentialNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

func credentialHelp() string {
	var b strings.Builder
	for _, n := range domain.AllCredentialNames() {
		fmt.Fprintf(&b, "  %-16s %s\n", n, n.Description())
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
