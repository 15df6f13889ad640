package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for trustsearch.

Type a topic and press Enter to search. Results are grouped into sections and
each item shows its trust score.

Controls:
  Enter      - Search / Select
  ctrl+w     - Toggle web results
  ctrl+y     - Toggle videos
  +/-        - More or fewer items per section
  ↑/k, ↓/j   - Navigate results
  n          - New search
  Esc        - Back
  q          - Quit (menu)`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	svc, err := loadServices()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(svc.Aggregator, svc.Providers, svc.Settings))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
