package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

var (
	searchMax    int
	searchWeb    bool
	searchVideos bool
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Search a topic across trusted sources",
	Long: `Queries encyclopedias, scholarly indexes and video platforms for a topic,
scores every result for trustworthiness and prints them in sections.

Flags not given on the command line fall back to the search defaults in the
config file (max 5, web off, videos on unless changed).

Examples:
  trustsearch search CRISPR gene editing
  trustsearch search --web --max 10 "plate tectonics"
  trustsearch search --videos=false --json photosynthesis`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchMax, "max", "n", domain.DefaultItemsPerSection,
		fmt.Sprintf("items per section (%d-%d)", domain.MinItemsPerSection, domain.MaxItemsPerSection))
	searchCmd.Flags().BoolVar(&searchWeb, "web", false, "include web search results")
	searchCmd.Flags().BoolVar(&searchVideos, "videos", true, "include video results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	req, err := searchRequest(cmd, svc, strings.Join(args, " "))
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := svc.Aggregator.Aggregate(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	elapsed := time.Since(start)

	if searchJSON {
		return outputSearchJSON(cmd, req, results, elapsed)
	}
	outputSearchSections(cmd, results, elapsed)
	return nil
}

// searchRequest builds the request from settings defaults and any flags set
// explicitly. --max is clamped into range.
func searchRequest(cmd *cobra.Command, svc *Services, query string) (domain.AggregateRequest, error) {
	defaults := domain.DefaultAppSettings()
	if svc.Settings != nil {
		settings, err := svc.Settings.Get()
		if err != nil {
			return domain.AggregateRequest{}, fmt.Errorf("failed to get settings: %w", err)
		}
		defaults = *settings
	}

	req := defaults.Request(query)
	flags := cmd.Flags()
	if flags.Changed("max") {
		req.MaxItemsPerSection = domain.ClampItemsPerSection(searchMax)
	}
	if flags.Changed("web") {
		req.IncludeWeb = searchWeb
	}
	if flags.Changed("videos") {
		req.IncludeVideo = searchVideos
	}
	return req, nil
}

func outputSearchJSON(
	cmd *cobra.Command, req domain.AggregateRequest, results domain.SectionedResults, elapsed time.Duration,
) error {
	data, err := json.MarshalIndent(httpapi.SearchResponse{
		Query:     req.TrimmedQuery(),
		Count:     results.TotalItems(),
		ElapsedMS: elapsed.Milliseconds(),
		Sections:  results,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchSections(cmd *cobra.Command, results domain.SectionedResults, elapsed time.Duration) {
	for _, section := range results {
		cmd.Println(section.Label)
		if len(section.Items) == 0 {
			cmd.Println("  (no results)")
			cmd.Println()
			continue
		}
		for i := range section.Items {
			item := &section.Items[i]
			cmd.Printf("  [%d] %s\n", i+1, item.Title)
			cmd.Printf("      %s\n", itemMeta(item))
			if item.URL != "" {
				cmd.Printf("      %s\n", item.URL)
			}
			if item.Snippet != "" {
				cmd.Printf("      %s\n", item.Snippet)
			}
		}
		cmd.Println()
	}

	cmd.Printf("%d items in %.2fs\n", results.TotalItems(), elapsed.Seconds())
}

// itemMeta formats "82/100 · Wikipedia · 2021".
func itemMeta(item *domain.CandidateItem) string {
	parts := []string{fmt.Sprintf("%.0f/100", item.ScoreValue()), item.Source}
	if item.Meta.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *item.Meta.Year))
	}
	return strings.Join(parts, " · ")
}
