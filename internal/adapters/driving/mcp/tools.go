package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// AggregateSearchInput is the input schema for the aggregate_search tool.
type AggregateSearchInput struct {
	Query         string `json:"query" jsonschema:"the topic to research, at least 3 characters"`
	MaxItems      *int   `json:"max_items,omitempty" jsonschema:"items per section, between 3 and 20 (default 5)"`
	IncludeWeb    *bool  `json:"include_web,omitempty" jsonschema:"include trusted web sites and GitHub (default false)"`
	IncludeVideos *bool  `json:"include_videos,omitempty" jsonschema:"include YouTube videos (default true)"`
}

// AggregateSearchOutput is the output schema for the aggregate_search tool.
type AggregateSearchOutput struct {
	Sections []SectionOutput `json:"sections"`
	Count    int             `json:"count"`
}

// SectionOutput is one labelled group of results.
type SectionOutput struct {
	Label string       `json:"label"`
	Items []ItemOutput `json:"items"`
}

// ItemOutput represents a single scored result.
type ItemOutput struct {
	Title     string  `json:"title"`
	URL       string  `json:"url,omitempty"`
	Snippet   string  `json:"snippet,omitempty"`
	Source    string  `json:"source"`
	Kind      string  `json:"kind"`
	Year      *int    `json:"year,omitempty"`
	Citations float64 `json:"citations,omitempty"`
	Image     string  `json:"image,omitempty"`
	Score     float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "aggregate_search",
		Description: "Search encyclopedias, peer-reviewed literature, trusted web sites and " +
			"videos for a topic. Results are trust-scored (0-100) and grouped into sections.",
	}, s.handleAggregateSearch)
}

// handleAggregateSearch handles the aggregate_search tool invocation.
func (s *Server) handleAggregateSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AggregateSearchInput,
) (*mcp.CallToolResult, AggregateSearchOutput, error) {
	results, err := s.ports.Aggregator.Aggregate(ctx, s.request(input))
	if err != nil {
		return nil, AggregateSearchOutput{}, err
	}
	return nil, toOutput(results), nil
}

// request fills omitted input fields from the configured search defaults.
// An explicit max_items is passed through so out-of-range values are reported.
func (s *Server) request(input AggregateSearchInput) domain.AggregateRequest {
	defaults := domain.DefaultAppSettings()
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			defaults = *settings
		}
	}

	req := defaults.Request(input.Query)
	if input.MaxItems != nil {
		req.MaxItemsPerSection = *input.MaxItems
	}
	if input.IncludeWeb != nil {
		req.IncludeWeb = *input.IncludeWeb
	}
	if input.IncludeVideos != nil {
		req.IncludeVideo = *input.IncludeVideos
	}
	return req
}

func toOutput(results domain.SectionedResults) AggregateSearchOutput {
	output := AggregateSearchOutput{
		Sections: make([]SectionOutput, len(results)),
		Count:    results.TotalItems(),
	}
	for i, section := range results {
		items := make([]ItemOutput, len(section.Items))
		for j := range section.Items {
			it := &section.Items[j]
			items[j] = ItemOutput{
				Title:     it.Title,
				URL:       it.URL,
				Snippet:   it.Snippet,
				Source:    it.Source,
				Kind:      it.Kind.String(),
				Year:      it.Meta.Year,
				Citations: it.Meta.Citations,
				Image:     it.Image,
				Score:     it.ScoreValue(),
			}
		}
		output.Sections[i] = SectionOutput{Label: section.Label, Items: items}
	}
	return output
}
