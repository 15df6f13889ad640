package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func sampleResults() domain.SectionedResults {
	wiki := domain.NewItem("CRISPR", "https://en.wikipedia.org/wiki/CRISPR", "Gene editing", "Wikipedia", domain.KindEncyclopedia)
	wiki.SetScore(82)
	paper := domain.NewItem("Cas9 review", "https://doi.org/10.1/x", "", "Crossref", domain.KindJournal)
	paper.Meta.Year = domain.OptionalYear(2021)
	paper.Meta.Citations = 140
	paper.SetScore(91.5)

	return domain.SectionedResults{
		{Label: domain.SectionOverview, Items: []domain.CandidateItem{wiki}},
		{Label: domain.SectionResearch, Items: []domain.CandidateItem{paper}},
		{Label: domain.SectionArticles, Items: []domain.CandidateItem{}},
		{Label: domain.SectionVideos, Items: []domain.CandidateItem{}},
	}
}

func TestServer_handleAggregateSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sectioned results", func(t *testing.T) {
		agg := &mockAggregator{results: sampleResults()}
		server, err := NewServer(&Ports{Aggregator: agg})
		require.NoError(t, err)

		_, output, err := server.handleAggregateSearch(ctx, nil, AggregateSearchInput{Query: "CRISPR"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Sections, 4)
		assert.Equal(t, domain.SectionOverview, output.Sections[0].Label)
		assert.Equal(t, "CRISPR", output.Sections[0].Items[0].Title)
		assert.Equal(t, "encyclopedia", output.Sections[0].Items[0].Kind)
		assert.InDelta(t, 82, output.Sections[0].Items[0].Score, 0.001)

		paper := output.Sections[1].Items[0]
		require.NotNil(t, paper.Year)
		assert.Equal(t, 2021, *paper.Year)
		assert.InDelta(t, 140, paper.Citations, 0.001)
		assert.NotNil(t, output.Sections[2].Items)
	})

	t.Run("omitted fields use defaults", func(t *testing.T) {
		agg := &mockAggregator{}
		server, err := NewServer(&Ports{Aggregator: agg})
		require.NoError(t, err)

		_, _, err = server.handleAggregateSearch(ctx, nil, AggregateSearchInput{Query: "photosynthesis"})

		require.NoError(t, err)
		assert.Equal(t, domain.AggregateRequest{
			Query:              "photosynthesis",
			MaxItemsPerSection: domain.DefaultItemsPerSection,
			IncludeWeb:         false,
			IncludeVideo:       true,
		}, agg.last)
	})

	t.Run("omitted fields use configured settings", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.Search.MaxItems = 9
		settings.Search.IncludeWeb = true
		agg := &mockAggregator{}
		server, err := NewServer(&Ports{Aggregator: agg, Settings: &mockSettingsService{settings: settings}})
		require.NoError(t, err)

		_, _, err = server.handleAggregateSearch(ctx, nil, AggregateSearchInput{Query: "photosynthesis"})

		require.NoError(t, err)
		assert.Equal(t, 9, agg.last.MaxItemsPerSection)
		assert.True(t, agg.last.IncludeWeb)
	})

	t.Run("explicit fields override defaults", func(t *testing.T) {
		agg := &mockAggregator{}
		server, err := NewServer(&Ports{Aggregator: agg})
		require.NoError(t, err)

		input := AggregateSearchInput{
			Query:         "black holes",
			MaxItems:      intPtr(12),
			IncludeWeb:    boolPtr(true),
			IncludeVideos: boolPtr(false),
		}
		_, _, err = server.handleAggregateSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 12, agg.last.MaxItemsPerSection)
		assert.True(t, agg.last.IncludeWeb)
		assert.False(t, agg.last.IncludeVideo)
	})

	t.Run("returns validation error", func(t *testing.T) {
		agg := &mockAggregator{err: fmt.Errorf("%w: query too short", domain.ErrInvalidInput)}
		server, err := NewServer(&Ports{Aggregator: agg})
		require.NoError(t, err)

		_, _, err = server.handleAggregateSearch(ctx, nil, AggregateSearchInput{Query: "ab"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
