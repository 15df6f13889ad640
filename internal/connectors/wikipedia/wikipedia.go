// Package wikipedia searches English Wikipedia through the MediaWiki action
// API, falling back to the REST page summary and then to opensearch.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	// Name identifies the provider in logs and metrics.
	Name = "wikipedia"

	// Source is the label shown on items.
	Source = "Wikipedia"

	// DefaultBaseURL is the English Wikipedia site.
	DefaultBaseURL = "https://en.wikipedia.org"

	// DefaultLimit is the number of items requested per run.
	DefaultLimit = 8

	// DefaultTimeout bounds one Search call.
	DefaultTimeout = 10 * time.Second
)

// Provider implements driven.Provider for Wikipedia.
type Provider struct {
	client  *webclient.Client
	baseURL string
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL points the provider at another MediaWiki site.
func WithBaseURL(base string) Option {
	return func(p *Provider) {
		if base != "" {
			p.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// New creates a Wikipedia provider.
func New(client *webclient.Client, opts ...Option) *Provider {
	p := &Provider{client: client, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return Name }
func (p *Provider) Group() driven.ProviderGroup { return driven.GroupCore }
func (p *Provider) Limit() int { return DefaultLimit }
func (p *Provider) Timeout() time.Duration { return DefaultTimeout }

// Search tries full-text search, then the page summary for the query as a
// title, then opensearch. The first non-empty stage wins.
func (p *Provider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	items, err := p.search(ctx, req.Query, req.Limit)
	if err != nil {
		logger.Warn("Wikipedia search failed: %v", err)
		return nil
	}
	if len(items) > 0 {
		return items
	}

	items, err = p.summary(ctx, req.Query)
	if err != nil {
		logger.Warn("Wikipedia summary failed: %v", err)
		return nil
	}
	if len(items) > 0 {
		return items
	}

	items, err = p.opensearch(ctx, req.Query, req.Limit)
	if err != nil {
		logger.Warn("Wikipedia opensearch failed: %v", err)
		return nil
	}
	return items
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

func (p *Provider) search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
		"srlimit":  {strconv.Itoa(limit)},
		"utf8":     {"1"},
	}
	var resp searchResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/w/api.php", params, &resp); err != nil {
		return nil, err
	}

	items := make([]domain.CandidateItem, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		items = append(items, domain.NewItem(
			hit.Title,
			p.pageURL(hit.Title),
			webclient.StripHTML(hit.Snippet),
			Source,
			domain.KindEncyclopedia,
		))
	}
	return items, nil
}

type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs *struct {
		Desktop *struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// summary treats the query as a page title. A missing page is not an error.
func (p *Provider) summary(ctx context.Context, query string) ([]domain.CandidateItem, error) {
	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	endpoint := p.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(title)

	var resp summaryResponse
	if err := p.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		if webclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if resp.ContentURLs == nil {
		return nil, nil
	}

	pageURL := p.pageURL(title)
	if resp.ContentURLs.Desktop != nil && resp.ContentURLs.Desktop.Page != "" {
		pageURL = resp.ContentURLs.Desktop.Page
	}
	display := resp.Title
	if display == "" {
		display = query
	}

	item := domain.NewItem(display, pageURL, resp.Extract, Source, domain.KindEncyclopedia)
	if resp.Thumbnail != nil {
		item.Image = resp.Thumbnail.Source
	}
	return []domain.CandidateItem{item}, nil
}

// opensearch decodes the [query, titles, descriptions, urls] array form.
func (p *Provider) opensearch(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	params := url.Values{
		"action":    {"opensearch"},
		"search":    {query},
		"limit":     {strconv.Itoa(limit)},
		"namespace": {"0"},
		"format":    {"json"},
	}
	var raw []json.RawMessage
	if err := p.client.GetJSON(ctx, p.baseURL+"/w/api.php", params, &raw); err != nil {
		return nil, err
	}

	column := func(i int) ([]string, error) {
		if len(raw) <= i {
			return nil, nil
		}
		var out []string
		if err := json.Unmarshal(raw[i], &out); err != nil {
			return nil, fmt.Errorf("decode opensearch column %d: %w", i, err)
		}
		return out, nil
	}
	titles, err := column(1)
	if err != nil {
		return nil, err
	}
	descs, err := column(2)
	if err != nil {
		return nil, err
	}
	urls, err := column(3)
	if err != nil {
		return nil, err
	}

	n := min(len(titles), len(descs), len(urls))
	items := make([]domain.CandidateItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.NewItem(titles[i], urls[i], descs[i], Source, domain.KindEncyclopedia))
	}
	return items, nil
}

func (p *Provider) pageURL(title string) string {
	return p.baseURL + "/wiki/" + strings.ReplaceAll(title, " ", "_")
}
