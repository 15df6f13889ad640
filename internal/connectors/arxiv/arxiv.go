// Package arxiv searches arXiv preprints through the export Atom API.
package arxiv

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	Name   = "arxiv"
	Source = "arXiv"

	// DefaultEndpoint is the arXiv query API.
	DefaultEndpoint = "https://export.arxiv.org/api/query"

	DefaultLimit   = 8
	DefaultTimeout = 15 * time.Second
)

// Provider implements driven.Provider for arXiv.
type Provider struct {
	client   *webclient.Client
	endpoint string
}

// New creates an arXiv provider. An empty endpoint selects DefaultEndpoint.
func New(client *webclient.Client, endpoint string) *Provider {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Provider{client: client, endpoint: endpoint}
}

func (p *Provider) Name() string { return Name }
func (p *Provider) Group() driven.ProviderGroup { return driven.GroupCore }
func (p *Provider) Limit() int { return DefaultLimit }
func (p *Provider) Timeout() time.Duration { return DefaultTimeout }

// Search queries all fields and maps each Atom entry to a preprint item.
func (p *Provider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	items, err := p.search(ctx, req.Query, req.Limit)
	if err != nil {
		logger.Warn("arXiv search failed: %v", err)
		return nil
	}
	return items
}

func (p *Provider) search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	params := url.Values{
		"search_query": {"all:" + query},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(limit)},
	}
	body, err := p.client.Get(ctx, p.endpoint, params)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.CandidateItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		items = append(items, toItem(entry))
	}
	return items, nil
}

func toItem(entry *gofeed.Item) domain.CandidateItem {
	item := domain.NewItem(
		collapse(entry.Title),
		entry.Link,
		collapse(entry.Description),
		Source,
		domain.KindPreprint,
	)
	if entry.PublishedParsed != nil {
		item.Meta.Year = domain.OptionalYear(entry.PublishedParsed.Year())
	} else if len(entry.Published) >= 4 {
		if y, err := strconv.Atoi(entry.Published[:4]); err == nil {
			item.Meta.Year = domain.OptionalYear(y)
		}
	}
	item.Meta.DOI = extension(entry, "doi")
	item.Meta.Venue = collapse(extension(entry, "journal_ref"))
	return item
}

// extension returns the first arxiv:<name> element value of entry.
func extension(entry *gofeed.Item, name string) string {
	values := entry.Extensions["arxiv"][name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// collapse joins the hard-wrapped lines arXiv uses in titles and abstracts.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
