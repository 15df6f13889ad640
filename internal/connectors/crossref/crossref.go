// Package crossref searches scholarly works registered with Crossref.
package crossref

import (
	"context"
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
	Name   = "crossref"
	Source = "Crossref"

	// DefaultEndpoint is the works search endpoint.
	DefaultEndpoint = "https://api.crossref.org/works"

	DefaultLimit   = 8
	DefaultTimeout = 15 * time.Second
)

// Provider implements driven.Provider for Crossref.
type Provider struct {
	client   *webclient.Client
	endpoint string
}

// New creates a Crossref provider. An empty endpoint selects DefaultEndpoint.
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

type work struct {
	Title []string `json:"title"`
	Link  []struct {
		URL string `json:"URL"`
	} `json:"link"`
	URL    string `json:"URL"`
	DOI    string `json:"DOI"`
	Issued struct {
		DateParts [][]*int `json:"date-parts"`
	} `json:"issued"`
	ReferencedBy   float64  `json:"is-referenced-by-count"`
	ContainerTitle []string `json:"container-title"`
}

type worksResponse struct {
	Message struct {
		Items []work `json:"items"`
	} `json:"message"`
}

// Search returns journal items ranked by Crossref relevance.
func (p *Provider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	params := url.Values{
		"query": {req.Query},
		"rows":  {strconv.Itoa(req.Limit)},
	}
	var resp worksResponse
	if err := p.client.GetJSON(ctx, p.endpoint, params, &resp); err != nil {
		logger.Warn("Crossref search failed: %v", err)
		return nil
	}

	items := make([]domain.CandidateItem, 0, len(resp.Message.Items))
	for _, w := range resp.Message.Items {
		items = append(items, toItem(w))
	}
	return items
}

func toItem(w work) domain.CandidateItem {
	title := ""
	if len(w.Title) > 0 {
		title = w.Title[0]
	}

	link := w.URL
	for _, l := range w.Link {
		if l.URL != "" {
			link = l.URL
			break
		}
	}

	container := ""
	if len(w.ContainerTitle) > 0 {
		container = w.ContainerTitle[0]
	}
	snippet := container
	if w.DOI != "" {
		snippet += " · DOI: " + w.DOI
	}

	item := domain.NewItem(webclient.StripHTML(title), link, strings.TrimSpace(snippet), Source, domain.KindJournal)
	item.Meta.Citations = max(0, w.ReferencedBy)
	item.Meta.DOI = w.DOI
	item.Meta.Venue = container
	if len(w.Issued.DateParts) > 0 && len(w.Issued.DateParts[0]) > 0 && w.Issued.DateParts[0][0] != nil {
		item.Meta.Year = domain.OptionalYear(*w.Issued.DateParts[0][0])
	}
	return item
}
