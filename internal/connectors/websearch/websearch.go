// Package websearch searches the general web through SerpAPI or Google
// Custom Search and keeps only links from recognised trustworthy sites.
package websearch

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/trustsearch/internal/connectors/google"
	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	Name = "websearch"

	// Item source labels per backend.
	SourceSerpAPI      = "Web (SerpAPI)"
	SourceCustomSearch = "Web (Google CSE)"

	// DefaultSerpAPIEndpoint is the SerpAPI JSON search endpoint.
	DefaultSerpAPIEndpoint = "https://serpapi.com/search.json"

	DefaultLimit   = 10
	DefaultTimeout = 15 * time.Second

	pageSize = 10
	maxItems = 100

	// previewWorkers bounds concurrent og:image fetches.
	previewWorkers = 4
)

// Provider implements driven.Provider for web search.
type Provider struct {
	client       *webclient.Client
	preview      driven.PreviewFetcher
	serpEndpoint string
	cseEndpoint  string
	cseLimiter   *google.RateLimiter
}

// Option configures a Provider.
type Option func(*Provider)

// WithSerpAPIEndpoint overrides the SerpAPI endpoint.
func WithSerpAPIEndpoint(endpoint string) Option {
	return func(p *Provider) {
		if endpoint != "" {
			p.serpEndpoint = endpoint
		}
	}
}

// WithCustomSearchEndpoint overrides the Google API root used for Custom Search.
func WithCustomSearchEndpoint(endpoint string) Option {
	return func(p *Provider) {
		p.cseEndpoint = endpoint
	}
}

// New creates a web search provider. preview may be nil, in which case
// items without a backend thumbnail keep no image.
func New(client *webclient.Client, preview driven.PreviewFetcher, opts ...Option) *Provider {
	p := &Provider{
		client:       client,
		preview:      preview,
		serpEndpoint: DefaultSerpAPIEndpoint,
		cseLimiter:   google.NewRateLimiter(google.ServiceCustomSearch),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return Name }
func (p *Provider) Group() driven.ProviderGroup { return driven.GroupWeb }
func (p *Provider) Limit() int { return DefaultLimit }
func (p *Provider) Timeout() time.Duration { return DefaultTimeout }

// Search uses SerpAPI when its key is set, else Google Custom Search when
// both engine ID and key are set, else returns nothing. Items gathered
// before a failing page are kept.
func (p *Provider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	creds := req.Credentials

	var (
		items   []domain.CandidateItem
		err     error
		backend string
	)
	switch {
	case creds.HasSerpAPI():
		backend = SourceSerpAPI
		items, err = p.serpAPI(ctx, req.Query, req.Limit, creds.SerpAPIKey)
	case creds.HasGoogleCSE():
		backend = SourceCustomSearch
		items, err = p.customSearch(ctx, req.Query, req.Limit, creds.GoogleCSEID, creds.GoogleCSEKey)
	default:
		logger.Debug("Web search skipped: no SerpAPI key or Google CSE credentials")
		return nil
	}
	if err != nil {
		logger.Warn("%s search failed after %d items: %v", backend, len(items), err)
	}

	p.attachPreviews(ctx, items)
	return items
}

func pages(limit int) int {
	limit = min(limit, maxItems)
	return (limit + pageSize - 1) / pageSize
}

type serpResponse struct {
	Organic []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Snippet   string `json:"snippet"`
		Thumbnail string `json:"thumbnail"`
	} `json:"organic_results"`
}

func (p *Provider) serpAPI(ctx context.Context, query string, limit int, key string) ([]domain.CandidateItem, error) {
	var items []domain.CandidateItem
	for page := range pages(limit) {
		params := url.Values{
			"engine":  {"google"},
			"q":       {query},
			"num":     {strconv.Itoa(pageSize)},
			"start":   {strconv.Itoa(page * pageSize)},
			"api_key": {key},
		}
		var resp serpResponse
		if err := p.client.GetJSON(ctx, p.serpEndpoint, params, &resp); err != nil {
			return items, err
		}
		for _, r := range resp.Organic {
			if r.Link == "" || !LooksTrustworthy(r.Link) {
				continue
			}
			item := domain.NewItem(r.Title, r.Link, webclient.StripHTML(r.Snippet), SourceSerpAPI, KindFor(r.Link))
			item.Image = r.Thumbnail
			items = append(items, item)
			if len(items) >= limit {
				return items, nil
			}
		}
	}
	return items, nil
}

type pagemap struct {
	CSEImage []struct {
		Src string `json:"src"`
	} `json:"cse_image"`
}

func (p *Provider) customSearch(ctx context.Context, query string, limit int, cx, key string) ([]domain.CandidateItem, error) {
	svc, err := google.NewCustomSearchService(ctx, p.client.HTTPClient(), p.cseEndpoint)
	if err != nil {
		return nil, err
	}

	var items []domain.CandidateItem
	for page := range pages(limit) {
		if err := p.cseLimiter.Wait(ctx); err != nil {
			return items, err
		}
		resp, err := svc.Cse.List().
			Q(query).
			Cx(cx).
			Num(pageSize).
			Start(int64(page*pageSize + 1)).
			Context(ctx).
			Do(google.APIKey(key))
		if err != nil {
			if google.IsRateLimited(err) || google.IsQuotaExceeded(err) {
				p.cseLimiter.RecordRateLimitError(0)
			}
			return items, google.WrapError(err)
		}
		for _, r := range resp.Items {
			if r == nil || r.Link == "" || !LooksTrustworthy(r.Link) {
				continue
			}
			item := domain.NewItem(r.Title, r.Link, webclient.StripHTML(r.Snippet), SourceCustomSearch, KindFor(r.Link))
			item.Image = cseImage(r.Pagemap)
			items = append(items, item)
			if len(items) >= limit {
				return items, nil
			}
		}
	}
	return items, nil
}

func cseImage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var pm pagemap
	if err := json.Unmarshal(raw, &pm); err != nil || len(pm.CSEImage) == 0 {
		return ""
	}
	return pm.CSEImage[0].Src
}

// attachPreviews fills missing thumbnails from the pages' og:image tags.
// Each goroutine writes only its own index.
func (p *Provider) attachPreviews(ctx context.Context, items []domain.CandidateItem) {
	if p.preview == nil {
		return
	}
	var g errgroup.Group
	g.SetLimit(previewWorkers)
	for i := range items {
		if items[i].Image != "" {
			continue
		}
		g.Go(func() error {
			items[i].Image = p.preview.ImageURL(ctx, items[i].URL)
			return nil
		})
	}
	_ = g.Wait()
}
