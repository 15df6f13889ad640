// Package youtube searches YouTube videos through the Data API when a key
// is configured and through the public videos feed otherwise.
package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	yt "google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/trustsearch/internal/connectors/google"
	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	Name = "youtube"

	// Item source labels per backend.
	SourceAPI = "YouTube"
	SourceRSS = "YouTube (RSS)"

	// DefaultFeedURL is the public videos feed.
	DefaultFeedURL = "https://www.youtube.com/feeds/videos.xml"

	// WatchURL and ThumbnailURL are formatted with a video ID.
	WatchURL     = "https://www.youtube.com/watch?v=%s"
	ThumbnailURL = "https://i.ytimg.com/vi/%s/hqdefault.jpg"

	DefaultLimit   = 10
	DefaultTimeout = 10 * time.Second

	// maxAPIResults caps one search.list call.
	maxAPIResults = 25
)

// Provider implements driven.Provider for YouTube.
type Provider struct {
	client      *webclient.Client
	apiEndpoint string
	feedURL     string
	limiter     *google.RateLimiter
}

// Option configures a Provider.
type Option func(*Provider)

// WithAPIEndpoint overrides the Google API root used for the Data API.
func WithAPIEndpoint(endpoint string) Option {
	return func(p *Provider) {
		p.apiEndpoint = endpoint
	}
}

// WithFeedURL overrides the videos feed URL.
func WithFeedURL(feedURL string) Option {
	return func(p *Provider) {
		if feedURL != "" {
			p.feedURL = feedURL
		}
	}
}

// New creates a YouTube provider.
func New(client *webclient.Client, opts ...Option) *Provider {
	p := &Provider{
		client:  client,
		feedURL: DefaultFeedURL,
		limiter: google.NewRateLimiter(google.ServiceYouTube),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return Name }
func (p *Provider) Group() driven.ProviderGroup { return driven.GroupVideo }
func (p *Provider) Limit() int { return DefaultLimit }
func (p *Provider) Timeout() time.Duration { return DefaultTimeout }

// Search prefers the Data API. A missing key or a failed API call falls
// back to the feed; an API answer with no videos does not.
func (p *Provider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	if req.Credentials.HasYouTubeAPI() {
		items, err := p.searchAPI(ctx, req.Query, req.Limit, req.Credentials.YouTubeAPIKey)
		if err == nil {
			return items
		}
		logger.Warn("YouTube API search failed, using feed: %v", err)
	}

	items, err := p.searchFeed(ctx, req.Query, req.Limit)
	if err != nil {
		logger.Warn("YouTube feed search failed: %v", err)
		return nil
	}
	return items
}

func (p *Provider) searchAPI(ctx context.Context, query string, limit int, key string) ([]domain.CandidateItem, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	svc, err := google.NewYouTubeService(ctx, p.client.HTTPClient(), p.apiEndpoint)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(min(maxAPIResults, limit))).
		SafeSearch("strict").
		Context(ctx).
		Do(google.APIKey(key))
	if err != nil {
		if google.IsRateLimited(err) || google.IsQuotaExceeded(err) {
			p.limiter.RecordRateLimitError(0)
		}
		return nil, google.WrapError(err)
	}

	items := make([]domain.CandidateItem, 0, len(resp.Items))
	for _, r := range resp.Items {
		if r == nil || r.Id == nil || r.Id.VideoId == "" {
			continue
		}
		items = append(items, apiItem(r))
	}
	return items, nil
}

func apiItem(r *yt.SearchResult) domain.CandidateItem {
	id := r.Id.VideoId
	var title, desc, thumb string
	if sn := r.Snippet; sn != nil {
		title = webclient.StripHTML(sn.Title)
		desc = sn.Description
		if sn.Thumbnails != nil && sn.Thumbnails.High != nil {
			thumb = sn.Thumbnails.High.Url
		}
	}
	if thumb == "" {
		thumb = fmt.Sprintf(ThumbnailURL, id)
	}

	item := domain.NewItem(title, fmt.Sprintf(WatchURL, id), desc, SourceAPI, domain.KindVideo)
	item.Meta.VideoID = id
	item.Image = thumb
	return item
}

func (p *Provider) searchFeed(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	body, err := p.client.Get(ctx, p.feedURL, url.Values{"search_query": {query}})
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := feed.Items
	if len(entries) > limit {
		entries = entries[:limit]
	}
	items := make([]domain.CandidateItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, feedItem(e))
	}
	return items, nil
}

func feedItem(e *gofeed.Item) domain.CandidateItem {
	id := videoID(e)
	item := domain.NewItem(e.Title, e.Link, feedDescription(e), SourceRSS, domain.KindVideo)
	item.Meta.VideoID = id
	if id != "" {
		item.Image = fmt.Sprintf(ThumbnailURL, id)
	}
	return item
}

// videoID reads yt:videoId, else the v= parameter of the link.
func videoID(e *gofeed.Item) string {
	if ids := e.Extensions["yt"]["videoId"]; len(ids) > 0 && ids[0].Value != "" {
		return strings.TrimSpace(ids[0].Value)
	}
	if _, after, ok := strings.Cut(e.Link, "v="); ok {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	return ""
}

// feedDescription returns the entry summary or the media:group description.
func feedDescription(e *gofeed.Item) string {
	if e.Description != "" {
		return e.Description
	}
	groups := e.Extensions["media"]["group"]
	if len(groups) == 0 {
		return ""
	}
	if descs := groups[0].Children["description"]; len(descs) > 0 {
		return descs[0].Value
	}
	return ""
}
