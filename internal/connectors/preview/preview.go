// Package preview resolves page thumbnails from Open Graph and Twitter card
// meta tags.
package preview

import (
	"bytes"
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PreviewFetcher = (*Fetcher)(nil)

const (
	// DefaultTimeout bounds one page fetch.
	DefaultTimeout = 6 * time.Second

	// DefaultCacheSize is the number of page URLs remembered.
	DefaultCacheSize = 256
)

// Fetcher fetches pages and extracts their og:image or twitter:image.
// Results, including misses, are cached by page URL.
type Fetcher struct {
	client  *webclient.Client
	timeout time.Duration
	cache   *lru.Cache[string, string]
}

// New creates a fetcher using client for HTTP.
func New(client *webclient.Client) *Fetcher {
	// Size is a positive constant, so New cannot fail.
	cache, _ := lru.New[string, string](DefaultCacheSize)
	return &Fetcher{
		client:  client,
		timeout: DefaultTimeout,
		cache:   cache,
	}
}

// ImageURL returns the absolute http(s) preview image of pageURL, or "".
func (f *Fetcher) ImageURL(ctx context.Context, pageURL string) string {
	if !isHTTP(pageURL) {
		return ""
	}
	if img, ok := f.cache.Get(pageURL); ok {
		return img
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.client.Get(fetchCtx, pageURL, nil)
	if err != nil {
		// Not cached when the caller gave up rather than the page failing.
		if ctx.Err() != nil {
			return ""
		}
		logger.Debug("Preview fetch failed for %s: %v", pageURL, err)
		f.cache.Add(pageURL, "")
		return ""
	}

	img := ExtractImage(body)
	f.cache.Add(pageURL, img)
	return img
}

// ExtractImage returns the og:image, else the twitter:image, declared in
// the document head. Values that are not absolute http(s) URLs are ignored.
func ExtractImage(doc []byte) string {
	z := html.NewTokenizer(bytes.NewReader(doc))
	var twitter string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return twitter
		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Head {
				return twitter
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case atom.Body:
				return twitter
			case atom.Meta:
				if !hasAttr {
					continue
				}
				key, content := metaAttrs(z)
				switch key {
				case "og:image":
					if isHTTP(content) {
						return content
					}
				case "twitter:image":
					if twitter == "" && isHTTP(content) {
						twitter = content
					}
				}
			}
		}
	}
}

// metaAttrs returns the lowercased property (or name) and the content of
// the current meta tag.
func metaAttrs(z *html.Tokenizer) (key, content string) {
	for {
		k, v, more := z.TagAttr()
		switch string(k) {
		case "property", "name":
			if key == "" || string(k) == "property" {
				key = strings.ToLower(strings.TrimSpace(string(v)))
			}
		case "content":
			content = strings.TrimSpace(string(v))
		}
		if !more {
			return key, content
		}
	}
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
