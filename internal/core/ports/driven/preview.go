package driven

import "context"

// PreviewFetcher resolves a thumbnail for a web page, typically from its
// og:image or twitter:image meta tag.
type PreviewFetcher interface {
	// ImageURL returns the preview image of pageURL, or "" when none is found
	// or the page cannot be fetched.
	ImageURL(ctx context.Context, pageURL string) string
}
