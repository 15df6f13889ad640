package google

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// clientOptions builds the options shared by every service. A custom HTTP
// client bypasses ambient credential discovery, so keys go on each call.
func clientOptions(hc *http.Client, endpoint string) []option.ClientOption {
	if hc == nil {
		hc = http.DefaultClient
	}
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

// NewCustomSearchService creates a Custom Search JSON API service.
// An empty endpoint selects the production API.
func NewCustomSearchService(ctx context.Context, hc *http.Client, endpoint string) (*customsearch.Service, error) {
	svc, err := customsearch.NewService(ctx, clientOptions(hc, endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}
	return svc, nil
}

// NewYouTubeService creates a YouTube Data API v3 service.
// An empty endpoint selects the production API.
func NewYouTubeService(ctx context.Context, hc *http.Client, endpoint string) (*youtube.Service, error) {
	svc, err := youtube.NewService(ctx, clientOptions(hc, endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return svc, nil
}

// APIKey returns a call option that authenticates one request with key.
func APIKey(key string) googleapi.CallOption {
	return googleapi.QueryParameter("key", key)
}
