// Package google provides shared infrastructure for the Google API backed
// providers (Custom Search and YouTube Data).
//
// It contains:
//   - Service factories that build API-key clients on a caller-supplied
//     HTTP client and endpoint
//   - Error classification for Google API errors (401, 403, 404, 429, quota)
//   - Rate limiting to respect per-service quotas
//
// # Usage
//
//	svc, err := google.NewYouTubeService(ctx, httpClient, "")
//	resp, err := svc.Search.List([]string{"snippet"}).Q(q).Context(ctx).Do(google.APIKey(key))
//
// API keys are attached per call rather than per service because the
// credentials of a run are not known when the provider is constructed.
package google
