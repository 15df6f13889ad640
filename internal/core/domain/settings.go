package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// CredentialName identifies one API key in configuration.
type CredentialName string

// Known credentials.
const (
	CredentialSerpAPI      CredentialName = "serpapi"
	CredentialGoogleCSEID  CredentialName = "google_cse_id"
	CredentialGoogleCSEKey CredentialName = "google_cse_key"
	CredentialYouTube      CredentialName = "youtube"
	CredentialGitHub       CredentialName = "github"
)

// AllCredentialNames returns every known credential name.
func AllCredentialNames() []CredentialName {
	return []CredentialName{
		CredentialSerpAPI,
		CredentialGoogleCSEID,
		CredentialGoogleCSEKey,
		CredentialYouTube,
		CredentialGitHub,
	}
}

// IsValid returns true if the credential name is recognised.
func (n CredentialName) IsValid() bool {
	for _, known := range AllCredentialNames() {
		if n == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (n CredentialName) String() string {
	return string(n)
}

// Description returns a human-readable description of the credential.
func (n CredentialName) Description() string {
	switch n {
	case CredentialSerpAPI:
		return "SerpAPI key (web search)"
	case CredentialGoogleCSEID:
		return "Google Programmable Search engine ID"
	case CredentialGoogleCSEKey:
		return "Google Custom Search API key"
	case CredentialYouTube:
		return "YouTube Data API key"
	case CredentialGitHub:
		return "GitHub personal access token"
	default:
		return unknownDescription
	}
}

// With returns c with the named credential set to value.
func (c Credentials) With(name CredentialName, value string) Credentials {
	switch name {
	case CredentialSerpAPI:
		c.SerpAPIKey = value
	case CredentialGoogleCSEID:
		c.GoogleCSEID = value
	case CredentialGoogleCSEKey:
		c.GoogleCSEKey = value
	case CredentialYouTube:
		c.YouTubeAPIKey = value
	case CredentialGitHub:
		c.GitHubToken = value
	}
	return c
}

// Value returns the named credential.
func (c Credentials) Value(name CredentialName) string {
	switch name {
	case CredentialSerpAPI:
		return c.SerpAPIKey
	case CredentialGoogleCSEID:
		return c.GoogleCSEID
	case CredentialGoogleCSEKey:
		return c.GoogleCSEKey
	case CredentialYouTube:
		return c.YouTubeAPIKey
	case CredentialGitHub:
		return c.GitHubToken
	default:
		return ""
	}
}

// SearchSettings holds the defaults used when a caller gives no explicit options.
type SearchSettings struct {
	// MaxItems is the per-section item limit.
	MaxItems int

	// IncludeWeb enables web search providers.
	IncludeWeb bool

	// IncludeVideos enables video providers.
	IncludeVideos bool
}

// CacheSettings configures the aggregation result cache.
type CacheSettings struct {
	// Window is the width of one cache time bucket.
	Window time.Duration

	// MaxEntries bounds the number of cached results.
	MaxEntries int
}

// PipelineSettings configures provider fan-out.
type PipelineSettings struct {
	// Workers bounds the number of concurrent provider calls.
	Workers int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search holds search defaults.
	Search SearchSettings

	// Cache holds result cache settings.
	Cache CacheSettings

	// Pipeline holds fan-out settings.
	Pipeline PipelineSettings

	// Credentials holds provider API keys.
	Credentials Credentials
}

// DefaultAppSettings returns settings with sensible defaults.
// Videos are on and web search is off, matching the interactive defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			MaxItems:      DefaultItemsPerSection,
			IncludeWeb:    false,
			IncludeVideos: true,
		},
		Cache: CacheSettings{
			Window:     300 * time.Second,
			MaxEntries: 128,
		},
		Pipeline: PipelineSettings{
			Workers: 6,
		},
	}
}

// Validate checks that every setting is within its allowed range.
func (s AppSettings) Validate() error {
	if s.Search.MaxItems < MinItemsPerSection || s.Search.MaxItems > MaxItemsPerSection {
		return fmt.Errorf("%w: search.max_items must be between %d and %d",
			ErrInvalidInput, MinItemsPerSection, MaxItemsPerSection)
	}
	if s.Cache.Window < time.Second {
		return fmt.Errorf("%w: cache.window_seconds must be at least 1", ErrInvalidInput)
	}
	if s.Cache.MaxEntries < 1 {
		return fmt.Errorf("%w: cache.max_entries must be positive", ErrInvalidInput)
	}
	if s.Pipeline.Workers < 1 {
		return fmt.Errorf("%w: pipeline.workers must be positive", ErrInvalidInput)
	}
	return nil
}

// Request builds an aggregation request for query using the search defaults.
func (s AppSettings) Request(query string) AggregateRequest {
	return AggregateRequest{
		Query:              query,
		MaxItemsPerSection: ClampItemsPerSection(s.Search.MaxItems),
		IncludeWeb:         s.Search.IncludeWeb,
		IncludeVideo:       s.Search.IncludeVideos,
	}
}
