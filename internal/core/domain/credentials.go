package domain

// Credentials holds the API keys used by source providers.
//
// It is passed by value from configuration into the aggregation service and
// down into every provider call, so the pipeline never reads ambient state.
// A provider whose key is missing degrades to an empty (or keyless fallback)
// result rather than failing.
type Credentials struct {
	// SerpAPIKey enables the SerpAPI web search backend.
	SerpAPIKey string `json:"-"`

	// GoogleCSEID is the Google Programmable Search engine ID.
	GoogleCSEID string `json:"-"`

	// GoogleCSEKey is the Google Custom Search API key.
	GoogleCSEKey string `json:"-"`

	// YouTubeAPIKey enables the YouTube Data API. Without it the RSS feed is used.
	YouTubeAPIKey string `json:"-"`

	// GitHubToken enables repository search.
	GitHubToken string `json:"-"`
}

// HasSerpAPI reports whether the SerpAPI backend is usable.
func (c Credentials) HasSerpAPI() bool {
	return c.SerpAPIKey != ""
}

// HasGoogleCSE reports whether the Google Custom Search backend is usable.
func (c Credentials) HasGoogleCSE() bool {
	return c.GoogleCSEID != "" && c.GoogleCSEKey != ""
}

// HasWebSearch reports whether any web search backend is configured.
func (c Credentials) HasWebSearch() bool {
	return c.HasSerpAPI() || c.HasGoogleCSE()
}

// HasYouTubeAPI reports whether the YouTube Data API can be used.
func (c Credentials) HasYouTubeAPI() bool {
	return c.YouTubeAPIKey != ""
}

// HasGitHub reports whether GitHub repository search can be used.
func (c Credentials) HasGitHub() bool {
	return c.GitHubToken != ""
}

// Merge returns c with every empty field filled from other.
func (c Credentials) Merge(other Credentials) Credentials {
	if c.SerpAPIKey == "" {
		c.SerpAPIKey = other.SerpAPIKey
	}
	if c.GoogleCSEID == "" {
		c.GoogleCSEID = other.GoogleCSEID
	}
	if c.GoogleCSEKey == "" {
		c.GoogleCSEKey = other.GoogleCSEKey
	}
	if c.YouTubeAPIKey == "" {
		c.YouTubeAPIKey = other.YouTubeAPIKey
	}
	if c.GitHubToken == "" {
		c.GitHubToken = other.GitHubToken
	}
	return c
}
