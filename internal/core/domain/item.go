package domain

import "strings"

const (
	// UntitledPlaceholder is the display title used when a source gives none.
	UntitledPlaceholder = "(untitled)"

	// MaxSnippetRunes bounds snippet length before the ellipsis marker is appended.
	MaxSnippetRunes = 300

	// SnippetEllipsis marks a truncated snippet.
	SnippetEllipsis = "..."

	// MinYear is the earliest publication year considered meaningful.
	MinYear = 1900
)

// ItemMeta carries the optional per-kind metadata of a candidate item.
// Fields that do not apply to an item's kind are left at their zero value.
type ItemMeta struct {
	// Year is the publication or posting year, nil when unknown.
	Year *int `json:"year,omitempty"`

	// Citations is a non-negative citation (or popularity) count.
	Citations float64 `json:"citations,omitempty"`

	// VideoID is the platform identifier of a video item.
	VideoID string `json:"video_id,omitempty"`

	// DOI is the digital object identifier of a journal item.
	DOI string `json:"doi,omitempty"`

	// Venue is the journal or container title.
	Venue string `json:"venue,omitempty"`
}

// CandidateItem is the unit produced by every source provider and consumed
// by the aggregation pipeline.
type CandidateItem struct {
	// Title is the display title. Never empty after NewItem.
	Title string `json:"title"`

	// URL locates the resource. Primary deduplication key.
	URL string `json:"url,omitempty"`

	// Snippet is a bounded free-text excerpt.
	Snippet string `json:"snippet,omitempty"`

	// Source is the human-readable provider label (e.g. "Wikipedia").
	Source string `json:"source"`

	// Kind determines section placement.
	Kind Kind `json:"kind"`

	// Meta holds optional per-kind metadata.
	Meta ItemMeta `json:"meta"`

	// Image is an optional thumbnail URL.
	Image string `json:"image,omitempty"`

	// Score is the trust score in [0, 100]. Nil until scored.
	Score *float64 `json:"score,omitempty"`
}

// NewItem builds a candidate item with a non-empty title and a bounded snippet.
func NewItem(title, url, snippet, source string, kind Kind) CandidateItem {
	title = strings.TrimSpace(title)
	if title == "" {
		title = UntitledPlaceholder
	}
	return CandidateItem{
		Title:   title,
		URL:     strings.TrimSpace(url),
		Snippet: TruncateSnippet(strings.TrimSpace(snippet)),
		Source:  source,
		Kind:    kind,
	}
}

// TruncateSnippet cuts s to MaxSnippetRunes runes and appends SnippetEllipsis
// when anything was removed.
func TruncateSnippet(s string) string {
	r := []rune(s)
	if len(r) <= MaxSnippetRunes {
		return s
	}
	return string(r[:MaxSnippetRunes]) + SnippetEllipsis
}

// OptionalYear returns a pointer to y, or nil when y is not a plausible year.
func OptionalYear(y int) *int {
	if y < MinYear {
		return nil
	}
	return &y
}

// DedupKey returns the identity used to collapse duplicates: the lowercased,
// trimmed URL, or the lowercased, trimmed title when the URL is absent.
func (c CandidateItem) DedupKey() string {
	key := strings.TrimSpace(c.URL)
	if key == "" {
		key = strings.TrimSpace(c.Title)
	}
	return strings.ToLower(key)
}

// Scored reports whether the scorer has run on this item.
func (c CandidateItem) Scored() bool {
	return c.Score != nil
}

// ScoreValue returns the score, or 0 when the item has not been scored.
func (c CandidateItem) ScoreValue() float64 {
	if c.Score == nil {
		return 0
	}
	return *c.Score
}

// SetScore records the trust score.
func (c *CandidateItem) SetScore(v float64) {
	c.Score = &v
}

// Clone returns a copy that shares no pointers with c.
func (c CandidateItem) Clone() CandidateItem {
	out := c
	if c.Score != nil {
		v := *c.Score
		out.Score = &v
	}
	if c.Meta.Year != nil {
		y := *c.Meta.Year
		out.Meta.Year = &y
	}
	return out
}
