package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem_TitlePlaceholder(t *testing.T) {
	item := NewItem("   ", "https://example.org", "snippet", "Example", KindArticle)

	assert.Equal(t, UntitledPlaceholder, item.Title)
	assert.Equal(t, "https://example.org", item.URL)
	assert.Nil(t, item.Score)
}

func TestNewItem_TruncatesSnippet(t *testing.T) {
	long := strings.Repeat("é", MaxSnippetRunes+50)
	item := NewItem("Title", "", long, "Example", KindArticle)

	runes := []rune(item.Snippet)
	assert.Len(t, runes, MaxSnippetRunes+len(SnippetEllipsis))
	assert.True(t, strings.HasSuffix(item.Snippet, SnippetEllipsis))
}

func TestTruncateSnippet_ShortUnchanged(t *testing.T) {
	assert.Equal(t, "short", TruncateSnippet("short"))
	exact := strings.Repeat("a", MaxSnippetRunes)
	assert.Equal(t, exact, TruncateSnippet(exact))
}

func TestOptionalYear(t *testing.T) {
	assert.Nil(t, OptionalYear(0))
	assert.Nil(t, OptionalYear(1899))

	y := OptionalYear(2020)
	require.NotNil(t, y)
	assert.Equal(t, 2020, *y)
}

func TestCandidateItem_DedupKey(t *testing.T) {
	tests := []struct {
		name string
		item CandidateItem
		want string
	}{
		{"url lowercased", CandidateItem{Title: "X", URL: " HTTPS://Example.org/A "}, "https://example.org/a"},
		{"title fallback", CandidateItem{Title: "  CRISPR Basics "}, "crispr basics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.DedupKey())
		})
	}
}

func TestCandidateItem_Score(t *testing.T) {
	item := NewItem("Title", "", "", "Example", KindArticle)
	assert.False(t, item.Scored())
	assert.Equal(t, 0.0, item.ScoreValue())

	item.SetScore(72)
	assert.True(t, item.Scored())
	assert.Equal(t, 72.0, item.ScoreValue())
}

func TestCandidateItem_CloneIsIndependent(t *testing.T) {
	item := NewItem("Title", "https://example.org", "", "Example", KindJournal)
	item.Meta.Year = OptionalYear(2019)
	item.SetScore(50)

	clone := item.Clone()
	clone.SetScore(10)
	*clone.Meta.Year = 2001

	assert.Equal(t, 50.0, item.ScoreValue())
	assert.Equal(t, 2019, *item.Meta.Year)
}
