package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

func scored(title string, kind domain.Kind, score float64) domain.CandidateItem {
	it := item(title, "https://example.org/"+title, kind)
	it.SetScore(score)
	return it
}

func TestSectioner_AllSectionsPresent(t *testing.T) {
	s := NewSectioner(nil)

	out := s.Section(nil, 5)

	require.Len(t, out, 4)
	assert.Equal(t, []string{
		domain.SectionOverview, domain.SectionResearch, domain.SectionArticles, domain.SectionVideos,
	}, out.Labels())
	for _, sec := range out {
		assert.NotNil(t, sec.Items)
		assert.Empty(t, sec.Items)
	}
}

func TestSectioner_SortTrimAndStable(t *testing.T) {
	s := NewSectioner(nil)
	items := []domain.CandidateItem{
		scored("a", domain.KindArticle, 50),
		scored("b", domain.KindNews, 70),
		scored("c", domain.KindBlog, 50),
		scored("d", domain.KindArticle, 90),
		scored("e", domain.KindArticle, 10),
	}

	out := s.Section(items, 3)
	articles, ok := out.Get(domain.SectionArticles)
	require.True(t, ok)

	require.Len(t, articles, 3)
	assert.Equal(t, "d", articles[0].Title)
	assert.Equal(t, "b", articles[1].Title)
	// Equal scores keep input order.
	assert.Equal(t, "a", articles[2].Title)
}

func TestSectioner_Exclusivity(t *testing.T) {
	s := NewSectioner(nil)
	var items []domain.CandidateItem
	for _, kind := range domain.AllKinds() {
		items = append(items, scored(kind.String(), kind, 50))
	}
	items = append(items, scored("unknown", domain.Kind("podcast"), 99))

	out := s.Section(items, 20)

	placed := make(map[string]int)
	for i, sec := range out {
		spec := s.Sections()[i]
		for _, it := range sec.Items {
			assert.True(t, spec.Accepts(it.Kind), "%s in %s", it.Kind, sec.Label)
			placed[it.DedupKey()]++
		}
	}
	for key, n := range placed {
		assert.Equal(t, 1, n, key)
	}
	assert.Equal(t, len(domain.AllKinds()), out.TotalItems())
}

func TestSectioner_TrimBound(t *testing.T) {
	s := NewSectioner(nil)
	var items []domain.CandidateItem
	for i := 0; i < 30; i++ {
		items = append(items, scored(string(rune('a'+i%26))+string(rune('0'+i/26)), domain.KindJournal, float64(i)))
	}

	for _, max := range []int{3, 5, 20} {
		out := s.Section(items, max)
		research, _ := out.Get(domain.SectionResearch)
		assert.LessOrEqual(t, len(research), max)
		for i := 1; i < len(research); i++ {
			assert.GreaterOrEqual(t, research[i-1].ScoreValue(), research[i].ScoreValue())
		}
	}
}

func TestSectioner_CustomLayout(t *testing.T) {
	s := NewSectioner([]domain.SectionSpec{
		{Label: "Watch", Kinds: []domain.Kind{domain.KindVideo}},
	})

	out := s.Section([]domain.CandidateItem{
		scored("v", domain.KindVideo, 40),
		scored("a", domain.KindArticle, 90),
	}, 5)

	require.Len(t, out, 1)
	assert.Equal(t, "Watch", out[0].Label)
	assert.Len(t, out[0].Items, 1)
}
