package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

type fakePreview struct {
	mu   sync.Mutex
	seen []string
}

func (f *fakePreview) ImageURL(_ context.Context, pageURL string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, pageURL)
	return pageURL + "/og.png"
}

func serpRequest(limit int) driven.ProviderRequest {
	return driven.ProviderRequest{
		Query:       "CRISPR",
		Limit:       limit,
		Credentials: domain.Credentials{SerpAPIKey: "serp-key"},
	}
}

func TestLooksTrustworthy(t *testing.T) {
	assert.True(t, LooksTrustworthy("https://www.mit.edu/x"))
	assert.True(t, LooksTrustworthy("https://EN.WIKIPEDIA.ORG/wiki/X"))
	assert.True(t, LooksTrustworthy("https://www.ibm.com/docs/en/x"))
	assert.False(t, LooksTrustworthy("https://www.ibm.com/products"))
	assert.False(t, LooksTrustworthy("https://randomblog.example.com"))
	assert.False(t, LooksTrustworthy(""))
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, domain.KindEncyclopedia, KindFor("https://en.wikipedia.org/wiki/X"))
	assert.Equal(t, domain.KindEncyclopedia, KindFor("https://www.britannica.com/topic/x"))
	assert.Equal(t, domain.KindArticle, KindFor("https://www.nature.com/articles/x"))
}

func TestPages(t *testing.T) {
	assert.Equal(t, 1, pages(5))
	assert.Equal(t, 1, pages(10))
	assert.Equal(t, 2, pages(11))
	assert.Equal(t, 10, pages(500))
	assert.Equal(t, 0, pages(0))
}

func TestProvider_Search_NoCredentials(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	p := New(webclient.New(), nil, WithSerpAPIEndpoint(server.URL), WithCustomSearchEndpoint(server.URL+"/"))
	items := p.Search(context.Background(), driven.ProviderRequest{Query: "CRISPR", Limit: 10})

	assert.Empty(t, items)
	assert.Zero(t, calls.Load())
	assert.Equal(t, driven.GroupWeb, p.Group())
}

func TestProvider_Search_SerpAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google", q.Get("engine"))
		assert.Equal(t, "CRISPR", q.Get("q"))
		assert.Equal(t, "serp-key", q.Get("api_key"))
		assert.Equal(t, "0", q.Get("start"))
		_, _ = w.Write([]byte(`{"organic_results":[
			{"title":"CRISPR - Wikipedia","link":"https://en.wikipedia.org/wiki/CRISPR","snippet":"<b>CRISPR</b> is"},
			{"title":"Spam","link":"https://spam.example.com/crispr","snippet":"buy"},
			{"title":"NIH page","link":"https://www.nih.gov/crispr","snippet":"","thumbnail":"https://nih.gov/t.png"},
			{"title":"No link"}
		]}`))
	}))
	defer server.Close()

	preview := &fakePreview{}
	p := New(webclient.New(), preview, WithSerpAPIEndpoint(server.URL))
	items := p.Search(context.Background(), serpRequest(10))

	require.Len(t, items, 2)
	assert.Equal(t, "CRISPR - Wikipedia", items[0].Title)
	assert.Equal(t, "CRISPR is", items[0].Snippet)
	assert.Equal(t, SourceSerpAPI, items[0].Source)
	assert.Equal(t, domain.KindEncyclopedia, items[0].Kind)
	assert.Equal(t, "https://en.wikipedia.org/wiki/CRISPR/og.png", items[0].Image)

	assert.Equal(t, domain.KindArticle, items[1].Kind)
	assert.Equal(t, "https://nih.gov/t.png", items[1].Image)

	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/CRISPR"}, preview.seen)
}

func TestProvider_Search_SerpAPI_PagesUntilLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		start := r.URL.Query().Get("start")
		results := ""
		for i := 0; i < 10; i++ {
			if i > 0 {
				results += ","
			}
			results += fmt.Sprintf(`{"title":"T%s-%d","link":"https://www.mit.edu/%s/%d"}`, start, i, start, i)
		}
		_, _ = w.Write([]byte(`{"organic_results":[` + results + `]}`))
	}))
	defer server.Close()

	p := New(webclient.New(), nil, WithSerpAPIEndpoint(server.URL))
	items := p.Search(context.Background(), serpRequest(15))

	assert.Len(t, items, 15)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "https://www.mit.edu/10/4", items[14].URL)
}

func TestProvider_Search_SerpAPI_KeepsPartialResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "0" {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"organic_results":[{"title":"A","link":"https://www.nasa.gov/a"}]}`))
	}))
	defer server.Close()

	p := New(webclient.New(), nil, WithSerpAPIEndpoint(server.URL))
	items := p.Search(context.Background(), serpRequest(20))

	require.Len(t, items, 1)
	assert.Equal(t, "https://www.nasa.gov/a", items[0].URL)
}

func TestProvider_Search_CustomSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customsearch/v1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "CRISPR", q.Get("q"))
		assert.Equal(t, "engine-id", q.Get("cx"))
		assert.Equal(t, "cse-key", q.Get("key"))
		assert.Equal(t, "10", q.Get("num"))
		assert.Equal(t, "1", q.Get("start"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"title":"Britannica CRISPR","link":"https://www.britannica.com/crispr","snippet":"gene",
			 "pagemap":{"cse_image":[{"src":"https://britannica.com/i.jpg"}]}},
			{"title":"Ads","link":"https://ads.example.com/","snippet":"x"},
			{"title":"Stanford","link":"https://med.stanford.edu/crispr","snippet":"lab"}
		]}`))
	}))
	defer server.Close()

	preview := &fakePreview{}
	p := New(webclient.New(), preview,
		WithSerpAPIEndpoint(server.URL+"/unused"),
		WithCustomSearchEndpoint(server.URL+"/"))
	items := p.Search(context.Background(), driven.ProviderRequest{
		Query:       "CRISPR",
		Limit:       10,
		Credentials: domain.Credentials{GoogleCSEID: "engine-id", GoogleCSEKey: "cse-key"},
	})

	require.Len(t, items, 2)
	assert.Equal(t, SourceCustomSearch, items[0].Source)
	assert.Equal(t, domain.KindEncyclopedia, items[0].Kind)
	assert.Equal(t, "https://britannica.com/i.jpg", items[0].Image)
	assert.Equal(t, domain.KindArticle, items[1].Kind)
	assert.Equal(t, "https://med.stanford.edu/crispr/og.png", items[1].Image)
}

func TestProvider_Search_CustomSearchNeedsBothCredentials(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	p := New(webclient.New(), nil, WithCustomSearchEndpoint(server.URL+"/"))
	items := p.Search(context.Background(), driven.ProviderRequest{
		Query:       "CRISPR",
		Limit:       10,
		Credentials: domain.Credentials{GoogleCSEID: "engine-id"},
	})

	assert.Empty(t, items)
	assert.Zero(t, calls.Load())
}
