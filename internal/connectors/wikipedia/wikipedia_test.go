package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

func newTestProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return New(webclient.New(), WithBaseURL(server.URL))
}

func request(q string) driven.ProviderRequest {
	return driven.ProviderRequest{Query: q, Limit: DefaultLimit}
}

func TestProvider_Metadata(t *testing.T) {
	p := New(webclient.New())
	assert.Equal(t, Name, p.Name())
	assert.Equal(t, driven.GroupCore, p.Group())
	assert.Equal(t, 8, p.Limit())
	assert.Equal(t, DefaultTimeout, p.Timeout())
}

func TestProvider_Search_FullText(t *testing.T) {
	var base string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/w/api.php", r.URL.Path)
		assert.Equal(t, "search", r.URL.Query().Get("list"))
		assert.Equal(t, "CRISPR", r.URL.Query().Get("srsearch"))
		assert.Equal(t, "8", r.URL.Query().Get("srlimit"))
		_, _ = w.Write([]byte(`{"query":{"search":[
			{"title":"CRISPR gene editing","snippet":"<span class=\"searchmatch\">CRISPR</span> is a tool"},
			{"title":"Cas9","snippet":""}
		]}}`))
	})
	base = p.baseURL

	items := p.Search(context.Background(), request("CRISPR"))

	require.Len(t, items, 2)
	assert.Equal(t, "CRISPR gene editing", items[0].Title)
	assert.Equal(t, base+"/wiki/CRISPR_gene_editing", items[0].URL)
	assert.Equal(t, "CRISPR is a tool", items[0].Snippet)
	assert.Equal(t, Source, items[0].Source)
	assert.Equal(t, domain.KindEncyclopedia, items[0].Kind)
	assert.Nil(t, items[0].Score)
}

func TestProvider_Search_SummaryFallback(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/api.php":
			_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
		case "/api/rest_v1/page/summary/Photosynthesis_basics":
			_, _ = w.Write([]byte(`{
				"title":"Photosynthesis",
				"extract":"Photosynthesis is a process.",
				"content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/Photosynthesis"}},
				"thumbnail":{"source":"https://upload.wikimedia.org/p.jpg"}
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	items := p.Search(context.Background(), request("Photosynthesis basics"))

	require.Len(t, items, 1)
	assert.Equal(t, "Photosynthesis", items[0].Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Photosynthesis", items[0].URL)
	assert.Equal(t, "https://upload.wikimedia.org/p.jpg", items[0].Image)
}

func TestProvider_Search_OpenSearchFallback(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/w/api.php" && r.URL.Query().Get("action") == "query":
			_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
		case r.URL.Path == "/w/api.php" && r.URL.Query().Get("action") == "opensearch":
			_, _ = w.Write([]byte(`["qx",["Qx one","Qx two"],["first",""],["https://w/1","https://w/2"]]`))
		default:
			http.NotFound(w, r)
		}
	})

	items := p.Search(context.Background(), request("qx"))

	require.Len(t, items, 2)
	assert.Equal(t, "Qx one", items[0].Title)
	assert.Equal(t, "https://w/1", items[0].URL)
	assert.Equal(t, "first", items[0].Snippet)
	assert.Equal(t, "https://w/2", items[1].URL)
}

func TestProvider_Search_ErrorsYieldEmpty(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	items := p.Search(context.Background(), request("anything"))

	assert.Empty(t, items)
}

func TestProvider_Search_MalformedYieldsEmpty(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	assert.Empty(t, p.Search(context.Background(), request("anything")))
}
