package arxiv

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

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/query</id>
  <updated>2024-01-01T00:00:00Z</updated>
  <entry>
    <id>http://arxiv.org/abs/2101.00001v1</id>
    <updated>2021-01-02T00:00:00Z</updated>
    <published>2021-01-01T00:00:00Z</published>
    <title>Base editing
      with CRISPR</title>
    <summary>  We study
      base editing.  </summary>
    <link href="http://arxiv.org/abs/2101.00001v1" rel="alternate" type="text/html"/>
    <arxiv:doi>10.1000/xyz</arxiv:doi>
    <arxiv:journal_ref>Nature 1 (2021)</arxiv:journal_ref>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1901.00002v1</id>
    <updated>2019-05-02T00:00:00Z</updated>
    <published>2019-05-01T00:00:00Z</published>
    <title>Prime editing</title>
    <summary>Second.</summary>
    <link href="http://arxiv.org/abs/1901.00002v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

func TestProvider_Metadata(t *testing.T) {
	p := New(webclient.New(), "")
	assert.Equal(t, DefaultEndpoint, p.endpoint)
	assert.Equal(t, Name, p.Name())
	assert.Equal(t, driven.GroupCore, p.Group())
	assert.Equal(t, 8, p.Limit())
	assert.Equal(t, DefaultTimeout, p.Timeout())
}

func TestProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:CRISPR", r.URL.Query().Get("search_query"))
		assert.Equal(t, "0", r.URL.Query().Get("start"))
		assert.Equal(t, "8", r.URL.Query().Get("max_results"))
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomFeed))
	}))
	defer server.Close()

	p := New(webclient.New(), server.URL)
	items := p.Search(context.Background(), driven.ProviderRequest{Query: "CRISPR", Limit: 8})

	require.Len(t, items, 2)
	first := items[0]
	assert.Equal(t, "Base editing with CRISPR", first.Title)
	assert.Equal(t, "http://arxiv.org/abs/2101.00001v1", first.URL)
	assert.Equal(t, "We study base editing.", first.Snippet)
	assert.Equal(t, Source, first.Source)
	assert.Equal(t, domain.KindPreprint, first.Kind)
	require.NotNil(t, first.Meta.Year)
	assert.Equal(t, 2021, *first.Meta.Year)
	assert.Equal(t, "10.1000/xyz", first.Meta.DOI)
	assert.Equal(t, "Nature 1 (2021)", first.Meta.Venue)

	require.NotNil(t, items[1].Meta.Year)
	assert.Equal(t, 2019, *items[1].Meta.Year)
	assert.Empty(t, items[1].Meta.DOI)
}

func TestProvider_Search_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}},
		{"not a feed", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("plain text"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			items := New(webclient.New(), server.URL).Search(context.Background(),
				driven.ProviderRequest{Query: "x y z", Limit: 8})
			assert.Empty(t, items)
		})
	}
}
