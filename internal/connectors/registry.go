package connectors

import (
	"github.com/custodia-labs/trustsearch/internal/connectors/arxiv"
	"github.com/custodia-labs/trustsearch/internal/connectors/crossref"
	"github.com/custodia-labs/trustsearch/internal/connectors/github"
	"github.com/custodia-labs/trustsearch/internal/connectors/pubmed"
	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/connectors/websearch"
	"github.com/custodia-labs/trustsearch/internal/connectors/wikipedia"
	"github.com/custodia-labs/trustsearch/internal/connectors/youtube"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

// Catalog describes the built-in providers in pipeline order.
func Catalog() []domain.ProviderDescriptor {
	return []domain.ProviderDescriptor{
		{
			Name:        wikipedia.Name,
			Label:       wikipedia.Source,
			Description: "English Wikipedia full-text search with summary and opensearch fallbacks",
			Group:       driven.GroupCore.String(),
			Kinds:       []domain.Kind{domain.KindEncyclopedia},
		},
		{
			Name:        arxiv.Name,
			Label:       arxiv.Source,
			Description: "arXiv preprints",
			Group:       driven.GroupCore.String(),
			Kinds:       []domain.Kind{domain.KindPreprint},
		},
		{
			Name:        pubmed.Name,
			Label:       pubmed.Source,
			Description: "PubMed biomedical literature",
			Group:       driven.GroupCore.String(),
			Kinds:       []domain.Kind{domain.KindJournal},
		},
		{
			Name:        crossref.Name,
			Label:       crossref.Source,
			Description: "Crossref scholarly works with citation counts",
			Group:       driven.GroupCore.String(),
			Kinds:       []domain.Kind{domain.KindJournal},
		},
		{
			Name:        websearch.Name,
			Label:       "Web",
			Description: "Web search restricted to trusted sites (SerpAPI or Google Custom Search)",
			Group:       driven.GroupWeb.String(),
			Kinds:       []domain.Kind{domain.KindEncyclopedia, domain.KindArticle},
			Backends: [][]domain.CredentialName{
				{domain.CredentialSerpAPI},
				{domain.CredentialGoogleCSEID, domain.CredentialGoogleCSEKey},
			},
		},
		{
			Name:        github.Name,
			Label:       github.Source,
			Description: "GitHub repositories ranked by stars",
			Group:       driven.GroupWeb.String(),
			Kinds:       []domain.Kind{domain.KindReference},
			Backends:    [][]domain.CredentialName{{domain.CredentialGitHub}},
		},
		{
			Name:        youtube.Name,
			Label:       youtube.SourceAPI,
			Description: "YouTube videos via the Data API, or the public feed without a key",
			Group:       driven.GroupVideo.String(),
			Kinds:       []domain.Kind{domain.KindVideo},
			Backends:    [][]domain.CredentialName{{domain.CredentialYouTube}},
			Keyless:     true,
		},
	}
}

// DefaultProviders builds the providers of Catalog in the same order.
// preview may be nil.
func DefaultProviders(client *webclient.Client, preview driven.PreviewFetcher) []driven.Provider {
	if client == nil {
		client = webclient.New()
	}

	return []driven.Provider{
		wikipedia.New(client),
		arxiv.New(client, ""),
		pubmed.New(client, ""),
		crossref.New(client, ""),
		websearch.New(client, preview),
		github.NewProvider(github.NewClient(client.HTTPClient())),
		youtube.New(client),
	}
}
