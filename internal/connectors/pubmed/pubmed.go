// Package pubmed searches PubMed through the NCBI E-utilities esearch and
// esummary endpoints.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/trustsearch/internal/connectors/webclient"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	Name   = "pubmed"
	Source = "PubMed"

	// DefaultBaseURL is the E-utilities root.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// ArticleURL is the public page of a PubMed record.
	ArticleURL = "https://pubmed.ncbi.nlm.nih.gov/%s/"

	DefaultLimit   = 8
	DefaultTimeout = 10 * time.Second
)

// Provider implements driven.Provider for PubMed.
type Provider struct {
	client  *webclient.Client
	baseURL string
}

// New creates a PubMed provider. An empty baseURL selects DefaultBaseURL.
func New(client *webclient.Client, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Provider) Name() string { return Name }
func (p *Provider) Group() driven.ProviderGroup { return driven.GroupCore }
func (p *Provider) Limit() int { return DefaultLimit }
func (p *Provider) Timeout() time.Duration { return DefaultTimeout }

// Search resolves matching PMIDs, then fetches their summaries in one call.
// Items keep the esearch relevance order.
func (p *Provider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	ids, err := p.searchIDs(ctx, req.Query, req.Limit)
	if err != nil {
		logger.Warn("PubMed esearch failed: %v", err)
		return nil
	}
	if len(ids) == 0 {
		return nil
	}

	items, err := p.summaries(ctx, ids)
	if err != nil {
		logger.Warn("PubMed esummary failed: %v", err)
		return nil
	}
	return items
}

type esearchResponse struct {
	Result struct {
		IDs []string `json:"idlist"`
	} `json:"esearchresult"`
}

func (p *Provider) searchIDs(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(limit)},
	}
	var resp esearchResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/esearch.fcgi", params, &resp); err != nil {
		return nil, err
	}
	return resp.Result.IDs, nil
}

// summary is one esummary record. Only the fields in use are decoded.
type summary struct {
	Title      string   `json:"title"`
	Source     string   `json:"source"`
	PubDate    string   `json:"pubdate"`
	PubType    []string `json:"pubtype"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
}

func (p *Provider) summaries(ctx context.Context, ids []string) ([]domain.CandidateItem, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}
	// result mixes a "uids" array with one object per PMID.
	var resp struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := p.client.GetJSON(ctx, p.baseURL+"/esummary.fcgi", params, &resp); err != nil {
		return nil, err
	}

	items := make([]domain.CandidateItem, 0, len(ids))
	for _, id := range ids {
		var rec summary
		if raw, ok := resp.Result[id]; ok {
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("decode summary %s: %w", id, err)
			}
		}
		items = append(items, toItem(id, rec))
	}
	return items, nil
}

func toItem(id string, rec summary) domain.CandidateItem {
	pubType := ""
	if len(rec.PubType) > 0 {
		pubType = rec.PubType[0]
	}
	snippet := strings.TrimSpace(rec.Source + " · " + pubType)

	item := domain.NewItem(rec.Title, fmt.Sprintf(ArticleURL, id), snippet, Source, domain.KindJournal)
	item.Meta.Year = pubYear(rec.PubDate)
	item.Meta.Venue = rec.Source
	for _, aid := range rec.ArticleIDs {
		if aid.IDType == "doi" {
			item.Meta.DOI = aid.Value
			break
		}
	}
	return item
}

// pubYear reads the leading four digits of a pubdate such as "2019 Mar 5".
func pubYear(pubdate string) *int {
	if len(pubdate) < 4 {
		return nil
	}
	y, err := strconv.Atoi(pubdate[:4])
	if err != nil {
		return nil
	}
	return domain.OptionalYear(y)
}
