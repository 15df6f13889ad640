package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

const (
	Name   = "github"
	Source = "GitHub"

	DefaultLimit   = 10
	DefaultTimeout = 10 * time.Second
)

// Provider implements driven.Provider for GitHub repository search.
type Provider struct {
	client *Client
}

// NewProvider creates a GitHub provider using client.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Name() string { return Name }
func (p *Provider) Group() driven.ProviderGroup { return driven.GroupWeb }
func (p *Provider) Limit() int { return DefaultLimit }
func (p *Provider) Timeout() time.Duration { return DefaultTimeout }

// Search returns nothing without a token.
func (p *Provider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	if !req.Credentials.HasGitHub() {
		logger.Debug("GitHub search skipped: no token")
		return nil
	}

	repos, err := p.client.SearchRepositories(ctx, req.Credentials.GitHubToken, req.Query, req.Limit)
	if err != nil {
		logger.Warn("GitHub search failed: %v", err)
		return nil
	}

	items := make([]domain.CandidateItem, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		items = append(items, toItem(r))
	}
	return items
}

func toItem(r *gh.Repository) domain.CandidateItem {
	stars := r.GetStargazersCount()

	parts := make([]string, 0, 3)
	if d := strings.TrimSpace(r.GetDescription()); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, fmt.Sprintf("★ %d", stars))
	if lang := r.GetLanguage(); lang != "" {
		parts = append(parts, lang)
	}

	item := domain.NewItem(r.GetFullName(), r.GetHTMLURL(), strings.Join(parts, " · "), Source, domain.KindReference)
	item.Meta.Citations = float64(max(0, stars))
	if owner := r.GetOwner(); owner != nil {
		item.Image = owner.GetAvatarURL()
	}
	return item
}
