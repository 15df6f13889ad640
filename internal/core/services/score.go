package services

import (
	"math"
	"net"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// Scoring weights.
const (
	scoreBase          = 40.0
	trustedDomainBonus = 20.0
	eduGovBonus        = 25.0
	scholarlyBonus     = 20.0
	encyclopedicBonus  = 12.0
	citationFactor     = 0.02
	citationBonusCap   = 20.0
	yearGraceYears     = 8
	yearPenaltyPerYear = 1.5
	yearPenaltyCap     = 20.0
	scoreMin           = 0.0
	scoreMax           = 100.0
)

// DefaultTrustedDomains returns the registrable domains that earn the trust bonus.
func DefaultTrustedDomains() []string {
	return []string{
		"wikipedia.org", "britannica.com", "stanford.edu", "harvard.edu", "mit.edu",
		"nature.com", "science.org", "nih.gov", "ncbi.nlm.nih.gov", "arxiv.org",
		"acm.org", "ieee.org", "springer.com", "sciencedirect.com", "ox.ac.uk",
		"cam.ac.uk", "nasa.gov", "who.int",
	}
}

// Scorer assigns each item a trust score in [0, 100].
// Items are scored independently; the scorer never reorders them.
type Scorer struct {
	trusted map[string]struct{}
	now     func() time.Time
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithClock sets the clock used to compute item age.
func WithClock(now func() time.Time) ScorerOption {
	return func(s *Scorer) {
		s.now = now
	}
}

// WithTrustedDomains replaces the trusted domain allowlist.
func WithTrustedDomains(domains []string) ScorerOption {
	return func(s *Scorer) {
		s.trusted = make(map[string]struct{}, len(domains))
		for _, d := range domains {
			s.trusted[strings.ToLower(d)] = struct{}{}
		}
	}
}

// NewScorer creates a scorer with the default allowlist and the system clock.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{now: time.Now}
	WithTrustedDomains(DefaultTrustedDomains())(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score sets the score of every item in place.
func (s *Scorer) Score(items []domain.CandidateItem) {
	currentYear := s.now().UTC().Year()
	for i := range items {
		items[i].SetScore(s.score(items[i], currentYear))
	}
}

// ScoreItem returns the score item would receive now without modifying it.
func (s *Scorer) ScoreItem(item domain.CandidateItem) float64 {
	return s.score(item, s.now().UTC().Year())
}

func (s *Scorer) score(item domain.CandidateItem, currentYear int) float64 {
	score := scoreBase

	if dom := RegistrableDomain(item.URL); dom != "" {
		if _, ok := s.trusted[dom]; ok {
			score += trustedDomainBonus
		}
		// Stacks with the allowlist bonus.
		if strings.HasSuffix(dom, ".edu") || strings.HasSuffix(dom, ".gov") {
			score += eduGovBonus
		}
	}

	switch {
	case item.Kind.IsScholarly():
		score += scholarlyBonus
	case item.Kind.IsEncyclopedic():
		score += encyclopedicBonus
	}

	citations := math.Max(0, item.Meta.Citations)
	score += math.Min(citationBonusCap, citations*citationFactor)
	score -= YearPenalty(item.Meta.Year, currentYear)

	return math.Max(scoreMin, math.Min(scoreMax, score))
}

// YearPenalty returns the age penalty for a publication year: zero for
// unknown years, years before 1900, and items up to eight years old, then
// 1.5 points per year capped at 20.
func YearPenalty(year *int, currentYear int) float64 {
	if year == nil || *year < domain.MinYear {
		return 0
	}
	age := currentYear - *year
	if age < 0 {
		age = 0
	}
	penalty := float64(age-yearGraceYears) * yearPenaltyPerYear
	return math.Min(yearPenaltyCap, math.Max(0, penalty))
}

// RegistrableDomain returns the public-suffix aware registrable domain of
// rawURL ("en.wikipedia.org" gives "wikipedia.org", "www.ox.ac.uk" gives
// "ox.ac.uk"). Hosts without a registrable domain, such as IP addresses,
// are returned as is. Returns "" when rawURL has no host.
func RegistrableDomain(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		// Scheme-less input such as "example.org/page".
		u, err = url.Parse("http://" + rawURL)
		if err != nil {
			return ""
		}
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}
	dom, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return dom
}
