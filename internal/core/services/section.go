package services

import (
	"cmp"
	"slices"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// Sectioner partitions scored items into the configured sections.
type Sectioner struct {
	sections []domain.SectionSpec
}

// NewSectioner creates a sectioner for the given layout.
// A nil layout uses domain.DefaultSections.
func NewSectioner(sections []domain.SectionSpec) *Sectioner {
	if sections == nil {
		sections = domain.DefaultSections()
	}
	return &Sectioner{sections: sections}
}

// Sections returns the configured layout.
func (s *Sectioner) Sections() []domain.SectionSpec {
	return s.sections
}

// Section filters items per section, sorts each section by score descending
// (ties keep input order), and truncates to maxItems. Every configured
// section is present in the result, empty or not.
func (s *Sectioner) Section(items []domain.CandidateItem, maxItems int) domain.SectionedResults {
	if maxItems < 0 {
		maxItems = 0
	}
	out := make(domain.SectionedResults, 0, len(s.sections))
	for _, spec := range s.sections {
		picked := make([]domain.CandidateItem, 0, maxItems)
		for _, item := range items {
			if spec.Accepts(item.Kind) {
				picked = append(picked, item)
			}
		}
		slices.SortStableFunc(picked, func(a, b domain.CandidateItem) int {
			return cmp.Compare(b.ScoreValue(), a.ScoreValue())
		})
		if len(picked) > maxItems {
			picked = picked[:maxItems]
		}
		out = append(out, domain.Section{Label: spec.Label, Items: picked})
	}
	return out
}
