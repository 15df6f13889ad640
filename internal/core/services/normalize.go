package services

import "github.com/custodia-labs/trustsearch/internal/core/domain"

// Normalize removes duplicate items in a single pass. The first item per
// dedup key is kept and the relative order of kept items is preserved,
// so Normalize(Normalize(x)) equals Normalize(x).
func Normalize(items []domain.CandidateItem) []domain.CandidateItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.CandidateItem, 0, len(items))
	for _, item := range items {
		key := item.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
