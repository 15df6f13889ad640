package domain

// Default section labels, in display order.
const (
	SectionOverview = "Overview / Encyclopedic"
	SectionResearch = "Peer-reviewed / Research"
	SectionArticles = "Articles / Web"
	SectionVideos   = "Videos / Lectures"
)

// SectionSpec maps a section label to the kinds it collects.
// Kind sets of the configured sections must be disjoint.
type SectionSpec struct {
	Label string
	Kinds []Kind
}

// Accepts reports whether items of kind k belong in this section.
func (s SectionSpec) Accepts(k Kind) bool {
	for _, kind := range s.Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// DefaultSections returns the standard four-section layout.
func DefaultSections() []SectionSpec {
	return []SectionSpec{
		{Label: SectionOverview, Kinds: []Kind{KindEncyclopedia, KindReference}},
		{Label: SectionResearch, Kinds: []Kind{KindJournal, KindPreprint, KindResearch}},
		{Label: SectionArticles, Kinds: []Kind{KindArticle, KindNews, KindBlog}},
		{Label: SectionVideos, Kinds: []Kind{KindVideo, KindLecture}},
	}
}

// Section is one labelled, ordered, trimmed group of scored items.
type Section struct {
	Label string          `json:"label"`
	Items []CandidateItem `json:"items"`
}

// SectionedResults is the ordered mapping from section label to items.
type SectionedResults []Section

// Get returns the items of the section with the given label.
func (r SectionedResults) Get(label string) ([]CandidateItem, bool) {
	for _, s := range r {
		if s.Label == label {
			return s.Items, true
		}
	}
	return nil, false
}

// Labels returns the section labels in order.
func (r SectionedResults) Labels() []string {
	labels := make([]string, len(r))
	for i, s := range r {
		labels[i] = s.Label
	}
	return labels
}

// TotalItems counts items across all sections.
func (r SectionedResults) TotalItems() int {
	n := 0
	for _, s := range r {
		n += len(s.Items)
	}
	return n
}

// Reorder returns the sections in the given label order. Labels not present
// in r are ignored; sections not named in labels keep their relative order
// and follow the named ones.
func (r SectionedResults) Reorder(labels []string) SectionedResults {
	out := make(SectionedResults, 0, len(r))
	used := make(map[string]bool, len(labels))
	for _, label := range labels {
		if used[label] {
			continue
		}
		for _, s := range r {
			if s.Label == label {
				out = append(out, s)
				used[label] = true
				break
			}
		}
	}
	for _, s := range r {
		if !used[s.Label] {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy of r.
func (r SectionedResults) Clone() SectionedResults {
	if r == nil {
		return nil
	}
	out := make(SectionedResults, len(r))
	for i, s := range r {
		items := make([]CandidateItem, len(s.Items))
		for j, it := range s.Items {
			items[j] = it.Clone()
		}
		out[i] = Section{Label: s.Label, Items: items}
	}
	return out
}
