package domain

// Kind classifies a candidate item. The vocabulary is fixed; a Kind outside it
// is kept on the item but is placed in no section.
type Kind string

const (
	KindEncyclopedia Kind = "encyclopedia"
	KindReference    Kind = "reference"
	KindJournal      Kind = "journal"
	KindPreprint     Kind = "preprint"
	KindResearch     Kind = "research"
	KindArticle      Kind = "article"
	KindNews         Kind = "news"
	KindBlog         Kind = "blog"
	KindVideo        Kind = "video"
	KindLecture      Kind = "lecture"
)

// AllKinds returns the full vocabulary in a stable order.
func AllKinds() []Kind {
	return []Kind{
		KindEncyclopedia, KindReference,
		KindJournal, KindPreprint, KindResearch,
		KindArticle, KindNews, KindBlog,
		KindVideo, KindLecture,
	}
}

// Valid reports whether k belongs to the fixed vocabulary.
func (k Kind) Valid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// IsScholarly reports whether k is a peer-reviewed or research kind.
func (k Kind) IsScholarly() bool {
	return k == KindJournal || k == KindPreprint || k == KindResearch
}

// IsEncyclopedic reports whether k is an encyclopedia or reference kind.
func (k Kind) IsEncyclopedic() bool {
	return k == KindEncyclopedia || k == KindReference
}

// String returns the kind as a plain string.
func (k Kind) String() string {
	return string(k)
}
