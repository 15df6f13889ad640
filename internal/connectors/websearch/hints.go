package websearch

import (
	"strings"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// TrustedHints are substrings of links kept from general web search.
// Everything else is discarded before scoring.
var TrustedHints = []string{
	".edu", ".gov", "britannica.com", "reuters.com", "apnews.com",
	"nature.com", "science.org", "sciencedirect.com", "springer.com", "nih.gov", "who.int",
	"developer.mozilla.org", "docs.python.org", "nodejs.org", "go.dev", "rust-lang.org",
	"kubernetes.io", "docker.com", "react.dev", "vuejs.org", "angular.io",
	"pytorch.org", "tensorflow.org", "scikit-learn.org", "numpy.org", "pandas.pydata.org",
	"cloud.google.com", "aws.amazon.com", "azure.microsoft.com", "learn.microsoft.com",
	"oracle.com", "ibm.com/docs", "vercel.com/docs", "postgresql.org", "mysql.com", "mariadb.org",
	"khanacademy.org", "freecodecamp.org", "digitalocean.com", "wikipedia.org",
}

// LooksTrustworthy reports whether link contains one of TrustedHints.
func LooksTrustworthy(link string) bool {
	l := strings.ToLower(link)
	for _, h := range TrustedHints {
		if strings.Contains(l, h) {
			return true
		}
	}
	return false
}

// KindFor promotes encyclopedia links to the overview section.
func KindFor(link string) domain.Kind {
	l := strings.ToLower(link)
	if strings.Contains(l, "wikipedia.org") || strings.Contains(l, "britannica.com") {
		return domain.KindEncyclopedia
	}
	return domain.KindArticle
}
