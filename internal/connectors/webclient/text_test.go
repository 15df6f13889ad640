package webclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "gene editing", "gene editing"},
		{"search match", `<span class="searchmatch">CRISPR</span> gene editing`, "CRISPR gene editing"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"whitespace", "a\n\n  b\tc", "a b c"},
		{"script", "<script>alert(1)</script>safe", "safe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}
