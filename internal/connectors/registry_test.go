package connectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/connectors/github"
	"github.com/custodia-labs/trustsearch/internal/connectors/websearch"
	"github.com/custodia-labs/trustsearch/internal/connectors/youtube"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

func TestDefaultProviders_MatchCatalogOrder(t *testing.T) {
	providers := DefaultProviders(nil, nil)
	catalog := Catalog()

	require.Len(t, providers, len(catalog))
	for i, p := range providers {
		assert.Equal(t, catalog[i].Name, p.Name())
		assert.Equal(t, catalog[i].Group, p.Group().String())
	}
}

func TestDefaultProviders_LimitsAndTimeouts(t *testing.T) {
	for _, p := range DefaultProviders(nil, nil) {
		t.Run(p.Name(), func(t *testing.T) {
			if p.Group() == driven.GroupCore {
				assert.Equal(t, 8, p.Limit())
			} else {
				assert.Equal(t, 10, p.Limit())
			}
			assert.GreaterOrEqual(t, p.Timeout().Seconds(), 6.0)
			assert.LessOrEqual(t, p.Timeout().Seconds(), 15.0)
		})
	}
}

func TestCatalog_CoreProvidersNeedNoCredentials(t *testing.T) {
	for _, d := range Catalog() {
		if d.Group == driven.GroupCore.String() {
			assert.Empty(t, d.Credentials(), d.Name)
			assert.True(t, d.Status(domain.Credentials{}).Ready, d.Name)
		}
		assert.NotEmpty(t, d.Kinds, d.Name)
	}
}

func TestCatalog_ReadinessWithoutCredentials(t *testing.T) {
	ready := make(map[string]bool)
	for _, d := range Catalog() {
		ready[d.Name] = d.Status(domain.Credentials{}).Ready
	}

	assert.False(t, ready[websearch.Name])
	assert.False(t, ready[github.Name])
	assert.True(t, ready[youtube.Name])
}
