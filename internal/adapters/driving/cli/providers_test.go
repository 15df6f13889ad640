package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

func TestProvidersCmd_Table(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "providers")

	require.NoError(t, err)
	assert.Regexp(t, `Wikipedia\s+core\s+ready\s+encyclopedia`, out)
	assert.Regexp(t, `GitHub\s+core\s+needs key`, out)
}

func TestProvidersCmd_ReadyWithCredential(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Credentials = ts.settings.settings.Credentials.With(domain.CredentialGitHub, "ghp_token")

	out, err := runCommand(t, "providers")

	require.NoError(t, err)
	assert.Regexp(t, `GitHub\s+core\s+ready`, out)
}

func TestProvidersCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "providers", "--json")

	require.NoError(t, err)
	var statuses []domain.ProviderStatus
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 2)
	assert.Equal(t, "wikipedia", statuses[0].Provider.Name)
	assert.True(t, statuses[0].Ready)
	assert.False(t, statuses[1].Ready)
}

func TestProvidersCmd_NoRegistry(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServiceFactory(func(string) (*Services, error) {
		return &Services{Aggregator: &mockAggregator{}}, nil
	})

	_, err := runCommand(t, "providers")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider registry not configured")
}

func TestKindList(t *testing.T) {
	assert.Equal(t, "journal,preprint", kindList([]domain.Kind{domain.KindJournal, domain.KindPreprint}))
	assert.Empty(t, kindList(nil))
}
