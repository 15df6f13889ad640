package providers

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/services"
)

// mockSettings implements driving.SettingsService for testing.
type mockSettings struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(*domain.AppSettings) error { return nil }
func (m *mockSettings) SetCredential(domain.CredentialName, string) error { return nil }
func (m *mockSettings) SetValue(string, string) error { return nil }
func (m *mockSettings) Validate() error { return nil }
func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func testRegistry() *services.ProviderRegistry {
	return services.NewProviderRegistry([]domain.ProviderDescriptor{
		{
			Name:        "wikipedia",
			Label:       "Wikipedia",
			Description: "Encyclopedia summaries",
			Group:       "core",
			Kinds:       []domain.Kind{domain.KindEncyclopedia},
		},
		{
			Name:        "github",
			Label:       "GitHub",
			Description: "Repository search",
			Group:       "core",
			Kinds:       []domain.Kind{domain.KindArticle},
			Backends:    [][]domain.CredentialName{{domain.CredentialGitHub}},
		},
	})
}

func load(t *testing.T, v *View) {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Empty(t, v.Statuses())
	assert.Equal(t, 0, v.Selected())
}

func TestView_LoadWithoutCredentials(t *testing.T) {
	v := NewView(nil, testRegistry(), &mockSettings{settings: domain.DefaultAppSettings()})

	load(t, v)

	require.Len(t, v.Statuses(), 2)
	assert.True(t, v.Statuses()[0].Ready)
	assert.False(t, v.Statuses()[1].Ready)

	out := v.View()
	assert.Contains(t, out, "Wikipedia")
	assert.Contains(t, out, "needs key")
}

func TestView_LoadWithCredentials(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Credentials = settings.Credentials.With(domain.CredentialGitHub, "ghp_test")
	v := NewView(nil, testRegistry(), &mockSettings{settings: settings})

	load(t, v)

	require.Len(t, v.Statuses(), 2)
	assert.True(t, v.Statuses()[1].Ready)
	assert.Equal(t, []domain.CredentialName{domain.CredentialGitHub}, v.Statuses()[1].Backend)
}

func TestView_NilRegistry(t *testing.T) {
	v := NewView(nil, nil, nil)

	load(t, v)

	assert.ErrorIs(t, v.Err(), ErrNoRegistry)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_SettingsError(t *testing.T) {
	v := NewView(nil, testRegistry(), &mockSettings{err: errors.New("unreadable")})

	load(t, v)

	require.Error(t, v.Err())
	assert.Empty(t, v.Statuses())
}

func TestView_NilSettingsUsesEmptyCredentials(t *testing.T) {
	v := NewView(nil, testRegistry(), nil)

	load(t, v)

	require.Len(t, v.Statuses(), 2)
	assert.False(t, v.Statuses()[1].Ready)
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil, testRegistry(), nil)
	load(t, v)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, v.Selected())

	// clamped at the end
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Selected())
	assert.Contains(t, v.View(), "trustsearch config set-key")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.Selected())
}

func TestView_Reload(t *testing.T) {
	v := NewView(nil, testRegistry(), nil)
	load(t, v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Loading providers...")

	msg, ok := cmd().(messages.ProvidersLoaded)
	require.True(t, ok)
	assert.Len(t, msg.Statuses, 2)
}

func TestView_Esc(t *testing.T) {
	v := NewView(nil, testRegistry(), nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, services.NewProviderRegistry(nil), nil)
	load(t, v)

	assert.Contains(t, v.View(), "No providers registered.")
}
