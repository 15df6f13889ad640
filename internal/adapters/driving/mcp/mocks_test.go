package mcp

import (
	"context"
	"fmt"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

// mockAggregator is a mock implementation of driving.AggregationService.
type mockAggregator struct {
	results domain.SectionedResults
	err     error
	last    domain.AggregateRequest
}

func (m *mockAggregator) Aggregate(
	_ context.Context,
	req domain.AggregateRequest,
) (domain.SectionedResults, error) {
	m.last = req
	return m.results, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetCredential(_ domain.CredentialName, _ string) error { return m.err }

func (m *mockSettingsService) SetValue(_, _ string) error { return m.err }

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// mockProviderRegistry is a mock implementation of driving.ProviderRegistry.
type mockProviderRegistry struct {
	descriptors []domain.ProviderDescriptor
}

func (m *mockProviderRegistry) List() []domain.ProviderDescriptor { return m.descriptors }

func (m *mockProviderRegistry) Get(name string) (domain.ProviderDescriptor, error) {
	for _, d := range m.descriptors {
		if d.Name == name {
			return d, nil
		}
	}
	return domain.ProviderDescriptor{}, fmt.Errorf("%w: provider %q", domain.ErrNotFound, name)
}

func (m *mockProviderRegistry) Status(creds domain.Credentials) []domain.ProviderStatus {
	out := make([]domain.ProviderStatus, len(m.descriptors))
	for i, d := range m.descriptors {
		out[i] = d.Status(creds)
	}
	return out
}

func (m *mockProviderRegistry) ForKind(_ domain.Kind) []domain.ProviderDescriptor { return nil }

func testRegistry() *mockProviderRegistry {
	return &mockProviderRegistry{descriptors: []domain.ProviderDescriptor{
		{Name: "wikipedia", Label: "Wikipedia", Group: "core", Kinds: []domain.Kind{domain.KindEncyclopedia}},
		{
			Name:     "github",
			Label:    "GitHub",
			Group:    "web",
			Kinds:    []domain.Kind{domain.KindReference},
			Backends: [][]domain.CredentialName{{domain.CredentialGitHub}},
		},
	}}
}
