package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
	"github.com/custodia-labs/trustsearch/internal/core/services"
)

// MockAggregator implements driving.AggregationService for testing.
type MockAggregator struct {
	AggregateFunc func(ctx context.Context, req domain.AggregateRequest) (domain.SectionedResults, error)
}

func (m *MockAggregator) Aggregate(ctx context.Context, req domain.AggregateRequest) (domain.SectionedResults, error) {
	if m.AggregateFunc != nil {
		return m.AggregateFunc(ctx, req)
	}
	return nil, nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(s *domain.AppSettings) error {
	m.Settings = *s
	return nil
}

func (m *MockSettingsService) SetCredential(name domain.CredentialName, value string) error {
	m.Settings.Credentials = m.Settings.Credentials.With(name, value)
	return nil
}

func (m *MockSettingsService) SetValue(string, string) error { return nil }

func (m *MockSettingsService) Validate() error { return nil }

func (m *MockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

var (
	_ driving.AggregationService = (*MockAggregator)(nil)
	_ driving.SettingsService    = (*MockSettingsService)(nil)
)

func TestNewPorts(t *testing.T) {
	agg := &MockAggregator{}
	reg := services.NewProviderRegistry(nil)
	settings := &MockSettingsService{}

	ports := NewPorts(agg, reg, settings)

	require.NotNil(t, ports)
	assert.Equal(t, agg, ports.Aggregator)
	assert.Equal(t, reg, ports.Providers)
	assert.Equal(t, settings, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:  "aggregator only",
			ports: &Ports{Aggregator: &MockAggregator{}},
		},
		{
			name: "all ports",
			ports: &Ports{
				Aggregator: &MockAggregator{},
				Providers:  services.NewProviderRegistry(nil),
				Settings:   &MockSettingsService{},
			},
		},
		{
			name:    "missing aggregator",
			ports:   &Ports{Settings: &MockSettingsService{}},
			wantErr: ErrMissingAggregator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
