package driving

import "github.com/custodia-labs/trustsearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment
	// overrides applied to credentials.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCredential stores the API key for the named credential.
	SetCredential(name domain.CredentialName, value string) error

	// SetValue parses and stores a single config key.
	SetValue(key, value string) error

	// Validate checks if current settings are within their allowed ranges.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
