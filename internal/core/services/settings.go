package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyMaxItems      = "search.max_items"
	keyIncludeWeb    = "search.include_web"
	keyIncludeVideos = "search.include_videos"
	keyCacheWindow   = "cache.window_seconds"
	keyCacheEntries  = "cache.max_entries"
	keyWorkers       = "pipeline.workers"
)

// credentialKeys maps each credential to its config key and environment override.
//
//nolint:gosec // G101: These are config key and variable names, not credentials.
var credentialKeys = map[domain.CredentialName]struct {
	configKey string
	envVar    string
}{
	domain.CredentialSerpAPI:      {"credentials.serpapi_key", "SERPAPI_KEY"},
	domain.CredentialGoogleCSEID:  {"credentials.google_cse_id", "GOOGLE_CSE_ID"},
	domain.CredentialGoogleCSEKey: {"credentials.google_cse_key", "GOOGLE_CSE_KEY"},
	domain.CredentialYouTube:      {"credentials.youtube_api_key", "YOUTUBE_DATA_API_KEY"},
	domain.CredentialGitHub:       {"credentials.github_token", "GITHUB_TOKEN"},
}

// CredentialConfigKey returns the config key that stores the named credential.
func CredentialConfigKey(name domain.CredentialName) string {
	return credentialKeys[name].configKey
}

// CredentialEnvVar returns the environment variable that overrides the named credential.
func CredentialEnvVar(name domain.CredentialName) string {
	return credentialKeys[name].envVar
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
// Environment variables take precedence over stored credentials.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			MaxItems:      s.getInt(keyMaxItems, defaults.Search.MaxItems),
			IncludeWeb:    s.getBool(keyIncludeWeb, defaults.Search.IncludeWeb),
			IncludeVideos: s.getBool(keyIncludeVideos, defaults.Search.IncludeVideos),
		},
		Cache: domain.CacheSettings{
			Window:     time.Duration(s.getInt(keyCacheWindow, int(defaults.Cache.Window/time.Second))) * time.Second,
			MaxEntries: s.getInt(keyCacheEntries, defaults.Cache.MaxEntries),
		},
		Pipeline: domain.PipelineSettings{
			Workers: s.getInt(keyWorkers, defaults.Pipeline.Workers),
		},
		Credentials: s.credentials(),
	}

	return settings, nil
}

// Save persists application settings. Empty credentials are not written,
// so saving never erases a stored key.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyMaxItems, settings.Search.MaxItems},
		{keyIncludeWeb, settings.Search.IncludeWeb},
		{keyIncludeVideos, settings.Search.IncludeVideos},
		{keyCacheWindow, int(settings.Cache.Window / time.Second)},
		{keyCacheEntries, settings.Cache.MaxEntries},
		{keyWorkers, settings.Pipeline.Workers},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	for _, name := range domain.AllCredentialNames() {
		value := settings.Credentials.Value(name)
		if value == "" {
			continue
		}
		if err := s.configStore.Set(CredentialConfigKey(name), value); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}

	return nil
}

// SetCredential stores the API key for the named credential.
func (s *SettingsService) SetCredential(name domain.CredentialName, value string) error {
	if !name.IsValid() {
		return fmt.Errorf("%w: unknown credential %q", domain.ErrInvalidInput, name)
	}
	if err := s.configStore.Set(CredentialConfigKey(name), value); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// SettingKeys returns the non-credential config keys accepted by SetValue,
// in display order.
func SettingKeys() []string {
	return []string{keyMaxItems, keyIncludeWeb, keyIncludeVideos, keyCacheWindow, keyCacheEntries, keyWorkers}
}

// SetValue parses value for a single config key and stores it. Credential
// keys are accepted too. Only the named key is written, so environment
// overrides never reach the config file.
func (s *SettingsService) SetValue(key, value string) error {
	for _, name := range domain.AllCredentialNames() {
		if CredentialConfigKey(name) == key {
			return s.SetCredential(name, value)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	var stored any
	switch key {
	case keyIncludeWeb, keyIncludeVideos:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		if key == keyIncludeWeb {
			settings.Search.IncludeWeb = b
		} else {
			settings.Search.IncludeVideos = b
		}
		stored = b
	case keyMaxItems, keyCacheWindow, keyCacheEntries, keyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		switch key {
		case keyMaxItems:
			settings.Search.MaxItems = n
		case keyCacheWindow:
			settings.Cache.Window = time.Duration(n) * time.Second
		case keyCacheEntries:
			settings.Cache.MaxEntries = n
		case keyWorkers:
			settings.Pipeline.Workers = n
		}
		stored = n
	default:
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks if current settings are within their allowed ranges.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) credentials() domain.Credentials {
	var creds domain.Credentials
	for _, name := range domain.AllCredentialNames() {
		value := s.configStore.GetString(CredentialConfigKey(name))
		if env, ok := s.lookupEnv(CredentialEnvVar(name)); ok && env != "" {
			value = env
		}
		creds = creds.With(name, value)
	}
	return creds
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
