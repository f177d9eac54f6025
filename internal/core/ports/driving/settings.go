package driving

import "github.com/custodia-labs/hoaxlens/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Value returns the effective value of one setting key.
	Value(key string) (string, error)

	// Set updates a single setting by key, parsing the value.
	Set(key, value string) error

	// Keys returns every recognised setting key, sorted.
	Keys() []string

	// Validate checks if current settings can build classifiers.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
