package driving

import "github.com/custodia-labs/lasso/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.ViewerSettings, error)

	// Save persists application settings.
	Save(settings *domain.ViewerSettings) error

	// Set parses value for a single setting key and persists it.
	Set(key, value string) error

	// Keys returns all setting keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.ViewerSettings
}
