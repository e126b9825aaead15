package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRendererBackend     = "renderer.backend"
	keyRendererPopplerPath = "renderer.poppler_path"
	keyRendererOversample  = "renderer.oversample"
	keyZoomStep            = "zoom.step"
	keyZoomMin             = "zoom.min"
	keyZoomMax             = "zoom.max"
	keyZoomInitial         = "zoom.initial"
	keySelectionCopy       = "selection.copy_on_release"
	keyWatchEnabled        = "watch.enabled"
	keyWatchInterval       = "watch.interval_ms"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.ViewerSettings, error) {
	defaults := domain.DefaultViewerSettings()

	settings := &domain.ViewerSettings{
		Renderer: domain.RendererSettings{
			Backend:     s.getBackend(defaults.Renderer.Backend),
			PopplerPath: s.configStore.GetString(keyRendererPopplerPath), // Empty means PATH lookup
			Oversample:  s.getPositiveInt(keyRendererOversample, defaults.Renderer.Oversample),
		},
		Zoom: domain.ZoomSettings{
			Step:    s.getPositiveFloat(keyZoomStep, defaults.Zoom.Step),
			Min:     s.getPositiveFloat(keyZoomMin, defaults.Zoom.Min),
			Max:     s.getPositiveFloat(keyZoomMax, defaults.Zoom.Max),
			Initial: s.getPositiveFloat(keyZoomInitial, defaults.Zoom.Initial),
		},
		Selection: domain.SelectionSettings{
			CopyOnRelease: s.getBool(keySelectionCopy, defaults.Selection.CopyOnRelease),
		},
		Watch: domain.WatchSettings{
			Enabled:    s.getBool(keyWatchEnabled, defaults.Watch.Enabled),
			IntervalMs: s.getPositiveInt(keyWatchInterval, defaults.Watch.IntervalMs),
		},
	}

	// A step of 1 or less would never zoom in.
	if settings.Zoom.Step <= 1 {
		settings.Zoom.Step = defaults.Zoom.Step
	}
	if settings.Zoom.Min > settings.Zoom.Max {
		settings.Zoom.Min = defaults.Zoom.Min
		settings.Zoom.Max = defaults.Zoom.Max
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.ViewerSettings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	if !settings.Renderer.Backend.IsValid() {
		return fmt.Errorf("invalid renderer backend: %s", settings.Renderer.Backend)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyRendererBackend, settings.Renderer.Backend.String()},
		{keyRendererPopplerPath, settings.Renderer.PopplerPath},
		{keyRendererOversample, settings.Renderer.Oversample},
		{keyZoomStep, settings.Zoom.Step},
		{keyZoomMin, settings.Zoom.Min},
		{keyZoomMax, settings.Zoom.Max},
		{keyZoomInitial, settings.Zoom.Initial},
		{keySelectionCopy, settings.Selection.CopyOnRelease},
		{keyWatchEnabled, settings.Watch.Enabled},
		{keyWatchInterval, settings.Watch.IntervalMs},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	var parsed any
	var err error

	switch key {
	case keyRendererBackend:
		backend := domain.RendererBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: renderer backend %q (want poppler or native)", domain.ErrInvalidInput, value)
		}
		parsed = backend.String()
	case keyRendererPopplerPath:
		parsed = value
	case keyRendererOversample, keyWatchInterval:
		var n int
		n, err = strconv.Atoi(value)
		if err == nil && n <= 0 {
			err = errors.New("must be positive")
		}
		parsed = n
	case keyZoomStep, keyZoomMin, keyZoomMax, keyZoomInitial:
		var f float64
		f, err = strconv.ParseFloat(value, 64)
		if err == nil && !domain.ValidZoomFactor(f) {
			err = errors.New("must be positive")
		}
		parsed = f
	case keySelectionCopy, keyWatchEnabled:
		parsed, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns all setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyRendererBackend,
		keyRendererPopplerPath,
		keyRendererOversample,
		keyZoomStep,
		keyZoomMin,
		keyZoomMax,
		keyZoomInitial,
		keySelectionCopy,
		keyWatchEnabled,
		keyWatchInterval,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ViewerSettings {
	return domain.DefaultViewerSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if !domain.ValidZoomFactor(val) {
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

func (s *SettingsService) getBackend(defaultVal domain.RendererBackend) domain.RendererBackend {
	val := s.configStore.GetString(keyRendererBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.RendererBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
