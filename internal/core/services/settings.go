package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRecommenderMode      = "recommender.mode"
	keyRecommenderTopN      = "recommender.top_n"
	keyRecommenderThreshold = "recommender.threshold"
	keyRecommenderCache     = "recommender.cache_corpus"
	keyServerAddr           = "server.addr"
	keyServerRateLimit      = "server.rate_limit"
)

var settingKeys = []string{
	keyRecommenderMode,
	keyRecommenderTopN,
	keyRecommenderThreshold,
	keyRecommenderCache,
	keyServerAddr,
	keyServerRateLimit,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Recommender: domain.RecommenderSettings{
			Mode:        s.getMode(defaults.Recommender.Mode),
			TopN:        s.getInt(keyRecommenderTopN, defaults.Recommender.TopN),
			Threshold:   s.getThreshold(defaults.Recommender.Threshold),
			CacheCorpus: s.getBool(keyRecommenderCache, defaults.Recommender.CacheCorpus),
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit: s.getPositiveFloat(keyServerRateLimit, defaults.Server.RateLimit),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyRecommenderMode, settings.Recommender.Mode.String()},
		{keyRecommenderTopN, settings.Recommender.TopN},
		{keyRecommenderThreshold, settings.Recommender.Threshold},
		{keyRecommenderCache, settings.Recommender.CacheCorpus},
		{keyServerAddr, settings.Server.Addr},
		{keyServerRateLimit, settings.Server.RateLimit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyRecommenderMode:
		settings.Recommender.Mode = domain.SelectionMode(value)
	case keyRecommenderTopN:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer: %w", key, value, domain.ErrInvalidInput)
		}
		settings.Recommender.TopN = n
	case keyRecommenderThreshold:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number: %w", key, value, domain.ErrInvalidInput)
		}
		settings.Recommender.Threshold = f
	case keyRecommenderCache:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean: %w", key, value, domain.ErrInvalidInput)
		}
		settings.Recommender.CacheCorpus = b
	case keyServerAddr:
		settings.Server.Addr = value
	case keyServerRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number: %w", key, value, domain.ErrInvalidInput)
		}
		settings.Server.RateLimit = f
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	return s.Save(settings)
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getMode(defaultValue domain.SelectionMode) domain.SelectionMode {
	mode := domain.SelectionMode(s.configStore.GetString(keyRecommenderMode))
	if mode.IsValid() {
		return mode
	}
	return defaultValue
}

func (s *SettingsService) getThreshold(defaultValue float64) float64 {
	if _, ok := s.configStore.Get(keyRecommenderThreshold); !ok {
		return defaultValue
	}
	f := s.configStore.GetFloat(keyRecommenderThreshold)
	if domain.Threshold(f).Validate() != nil {
		return defaultValue
	}
	return f
}

func (s *SettingsService) getString(key, defaultValue string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultValue
}

func (s *SettingsService) getInt(key string, defaultValue int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return defaultValue
}

func (s *SettingsService) getPositiveFloat(key string, defaultValue float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return defaultValue
}

func (s *SettingsService) getBool(key string, defaultValue bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultValue
	}
	return s.configStore.GetBool(key)
}
