package domain

import "fmt"

// RecommenderSettings holds recommendation behaviour configuration.
type RecommenderSettings struct {
	// Mode is the default selection policy.
	Mode SelectionMode

	// TopN is the default result count for top-N selection.
	TopN int

	// Threshold is the default minimum similarity for threshold selection.
	Threshold float64

	// CacheCorpus keeps one built corpus across requests instead of
	// rebuilding it for every query.
	CacheCorpus bool
}

// Selection returns the default selection policy described by the settings.
func (r RecommenderSettings) Selection() Selection {
	if r.Mode == SelectionThreshold {
		return Threshold(r.Threshold)
	}
	return TopN(r.TopN)
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained request rate allowed per second.
	RateLimit float64
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Recommender RecommenderSettings
	Server      ServerSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Recommender: RecommenderSettings{
			Mode:      SelectionTopN,
			TopN:      DefaultTopN,
			Threshold: DefaultThreshold,
		},
		Server: ServerSettings{
			Addr:      ":8080",
			RateLimit: 20,
		},
	}
}

// Validate checks that every setting is usable.
func (s *AppSettings) Validate() error {
	if !s.Recommender.Mode.IsValid() {
		return fmt.Errorf("recommender mode %q: %w", s.Recommender.Mode, ErrInvalidInput)
	}
	if err := TopN(s.Recommender.TopN).Validate(); err != nil {
		return fmt.Errorf("recommender top_n: %w", err)
	}
	if err := Threshold(s.Recommender.Threshold).Validate(); err != nil {
		return fmt.Errorf("recommender threshold: %w", err)
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server addr is empty: %w", ErrInvalidInput)
	}
	if s.Server.RateLimit <= 0 {
		return fmt.Errorf("server rate_limit must be positive: %w", ErrInvalidInput)
	}
	return nil
}
