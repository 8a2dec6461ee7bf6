package domain

import (
	"fmt"
	"math"
	"time"
)

// DefaultTopN is the number of recommendations returned when no count is given.
const DefaultTopN = 5

// DefaultThreshold is the minimum similarity used by threshold selection
// when none is configured.
const DefaultThreshold = 0.5

// SelectionMode defines how candidates are picked from a ranked list.
type SelectionMode string

// Available selection modes.
const (
	// SelectionTopN keeps the N most similar candidates.
	SelectionTopN SelectionMode = "top_n"

	// SelectionThreshold keeps every candidate above a minimum similarity.
	SelectionThreshold SelectionMode = "threshold"
)

// IsValid returns true if the selection mode is recognised.
func (m SelectionMode) IsValid() bool {
	switch m {
	case SelectionTopN, SelectionThreshold:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SelectionMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SelectionMode) Description() string {
	switch m {
	case SelectionTopN:
		return "Top-N (fixed number of most similar products)"
	case SelectionThreshold:
		return "Threshold (every product above a minimum similarity)"
	default:
		return "Unknown"
	}
}

// Selection is the policy applied to ranked recommendation candidates.
type Selection struct {
	// Mode picks the policy.
	Mode SelectionMode

	// N is the result cap for SelectionTopN.
	N int

	// MinSimilarity is the exclusive lower bound for SelectionThreshold.
	MinSimilarity float64
}

// TopN returns a top-N selection.
func TopN(n int) Selection {
	return Selection{Mode: SelectionTopN, N: n}
}

// Threshold returns a threshold selection.
func Threshold(minSimilarity float64) Selection {
	return Selection{Mode: SelectionThreshold, MinSimilarity: minSimilarity}
}

// Validate rejects selections that violate their contract.
// Values are never coerced.
func (s Selection) Validate() error {
	switch s.Mode {
	case SelectionTopN:
		if s.N <= 0 {
			return fmt.Errorf("top-n count must be positive, got %d: %w", s.N, ErrInvalidSelection)
		}
	case SelectionThreshold:
		if math.IsNaN(s.MinSimilarity) || s.MinSimilarity < 0 || s.MinSimilarity >= 1 {
			return fmt.Errorf("threshold must be in [0,1), got %v: %w", s.MinSimilarity, ErrInvalidSelection)
		}
	default:
		return fmt.Errorf("unknown selection mode %q: %w", s.Mode, ErrInvalidSelection)
	}
	return nil
}

// String describes the selection for logs and CLI output.
func (s Selection) String() string {
	switch s.Mode {
	case SelectionTopN:
		return fmt.Sprintf("top %d", s.N)
	case SelectionThreshold:
		return fmt.Sprintf("similarity > %g", s.MinSimilarity)
	default:
		return string(s.Mode)
	}
}

// Recommendation is a projected product together with its similarity score.
type Recommendation struct {
	ProductSummary

	// Score is the cosine similarity to the target product.
	// Degenerate (empty or zero-weight) documents score 0.
	Score float64 `json:"score"`
}

// Summaries strips scores from a recommendation list.
func Summaries(recs []Recommendation) []ProductSummary {
	out := make([]ProductSummary, len(recs))
	for i := range recs {
		out[i] = recs[i].ProductSummary
	}
	return out
}

// CorpusStats describes a built corpus snapshot.
type CorpusStats struct {
	// SnapshotID identifies the build. Empty when nothing has been built.
	SnapshotID string `json:"snapshot_id"`

	// Documents is the number of product documents.
	Documents int `json:"documents"`

	// Vocabulary is the number of distinct terms in the IDF table.
	Vocabulary int `json:"vocabulary"`

	// BuiltAt is when the snapshot was built.
	BuiltAt time.Time `json:"built_at"`

	// Cached reports whether the snapshot is retained across requests.
	Cached bool `json:"cached"`
}
