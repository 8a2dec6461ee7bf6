package recommender

import (
	"fmt"
	"sort"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// Match is a scored recommendation candidate.
type Match struct {
	// ProductID identifies the candidate.
	ProductID int64

	// Score is the cosine similarity to the target, 0 when Degenerate.
	Score float64

	// Degenerate is set when the similarity was undefined because one of the
	// two documents had no tokens or only zero-weight terms.
	Degenerate bool
}

// Rank scores every other product of the corpus against targetID and applies
// the selection.
//
// An unknown target, an empty corpus or a corpus holding only the target all
// yield an empty slice and no error. The only error is an invalid selection.
//
// Ordering: finite scores descending, then degenerate candidates; ties by
// ascending product id. Degenerate candidates are never kept by threshold
// selection.
func Rank(c *Corpus, targetID int64, sel domain.Selection) ([]Match, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	target, ok := c.Document(targetID)
	if !ok {
		logger.Debug("Target product %d not in corpus", targetID)
		return []Match{}, nil
	}

	targetVector := c.Vector(target.Tokens)

	docs := c.Documents()
	candidates := make([]Match, 0, len(docs))
	degenerate := 0
	for i := range docs {
		if docs[i].ProductID == targetID {
			continue
		}

		score := CosineSimilarity(targetVector, c.Vector(docs[i].Tokens))
		m := Match{ProductID: docs[i].ProductID, Score: score}
		if IsDegenerate(score) {
			m.Score = 0
			m.Degenerate = true
			degenerate++
		}

		if sel.Mode == domain.SelectionThreshold && (m.Degenerate || m.Score <= sel.MinSimilarity) {
			continue
		}
		candidates = append(candidates, m)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return less(candidates[i], candidates[j])
	})

	if sel.Mode == domain.SelectionTopN && len(candidates) > sel.N {
		candidates = candidates[:sel.N]
	}

	logger.Debug("Ranked target %d (%s): %d documents, %d degenerate, %d selected",
		targetID, sel, len(docs), degenerate, len(candidates))

	return candidates, nil
}

// less orders finite scores before degenerate ones, higher scores first,
// then lower product ids.
func less(a, b Match) bool {
	if a.Degenerate != b.Degenerate {
		return !a.Degenerate
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ProductID < b.ProductID
}

// Recommend ranks candidates for targetID and projects them to summaries.
func Recommend(c *Corpus, targetID int64, sel domain.Selection) ([]domain.Recommendation, error) {
	matches, err := Rank(c, targetID, sel)
	if err != nil {
		return nil, fmt.Errorf("rank product %d: %w", targetID, err)
	}

	recs := make([]domain.Recommendation, 0, len(matches))
	for _, m := range matches {
		doc, ok := c.Document(m.ProductID)
		if !ok {
			continue
		}
		recs = append(recs, domain.Recommendation{
			ProductSummary: doc.Summary,
			Score:          m.Score,
		})
	}
	return recs, nil
}
