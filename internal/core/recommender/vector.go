package recommender

import "math"

// Vector is a sparse TF-IDF vector. Terms absent from the vector weigh 0.
// Terms keep their first-occurrence order so sums over a vector are
// reproducible between calls.
type Vector struct {
	terms   []string
	weights map[string]float64
}

// CalculateVector weights every distinct term of document by
// tf(t) * idf(t), where tf(t) = count(t) / len(document).
// Terms missing from idf weigh 0.
func CalculateVector(document []string, idf map[string]float64) Vector {
	counts := make(map[string]int, len(document))
	terms := make([]string, 0, len(document))
	for _, token := range document {
		if counts[token] == 0 {
			terms = append(terms, token)
		}
		counts[token]++
	}

	weights := make(map[string]float64, len(terms))
	length := float64(len(document))
	for _, term := range terms {
		tf := float64(counts[term]) / length
		weights[term] = tf * idf[term]
	}

	return Vector{terms: terms, weights: weights}
}

// Weight returns the weight of term, 0 if the term is absent.
func (v Vector) Weight(term string) float64 {
	return v.weights[term]
}

// Len returns the number of distinct terms.
func (v Vector) Len() int {
	return len(v.terms)
}

// Terms returns the distinct terms in first-occurrence order.
func (v Vector) Terms() []string {
	return v.terms
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, term := range v.terms {
		w := v.weights[term]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns dot(a, b) / (|a| * |b|), summing the dot product
// over the terms of a.
//
// The zero-norm case is not special-cased: an empty or all-zero vector
// yields NaN. Rank resolves such scores; see IsDegenerate.
func CosineSimilarity(a, b Vector) float64 {
	var dot float64
	for _, term := range a.terms {
		dot += a.weights[term] * b.weights[term]
	}
	return dot / (a.Norm() * b.Norm())
}

// IsDegenerate reports whether a similarity score is undefined.
func IsDegenerate(score float64) bool {
	return math.IsNaN(score) || math.IsInf(score, 0)
}
