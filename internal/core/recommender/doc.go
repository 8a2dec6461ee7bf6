// Package recommender implements content-based product recommendation.
//
// Every product is flattened into a textual document (ExtractFeatures),
// tokenised (Tokenize), and weighted with TF-IDF against the whole catalog
// snapshot (BuildCorpus, CalculateVector). Candidates are scored against a
// target product by cosine similarity and picked with a top-N or threshold
// selection (Rank, Recommend).
//
// The package is synchronous and holds no shared mutable state. A Corpus is
// immutable once built; callers that retain one across requests must build a
// replacement and swap it in whenever the catalog changes. A stale Corpus is
// not detected and silently produces outdated rankings.
package recommender
