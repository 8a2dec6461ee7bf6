package recommender

import (
	"math"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// Document is the tokenised representation of one product.
type Document struct {
	// ProductID identifies the product the document was built from.
	ProductID int64

	// Tokens are the lowercase word tokens in extraction order.
	Tokens []string

	// Summary is the projection returned when the product is recommended.
	Summary domain.ProductSummary
}

// Corpus holds every product document of a catalog snapshot together with the
// term -> IDF table computed over them. Term frequencies are not stored; they
// are derived from the raw tokens when a vector is requested.
type Corpus struct {
	documents []Document
	index     map[int64]int
	idf       map[string]float64
}

// BuildCorpus extracts and tokenises every product of the snapshot and
// computes the IDF table once.
func BuildCorpus(products []domain.Product, attributes []domain.ProductAttribute, variants []domain.ProductVariant) *Corpus {
	attrsByProduct := make(map[int64][]domain.ProductAttribute)
	for i := range attributes {
		id := attributes[i].ProductID
		attrsByProduct[id] = append(attrsByProduct[id], attributes[i])
	}
	variantsByProduct := make(map[int64][]domain.ProductVariant)
	for i := range variants {
		id := variants[i].ProductID
		variantsByProduct[id] = append(variantsByProduct[id], variants[i])
	}

	docs := make([]Document, len(products))
	for i := range products {
		p := &products[i]
		text := ExtractFeatures(p, attrsByProduct[p.ProductID], variantsByProduct[p.ProductID])
		docs[i] = Document{
			ProductID: p.ProductID,
			Tokens:    Tokenize(text),
			Summary:   p.Summary(),
		}
	}

	return NewCorpus(docs)
}

// NewCorpus builds a corpus from already tokenised documents.
// If two documents share a ProductID the first one is used for lookups.
func NewCorpus(docs []Document) *Corpus {
	c := &Corpus{
		documents: docs,
		index:     make(map[int64]int, len(docs)),
		idf:       make(map[string]float64),
	}

	docFrequencies := make(map[string]int)
	for i := range docs {
		if _, ok := c.index[docs[i].ProductID]; !ok {
			c.index[docs[i].ProductID] = i
		}

		seen := make(map[string]bool, len(docs[i].Tokens))
		for _, token := range docs[i].Tokens {
			if !seen[token] {
				docFrequencies[token]++
				seen[token] = true
			}
		}
	}

	for term, df := range docFrequencies {
		c.idf[term] = InverseDocumentFrequency(len(docs), df)
	}

	logger.Debug("Corpus built: %d documents, %d terms", len(docs), len(c.idf))
	return c
}

// InverseDocumentFrequency returns ln(n / (1 + df)).
//
// The result is negative for terms present in nearly every document, which
// pushes near-ubiquitous terms below zero contribution. It is never clamped.
func InverseDocumentFrequency(n, df int) float64 {
	return math.Log(float64(n) / float64(1+df))
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.documents)
}

// Vocabulary returns the number of distinct terms in the IDF table.
func (c *Corpus) Vocabulary() int {
	if c == nil {
		return 0
	}
	return len(c.idf)
}

// IDF returns the inverse document frequency of term, or 0 for a term the
// corpus has never seen.
func (c *Corpus) IDF(term string) float64 {
	if c == nil {
		return 0
	}
	return c.idf[term]
}

// Document looks up a product's document by id.
func (c *Corpus) Document(productID int64) (Document, bool) {
	if c == nil {
		return Document{}, false
	}
	i, ok := c.index[productID]
	if !ok {
		return Document{}, false
	}
	return c.documents[i], true
}

// Documents returns the documents in catalog order.
// The returned slice must not be modified.
func (c *Corpus) Documents() []Document {
	if c == nil {
		return nil
	}
	return c.documents
}

// Vector computes the TF-IDF vector of tokens against this corpus.
func (c *Corpus) Vector(tokens []string) Vector {
	return CalculateVector(tokens, c.idf)
}
