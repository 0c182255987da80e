package scoring

import (
	"context"

	"github.com/kailas-cloud/dsaranker/internal/domain/index"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
)

// TFIDF scores documents by cosine similarity between the query's TF-IDF
// vector and each document's precomputed TF-IDF vector.
type TFIDF struct {
	idf   index.IDF
	table *index.Table
}

// NewTFIDF creates a TF-IDF cosine scorer.
func NewTFIDF(idf index.IDF, table *index.Table) *TFIDF {
	return &TFIDF{idf: idf, table: table}
}

// Score returns a similarity for every document in the table. Documents that
// cannot be compared (zero-norm query or document) get an undefined score.
func (s *TFIDF) Score(_ context.Context, keywords []string) (*score.Map, error) {
	query, sqQuery := s.queryVector(keywords)

	scores := score.NewMap(s.table.Len())
	s.table.Each(func(id string, row map[string]float64) {
		var dot, sqDoc float64
		// the document row is the denser side; the query is looked up per term
		for _, term := range s.table.Terms(id) {
			w := row[term]
			dot += w * query[term]
			sqDoc += w * w
		}
		scores.Set(id, score.Cosine(dot, sqQuery, sqDoc))
	})
	return scores, nil
}

// queryVector builds tf(term)*idf(term) for the query and its squared L2 norm.
func (s *TFIDF) queryVector(keywords []string) (map[string]float64, float64) {
	vec := make(map[string]float64, len(keywords))
	if len(keywords) == 0 {
		return vec, 0
	}
	inc := 1 / float64(len(keywords))
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if _, ok := vec[kw]; !ok {
			terms = append(terms, kw)
		}
		vec[kw] += inc
	}
	// first-seen order keeps the norm bit-identical across calls
	var sq float64
	for _, term := range terms {
		w := vec[term] * s.idf.Weight(term)
		vec[term] = w
		sq += w * w
	}
	return vec, sq
}
