package scoring

import (
	"context"

	"github.com/kailas-cloud/dsaranker/internal/domain/index"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
)

// BM25 scores documents by summing their precomputed per-term BM25 weights.
// Length normalization is already part of the weights.
type BM25 struct {
	table *index.Table
}

// NewBM25 creates a BM25 scorer over table.
func NewBM25(table *index.Table) *BM25 {
	return &BM25{table: table}
}

// Score sums the weight of every keyword occurrence per document. Only
// documents containing at least one keyword appear in the result.
func (b *BM25) Score(_ context.Context, keywords []string) (*score.Map, error) {
	scores := score.NewMap(0)
	if len(keywords) == 0 {
		return scores, nil
	}
	b.table.Each(func(id string, row map[string]float64) {
		var sum float64
		matched := false
		for _, kw := range keywords {
			if w, ok := row[kw]; ok {
				sum += w
				matched = true
			}
		}
		if matched {
			scores.Set(id, score.Of(sum))
		}
	})
	return scores, nil
}
