package search

import (
	"context"

	"github.com/kailas-cloud/dsaranker/internal/domain/document"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
)

// Normalizer turns raw query text into ranking keywords.
type Normalizer interface {
	Normalize(raw string, autocorrect bool) []string
}

// Scorer ranks candidate documents against keywords.
type Scorer interface {
	Score(ctx context.Context, keywords []string) (*score.Map, error)
}

// RecordSource resolves document ids to records.
type RecordSource interface {
	Get(id string) (document.Record, bool)
}
