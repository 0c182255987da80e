package scoring

import (
	"context"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
)

// Scorer ranks every candidate document against a keyword sequence.
// Implementations differ only in how they compute a document's score.
type Scorer interface {
	Score(ctx context.Context, keywords []string) (*score.Map, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorSource exposes precomputed unit-length document vectors.
type VectorSource interface {
	Len() int
	Each(fn func(id string, vec []float32) bool)
}
