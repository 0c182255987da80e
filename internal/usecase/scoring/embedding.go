package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
)

// Embedding scores documents by the dot product of unit-length embeddings,
// which equals their cosine similarity.
type Embedding struct {
	embed   Embedder
	vectors VectorSource
}

// NewEmbedding creates an embedding scorer. embed must return unit-length vectors.
func NewEmbedding(embed Embedder, vectors VectorSource) *Embedding {
	return &Embedding{embed: embed, vectors: vectors}
}

// Score embeds the space-joined keywords and compares them with every cached
// document vector. An empty keyword sequence or an empty cache yields an empty
// map without calling the model.
func (e *Embedding) Score(ctx context.Context, keywords []string) (*score.Map, error) {
	if len(keywords) == 0 || e.vectors.Len() == 0 {
		return score.NewMap(0), nil
	}

	res, err := e.embed.Embed(ctx, strings.Join(keywords, " "))
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)

	scores := score.NewMap(e.vectors.Len())
	var dimErr error
	e.vectors.Each(func(id string, vec []float32) bool {
		sim, err := domain.Dot(res.Embedding, vec)
		if err != nil {
			dimErr = fmt.Errorf("document %s: %w", id, err)
			return false
		}
		scores.Set(id, score.Similarity(sim))
		return true
	})
	if dimErr != nil {
		return nil, dimErr
	}
	return scores, nil
}
