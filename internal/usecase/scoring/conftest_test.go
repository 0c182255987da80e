package scoring

import (
	"context"

	"github.com/kailas-cloud/dsaranker/internal/domain"
)

type mockEmbedder struct {
	vec    []float32
	tokens int
	err    error
	got    string
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.got = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: m.tokens}, nil
}

type vectorEntry struct {
	id  string
	vec []float32
}

type mockVectors []vectorEntry

func (m mockVectors) Len() int { return len(m) }

func (m mockVectors) Each(fn func(id string, vec []float32) bool) {
	for _, e := range m {
		if !fn(e.id, e.vec) {
			return
		}
	}
}
