// Package engine wires the corpus, text normalization, scorers and embedding
// cache into a ready search service. The CLI and the Go SDK share it.
package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
	"github.com/kailas-cloud/dsaranker/internal/repository/corpus"
	"github.com/kailas-cloud/dsaranker/internal/text"
	"github.com/kailas-cloud/dsaranker/internal/text/keyword"
	"github.com/kailas-cloud/dsaranker/internal/text/lemma"
	"github.com/kailas-cloud/dsaranker/internal/text/spell"
	embeddinguc "github.com/kailas-cloud/dsaranker/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/dsaranker/internal/usecase/health"
	"github.com/kailas-cloud/dsaranker/internal/usecase/scoring"
	searchuc "github.com/kailas-cloud/dsaranker/internal/usecase/search"
)

// ErrEmbeddingDisabled is returned by Precompute when no embedder is configured.
var ErrEmbeddingDisabled = errors.New("embedding strategy is not configured")

// Options tune the engine. Zero values select defaults.
type Options struct {
	MaxEditDistance int
	Language        string
	MaxCandidates   int

	// Embedder enables the embedding strategy when non-nil. It must return
	// unit-length vectors.
	Embedder            domain.Embedder
	QueryInstruction    string
	DocumentInstruction string
	Concurrency         int

	// Store is reported by the health check when non-nil.
	Store healthuc.StorePinger
}

// Engine is a ready-to-query ranking engine over one corpus.
type Engine struct {
	Corpus *corpus.Corpus
	Search *searchuc.Service
	Health *healthuc.Service
	// Cache is nil when the embedding strategy is not configured.
	Cache *embeddinguc.Cache
}

// New builds an Engine.
func New(c *corpus.Corpus, opts Options, logger *zap.Logger) *Engine {
	if opts.MaxEditDistance <= 0 {
		opts.MaxEditDistance = spell.DefaultMaxDistance
	}

	kw := keyword.DefaultOptions()
	if opts.Language != "" {
		kw.Language = opts.Language
	}
	normalizer := text.NewNormalizer(
		spell.FromIDF(c.Lexical.IDF, opts.MaxEditDistance),
		lemma.New(c.Lexical.Terms()),
		keyword.NewExtractor(),
	).WithKeywordOptions(kw)

	scorers := map[strategy.Strategy]searchuc.Scorer{
		strategy.BM25:  scoring.NewBM25(c.Lexical.BM25),
		strategy.TFIDF: scoring.NewTFIDF(c.Lexical.IDF, c.Lexical.TFIDF),
	}

	e := &Engine{Corpus: c}

	// one model serves both instructions
	if opts.Embedder != nil {
		docs := withInstruction(opts.Embedder, opts.DocumentInstruction)
		query := withInstruction(opts.Embedder, opts.QueryInstruction)
		e.Cache = embeddinguc.NewCache(docs, opts.Concurrency, logger)
		scorers[strategy.Embedding] = scoring.NewEmbedding(query, e.Cache)
	}

	e.Search = searchuc.New(normalizer, scorers, c.Registry, opts.MaxCandidates)

	// nil interfaces, not typed nil pointers, for unconfigured checks
	var precompute healthuc.PrecomputeStatus
	if e.Cache != nil {
		precompute = e.Cache
	}
	e.Health = healthuc.New(c.Registry, opts.Store, precompute)

	return e
}

// Precompute embeds every document into the in-memory cache.
func (e *Engine) Precompute(ctx context.Context) error {
	if e.Cache == nil {
		return ErrEmbeddingDisabled
	}
	return e.Cache.Precompute(ctx, e.Corpus.Registry) //nolint:wrapcheck // already wrapped
}

// Platforms lists the distinct platform tags of the corpus.
func (e *Engine) Platforms() []string {
	return e.Corpus.Registry.Platforms()
}

func withInstruction(inner domain.Embedder, instruction string) domain.Embedder {
	if instruction == "" {
		return inner
	}
	return domain.NewInstructionEmbedder(inner, instruction)
}
