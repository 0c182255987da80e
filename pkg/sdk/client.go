package dsaranker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/engine"
	"github.com/kailas-cloud/dsaranker/internal/repository/corpus"
)

// Client is the dsaranker SDK entry point. It is safe for concurrent use.
type Client struct {
	engine *engine.Engine
	obs    *observer
}

// New loads the corpus and builds the engine.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.corpus == nil {
		return nil, errors.New("dsaranker: a corpus is required (WithCorpusDir or WithCorpusFS)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c, err := corpus.Load(cfg.corpus, cfg.corpusFiles(), zap.NewNop())
	obs.observe("load", "", start, err)
	if err != nil {
		return nil, fmt.Errorf("dsaranker: %w", err)
	}

	eopts := engine.Options{
		MaxEditDistance:     cfg.maxEditDistance,
		MaxCandidates:       cfg.maxCandidates,
		QueryInstruction:    cfg.queryInstruction,
		DocumentInstruction: cfg.documentInstruction,
		Concurrency:         cfg.concurrency,
	}
	if cfg.embedder != nil {
		eopts.Embedder = domain.NewNormalizingEmbedder(embedderAdapter{inner: cfg.embedder})
	}

	return &Client{
		engine: engine.New(c, eopts, zap.NewNop()),
		obs:    obs,
	}, nil
}

func (c *clientConfig) corpusFiles() corpus.Files {
	files := corpus.DefaultFiles()
	if c.files.Documents != "" {
		files.Documents = c.files.Documents
	}
	if c.files.IDF != "" {
		files.IDF = c.files.IDF
	}
	if c.files.TFIDF != "" {
		files.TFIDF = c.files.TFIDF
	}
	if c.files.BM25 != "" {
		files.BM25 = c.files.BM25
	}
	return files
}

// Precompute embeds every document. The embedding strategy ranks only
// documents embedded so far. Returns ErrEmbeddingDisabled without an Embedder.
func (c *Client) Precompute(ctx context.Context) error {
	start := time.Now()
	err := c.engine.Precompute(ctx)
	c.obs.observe("precompute", StrategyEmbedding, start, err)
	return err //nolint:wrapcheck // sentinel-wrapped by the engine
}

// Len returns the number of documents in the corpus.
func (c *Client) Len() int {
	return c.engine.Corpus.Registry.Len()
}

// Get returns a document by id.
func (c *Client) Get(id string) (Document, bool) {
	rec, ok := c.engine.Corpus.Registry.Get(id)
	if !ok {
		return Document{}, false
	}
	return toDocument(&rec), true
}

// Platforms lists the distinct platform tags of the corpus, sorted.
func (c *Client) Platforms() []string {
	return c.engine.Platforms()
}

// Keywords returns the normalized keywords a query ranks with.
func (c *Client) Keywords(query string, autocorrect bool) []string {
	return c.engine.Search.Keywords(query, autocorrect)
}

// Health reports corpus and precompute state.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.engine.Health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
