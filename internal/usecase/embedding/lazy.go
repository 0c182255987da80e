package embedding

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/metrics"
)

// Loader builds the embedder chain. It runs on first use.
type Loader func(ctx context.Context) (domain.Embedder, error)

// LazyEmbedder defers model construction until the first Embed call.
// Concurrent first callers share one load; a failed load is not remembered,
// so the next call tries again.
type LazyEmbedder struct {
	load   Loader
	logger *zap.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	loaded domain.Embedder
}

// NewLazyEmbedder creates a lazily loaded embedder.
func NewLazyEmbedder(load Loader, logger *zap.Logger) *LazyEmbedder {
	return &LazyEmbedder{load: load, logger: logger}
}

// Embed loads the model if needed and delegates to it.
func (l *LazyEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	emb, err := l.get(ctx)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	res, err := emb.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("lazy embed: %w", err)
	}
	return res, nil
}

// Loaded reports whether the model has been loaded.
func (l *LazyEmbedder) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded != nil
}

// HealthCheck reports the model as healthy once loaded. Before that it
// attempts a load, which runs the provider's own health check.
func (l *LazyEmbedder) HealthCheck(ctx context.Context) error {
	_, err := l.get(ctx)
	return err
}

func (l *LazyEmbedder) get(ctx context.Context) (domain.Embedder, error) {
	l.mu.RLock()
	emb := l.loaded
	l.mu.RUnlock()
	if emb != nil {
		return emb, nil
	}

	// the shared load must not die with the first caller's request
	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("model", func() (any, error) {
		l.mu.RLock()
		done := l.loaded
		l.mu.RUnlock()
		if done != nil {
			return done, nil
		}

		emb, err := l.load(loadCtx)
		if err == nil && emb == nil {
			err = fmt.Errorf("loader returned no embedder")
		}
		if err == nil {
			if hc, ok := emb.(domain.HealthChecker); ok {
				err = hc.HealthCheck(loadCtx)
			}
		}
		if err != nil {
			metrics.EmbeddingModelLoadsTotal.WithLabelValues("error").Inc()
			l.logger.Error("Embedding model load failed", zap.Error(err))
			return nil, fmt.Errorf("load embedding model: %w: %w", domain.ErrModelUnavailable, err)
		}

		metrics.EmbeddingModelLoadsTotal.WithLabelValues("success").Inc()
		l.logger.Info("Embedding model loaded")
		l.mu.Lock()
		l.loaded = emb
		l.mu.Unlock()
		return emb, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for embedding model: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(domain.Embedder), nil //nolint:forcetypeassert // only embedders are stored
	}
}
