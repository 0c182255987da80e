package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/document"
	"github.com/kailas-cloud/dsaranker/internal/metrics"
)

// DefaultConcurrency bounds in-flight embedding calls during precompute.
const DefaultConcurrency = 4

// Status describes the outcome of the last precompute pass.
type Status struct {
	Running  bool
	Done     bool
	Err      error
	Total    int
	Embedded int
	Elapsed  time.Duration
}

// Cache holds one unit-length vector per document, in corpus order.
// It is filled once by Precompute and read concurrently by searches; readers
// may observe a partially populated cache while a pass is running.
type Cache struct {
	embedder    domain.Embedder
	concurrency int
	logger      *zap.Logger

	mu      sync.RWMutex
	order   []string
	vectors map[string][]float32
	status  Status
}

// NewCache creates an empty cache. concurrency <= 0 selects DefaultConcurrency.
func NewCache(embedder domain.Embedder, concurrency int, logger *zap.Logger) *Cache {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Cache{
		embedder:    embedder,
		concurrency: concurrency,
		logger:      logger,
		vectors:     make(map[string][]float32),
	}
}

// Precompute embeds lower(title + " " + description) for every registry
// document. The first failure cancels the remaining calls and is returned;
// vectors stored before it stay readable.
func (c *Cache) Precompute(ctx context.Context, registry *document.Registry) error {
	ids := registry.IDs()
	start := time.Now()
	c.setStatus(func(s *Status) {
		*s = Status{Running: true, Total: len(ids)}
	})
	c.logger.Info("Embedding precompute started",
		zap.Int("documents", len(ids)),
		zap.Int("concurrency", c.concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, id := range ids {
		if gctx.Err() != nil {
			break
		}
		rec, _ := registry.Get(id)
		text := rec.EmbeddingText()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // context error
			}
			res, err := c.embedder.Embed(gctx, text)
			if err != nil {
				return fmt.Errorf("document %s: %w", id, err)
			}
			c.put(id, res.Embedding)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	c.reorder(ids)
	elapsed := time.Since(start)
	c.setStatus(func(s *Status) {
		s.Running = false
		s.Done = err == nil
		s.Err = err
		s.Elapsed = elapsed
	})
	if err != nil {
		c.logger.Error("Embedding precompute failed",
			zap.Int("embedded", c.Len()),
			zap.Int("documents", len(ids)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return fmt.Errorf("precompute embeddings: %w", err)
	}

	c.logger.Info("Embedding precompute finished",
		zap.Int("documents", len(ids)),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

// put stores one vector. Completion order is arbitrary, so ids are appended
// as they arrive and reordered once the pass ends, successful or not.
func (c *Cache) put(id string, vec []float32) {
	c.mu.Lock()
	if _, ok := c.vectors[id]; !ok {
		c.order = append(c.order, id)
	}
	c.vectors[id] = vec
	c.status.Embedded++
	n := len(c.order)
	c.mu.Unlock()
	metrics.EmbeddingCacheSize.Set(float64(n))
}

func (c *Cache) reorder(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order := make([]string, 0, len(c.vectors))
	for _, id := range ids {
		if _, ok := c.vectors[id]; ok {
			order = append(order, id)
		}
	}
	c.order = order
}

func (c *Cache) setStatus(fn func(*Status)) {
	c.mu.Lock()
	fn(&c.status)
	c.mu.Unlock()
}

// Status returns a snapshot of the last precompute pass.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Len returns the number of cached vectors.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Get returns the vector of a document.
func (c *Cache) Get(id string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.vectors[id]
	return vec, ok
}

// Each calls fn for every cached vector until fn returns false. It iterates a
// snapshot, so fn may run while a precompute pass keeps adding entries.
func (c *Cache) Each(fn func(id string, vec []float32) bool) {
	c.mu.RLock()
	order := c.order[:len(c.order):len(c.order)]
	vectors := make([][]float32, len(order))
	for i, id := range order {
		vectors[i] = c.vectors[id]
	}
	c.mu.RUnlock()

	for i, id := range order {
		if !fn(id, vectors[i]) {
			return
		}
	}
}
