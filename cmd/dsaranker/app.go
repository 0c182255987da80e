package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/config"
	"github.com/kailas-cloud/dsaranker/internal/db"
	dbBadger "github.com/kailas-cloud/dsaranker/internal/db/badger"
	dbRedis "github.com/kailas-cloud/dsaranker/internal/db/redis"
	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/engine"
	"github.com/kailas-cloud/dsaranker/internal/metrics"
	"github.com/kailas-cloud/dsaranker/internal/repository/corpus"
	"github.com/kailas-cloud/dsaranker/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/dsaranker/internal/transport/chi"
	langchainEmb "github.com/kailas-cloud/dsaranker/internal/transport/langchain"
	openaiEmb "github.com/kailas-cloud/dsaranker/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/dsaranker/internal/usecase/embedding"
)

// provider is an embedding backend as seen by the composition root.
type provider interface {
	domain.Embedder
	domain.HealthChecker
}

// app is the composition root shared by every command.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	store  db.Store // nil when store.driver is none
	engine *engine.Engine
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	c, err := corpus.Load(os.DirFS(cfg.Corpus.Dir), corpus.Files{
		Documents: cfg.Corpus.Documents,
		IDF:       cfg.Corpus.IDF,
		TFIDF:     cfg.Corpus.TFIDF,
		BM25:      cfg.Corpus.BM25,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("load corpus from %s: %w", cfg.Corpus.Dir, err)
	}

	a := &app{cfg: cfg, logger: logger}

	a.store, err = openStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	opts := engine.Options{
		MaxEditDistance:     cfg.Text.MaxEditDistance,
		Language:            cfg.Text.Language,
		MaxCandidates:       cfg.Search.MaxCandidates,
		QueryInstruction:    cfg.Embedding.QueryInstruction,
		DocumentInstruction: cfg.Embedding.DocumentInstruction,
		Concurrency:         cfg.Embedding.Concurrency,
		Store:               a.store,
	}
	if cfg.Embedding.Enabled {
		opts.Embedder = embeddinguc.NewLazyEmbedder(a.loadModel, logger)
	}
	a.engine = engine.New(c, opts, logger)

	return a, nil
}

// Close releases the store.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// loadModel builds the provider chain: provider -> store cache -> instrumented -> normalizing.
// The provider is health-checked before use.
func (a *app) loadModel(ctx context.Context) (domain.Embedder, error) {
	cfg := a.cfg.Embedding

	p, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	checkCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSec)*time.Second)
	defer cancel()
	if err := p.HealthCheck(checkCtx); err != nil {
		return nil, fmt.Errorf("%s provider health check: %w", cfg.Provider, err)
	}

	var emb domain.Embedder = p
	if a.store != nil {
		emb = embcache.New(emb, a.store, embcache.Options{
			Model:      cfg.Model,
			TTL:        a.cfg.Store.TTL(),
			CacheTotal: metrics.EmbeddingCacheTotal,
		}, a.logger)
	}
	emb = embeddinguc.NewInstrumentedEmbedder(emb, cfg.Provider, cfg.Model, a.logger)

	a.logger.Info("Embedder created",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int("dimensions", cfg.Dimensions),
		zap.Bool("store_cache", a.store != nil),
	)
	return domain.NewNormalizingEmbedder(emb), nil
}

// precompute embeds the whole corpus into the in-memory cache.
func (a *app) precompute(ctx context.Context) error {
	if err := a.engine.Precompute(ctx); err != nil {
		if errors.Is(err, engine.ErrEmbeddingDisabled) {
			return errors.New("embedding is disabled (embedding.enabled: false)")
		}
		return err //nolint:wrapcheck // already wrapped
	}
	return nil
}

func (a *app) router() http.Handler {
	server := chiTransport.NewServer(a.engine.Search, a.engine.Corpus.Registry, a.engine.Health, a.logger)
	return chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:     a.cfg.HTTP.APIKeys,
		CORSOrigins: a.cfg.HTTP.CORSOrigins,
	}, a.logger)
}

// serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (a *app) serve(ctx context.Context) error {
	if a.engine.Cache != nil && a.cfg.Embedding.PrecomputeOnStart {
		// failures are logged by Precompute and surface in /health
		go func() { _ = a.precompute(ctx) }()
	}

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.router(),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	a.logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("Server stopped gracefully")
	return nil
}

func newProvider(cfg config.EmbeddingConfig) (provider, error) {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Timeout:    timeout,
		}), nil
	case config.ProviderLangchain:
		p, err := langchainEmb.NewEmbedder(&langchainEmb.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("langchain provider: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// openStore connects the persistent embedding store. It returns a nil store
// for driver "none".
func openStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (db.Store, error) {
	var store db.Store
	switch cfg.Driver {
	case config.StoreNone:
		return nil, nil //nolint:nilnil // no store configured
	case config.StoreValkey, config.StoreRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		store = s
	case config.StoreBadger:
		s, err := dbBadger.Open(dbBadger.Config{Path: cfg.Path}, logger)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s store not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to embedding store", zap.String("driver", cfg.Driver))
	return store, nil
}
