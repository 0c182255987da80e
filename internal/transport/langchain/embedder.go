// Package langchain implements the embedding provider on top of langchaingo,
// for local OpenAI-compatible servers (Ollama, LM Studio, llama.cpp).
package langchain

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/kailas-cloud/dsaranker/internal/domain"
)

// noToken is sent to servers that do not authenticate.
const noToken = "none"

// Config holds the provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds each HTTP call; zero leaves it to the context.
	Timeout time.Duration
}

// Embedder adapts a langchaingo embedder to domain.Embedder.
// langchaingo does not report token usage, so results carry zero tokens.
type Embedder struct {
	embedder embeddings.Embedder
}

// NewEmbedder creates a langchaingo-backed embedding provider.
func NewEmbedder(cfg *Config) (*Embedder, error) {
	token := cfg.APIKey
	if token == "" {
		token = noToken
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithEmbeddingModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("create langchain embedder: %w", err)
	}
	return &Embedder{embedder: embedder}, nil
}

// Embed implements domain.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return domain.EmbeddingResult{}, fmt.Errorf("embedding request: %w", ctx.Err())
		}
		return domain.EmbeddingResult{}, fmt.Errorf("embedding request failed: %v: %w", err, domain.ErrEmbeddingProviderError)
	}
	if len(vec) == 0 {
		return domain.EmbeddingResult{}, fmt.Errorf("embedding response: %w: %w",
			domain.ErrEmptyEmbedding, domain.ErrEmbeddingProviderError)
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}

// HealthCheck embeds a short probe; langchaingo has no model listing call.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("probe embedding: %w", err)
	}
	return nil
}
