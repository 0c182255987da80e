package dsaranker

import (
	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/engine"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrCorpusLoad             = domain.ErrCorpusLoad
	ErrModelUnavailable       = domain.ErrModelUnavailable
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrDimensionMismatch      = domain.ErrDimensionMismatch
	ErrEmbeddingDisabled      = engine.ErrEmbeddingDisabled
)
