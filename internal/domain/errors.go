package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed search request (bad strategy, page or limit).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCorpusLoad signals that a corpus artifact could not be read or decoded.
	ErrCorpusLoad = errors.New("corpus load failed")
	// ErrModelUnavailable signals that the embedding model could not be loaded.
	ErrModelUnavailable = errors.New("embedding model unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmptyEmbedding signals a provider response without a vector.
	ErrEmptyEmbedding = errors.New("empty embedding")
	// ErrDimensionMismatch signals vectors of different lengths.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
