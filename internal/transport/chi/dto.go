package chi

import (
	"github.com/kailas-cloud/dsaranker/internal/domain/document"
	healthuc "github.com/kailas-cloud/dsaranker/internal/usecase/health"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in error responses.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeNotFound               ErrorCode = "not_found"
	CodeModelUnavailable       ErrorCode = "model_unavailable"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeTimeout                ErrorCode = "timeout"
	CodeInternalError          ErrorCode = "internal_error"
)

type errorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// searchResponse keeps the historical shape: data, time in milliseconds, count.
type searchResponse struct {
	Data  []document.Record `json:"data"`
	Time  float64           `json:"time"`
	Count int               `json:"count"`
}

type platformsResponse struct {
	Platforms []string `json:"platforms"`
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}
