package dsaranker

import (
	"encoding/json"
	"time"
)

// Strategy selects the ranking function.
type Strategy string

// Ranking strategies.
const (
	StrategyBM25      Strategy = "bm25"
	StrategyTFIDF     Strategy = "tfidf"
	StrategyEmbedding Strategy = "embedding"
)

// AllPlatforms disables platform filtering.
const AllPlatforms = "all"

// Document is a corpus entry.
type Document struct {
	ID          string
	Title       string
	Description string
	Platform    string
	// Fields holds the remaining corpus fields (url, difficulty, tags...) as raw JSON.
	Fields map[string]json.RawMessage
}

// SearchResult is one page of ranked documents.
type SearchResult struct {
	Documents []Document
	// Count is the number of ranked candidates across all pages.
	Count   int
	Elapsed time.Duration
}

// HealthStatus represents the aggregated engine health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"pending"/"error"
}
