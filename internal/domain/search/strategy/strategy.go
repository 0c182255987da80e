package strategy

import "strings"

// Strategy is the ranking algorithm used for a search.
type Strategy string

// Ranking strategy constants.
const (
	// BM25 sums precomputed per-term BM25 weights.
	BM25 Strategy = "bm25"
	// TFIDF ranks by cosine similarity of TF-IDF vectors.
	TFIDF Strategy = "tfidf"
	// Embedding ranks by cosine similarity of dense embeddings.
	Embedding Strategy = "embedding"
)

// All lists every supported strategy.
var All = []Strategy{BM25, TFIDF, Embedding}

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == BM25 || s == TFIDF || s == Embedding
}

// Parse maps user input to a Strategy. Matching is case-insensitive and
// accepts "bert" for the embedding strategy. ok is false for unknown names.
func Parse(name string) (Strategy, bool) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case "bert", "semantic":
		return Embedding, true
	case "tf-idf", "tf_idf":
		return TFIDF, true
	}
	return s, s.IsValid()
}
