package search

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/index"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/request"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
	"github.com/kailas-cloud/dsaranker/internal/usecase/embedding"
	"github.com/kailas-cloud/dsaranker/internal/usecase/scoring"
)

func mustRequest(t *testing.T, s strategy.Strategy, q, platform string, page, limit int) request.Request {
	t.Helper()
	req, err := request.New(s, q, true, platform, page, limit)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

func TestService_BM25TwoSumArray(t *testing.T) {
	table := index.NewTable([]string{"1", "2", "3"}, map[string]map[string]float64{
		"1": {"two": 1.2, "sum": 0.8, "array": 0.5},
		"2": {"two": 0.1},
		"3": {"graph": 3},
	})
	svc := New(&splitNormalizer{}, map[strategy.Strategy]Scorer{
		strategy.BM25: scoring.NewBM25(table),
	}, corpus(3), 0)

	page, err := svc.Search(context.Background(), mustRequest(t, strategy.BM25, "Two Sum Array", "", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := recordIDs(page.Data()); !slices.Equal(got, []string{"1", "2"}) {
		t.Errorf("data = %v, want [1 2]", got)
	}
	if page.Count() != 2 {
		t.Errorf("count = %d, want 2", page.Count())
	}
	if page.TimeMillis() < 0 {
		t.Errorf("time = %v", page.TimeMillis())
	}
}

func TestService_PassesKeywordsAndAutocorrect(t *testing.T) {
	norm := &splitNormalizer{}
	sc := &fixedScorer{scores: score.NewMap(0)}
	svc := New(norm, map[strategy.Strategy]Scorer{strategy.TFIDF: sc}, corpus(1), 0)

	if _, err := svc.Search(context.Background(), mustRequest(t, strategy.TFIDF, "Binary TREE", "", 1, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(sc.got, []string{"binary", "tree"}) {
		t.Errorf("keywords = %v", sc.got)
	}
	if !norm.last {
		t.Error("autocorrect flag not forwarded")
	}
}

func TestService_Idempotent(t *testing.T) {
	sc := &fixedScorer{scores: descending(30)}
	svc := New(&splitNormalizer{}, map[strategy.Strategy]Scorer{strategy.BM25: sc}, corpus(30), 0)
	req := mustRequest(t, strategy.BM25, "x", "hackerrank", 2, 5)

	a, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(recordIDs(a.Data()), recordIDs(b.Data())) || a.Count() != b.Count() {
		t.Errorf("repeated search differs: %v vs %v", recordIDs(a.Data()), recordIDs(b.Data()))
	}
}

func TestService_EmbeddingEmptyCache(t *testing.T) {
	cache := embedding.NewCache(nil, 1, zap.NewNop())
	svc := New(&splitNormalizer{}, map[strategy.Strategy]Scorer{
		strategy.Embedding: scoring.NewEmbedding(nil, cache),
	}, corpus(0), 0)

	page, err := svc.Search(context.Background(), mustRequest(t, strategy.Embedding, "binary tree", "", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count() != 0 || len(page.Data()) != 0 {
		t.Errorf("count=%d len=%d, want empty page", page.Count(), len(page.Data()))
	}
}

func TestService_ScorerError(t *testing.T) {
	sc := &fixedScorer{err: domain.ErrModelUnavailable}
	svc := New(&splitNormalizer{}, map[strategy.Strategy]Scorer{strategy.Embedding: sc}, corpus(1), 0)

	_, err := svc.Search(context.Background(), mustRequest(t, strategy.Embedding, "q", "", 1, 10))
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestService_StrategyNotConfigured(t *testing.T) {
	svc := New(&splitNormalizer{}, map[strategy.Strategy]Scorer{}, corpus(1), 0)
	_, err := svc.Search(context.Background(), mustRequest(t, strategy.Embedding, "q", "", 1, 10))
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestService_MaxCandidates(t *testing.T) {
	sc := &fixedScorer{scores: descending(40)}
	svc := New(&splitNormalizer{}, map[strategy.Strategy]Scorer{strategy.BM25: sc}, corpus(40), 15)

	page, err := svc.Search(context.Background(), mustRequest(t, strategy.BM25, "x", "", 2, 10))
	if err != nil {
		t.Fatal(err)
	}
	if page.Count() != 15 || len(page.Data()) != 5 {
		t.Errorf("count=%d len=%d, want 15/5", page.Count(), len(page.Data()))
	}
}

func TestService_HugePageIsEmpty(t *testing.T) {
	table := index.NewTable([]string{"1", "2"}, map[string]map[string]float64{
		"1": {"two": 1},
		"2": {"two": 2},
	})
	svc := New(&splitNormalizer{}, map[strategy.Strategy]Scorer{
		strategy.BM25: scoring.NewBM25(table),
	}, corpus(2), 0)

	page, err := svc.Search(context.Background(), mustRequest(t, strategy.BM25, "two", "", math.MaxInt, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data()) != 0 || page.Count() != 2 {
		t.Errorf("data = %v count = %d, want empty page of 2", recordIDs(page.Data()), page.Count())
	}
}
