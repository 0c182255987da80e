package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/request"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
	"github.com/kailas-cloud/dsaranker/internal/repository/corpus"
	healthuc "github.com/kailas-cloud/dsaranker/internal/usecase/health"
)

func loadCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	fsys := fstest.MapFS{
		"idToData.json": {Data: []byte(`{
			"1": {"title": "Binary Tree", "description": "walk a tree", "platform": "LeetCode"},
			"2": {"title": "Two Sum", "description": "find a pair", "platform": "HackerRank"}
		}`)},
		"IDF.json":    {Data: []byte(`{"binary": 1.0, "tree": 1.0, "two": 1.0, "sum": 1.0}`)},
		"TF_IDF.json": {Data: []byte(`{"1": {"binary": 0.7, "tree": 0.7}, "2": {"two": 0.7, "sum": 0.7}}`)},
		"BM25.json":   {Data: []byte(`{"1": {"binary": 1.5, "tree": 1.0}, "2": {"two": 1.0, "sum": 2.0}}`)},
	}
	c, err := corpus.Load(fsys, corpus.DefaultFiles(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// axisEmbedder maps texts mentioning "sum" to x and everything else to y.
type axisEmbedder struct{ texts []string }

func (a *axisEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	a.texts = append(a.texts, text)
	if strings.Contains(text, "sum") {
		return domain.EmbeddingResult{Embedding: []float32{1, 0}}, nil
	}
	return domain.EmbeddingResult{Embedding: []float32{0, 1}}, nil
}

func mustRequest(t *testing.T, s strategy.Strategy, q string) request.Request {
	t.Helper()
	req, err := request.New(s, q, false, "", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestNew_Lexical(t *testing.T) {
	e := New(loadCorpus(t), Options{}, zap.NewNop())

	if e.Cache != nil {
		t.Fatal("cache must be nil without an embedder")
	}
	page, err := e.Search.Search(context.Background(), mustRequest(t, strategy.BM25, "two sum"))
	if err != nil {
		t.Fatal(err)
	}
	if page.Count() != 1 || page.Data()[0].ID() != "2" {
		t.Errorf("count=%d data=%v", page.Count(), page.Data())
	}

	_, err = e.Search.Search(context.Background(), mustRequest(t, strategy.Embedding, "two sum"))
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("embedding without embedder: got %v, want ErrInvalidRequest", err)
	}
	if !errors.Is(e.Precompute(context.Background()), ErrEmbeddingDisabled) {
		t.Error("Precompute must report a disabled embedding strategy")
	}

	report := e.Health.Check(context.Background())
	if report.Status != healthuc.Healthy {
		t.Errorf("health = %+v", report)
	}
	if _, ok := report.Checks["embeddings"]; ok {
		t.Error("embeddings check must be absent without an embedder")
	}
}

func TestNew_Embedding(t *testing.T) {
	emb := &axisEmbedder{}
	e := New(loadCorpus(t), Options{
		Embedder:            emb,
		QueryInstruction:    "query: ",
		DocumentInstruction: "passage: ",
		Concurrency:         1,
	}, zap.NewNop())

	if got := e.Health.Check(context.Background()).Checks["embeddings"]; got != healthuc.CheckPending {
		t.Errorf("embeddings check before precompute = %s, want pending", got)
	}
	if err := e.Precompute(context.Background()); err != nil {
		t.Fatal(err)
	}
	if e.Cache.Len() != 2 {
		t.Fatalf("cache len = %d", e.Cache.Len())
	}

	page, err := e.Search.Search(context.Background(), mustRequest(t, strategy.Embedding, "sum"))
	if err != nil {
		t.Fatal(err)
	}
	if page.Data()[0].ID() != "2" {
		t.Errorf("first = %s, want 2", page.Data()[0].ID())
	}

	var docs, queries int
	for _, text := range emb.texts {
		switch {
		case strings.HasPrefix(text, "passage: "):
			docs++
		case strings.HasPrefix(text, "query: "):
			queries++
		}
	}
	if docs != 2 || queries != 1 {
		t.Errorf("document embeds=%d query embeds=%d (texts %q)", docs, queries, emb.texts)
	}
}

func TestPlatforms(t *testing.T) {
	e := New(loadCorpus(t), Options{}, zap.NewNop())
	got := e.Platforms()
	if len(got) != 2 || got[0] != "HackerRank" || got[1] != "LeetCode" {
		t.Errorf("platforms = %v", got)
	}
}
