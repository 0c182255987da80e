package domain

import (
	"context"
	"errors"
	"math"
	"testing"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	got    string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = text
	return s.result, s.err
}

func TestInstructionEmbedder_PrependsInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	emb := NewInstructionEmbedder(inner, "search_document: ")

	result, err := emb.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "search_document: hello world" {
		t.Errorf("expected prepended text, got %q", inner.got)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3-element vector, got %d", len(result.Embedding))
	}
}

func TestInstructionEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	inner := &stubEmbedder{err: innerErr}
	emb := NewInstructionEmbedder(inner, "search_document: ")

	_, err := emb.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

func TestInstructionEmbedder_EmptyInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.5}}}
	emb := NewInstructionEmbedder(inner, "")

	_, err := emb.Embed(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "test" {
		t.Errorf("expected 'test', got %q", inner.got)
	}
}

// --- NormalizingEmbedder tests ---

func TestNormalizingEmbedder_UnitLength(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{3, 4}, TotalTokens: 2}}
	emb := NewNormalizingEmbedder(inner)

	res, err := emb.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(float64(res.Embedding[0])-0.6) > 1e-6 || math.Abs(float64(res.Embedding[1])-0.8) > 1e-6 {
		t.Errorf("expected [0.6 0.8], got %v", res.Embedding)
	}
	if res.TotalTokens != 2 {
		t.Errorf("expected usage to pass through, got %d", res.TotalTokens)
	}
}

func TestNormalizingEmbedder_EmptyVector(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{}}
	emb := NewNormalizingEmbedder(inner)

	_, err := emb.Embed(context.Background(), "text")
	if !errors.Is(err, ErrEmptyEmbedding) {
		t.Fatalf("expected ErrEmptyEmbedding, got %v", err)
	}
}

func TestNormalizingEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("model crashed")
	emb := NewNormalizingEmbedder(&stubEmbedder{err: innerErr})

	_, err := emb.Embed(context.Background(), "text")
	if !errors.Is(err, innerErr) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	out := Normalize([]float32{0, 0, 0})
	for _, x := range out {
		if x != 0 {
			t.Fatalf("expected zero vector, got %v", out)
		}
	}
}

func TestDot(t *testing.T) {
	a := Normalize([]float32{1, 2, 3})
	got, err := Dot(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1) > 1e-6 {
		t.Errorf("expected self-similarity 1, got %f", got)
	}

	if _, err := Dot([]float32{1}, []float32{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
