package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	RegisterEmbeddingMetrics()
	RegisterEmbeddingMetrics()
	RegisterSearchMetrics()
	RegisterSearchMetrics()
}

func TestSearchMetrics_Observe(t *testing.T) {
	RegisterSearchMetrics()

	before := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("bm25", "ok"))
	SearchRequestsTotal.WithLabelValues("bm25", "ok").Inc()
	SearchDuration.WithLabelValues("bm25").Observe(0.002)

	if got := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("bm25", "ok")); got != before+1 {
		t.Errorf("search_requests_total = %v, want %v", got, before+1)
	}
	if testutil.CollectAndCount(SearchDuration) == 0 {
		t.Error("expected search_duration_seconds observations")
	}
}

func TestEmbeddingCacheSize_Gauge(t *testing.T) {
	RegisterEmbeddingMetrics()
	EmbeddingCacheSize.Set(42)
	if got := testutil.ToFloat64(EmbeddingCacheSize); got != 42 {
		t.Errorf("embedding_cache_documents = %v, want 42", got)
	}
}
