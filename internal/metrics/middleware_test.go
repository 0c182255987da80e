package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newInstrumentedRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/search/{strategy}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	return r
}

func serve(r http.Handler, method, path string) int {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr.Code
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := newInstrumentedRouter()
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/api/search/{strategy}", "200")
	before := testutil.ToFloat64(counter)

	serve(r, http.MethodGet, "/api/search/bm25")
	serve(r, http.MethodGet, "/api/search/tf-idf")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests for route pattern = %v, want 2", got)
	}
	if testutil.CollectAndCount(HTTPRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_RecordsStatus(t *testing.T) {
	r := newInstrumentedRouter()
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/api/broken", "502")
	before := testutil.ToFloat64(counter)

	if code := serve(r, http.MethodGet, "/api/broken"); code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("502 count delta = %v, want 1", got)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := newInstrumentedRouter()
	counter := HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	serve(r, http.MethodGet, "/no/such/path/12345")

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched count delta = %v, want 1", got)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := newInstrumentedRouter()
	serve(r, http.MethodGet, "/api/search/bert")
	if got := testutil.ToFloat64(HTTPInFlight); got != 0 {
		t.Errorf("in-flight = %v, want 0", got)
	}
}

func TestRegisterHTTPMetrics_Idempotent(_ *testing.T) {
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()
}
