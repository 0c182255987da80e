package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/metrics"
)

// RouterConfig controls the middleware stack.
type RouterConfig struct {
	APIKeys     []string
	CORSOrigins []string
}

// NewRouter builds the full HTTP handler: recovery, request ids, wide-event
// logging, CORS, auth, metrics, then the API routes.
func NewRouter(s *Server, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(CORSMiddleware(cfg.CORSOrigins))
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(metrics.Middleware())
	s.Routes(r)
	return r
}
