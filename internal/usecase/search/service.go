package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/request"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/result"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
	"github.com/kailas-cloud/dsaranker/internal/logger"
	"github.com/kailas-cloud/dsaranker/internal/metrics"
)

var errStrategyNotConfigured = fmt.Errorf("%w: strategy not configured", domain.ErrInvalidRequest)

// Service runs a query through normalization, one ranking strategy and
// result assembly.
type Service struct {
	normalizer    Normalizer
	scorers       map[strategy.Strategy]Scorer
	records       RecordSource
	maxCandidates int
}

// New creates a search service. maxCandidates <= 0 selects DefaultMaxCandidates.
func New(
	normalizer Normalizer,
	scorers map[strategy.Strategy]Scorer,
	records RecordSource,
	maxCandidates int,
) *Service {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Service{
		normalizer:    normalizer,
		scorers:       scorers,
		records:       records,
		maxCandidates: maxCandidates,
	}
}

// Search ranks the corpus for req and returns one page of records.
// Time covers normalization, scoring and assembly.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	start := time.Now()
	strat := req.Strategy()
	ctx = logger.With(ctx, zap.String("strategy", string(strat)))

	scorer, ok := s.scorers[strat]
	if !ok {
		metrics.SearchRequestsTotal.WithLabelValues(string(strat), "error").Inc()
		return result.Page{}, fmt.Errorf("strategy %s: %w", strat, errStrategyNotConfigured)
	}

	keywords := s.normalizer.Normalize(req.Query(), req.Autocorrect())

	scores, err := scorer.Score(ctx, keywords)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(strat), "error").Inc()
		return result.Page{}, fmt.Errorf("%s search: %w", strat, err)
	}

	data, count := assemble(scores, s.records, req.Platform(), req.Page(), req.Limit(), s.maxCandidates)
	elapsed := time.Since(start)

	metrics.SearchRequestsTotal.WithLabelValues(string(strat), "ok").Inc()
	metrics.SearchDuration.WithLabelValues(string(strat)).Observe(elapsed.Seconds())
	metrics.SearchResultsCount.WithLabelValues(string(strat)).Observe(float64(count))

	logger.FromContext(ctx).Debug("Search completed",
		zap.Strings("keywords", keywords),
		zap.Int("scored", scores.Len()),
		zap.Int("count", count),
		zap.Duration("elapsed", elapsed),
	)

	return result.New(data, elapsed, count), nil
}

// Keywords exposes the normalization step, for diagnostics.
func (s *Service) Keywords(query string, autocorrect bool) []string {
	return s.normalizer.Normalize(query, autocorrect)
}
