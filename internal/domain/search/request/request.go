package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	"github.com/kailas-cloud/dsaranker/internal/domain/document"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultPage    = 1
	DefaultLimit   = 10
	MaxLimit       = 50
)

// Request is a validated search query.
type Request struct {
	strategy    strategy.Strategy
	query       string
	autocorrect bool
	platform    string
	page        int
	limit       int
}

// New validates and normalizes search parameters.
// An empty query is valid and ranks nothing. Defaults: page=1, limit=10,
// platform="all". Limit is clamped to MaxLimit.
func New(
	s strategy.Strategy,
	query string,
	autocorrect bool,
	platform string,
	page, limit int,
) (Request, error) {
	if !s.IsValid() {
		return Request{}, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidRequest, s)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if page < 0 {
		return Request{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidRequest, page)
	}
	if page == 0 {
		page = DefaultPage
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be >= 1, got %d", domain.ErrInvalidRequest, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	platform = strings.TrimSpace(platform)
	if platform == "" {
		platform = document.AllPlatforms
	}

	return Request{
		strategy:    s,
		query:       query,
		autocorrect: autocorrect,
		platform:    platform,
		page:        page,
		limit:       limit,
	}, nil
}

// Strategy returns the ranking strategy.
func (r *Request) Strategy() strategy.Strategy { return r.strategy }

// Query returns the raw search text.
func (r *Request) Query() string { return r.query }

// Autocorrect reports whether query words are spell-corrected.
func (r *Request) Autocorrect() bool { return r.autocorrect }

// Platform returns the platform filter ("all" disables filtering).
func (r *Request) Platform() string { return r.platform }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }
