package dsaranker

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/dsaranker/internal/domain/document"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/request"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
)

// SearchBuilder is a fluent builder for search queries.
type SearchBuilder struct {
	client *Client

	strategy    Strategy
	query       string
	autocorrect bool
	platform    string
	page        int
	limit       int
}

// Search starts a query ranked by s.
func (c *Client) Search(s Strategy) *SearchBuilder {
	return &SearchBuilder{client: c, strategy: s}
}

// Query sets the free-text query.
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.query = q
	return b
}

// Autocorrect spell-corrects query words against the corpus vocabulary.
func (b *SearchBuilder) Autocorrect() *SearchBuilder {
	b.autocorrect = true
	return b
}

// Platform keeps only documents of one platform (case-insensitive).
func (b *SearchBuilder) Platform(p string) *SearchBuilder {
	b.platform = p
	return b
}

// Page selects the 1-based page. Default: 1.
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.page = n
	return b
}

// Limit sets the page size. Default: 10, max 50.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (SearchResult, error) {
	start := time.Now()
	res, err := b.do(ctx)
	b.client.obs.observe("search", b.strategy, start, err)
	return res, err
}

func (b *SearchBuilder) do(ctx context.Context) (SearchResult, error) {
	s, ok := strategy.Parse(string(b.strategy))
	if !ok {
		return SearchResult{}, fmt.Errorf("%w: unknown strategy %q", ErrInvalidRequest, b.strategy)
	}
	req, err := request.New(s, b.query, b.autocorrect, b.platform, b.page, b.limit)
	if err != nil {
		return SearchResult{}, err //nolint:wrapcheck // sentinel-wrapped validation error
	}

	page, err := b.client.engine.Search.Search(ctx, req)
	if err != nil {
		return SearchResult{}, err //nolint:wrapcheck // sentinel-wrapped by the service
	}

	data := page.Data()
	docs := make([]Document, len(data))
	for i := range data {
		docs[i] = toDocument(&data[i])
	}
	return SearchResult{Documents: docs, Count: page.Count(), Elapsed: page.Elapsed()}, nil
}

func toDocument(r *document.Record) Document {
	return Document{
		ID:          r.ID(),
		Title:       r.Title(),
		Description: r.Description(),
		Platform:    r.Platform(),
		Fields:      r.Extras(),
	}
}
