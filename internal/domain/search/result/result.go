package result

import (
	"time"

	"github.com/kailas-cloud/dsaranker/internal/domain/document"
)

// Page is one page of ranked documents.
type Page struct {
	data    []document.Record
	elapsed time.Duration
	count   int
}

// New creates a result page. count is the size of the ranked candidate list
// the page was cut from, not the page length.
func New(data []document.Record, elapsed time.Duration, count int) Page {
	if data == nil {
		data = []document.Record{}
	}
	return Page{data: data, elapsed: elapsed, count: count}
}

// Data returns the documents on this page, best first.
func (p *Page) Data() []document.Record { return p.data }

// Elapsed returns the wall-clock time spent ranking.
func (p *Page) Elapsed() time.Duration { return p.elapsed }

// TimeMillis returns Elapsed in fractional milliseconds.
func (p *Page) TimeMillis() float64 {
	return float64(p.elapsed) / float64(time.Millisecond)
}

// Count returns the total number of candidates across all pages.
func (p *Page) Count() int { return p.count }

// TotalPages returns the number of pages of size limit needed to show Count.
func (p *Page) TotalPages(limit int) int {
	if limit <= 0 || p.count == 0 {
		return 0
	}
	return (p.count + limit - 1) / limit
}
