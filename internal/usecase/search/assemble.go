package search

import (
	"slices"

	"github.com/kailas-cloud/dsaranker/internal/domain/document"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
)

// DefaultMaxCandidates caps the ranked list before pagination.
const DefaultMaxCandidates = 50

// assemble orders scored ids, filters them by platform, caps the list and
// cuts out one page. It returns the page and the size of the capped list.
func assemble(
	scores *score.Map, records RecordSource,
	platform string, page, limit, maxCandidates int,
) ([]document.Record, int) {
	ids := scores.IDs()
	slices.SortStableFunc(ids, func(a, b string) int {
		sa, _ := scores.Get(a)
		sb, _ := scores.Get(b)
		switch {
		case score.Before(sa, sb):
			return -1
		case score.Before(sb, sa):
			return 1
		default:
			return 0
		}
	})

	candidates := make([]document.Record, 0, min(len(ids), maxCandidates))
	for _, id := range ids {
		if len(candidates) == maxCandidates {
			break
		}
		rec, ok := records.Get(id)
		if !ok || !rec.MatchesPlatform(platform) {
			continue
		}
		candidates = append(candidates, rec)
	}

	return paginate(candidates, page, limit), len(candidates)
}

// paginate returns items [(page-1)*limit, page*limit), or nothing when out of range.
func paginate(items []document.Record, page, limit int) []document.Record {
	if page < 1 || limit < 1 || len(items) == 0 {
		return []document.Record{}
	}
	// compare before multiplying so huge pages cannot overflow
	if page-1 > (len(items)-1)/limit {
		return []document.Record{}
	}
	start := (page - 1) * limit
	end := start + min(limit, len(items)-start)
	return items[start:end]
}
