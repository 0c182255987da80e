package search

import (
	"math"
	"slices"
	"testing"

	"github.com/kailas-cloud/dsaranker/internal/domain/search/score"
)

func TestAssemble_OrdersByScore(t *testing.T) {
	scores := scoreMap(
		entry{"1", score.Of(0.1)},
		entry{"2", score.Of(2.5)},
		entry{"3", score.Of(1.0)},
	)
	data, count := assemble(scores, corpus(3), "all", 1, 10, 50)

	if got := recordIDs(data); !slices.Equal(got, []string{"2", "3", "1"}) {
		t.Errorf("order = %v, want [2 3 1]", got)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestAssemble_ZeroAndUndefinedLast(t *testing.T) {
	scores := scoreMap(
		entry{"1", score.Of(0)},
		entry{"2", score.Undefined()},
		entry{"3", score.Of(-0.2)},
		entry{"4", score.Of(0.7)},
		entry{"5", score.Of(0)},
	)
	data, _ := assemble(scores, corpus(5), "all", 1, 10, 50)

	// signal first by value, then the rest in input order
	if got := recordIDs(data); !slices.Equal(got, []string{"4", "3", "1", "2", "5"}) {
		t.Errorf("order = %v, want [4 3 1 2 5]", got)
	}
}

func TestAssemble_TiesKeepInputOrder(t *testing.T) {
	scores := scoreMap(
		entry{"3", score.Of(1)},
		entry{"1", score.Of(1)},
		entry{"2", score.Of(1)},
	)
	data, _ := assemble(scores, corpus(3), "all", 1, 10, 50)
	if got := recordIDs(data); !slices.Equal(got, []string{"3", "1", "2"}) {
		t.Errorf("order = %v, want [3 1 2]", got)
	}
}

func TestAssemble_PlatformFilter(t *testing.T) {
	data, count := assemble(descending(10), corpus(10), "LeetCode", 1, 50, 50)

	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}
	for i := range data {
		if data[i].Platform() != "leetcode" {
			t.Errorf("record %s has platform %q", data[i].ID(), data[i].Platform())
		}
	}
}

func TestAssemble_UnknownPlatform(t *testing.T) {
	data, count := assemble(descending(10), corpus(10), "codeforces", 1, 10, 50)
	if count != 0 || len(data) != 0 {
		t.Errorf("count=%d len=%d, want 0/0", count, len(data))
	}
	if data == nil {
		t.Error("data must be an empty slice, not nil")
	}
}

func TestAssemble_CapAfterFilter(t *testing.T) {
	// 120 docs, 60 on leetcode: the cap applies to the filtered list
	_, count := assemble(descending(120), corpus(120), "leetcode", 1, 10, 50)
	if count != 50 {
		t.Errorf("count = %d, want 50", count)
	}

	_, count = assemble(descending(120), corpus(120), "all", 1, 10, 50)
	if count != 50 {
		t.Errorf("count = %d, want 50", count)
	}

	_, count = assemble(descending(120), corpus(120), "all", 1, 10, 20)
	if count != 20 {
		t.Errorf("count with custom cap = %d, want 20", count)
	}
}

func TestAssemble_DropsUnknownIDs(t *testing.T) {
	scores := scoreMap(entry{"ghost", score.Of(9)}, entry{"1", score.Of(1)})
	data, count := assemble(scores, corpus(1), "all", 1, 10, 50)
	if count != 1 || data[0].ID() != "1" {
		t.Errorf("count=%d data=%v", count, recordIDs(data))
	}
}

func TestAssemble_PaginationLaw(t *testing.T) {
	const n, limit = 37, 10
	_, count := assemble(descending(n), corpus(n), "all", 1, n, 50)
	full, _ := assemble(descending(n), corpus(n), "all", 1, count, 50)
	fullIDs := recordIDs(full)

	for page := 1; page <= 5; page++ {
		data, c := assemble(descending(n), corpus(n), "all", page, limit, 50)
		if c != count {
			t.Errorf("page %d: count = %d, want %d", page, c, count)
		}
		start := min((page-1)*limit, count)
		end := min(page*limit, count)
		if got, want := recordIDs(data), fullIDs[start:end]; !slices.Equal(got, want) {
			t.Errorf("page %d = %v, want %v", page, got, want)
		}
	}
}

func TestAssemble_EmptyScores(t *testing.T) {
	data, count := assemble(score.NewMap(0), corpus(5), "all", 1, 10, 50)
	if count != 0 || len(data) != 0 {
		t.Errorf("count=%d len=%d", count, len(data))
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	items, _ := assemble(descending(3), corpus(3), "all", 1, 3, 50)
	if got := paginate(items, 2, 3); len(got) != 0 {
		t.Errorf("page 2 of 3 items = %v", recordIDs(got))
	}
	if got := paginate(items, 0, 3); len(got) != 0 {
		t.Errorf("page 0 = %v", recordIDs(got))
	}
}

func TestPaginate_HugeValuesDoNotOverflow(t *testing.T) {
	items, _ := assemble(descending(5), corpus(5), "all", 1, 5, 50)

	tests := []struct {
		name        string
		page, limit int
		want        int
	}{
		{"max page", math.MaxInt, 50, 0},
		{"max page and limit", math.MaxInt, math.MaxInt, 0},
		{"max limit first page", 1, math.MaxInt, 5},
		{"last partial page", 3, 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := paginate(items, tc.page, tc.limit); len(got) != tc.want {
				t.Errorf("paginate(page=%d, limit=%d) len = %d, want %d", tc.page, tc.limit, len(got), tc.want)
			}
		})
	}
}
