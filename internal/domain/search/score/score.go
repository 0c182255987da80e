// Package score models relevance scores produced by the rankers.
//
// A Score is either a defined finite number or undefined. Cosine similarity
// against a zero-norm vector is undefined rather than NaN, and rankings place
// undefined and zero scores after every non-zero score.
package score

import "math"

// Score is an optional relevance value.
type Score struct {
	value   float64
	defined bool
}

// Of wraps v. NaN and infinities become Undefined.
func Of(v float64) Score {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined()
	}
	return Score{value: v, defined: true}
}

// Undefined returns the score of a document that cannot be compared.
func Undefined() Score { return Score{} }

// Value returns the numeric score and whether it is defined.
func (s Score) Value() (float64, bool) { return s.value, s.defined }

// Float returns the score, or 0 when undefined.
func (s Score) Float() float64 { return s.value }

// Signal reports whether the score carries ranking signal: defined and non-zero.
func (s Score) Signal() bool { return s.defined && s.value != 0 }

// Cosine computes dot/(sqrt(sqA)*sqrt(sqB)); Undefined when either norm is zero.
func Cosine(dot, sqA, sqB float64) Score {
	if sqA <= 0 || sqB <= 0 {
		return Undefined()
	}
	return Similarity(dot / (math.Sqrt(sqA) * math.Sqrt(sqB)))
}

// Similarity wraps a cosine value, clamping rounding drift into [-1, 1].
func Similarity(v float64) Score {
	s := Of(v)
	if s.defined {
		s.value = math.Max(-1, math.Min(1, s.value))
	}
	return s
}

// Before reports whether a ranks strictly ahead of b: any score with signal
// precedes one without; among scores with signal the higher value wins.
// Scores without signal are mutually unordered, so a stable sort keeps their input order.
func Before(a, b Score) bool {
	if !a.Signal() {
		return false
	}
	if !b.Signal() {
		return true
	}
	return a.value > b.value
}

// Map is an insertion-ordered map of document id to score.
type Map struct {
	order  []string
	values map[string]Score
}

// NewMap creates an empty map with room for n entries.
func NewMap(n int) *Map {
	return &Map{
		order:  make([]string, 0, n),
		values: make(map[string]Score, n),
	}
}

// Set stores s for id. New ids are appended to the iteration order.
func (m *Map) Set(id string, s Score) {
	if _, ok := m.values[id]; !ok {
		m.order = append(m.order, id)
	}
	m.values[id] = s
}

// Get returns the score for id.
func (m *Map) Get(id string) (Score, bool) {
	if m == nil {
		return Undefined(), false
	}
	s, ok := m.values[id]
	return s, ok
}

// Len returns the number of scored documents.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// IDs returns a copy of the ids in insertion order.
func (m *Map) IDs() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
