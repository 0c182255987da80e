// Package index holds the precomputed lexical statistics the rankers read.
// Tables are built offline and never mutated after load.
package index

import (
	"maps"
	"slices"
)

// IDF maps a term to its inverse document frequency. Unknown terms weigh 0.
type IDF map[string]float64

// Weight returns the IDF of term, or 0 when the term is unknown.
func (f IDF) Weight(term string) float64 { return f[term] }

// Table is a sparse per-document term weight table (TF-IDF or BM25).
// Rows iterate in the order they appear in the source artifact; the terms of
// a row iterate in sorted order so floating-point sums are reproducible.
type Table struct {
	order []string
	rows  map[string]map[string]float64
	terms map[string][]string
}

// NewTable builds a table; order lists document ids in artifact order.
func NewTable(order []string, rows map[string]map[string]float64) *Table {
	ids := make([]string, 0, len(order))
	terms := make(map[string][]string, len(rows))
	for _, id := range order {
		row, ok := rows[id]
		if !ok {
			continue
		}
		if _, dup := terms[id]; dup {
			continue
		}
		ids = append(ids, id)
		terms[id] = slices.Sorted(maps.Keys(row))
	}
	return &Table{order: ids, rows: rows, terms: terms}
}

// Terms returns the terms of a document row in a fixed (sorted) order.
func (t *Table) Terms(id string) []string {
	if t == nil {
		return nil
	}
	return t.terms[id]
}

// Len returns the number of documents in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Row returns the term weights of a document.
func (t *Table) Row(id string) (map[string]float64, bool) {
	if t == nil {
		return nil, false
	}
	row, ok := t.rows[id]
	return row, ok
}

// Each calls fn for every document in artifact order.
func (t *Table) Each(fn func(id string, row map[string]float64)) {
	if t == nil {
		return
	}
	for _, id := range t.order {
		fn(id, t.rows[id])
	}
}

// Lexical bundles the three lexical tables.
type Lexical struct {
	IDF   IDF
	TFIDF *Table
	BM25  *Table
}

// Terms returns every term known to the IDF table.
func (l *Lexical) Terms() []string {
	terms := make([]string, 0, len(l.IDF))
	for t := range l.IDF {
		terms = append(terms, t)
	}
	return terms
}
