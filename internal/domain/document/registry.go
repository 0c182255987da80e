package document

import "sort"

// Registry maps document ids to records and remembers corpus order.
type Registry struct {
	order   []string
	records map[string]Record
}

// NewRegistry builds a registry. order lists ids in corpus order; ids missing
// from records are skipped.
func NewRegistry(order []string, records map[string]Record) *Registry {
	ids := make([]string, 0, len(order))
	for _, id := range order {
		if _, ok := records[id]; ok {
			ids = append(ids, id)
		}
	}
	return &Registry{order: ids, records: records}
}

// Get returns the record for id.
func (r *Registry) Get(id string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	rec, ok := r.records[id]
	return rec, ok
}

// Len returns the number of records.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// IDs returns document ids in corpus order. The slice must not be modified.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	return r.order
}

// Platforms returns the distinct platform tags, sorted.
func (r *Registry) Platforms() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, rec := range r.records {
		if rec.platform != "" {
			seen[rec.platform] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
