package document

import (
	"encoding/json"
	"maps"
	"strings"
)

// AllPlatforms is the platform filter value that matches every record.
const AllPlatforms = "all"

// Record is a corpus entry (immutable value object).
// Fields other than title, description and platform are carried opaquely in extra
// so the API returns records exactly as the corpus stores them.
type Record struct {
	id          string
	title       string
	description string
	platform    string
	extra       map[string]json.RawMessage
}

// Reconstruct creates a Record without validation (corpus hydration).
func Reconstruct(id, title, description, platform string, extra map[string]json.RawMessage) Record {
	return Record{
		id:          id,
		title:       title,
		description: description,
		platform:    platform,
		extra:       extra,
	}
}

// ID returns the document identifier.
func (r *Record) ID() string { return r.id }

// Title returns the document title.
func (r *Record) Title() string { return r.title }

// Description returns the document description.
func (r *Record) Description() string { return r.description }

// Platform returns the platform tag as stored in the corpus.
func (r *Record) Platform() string { return r.platform }

// Extra returns a raw corpus field not modelled explicitly.
func (r *Record) Extra(key string) (json.RawMessage, bool) {
	v, ok := r.extra[key]
	return v, ok
}

// Extras returns a copy of every raw corpus field not modelled explicitly.
func (r *Record) Extras() map[string]json.RawMessage {
	return maps.Clone(r.extra)
}

// MatchesPlatform reports whether the record passes a platform filter.
// "all" matches everything; any other value is compared case-insensitively.
func (r *Record) MatchesPlatform(filter string) bool {
	if filter == AllPlatforms {
		return true
	}
	return strings.EqualFold(r.platform, filter)
}

// EmbeddingText is the representative text vectorized for the record.
func (r *Record) EmbeddingText() string {
	return strings.ToLower(r.title + " " + r.description)
}

// MarshalJSON writes the record with its extra fields merged in.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.extra)+4)
	for k, v := range r.extra {
		out[k] = v
	}
	fields := map[string]string{
		"title":       r.title,
		"description": r.description,
		"platform":    r.platform,
	}
	// corpus ids may be numeric; keep the stored representation when present
	if _, ok := out["id"]; !ok {
		fields["id"] = r.id
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err //nolint:wrapcheck // string marshaling cannot fail
		}
		out[k] = raw
	}
	return json.Marshal(out) //nolint:wrapcheck // plain map of raw messages
}
