package corpus

import (
	"encoding/json"
	"strconv"

	domdoc "github.com/kailas-cloud/dsaranker/internal/domain/document"
)

// recordFromRaw converts one document registry entry into a domain Record.
// title, description and platform are lifted out; every other field is kept raw.
func recordFromRaw(id string, raw map[string]json.RawMessage) domdoc.Record {
	extra := make(map[string]json.RawMessage, len(raw))
	var title, description, platform string
	for k, v := range raw {
		switch k {
		case "title":
			title = rawString(v)
		case "description":
			description = rawString(v)
		case "platform":
			platform = rawString(v)
		default:
			extra[k] = v
		}
	}
	return domdoc.Reconstruct(id, title, description, platform, extra)
}

// rawString decodes a JSON string; numbers are rendered as text, anything else is empty.
func rawString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
