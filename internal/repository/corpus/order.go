package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// decodeObject streams a top-level JSON object, calling fn for each member in
// file order, and returns the keys in that order.
func decodeObject[T any](r io.Reader, fn func(key string, v T)) ([]string, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read opening token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		var v T
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		keys = append(keys, key)
		fn(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read closing token: %w", err)
	}
	return dedupe(keys), nil
}

// iterationOrder reorders object keys the way the index builder's runtime
// enumerates them: array-index keys ascending first, then the remaining keys
// in insertion order.
func iterationOrder(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	sort.SliceStable(out, func(i, j int) bool {
		ni, iIdx := arrayIndex(out[i])
		nj, jIdx := arrayIndex(out[j])
		switch {
		case iIdx && jIdx:
			return ni < nj
		case iIdx:
			return true
		default:
			return false
		}
	})
	return out
}

// arrayIndex reports whether key is a canonical non-negative 32-bit integer.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}

// dedupe keeps the first position of repeated keys; the last value wins in the maps.
func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
