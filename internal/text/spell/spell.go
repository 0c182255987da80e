// Package spell implements dictionary-based spelling correction using the
// symmetric delete algorithm: every dictionary word is indexed under all of
// its deletions up to MaxDistance, so candidate lookup for a misspelled word
// only needs the deletions of the query itself.
package spell

import (
	"math"
	"sort"
	"sync"
	"unicode"
)

// DefaultMaxDistance is the largest edit distance a correction may span.
const DefaultMaxDistance = 2

// minWordLength is the shortest word considered for correction.
const minWordLength = 3

// Corrector suggests the most likely dictionary word for a misspelling.
type Corrector struct {
	mu          sync.RWMutex
	maxDistance int
	freq        map[string]float64
	deletes     map[string]map[string]struct{}
	// longest is the byte length of the longest dictionary word.
	longest int
}

// New creates a Corrector; maxDistance <= 0 selects DefaultMaxDistance.
func New(maxDistance int) *Corrector {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Corrector{
		maxDistance: maxDistance,
		freq:        make(map[string]float64),
		deletes:     make(map[string]map[string]struct{}),
	}
}

// FromIDF builds a Corrector whose vocabulary is the IDF table. A term's
// likelihood is exp(-idf), the fraction of documents that contain it.
func FromIDF(idf map[string]float64, maxDistance int) *Corrector {
	c := New(maxDistance)
	for term, w := range idf {
		c.AddWord(term, math.Exp(-w))
	}
	return c
}

// AddWord indexes word with a relative frequency. Re-adding keeps the higher frequency.
func (c *Corrector) AddWord(word string, freq float64) {
	if word == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.freq[word]; ok {
		if freq > old {
			c.freq[word] = freq
		}
		return
	}
	c.freq[word] = freq
	c.longest = max(c.longest, len(word))
	for del := range deletions(word, c.maxDistance) {
		set, ok := c.deletes[del]
		if !ok {
			set = make(map[string]struct{})
			c.deletes[del] = set
		}
		set[word] = struct{}{}
	}
}

// LoadDictionary adds words with a neutral frequency.
func (c *Corrector) LoadDictionary(words []string) {
	for _, w := range words {
		c.AddWord(w, 0)
	}
}

// Len returns the vocabulary size.
func (c *Corrector) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.freq)
}

// Correct returns the closest dictionary word, preferring smaller edit
// distance, then higher frequency, then lexical order. Known words, short
// words, words with digits, words longer than any dictionary word by more than
// the max distance, and words without candidates are returned unchanged.
func (c *Corrector) Correct(word string) string {
	if len(word) < minWordLength || hasDigit(word) {
		return word
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.freq[word]; ok {
		return word
	}
	// out of reach of every dictionary word; deletions would grow quadratically
	if len(word) > c.longest+c.maxDistance {
		return word
	}

	type candidate struct {
		word string
		dist int
		freq float64
	}
	seen := make(map[string]struct{})
	var cands []candidate
	for del := range deletions(word, c.maxDistance) {
		for w := range c.deletes[del] {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			if d := levenshtein(word, w); d <= c.maxDistance {
				cands = append(cands, candidate{word: w, dist: d, freq: c.freq[w]})
			}
		}
	}
	if len(cands) == 0 {
		return word
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		if cands[i].freq != cands[j].freq {
			return cands[i].freq > cands[j].freq
		}
		return cands[i].word < cands[j].word
	})
	return cands[0].word
}

// deletions returns word and every string reachable by removing up to n bytes.
func deletions(word string, n int) map[string]struct{} {
	out := map[string]struct{}{word: {}}
	frontier := []string{word}
	for d := 0; d < n; d++ {
		var next []string
		for _, w := range frontier {
			for i := 0; i < len(w); i++ {
				del := w[:i] + w[i+1:]
				if _, ok := out[del]; ok {
					continue
				}
				out[del] = struct{}{}
				next = append(next, del)
			}
		}
		frontier = next
	}
	return out
}

// levenshtein calculates the edit distance between two strings.
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
