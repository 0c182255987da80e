// Package text turns raw query strings into keyword sequences.
//
// Normalization strips ASCII punctuation, optionally spell-corrects each
// word, expands it with its noun, adjective and verb lemmas, and finally
// extracts keywords (stop words and digits removed, case folded).
package text

import (
	"strings"

	"github.com/kailas-cloud/dsaranker/internal/text/keyword"
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// SpellCorrector suggests a corrected form of a word.
type SpellCorrector interface {
	Correct(word string) string
}

// Lemmatizer reduces a word to its base forms.
type Lemmatizer interface {
	Noun(word string) string
	Adjective(word string) string
	Verb(word string) string
}

// KeywordExtractor filters a text down to its keywords.
type KeywordExtractor interface {
	Extract(text string, opts keyword.Options) []string
}

// Normalizer is a pure function of (query, autocorrect) built from pluggable capabilities.
type Normalizer struct {
	speller  SpellCorrector
	lemmas   Lemmatizer
	keywords KeywordExtractor
	opts     keyword.Options
}

// NewNormalizer creates a Normalizer. speller may be nil, which disables autocorrection.
func NewNormalizer(speller SpellCorrector, lemmas Lemmatizer, keywords KeywordExtractor) *Normalizer {
	return &Normalizer{
		speller:  speller,
		lemmas:   lemmas,
		keywords: keywords,
		opts:     keyword.DefaultOptions(),
	}
}

// WithKeywordOptions overrides the extraction options.
func (n *Normalizer) WithKeywordOptions(opts keyword.Options) *Normalizer {
	n.opts = opts
	return n
}

// Normalize returns the keyword sequence of raw. The order of keywords does
// not carry weight; duplicates are preserved and count.
func (n *Normalizer) Normalize(raw string, autocorrect bool) []string {
	return n.keywords.Extract(n.Expand(raw, autocorrect), n.opts)
}

// Expand lower-cases raw, strips punctuation, optionally corrects each word and
// replaces it with the word plus its distinct lemma forms, joined by spaces.
func (n *Normalizer) Expand(raw string, autocorrect bool) string {
	words := strings.Fields(StripPunctuation(strings.ToLower(raw)))
	forms := make([]string, 0, len(words)*2)
	for _, w := range words {
		if autocorrect && n.speller != nil {
			w = n.speller.Correct(w)
		}
		forms = appendUnique(forms, w,
			n.lemmas.Noun(w),
			n.lemmas.Adjective(w),
			n.lemmas.Verb(w),
		)
	}
	return strings.Join(forms, " ")
}

// StripPunctuation replaces every ASCII punctuation character with a space.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return r
	}, s)
}

// appendUnique appends the distinct values of forms to dst. Uniqueness is per word.
func appendUnique(dst []string, forms ...string) []string {
	start := len(dst)
	for _, f := range forms {
		dup := false
		for _, have := range dst[start:] {
			if have == f {
				dup = true
				break
			}
		}
		if !dup && f != "" {
			dst = append(dst, f)
		}
	}
	return dst
}
