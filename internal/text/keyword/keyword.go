// Package keyword extracts salient keywords from text by dropping stop words.
package keyword

import (
	"strings"
	"unicode"
)

// English is the only language with a stop-word list.
const English = "english"

// Options controls extraction.
type Options struct {
	Language         string
	RemoveDigits     bool
	CaseFold         bool
	RemoveDuplicates bool
}

// DefaultOptions returns English extraction with digit removal and case folding.
func DefaultOptions() Options {
	return Options{Language: English, RemoveDigits: true, CaseFold: true}
}

// Extractor splits text on whitespace and filters stop words.
type Extractor struct {
	stopWords map[string]map[string]struct{}
}

// NewExtractor creates an Extractor with the built-in English stop words.
func NewExtractor() *Extractor {
	return &Extractor{
		stopWords: map[string]map[string]struct{}{English: englishStopWords},
	}
}

// Extract returns the keywords of text in order of appearance. Languages
// without a stop-word list keep every word.
func (e *Extractor) Extract(text string, opts Options) []string {
	stop := e.stopWords[strings.ToLower(opts.Language)]
	var (
		out  []string
		seen map[string]struct{}
	)
	if opts.RemoveDuplicates {
		seen = make(map[string]struct{})
	}
	for _, w := range strings.Fields(text) {
		if opts.CaseFold {
			w = strings.ToLower(w)
		}
		if opts.RemoveDigits {
			w = strings.Map(func(r rune) rune {
				if unicode.IsDigit(r) {
					return -1
				}
				return r
			}, w)
		}
		if w == "" {
			continue
		}
		if _, ok := stop[strings.ToLower(w)]; ok {
			continue
		}
		if seen != nil {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
		}
		out = append(out, w)
	}
	return out
}

var englishStopWords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "almost", "alone", "along",
	"already", "also", "although", "always", "am", "among", "an", "and", "another", "any",
	"anyone", "anything", "anywhere", "are", "aren't", "around", "as", "at", "b", "be",
	"became", "because", "become", "becomes", "been", "before", "behind", "being", "below",
	"between", "both", "but", "by", "c", "can", "cannot", "could", "couldn't", "d", "did",
	"didn't", "do", "does", "doesn't", "doing", "don't", "done", "down", "during", "e",
	"each", "either", "else", "enough", "etc", "even", "ever", "every", "f", "few", "for",
	"from", "further", "g", "get", "gets", "given", "gives", "go", "h", "had", "has",
	"hasn't", "have", "haven't", "having", "he", "her", "here", "hers", "herself", "him",
	"himself", "his", "how", "however", "i", "if", "in", "into", "is", "isn't", "it",
	"it's", "its", "itself", "j", "just", "k", "l", "least", "less", "let", "like",
	"likely", "m", "may", "me", "might", "more", "most", "much", "must", "my", "myself",
	"n", "neither", "never", "no", "nor", "not", "nothing", "now", "o", "of", "off",
	"often", "on", "once", "only", "or", "other", "others", "otherwise", "our", "ours",
	"ourselves", "out", "over", "own", "p", "per", "perhaps", "please", "q", "quite",
	"r", "rather", "really", "s", "said", "same", "say", "says", "see", "seem", "seemed",
	"seems", "several", "shall", "she", "should", "shouldn't", "since", "so", "some",
	"something", "sometimes", "somewhere", "still", "such", "t", "than", "that", "that's",
	"the", "their", "theirs", "them", "themselves", "then", "there", "therefore", "these",
	"they", "this", "those", "though", "through", "thus", "to", "too", "toward", "u",
	"under", "until", "up", "upon", "us", "v", "very", "via", "w", "was", "wasn't", "we",
	"well", "were", "weren't", "what", "whatever", "when", "whenever", "where", "whether",
	"which", "while", "who", "whoever", "whom", "whose", "why", "will", "with", "within",
	"without", "won't", "would", "wouldn't", "x", "y", "yet", "you", "your", "yours",
	"yourself", "yourselves", "z",
)

func toSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
