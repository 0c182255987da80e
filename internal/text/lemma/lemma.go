// Package lemma reduces English words to noun, verb and adjective base forms.
//
// Forms come from a table of irregular words and from suffix-detachment rules
// whose candidates must appear in a known vocabulary. Without a vocabulary
// only the irregular table applies.
package lemma

import "strings"

type rule struct {
	suffix  string
	replace string
}

var (
	nounRules = []rule{
		{"ses", "s"}, {"xes", "x"}, {"zes", "z"}, {"ches", "ch"}, {"shes", "sh"},
		{"men", "man"}, {"ies", "y"}, {"s", ""},
	}
	verbRules = []rule{
		{"ies", "y"}, {"es", "e"}, {"es", ""}, {"s", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	}
	adjectiveRules = []rule{
		{"ier", "y"}, {"iest", "y"}, {"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	}
)

var nounExceptions = map[string]string{
	"children": "child", "men": "man", "women": "woman", "mice": "mouse",
	"feet": "foot", "teeth": "tooth", "geese": "goose", "people": "person",
	"indices": "index", "vertices": "vertex", "matrices": "matrix",
	"leaves": "leaf", "halves": "half", "knives": "knife", "lives": "life",
	"data": "datum", "criteria": "criterion", "analyses": "analysis",
}

var verbExceptions = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be",
	"did": "do", "done": "do", "does": "do", "had": "have", "has": "have",
	"ran": "run", "went": "go", "gone": "go", "made": "make", "found": "find",
	"built": "build", "got": "get", "took": "take", "taken": "take",
	"wrote": "write", "written": "write", "left": "leave", "kept": "keep",
	"held": "hold", "began": "begin", "begun": "begin", "chose": "choose",
	"chosen": "choose", "gave": "give", "given": "give", "knew": "know",
	"known": "know", "saw": "see", "seen": "see", "came": "come",
	"became": "become", "bought": "buy", "brought": "bring", "thought": "think",
	"taught": "teach", "caught": "catch", "led": "lead", "met": "meet",
	"sent": "send", "spent": "spend", "stood": "stand", "won": "win",
	"sold": "sell", "told": "tell", "paid": "pay", "said": "say", "laid": "lay",
	"sought": "seek", "fed": "feed", "fell": "fall", "flew": "fly", "grew": "grow",
}

var adjectiveExceptions = map[string]string{
	"better": "good", "best": "good", "worse": "bad", "worst": "bad",
	"less": "little", "least": "little", "more": "much", "most": "much",
	"further": "far", "farther": "far", "furthest": "far", "farthest": "far",
}

// Lemmatizer maps inflected words to base forms.
type Lemmatizer struct {
	vocab map[string]struct{}
}

// New creates a Lemmatizer validating rule output against vocab.
func New(vocab []string) *Lemmatizer {
	v := make(map[string]struct{}, len(vocab))
	for _, w := range vocab {
		v[w] = struct{}{}
	}
	return &Lemmatizer{vocab: v}
}

// Noun returns the singular noun form of word.
func (l *Lemmatizer) Noun(word string) string {
	return l.lemma(word, nounExceptions, nounRules)
}

// Verb returns the infinitive verb form of word.
func (l *Lemmatizer) Verb(word string) string {
	return l.lemma(word, verbExceptions, verbRules)
}

// Adjective returns the positive adjective form of word.
func (l *Lemmatizer) Adjective(word string) string {
	return l.lemma(word, adjectiveExceptions, adjectiveRules)
}

func (l *Lemmatizer) lemma(word string, exceptions map[string]string, rules []rule) string {
	if base, ok := exceptions[word]; ok {
		return base
	}
	for _, r := range rules {
		stem, ok := strings.CutSuffix(word, r.suffix)
		if !ok || stem == "" {
			continue
		}
		if cand := stem + r.replace; l.known(cand) {
			return cand
		}
		// running -> runn -> run, bigger -> bigg -> big
		if r.replace == "" && hasDoubledEnding(stem) {
			if cand := stem[:len(stem)-1]; l.known(cand) {
				return cand
			}
		}
	}
	return word
}

func (l *Lemmatizer) known(w string) bool {
	if len(w) < 2 {
		return false
	}
	_, ok := l.vocab[w]
	return ok
}

func hasDoubledEnding(s string) bool {
	n := len(s)
	return n >= 2 && s[n-1] == s[n-2] && !strings.ContainsRune("aeiou", rune(s[n-1]))
}
