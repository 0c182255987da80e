package text

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/dsaranker/internal/text/keyword"
	"github.com/kailas-cloud/dsaranker/internal/text/lemma"
	"github.com/kailas-cloud/dsaranker/internal/text/spell"
)

type stubSpeller map[string]string

func (s stubSpeller) Correct(w string) string {
	if c, ok := s[w]; ok {
		return c
	}
	return w
}

func newTestNormalizer(speller SpellCorrector) *Normalizer {
	lem := lemma.New([]string{"array", "sum", "sort", "tree", "number"})
	return NewNormalizer(speller, lem, keyword.NewExtractor())
}

func TestStripPunctuation(t *testing.T) {
	got := StripPunctuation(`two-sum, (array)! a_b`)
	want := "two sum   array   a b"
	if got != want {
		t.Errorf("StripPunctuation() = %q, want %q", got, want)
	}
}

func TestNormalize_Basic(t *testing.T) {
	n := newTestNormalizer(nil)
	got := n.Normalize("two sum array", false)
	want := []string{"two", "sum", "array"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_LemmaExpansion(t *testing.T) {
	n := newTestNormalizer(nil)
	got := n.Normalize("Sorting Arrays", false)
	want := []string{"sorting", "sort", "arrays", "array"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_DuplicatesAcrossWordsKept(t *testing.T) {
	n := newTestNormalizer(nil)
	got := n.Normalize("tree trees", false)
	want := []string{"tree", "trees", "tree"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_Autocorrect(t *testing.T) {
	n := newTestNormalizer(stubSpeller{"arrey": "array"})

	if got := n.Normalize("arrey", true); !reflect.DeepEqual(got, []string{"array"}) {
		t.Errorf("Normalize(autocorrect) = %v, want [array]", got)
	}
	if got := n.Normalize("arrey", false); !reflect.DeepEqual(got, []string{"arrey"}) {
		t.Errorf("Normalize(no autocorrect) = %v, want [arrey]", got)
	}
}

func TestNormalize_WithSymSpell(t *testing.T) {
	sp := spell.FromIDF(map[string]float64{"array": 1, "sum": 1}, 2)
	n := newTestNormalizer(sp)
	got := n.Normalize("arary summ", true)
	want := []string{"array", "sum"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_EmptyAndPunctuationOnly(t *testing.T) {
	n := newTestNormalizer(nil)
	for _, in := range []string{"", "   ", "?!...", "the of and"} {
		if got := n.Normalize(in, true); len(got) != 0 {
			t.Errorf("Normalize(%q) = %v, want empty", in, got)
		}
	}
}
