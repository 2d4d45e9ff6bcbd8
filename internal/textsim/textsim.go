package textsim

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// DefaultLengthRatioFloor rejects string pairs whose normalized lengths
// differ by more than this ratio before any distance is computed.
const DefaultLengthRatioFloor = 0.85

// Options selects scoring behavior. The zero value is not valid; use
// DefaultOptions.
type Options struct {
	// LengthRatioFloor is the minimum min/max length ratio for two
	// strings to be considered candidates at all.
	LengthRatioFloor float64
	// Positional switches the distance measure from full Levenshtein to
	// a positional mismatch count. The two diverge on insertion and
	// deletion errors; positional is cheaper and stricter.
	Positional bool
}

// DefaultOptions returns the scoring options used across the pipeline.
func DefaultOptions() Options {
	return Options{LengthRatioFloor: DefaultLengthRatioFloor}
}

// strippedPunct is removed entirely during normalization. Terminal
// punctuation like ! and ? is kept: it carries meaning OCR rarely invents.
const strippedPunct = "。、．，.,・‥…「」『』"

// confusionRunes canonicalizes single characters the upstream OCR engines
// are known to confuse. Pairs are symmetric: both members map to one
// canonical form, so applying the table to both strings makes confused
// pairs compare equal.
var confusionRunes = map[rune]rune{
	'0': 'o', // digit zero / latin o
	'l': '1', // latin l / digit one
	'口': 'ロ', // kanji mouth / katakana ro
	'コ': 'ニ', // katakana ko / katakana ni
}

// confusionPairs canonicalizes multi-rune confusions: full-size ya/yu/yo
// after shi/chi where the OCR missed the small kana.
var confusionPairs = [...]struct{ from, to string }{
	{"シヤ", "シャ"},
	{"シユ", "シュ"},
	{"シヨ", "ショ"},
	{"チヤ", "チャ"},
	{"チユ", "チュ"},
	{"チヨ", "チョ"},
}

// Normalize folds a string for comparison: width variants to narrow,
// lowercase, all whitespace removed, sentence punctuation stripped.
func Normalize(s string) string {
	folded := width.Fold.String(s)
	folded = strings.ToLower(folded)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) || strings.ContainsRune(strippedPunct, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// canonicalize applies the OCR-confusion table to a normalized string.
func canonicalize(s string) string {
	for _, pair := range confusionPairs {
		s = strings.ReplaceAll(s, pair.from, pair.to)
	}
	return strings.Map(func(r rune) rune {
		if canonical, ok := confusionRunes[r]; ok {
			return canonical
		}
		return r
	}, s)
}

// Score returns the similarity of a and b in [0, 1]. It is symmetric and
// pure. Exact matches, matches after normalization, and matches after
// OCR-confusion canonicalization all score 1. Pairs failing the length
// ratio guard score 0; everything else is scored by distance.
func Score(a, b string, opts Options) float64 {
	if a == b {
		return 1
	}

	normA := Normalize(a)
	normB := Normalize(b)
	if normA == normB {
		// Covers both-empty as well.
		return 1
	}
	if normA == "" || normB == "" {
		return 0
	}

	canonA := []rune(canonicalize(normA))
	canonB := []rune(canonicalize(normB))
	if string(canonA) == string(canonB) {
		return 1
	}

	shorter, longer := len(canonA), len(canonB)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	floor := opts.LengthRatioFloor
	if floor <= 0 {
		floor = DefaultLengthRatioFloor
	}
	if float64(shorter)/float64(longer) < floor {
		return 0
	}

	var distance int
	if opts.Positional {
		distance = positionalMismatch(canonA, canonB)
	} else {
		distance = levenshtein(canonA, canonB)
	}
	return 1 - float64(distance)/float64(longer)
}

// positionalMismatch counts differing runes at aligned positions; the
// unpaired tail of the longer string counts as mismatched.
func positionalMismatch(a, b []rune) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	mismatch := len(b) - len(a)
	for i := range a {
		if a[i] != b[i] {
			mismatch++
		}
	}
	return mismatch
}

// levenshtein computes unit-cost edit distance with the two-row method.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ra := range a {
		curr[0] = i + 1
		for j, rb := range b {
			cost := 0
			if ra != rb {
				cost = 1
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
