package pronunciation

import (
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Distance is the Levenshtein edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	return matchr.Levenshtein(a, b)
}

// SimilarityRatio returns 1 - distance/max(len(a), len(b)). Two empty words
// are identical.
func SimilarityRatio(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(maxLen)
}

// SoundsAlike reports whether the Double Metaphone codes of a and b overlap.
func SoundsAlike(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)
	for _, x := range []string{ap, as} {
		if x == "" {
			continue
		}
		if x == bp || x == bs {
			return true
		}
	}
	return false
}
