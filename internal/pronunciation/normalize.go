package pronunciation

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it on any run of whitespace or
// punctuation. Empty fragments are dropped.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isSeparator)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}
