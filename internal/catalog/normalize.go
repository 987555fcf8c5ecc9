package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize NFKC-normalizes text, lowercases it, and splits it on anything that
// is not a letter or digit.
func Tokenize(text string) []string {
	normed := strings.ToLower(norm.NFKC.String(text))
	return strings.FieldsFunc(normed, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
