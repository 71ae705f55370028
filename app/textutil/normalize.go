package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanText collapses runs of whitespace into single spaces and drops
// control characters. The result preserves sentence punctuation so it can
// be fed to the sentence splitter.
func CleanText(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

// FoldDiacritics removes combining marks so accented words match their
// plain-ASCII vocabulary entries ("café" -> "cafe").
func FoldDiacritics(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		return text
	}
	return folded
}
