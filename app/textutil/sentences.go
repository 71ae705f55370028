package textutil

import (
	"strings"
	"unicode"
)

// Common abbreviations whose trailing period does not end a sentence.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"sen": true, "rep": true, "gov": true, "gen": true, "col": true,
	"lt": true, "sgt": true, "st": true, "jr": true, "sr": true,
	"inc": true, "ltd": true, "corp": true, "co": true, "vs": true,
	"etc": true, "approx": true, "dept": true, "est": true, "no": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "sept": true, "oct": true,
	"nov": true, "dec": true,
}

// SplitSentences splits cleaned text into sentences on terminal punctuation.
// Periods after abbreviations, single-letter initials, and digits followed
// by digits are not boundaries. A trailing unterminated fragment of at least
// two words is kept only when a terminated sentence precedes it; text with
// no terminator at all yields no sentences.
func SplitSentences(text string) []string {
	clean := CleanText(text)
	if clean == "" {
		return nil
	}

	runes := []rune(clean)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			i++
			continue
		}

		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}
		for end+1 < len(runes) && isCloser(runes[end+1]) {
			end++
		}

		if r == '.' && end == i && !isBoundary(runes, i, end) {
			i++
			continue
		}

		sentence := strings.TrimSpace(string(runes[start : end+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end + 1
		i = end + 1
	}

	rest := strings.TrimSpace(string(runes[start:]))
	if rest != "" && len(sentences) > 0 && len(strings.Fields(rest)) >= 2 {
		sentences = append(sentences, rest)
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	return r == '"' || r == '\'' || r == '”' || r == '’' || r == ')' || r == ']'
}

func isBoundary(runes []rune, dot, end int) bool {
	// Decimal numbers: digit on both sides of the period.
	if dot > 0 && dot+1 < len(runes) && unicode.IsDigit(runes[dot-1]) && unicode.IsDigit(runes[dot+1]) {
		return false
	}

	// Word immediately before the period.
	w := dot
	for w > 0 && unicode.IsLetter(runes[w-1]) {
		w--
	}
	word := strings.ToLower(string(runes[w:dot]))
	if len(word) == 1 {
		return false
	}
	if abbreviations[word] {
		return false
	}

	// A following lowercase letter means the sentence continues.
	for j := end + 1; j < len(runes); j++ {
		r := runes[j]
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.IsLetter(r) {
			return unicode.IsUpper(r)
		}
		return true
	}

	return true
}
