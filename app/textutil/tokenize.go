package textutil

import (
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "against": true,
	"all": true, "an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "before": true,
	"being": true, "below": true, "between": true, "both": true, "but": true,
	"by": true, "can": true, "did": true, "do": true, "does": true, "doing": true,
	"down": true, "during": true, "each": true, "few": true, "for": true,
	"from": true, "further": true, "had": true, "has": true, "have": true,
	"having": true, "he": true, "her": true, "here": true, "him": true,
	"his": true, "how": true, "if": true, "in": true, "into": true, "is": true,
	"it": true, "its": true, "just": true, "more": true, "most": true,
	"my": true, "no": true, "nor": true, "not": true, "now": true, "of": true,
	"off": true, "on": true, "once": true, "only": true, "or": true,
	"other": true, "our": true, "out": true, "over": true, "own": true,
	"same": true, "she": true, "so": true, "some": true, "such": true,
	"than": true, "that": true, "the": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "through": true, "to": true, "too": true, "under": true,
	"until": true, "up": true, "very": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "who": true, "whom": true, "why": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}

// Tokenize lowercases the text, folds diacritics, and splits it into
// alphanumeric tokens of at least two characters. Apostrophes are removed
// before splitting so contractions stay single tokens ("don't" -> "dont").
func Tokenize(text string) []string {
	text = FoldDiacritics(strings.ToLower(text))
	text = strings.NewReplacer("'", "", "’", "").Replace(text)

	tokens := make([]string, 0, len(text)/6)
	var b strings.Builder
	flush := func() {
		if b.Len() >= 2 {
			tokens = append(tokens, b.String())
		}
		b.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// RemoveStopwords filters common English function words out of a token list.
func RemoveStopwords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !stopwords[token] {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

// IsStopword reports whether the token is in the stopword set.
func IsStopword(token string) bool {
	return stopwords[token]
}
