package textutil

import (
	"strings"
	"unicode"
)

// TextStats holds surface-level statistics used as classifier features.
type TextStats struct {
	WordCount          int
	SentenceCount      int
	CapsRatio          float64
	ExclamationDensity float64
	QuestionDensity    float64
	AvgWordLength      float64
}

// ComputeStats derives surface statistics from raw article text.
func ComputeStats(text string) TextStats {
	clean := CleanText(text)
	words := strings.Fields(clean)

	stats := TextStats{
		WordCount:     len(words),
		SentenceCount: len(SplitSentences(clean)),
	}
	if len(words) == 0 {
		return stats
	}

	capsWords := 0
	totalLetters := 0
	for _, word := range words {
		letters := 0
		uppers := 0
		for _, r := range word {
			if unicode.IsLetter(r) {
				letters++
				if unicode.IsUpper(r) {
					uppers++
				}
			}
		}
		totalLetters += letters
		if letters >= 2 && letters == uppers {
			capsWords++
		}
	}

	exclamations := strings.Count(clean, "!")
	questions := strings.Count(clean, "?")
	total := float64(len(words))

	stats.CapsRatio = float64(capsWords) / total
	stats.ExclamationDensity = float64(exclamations) / total
	stats.QuestionDensity = float64(questions) / total
	if totalLetters > 0 {
		stats.AvgWordLength = float64(totalLetters) / total
	}

	return stats
}
