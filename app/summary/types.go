package summary

import (
	"errors"
)

// ErrNoSentences is returned when the text contains no sentence boundary
// at all. Every other degenerate input still produces a usable summary.
var ErrNoSentences = errors.New("no sentence boundaries found")

// DefaultMaxSentences is the summary length cap used by the pipeline.
const DefaultMaxSentences = 2

// Result pairs the summary text with the method that produced it.
type Result struct {
	Text   string
	Method string
}

// Strategy scores tokenized sentences by salience. A strategy errors when
// it cannot build its model for the given input; the summarizer then falls
// through to the next strategy in the chain.
type Strategy interface {
	Name() string
	Rank(sentences [][]string) ([]float64, error)
}
