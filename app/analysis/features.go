package analysis

import (
	"github.com/newslens/newslens/app/textutil"
)

// MinWordCount is the smallest article, in whitespace-separated words, the
// extractor will accept. Shorter texts carry too little signal to classify.
const MinWordCount = 50

// FeatureVector is the per-article input to both classifiers. Weights and
// Counts are keyed by vocabulary index and only hold terms that occur.
type FeatureVector struct {
	Weights    map[int]float64
	Counts     map[int]int
	Stats      textutil.TextStats
	TokenCount int
}

// Extractor builds TF-IDF feature vectors against the trained vocabulary.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor creates an extractor bound to the model vocabulary.
func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Run extracts a feature vector from article text. It returns an
// InsufficientContentError when the text falls below MinWordCount.
func (e *Extractor) Run(text string) (*FeatureVector, error) {
	clean := textutil.CleanText(text)
	stats := textutil.ComputeStats(clean)
	if stats.WordCount < MinWordCount {
		return nil, &InsufficientContentError{WordCount: stats.WordCount, Minimum: MinWordCount}
	}

	tokens := textutil.RemoveStopwords(textutil.Tokenize(clean))
	if len(tokens) == 0 {
		return nil, &InsufficientContentError{WordCount: stats.WordCount, Minimum: MinWordCount}
	}

	counts := make(map[int]int)
	for _, token := range tokens {
		if index, ok := e.vocab.Index(token); ok {
			counts[index]++
		}
	}

	// Each weight depends only on its own count, so map iteration order
	// cannot change the result.
	weights := make(map[int]float64, len(counts))
	total := float64(len(tokens))
	for index, count := range counts {
		weights[index] = float64(count) / total * e.vocab.IDF(index)
	}

	return &FeatureVector{
		Weights:    weights,
		Counts:     counts,
		Stats:      stats,
		TokenCount: len(tokens),
	}, nil
}
