package summary

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/newslens/newslens/app/textutil"
)

// Methods reported in Result.Method beyond the strategy names.
const (
	MethodVerbatim = "verbatim"
	MethodLead     = "lead"
)

// Summarizer tries a fixed chain of extractive strategies and falls back
// to lead scoring when none of them can rank the text.
type Summarizer struct {
	strategies []Strategy
}

// NewSummarizer builds the default chain: TextRank, then LexRank, then LSA.
func NewSummarizer() *Summarizer {
	return &Summarizer{
		strategies: []Strategy{TextRank{}, LexRank{}, LSA{}},
	}
}

// Summarize picks the most salient sentences, re-ordered to document
// order. Texts at or under maxSentences sentences come back verbatim.
// It fails only when no sentence boundary exists at all.
func (s *Summarizer) Summarize(text string, maxSentences int) (Result, error) {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return Result{}, ErrNoSentences
	}
	if len(sentences) <= maxSentences {
		return Result{Text: strings.Join(sentences, " "), Method: MethodVerbatim}, nil
	}

	tokenized := make([][]string, len(sentences))
	for i, sentence := range sentences {
		tokenized[i] = textutil.RemoveStopwords(textutil.Tokenize(sentence))
	}

	for _, strategy := range s.strategies {
		scores, err := strategy.Rank(tokenized)
		if err != nil {
			slog.Debug("Summary strategy failed", "strategy", strategy.Name(), "error", err)
			continue
		}
		return Result{
			Text:   joinTop(sentences, scores, maxSentences),
			Method: strategy.Name(),
		}, nil
	}

	// Lead scoring cannot fail: early position plus a small length bonus.
	scores := make([]float64, len(sentences))
	for i, tokens := range tokenized {
		scores[i] = 1.0/float64(1+i) + 0.01*float64(len(tokens))
	}

	return Result{Text: joinTop(sentences, scores, maxSentences), Method: MethodLead}, nil
}

func joinTop(sentences []string, scores []float64, maxSentences int) string {
	indexes := topIndexes(scores, maxSentences)
	parts := make([]string, 0, len(indexes))
	for _, index := range indexes {
		parts = append(parts, sentences[index])
	}
	return strings.Join(parts, " ")
}

// topIndexes returns the positions of the highest-scoring sentences in
// document order. Score ties break toward the earlier sentence.
func topIndexes(scores []float64, count int) []int {
	indexes := make([]int, len(scores))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		if scores[indexes[a]] != scores[indexes[b]] {
			return scores[indexes[a]] > scores[indexes[b]]
		}
		return indexes[a] < indexes[b]
	})
	if count < len(indexes) {
		indexes = indexes[:count]
	}
	sort.Ints(indexes)

	return indexes
}
