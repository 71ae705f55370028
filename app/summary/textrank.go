package summary

import (
	"errors"
	"math"
)

const (
	textRankDamping    = 0.85
	textRankIterations = 30
)

// TextRank ranks sentences by weighted PageRank centrality over a word
// overlap similarity graph.
type TextRank struct{}

func (TextRank) Name() string { return "textrank" }

func (TextRank) Rank(sentences [][]string) ([]float64, error) {
	n := len(sentences)
	if n < 2 {
		return nil, errors.New("textrank: need at least two sentences")
	}

	sets := make([]map[string]bool, n)
	for i, tokens := range sentences {
		set := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			set[token] = true
		}
		sets[i] = set
	}

	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	edges := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			weight := overlapSimilarity(sets[i], sets[j], len(sentences[i]), len(sentences[j]))
			if weight > 0 {
				weights[i][j] = weight
				weights[j][i] = weight
				edges++
			}
		}
	}
	if edges == 0 {
		return nil, errors.New("textrank: similarity graph has no edges")
	}

	return powerIterate(weights, textRankDamping, textRankIterations), nil
}

func overlapSimilarity(a, b map[string]bool, lenA, lenB int) float64 {
	if lenA < 2 || lenB < 2 {
		return 0
	}
	shared := 0
	for token := range a {
		if b[token] {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / (math.Log(float64(lenA)) + math.Log(float64(lenB)))
}

// powerIterate runs damped PageRank over a symmetric weight matrix. All
// accumulation happens in fixed index order, keeping ranks reproducible.
func powerIterate(weights [][]float64, damping float64, iterations int) []float64 {
	n := len(weights)

	outSums := make([]float64, n)
	for i := range weights {
		sum := 0.0
		for j := range weights[i] {
			sum += weights[i][j]
		}
		outSums[i] = sum
	}

	ranks := make([]float64, n)
	for i := range ranks {
		ranks[i] = 1.0 / float64(n)
	}

	next := make([]float64, n)
	base := (1 - damping) / float64(n)
	for iter := 0; iter < iterations; iter++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if i == j || weights[j][i] == 0 || outSums[j] == 0 {
					continue
				}
				sum += ranks[j] * weights[j][i] / outSums[j]
			}
			next[i] = base + damping*sum
		}
		copy(ranks, next)
	}

	return ranks
}
