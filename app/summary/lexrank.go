package summary

import (
	"errors"
	"math"
	"sort"
)

const (
	lexRankThreshold  = 0.1
	lexRankDamping    = 0.85
	lexRankIterations = 30
)

// LexRank ranks sentences by centrality over a TF-IDF cosine similarity
// graph, keeping only edges above a fixed similarity threshold.
type LexRank struct{}

func (LexRank) Name() string { return "lexrank" }

func (LexRank) Rank(sentences [][]string) ([]float64, error) {
	n := len(sentences)
	if n < 2 {
		return nil, errors.New("lexrank: need at least two sentences")
	}

	vectors := tfidfVectors(sentences)

	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	edges := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cosine(vectors[i], vectors[j]) > lexRankThreshold {
				weights[i][j] = 1
				weights[j][i] = 1
				edges++
			}
		}
	}
	if edges == 0 {
		return nil, errors.New("lexrank: no sentence pair clears the similarity threshold")
	}

	return powerIterate(weights, lexRankDamping, lexRankIterations), nil
}

type termWeight struct {
	term   string
	weight float64
}

// tfidfVectors builds one sorted sparse vector per sentence, with document
// frequency computed over the sentences themselves.
func tfidfVectors(sentences [][]string) [][]termWeight {
	n := len(sentences)

	df := make(map[string]int)
	counts := make([]map[string]int, n)
	for i, tokens := range sentences {
		count := make(map[string]int, len(tokens))
		for _, token := range tokens {
			count[token]++
		}
		counts[i] = count
		for term := range count {
			df[term]++
		}
	}

	vectors := make([][]termWeight, n)
	for i, count := range counts {
		if len(sentences[i]) == 0 {
			vectors[i] = nil
			continue
		}

		terms := make([]string, 0, len(count))
		for term := range count {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		vector := make([]termWeight, 0, len(terms))
		for _, term := range terms {
			tf := float64(count[term]) / float64(len(sentences[i]))
			idf := math.Log(float64(n)/float64(df[term])) + 1
			vector = append(vector, termWeight{term: term, weight: tf * idf})
		}
		vectors[i] = vector
	}

	return vectors
}

// cosine merge-joins two term-sorted vectors.
func cosine(a, b []termWeight) float64 {
	dot := 0.0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term == b[j].term:
			dot += a[i].weight * b[j].weight
			i++
			j++
		case a[i].term < b[j].term:
			i++
		default:
			j++
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (vectorNorm(a) * vectorNorm(b))
}

func vectorNorm(v []termWeight) float64 {
	sum := 0.0
	for _, tw := range v {
		sum += tw.weight * tw.weight
	}
	return math.Sqrt(sum)
}
