package summary

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const lsaTopics = 2

// LSA ranks sentences by the strength of their projection onto the leading
// singular vectors of the term-sentence count matrix.
type LSA struct{}

func (LSA) Name() string { return "lsa" }

func (LSA) Rank(sentences [][]string) ([]float64, error) {
	n := len(sentences)
	if n < 2 {
		return nil, errors.New("lsa: need at least two sentences")
	}

	seen := make(map[string]bool)
	for _, tokens := range sentences {
		for _, token := range tokens {
			seen[token] = true
		}
	}
	if len(seen) == 0 {
		return nil, errors.New("lsa: no terms to factorize")
	}

	ordered := make([]string, 0, len(seen))
	for term := range seen {
		ordered = append(ordered, term)
	}
	sort.Strings(ordered)

	rows := make(map[string]int, len(ordered))
	for i, term := range ordered {
		rows[term] = i
	}

	matrix := mat.NewDense(len(ordered), n, nil)
	for j, tokens := range sentences {
		for _, token := range tokens {
			i := rows[token]
			matrix.Set(i, j, matrix.At(i, j)+1)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(matrix, mat.SVDThin); !ok {
		return nil, errors.New("lsa: factorization did not converge")
	}

	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	topics := lsaTopics
	if len(values) < topics {
		topics = len(values)
	}

	scores := make([]float64, n)
	for j := 0; j < n; j++ {
		sum := 0.0
		for k := 0; k < topics; k++ {
			weighted := values[k] * v.At(j, k)
			sum += weighted * weighted
		}
		scores[j] = math.Sqrt(sum)
	}

	return scores, nil
}
