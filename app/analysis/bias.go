package analysis

import (
	"fmt"
	"math"
	"sort"
)

// biasClasses fixes the evaluation order of the three classes so float
// accumulation is identical across runs.
var biasClasses = []Bias{BiasLeft, BiasCenter, BiasRight}

const centerIndex = 1

// BiasModel is a generative three-class classifier. Per-term log
// likelihoods are expanded to dense per-index arrays at load time so
// classification is a single pass over the observed terms.
type BiasModel struct {
	epsilon   float64
	logPriors []float64
	logProbs  [][]float64
}

func newBiasModel(spec biasSpec, vocab *Vocabulary) (*BiasModel, error) {
	if spec.Epsilon <= 0 || spec.Epsilon >= 1 {
		return nil, &ModelUnavailableError{Reason: fmt.Sprintf("bias epsilon %v outside (0,1)", spec.Epsilon)}
	}
	if spec.DefaultLogProb >= 0 {
		return nil, &ModelUnavailableError{Reason: "bias default log probability must be negative"}
	}

	priorSum := 0.0
	for _, class := range biasClasses {
		prior, ok := spec.Priors[string(class)]
		if !ok {
			return nil, &ModelUnavailableError{Reason: fmt.Sprintf("bias model is missing a prior for %s", class)}
		}
		if prior <= 0 {
			return nil, &ModelUnavailableError{Reason: fmt.Sprintf("bias prior for %s must be positive", class)}
		}
		priorSum += prior
	}
	if math.Abs(priorSum-1) > 0.01 {
		return nil, &ModelUnavailableError{Reason: fmt.Sprintf("bias priors sum to %v, not 1", priorSum)}
	}

	model := &BiasModel{
		epsilon:   spec.Epsilon,
		logPriors: make([]float64, len(biasClasses)),
		logProbs:  make([][]float64, len(biasClasses)),
	}
	for c, class := range biasClasses {
		model.logPriors[c] = math.Log(spec.Priors[string(class)])

		probs := make([]float64, vocab.Size())
		for i := range probs {
			probs[i] = spec.DefaultLogProb
		}
		for term, logProb := range spec.Likelihoods[string(class)] {
			index, ok := vocab.Index(term)
			if !ok {
				return nil, &ModelUnavailableError{Reason: fmt.Sprintf("bias likelihood term %q is not in the vocabulary", term)}
			}
			if logProb >= 0 {
				return nil, &ModelUnavailableError{Reason: fmt.Sprintf("bias likelihood for %q must be negative", term)}
			}
			probs[index] = logProb
		}
		model.logProbs[c] = probs
	}

	return model, nil
}

// Run classifies a feature vector. Texts with no vocabulary hits default to
// Center at uniform confidence. When the top two posteriors sit within
// epsilon of each other the result also collapses to Center, reported with
// Center's own posterior, so ambiguous text never gets a partisan label.
func (m *BiasModel) Run(features *FeatureVector) BiasResult {
	indexes := make([]int, 0, len(features.Counts))
	total := 0
	for index, count := range features.Counts {
		indexes = append(indexes, index)
		total += count
	}
	if total == 0 {
		return BiasResult{
			Bias:       BiasCenter,
			Confidence: roundConfidence(1.0 / float64(len(biasClasses))),
		}
	}
	sort.Ints(indexes)

	// Length-normalized log likelihood keeps long and short articles on
	// the same scale before the priors are added.
	scores := make([]float64, len(biasClasses))
	for c := range biasClasses {
		sum := 0.0
		for _, index := range indexes {
			sum += float64(features.Counts[index]) * m.logProbs[c][index]
		}
		scores[c] = sum/float64(total) + m.logPriors[c]
	}

	posteriors := softmax(scores)

	best := 0
	for c := 1; c < len(posteriors); c++ {
		if posteriors[c] > posteriors[best] {
			best = c
		}
	}
	runnerUp := -1
	for c := range posteriors {
		if c == best {
			continue
		}
		if runnerUp == -1 || posteriors[c] > posteriors[runnerUp] {
			runnerUp = c
		}
	}

	if posteriors[best]-posteriors[runnerUp] < m.epsilon {
		return BiasResult{
			Bias:       BiasCenter,
			Confidence: roundConfidence(posteriors[centerIndex]),
		}
	}

	return BiasResult{
		Bias:       biasClasses[best],
		Confidence: roundConfidence(posteriors[best]),
	}
}

func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, score := range scores[1:] {
		if score > max {
			max = score
		}
	}

	out := make([]float64, len(scores))
	sum := 0.0
	for i, score := range scores {
		out[i] = math.Exp(score - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func roundConfidence(confidence float64) float64 {
	return math.Round(confidence*10000) / 10000
}
