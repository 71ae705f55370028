package analysis

import (
	"fmt"
	"math"
)

type featureKind int

const (
	featureTerm featureKind = iota
	featureStat
)

// Statistic features a stump may split on.
const (
	statExclamationDensity = "exclamation_density"
	statQuestionDensity    = "question_density"
	statCapsRatio          = "caps_ratio"
	statAvgWordLength      = "avg_word_length"
)

type stump struct {
	kind      featureKind
	index     int
	stat      string
	threshold float64
	below     float64
	above     float64
}

func (s stump) value(features *FeatureVector) float64 {
	if s.kind == featureTerm {
		return features.Weights[s.index]
	}
	switch s.stat {
	case statExclamationDensity:
		return features.Stats.ExclamationDensity
	case statQuestionDensity:
		return features.Stats.QuestionDensity
	case statCapsRatio:
		return features.Stats.CapsRatio
	case statAvgWordLength:
		return features.Stats.AvgWordLength
	}
	return 0
}

// CredibilityModel is an ensemble of decision stumps whose averaged leaf
// values estimate the probability that an article is high-credibility. The
// final score blends that probability with the source-reputation prior.
type CredibilityModel struct {
	modelWeight  float64
	sourceWeight float64
	stumps       []stump
}

func newCredibilityModel(spec credibilitySpec, vocab *Vocabulary) (*CredibilityModel, error) {
	if len(spec.Stumps) == 0 {
		return nil, &ModelUnavailableError{Reason: "credibility model has no stumps"}
	}
	if math.Abs(spec.ModelWeight+spec.SourceWeight-1) > 1e-9 {
		return nil, &ModelUnavailableError{Reason: fmt.Sprintf("credibility blend weights %v + %v do not sum to 1", spec.ModelWeight, spec.SourceWeight)}
	}
	if spec.ModelWeight <= 0 || spec.SourceWeight <= 0 {
		return nil, &ModelUnavailableError{Reason: "credibility blend weights must be positive"}
	}

	stumps := make([]stump, 0, len(spec.Stumps))
	for i, s := range spec.Stumps {
		if s.Below < 0 || s.Below > 1 || s.Above < 0 || s.Above > 1 {
			return nil, &ModelUnavailableError{Reason: fmt.Sprintf("stump %d has leaf values outside [0,1]", i)}
		}

		resolved := stump{threshold: s.Threshold, below: s.Below, above: s.Above}
		switch {
		case len(s.Feature) > 5 && s.Feature[:5] == "term:":
			term := s.Feature[5:]
			index, ok := vocab.Index(term)
			if !ok {
				return nil, &ModelUnavailableError{Reason: fmt.Sprintf("stump %d splits on unknown term %q", i, term)}
			}
			resolved.kind = featureTerm
			resolved.index = index
		case len(s.Feature) > 5 && s.Feature[:5] == "stat:":
			name := s.Feature[5:]
			switch name {
			case statExclamationDensity, statQuestionDensity, statCapsRatio, statAvgWordLength:
			default:
				return nil, &ModelUnavailableError{Reason: fmt.Sprintf("stump %d splits on unknown statistic %q", i, name)}
			}
			resolved.kind = featureStat
			resolved.stat = name
		default:
			return nil, &ModelUnavailableError{Reason: fmt.Sprintf("stump %d has malformed feature %q", i, s.Feature)}
		}

		stumps = append(stumps, resolved)
	}

	return &CredibilityModel{
		modelWeight:  spec.ModelWeight,
		sourceWeight: spec.SourceWeight,
		stumps:       stumps,
	}, nil
}

// Probability returns the raw model estimate in [0,1] from the feature
// vector alone, before the reputation blend.
func (m *CredibilityModel) Probability(features *FeatureVector) float64 {
	sum := 0.0
	for _, s := range m.stumps {
		if s.value(features) > s.threshold {
			sum += s.above
		} else {
			sum += s.below
		}
	}
	return sum / float64(len(m.stumps))
}

// Run blends the model probability with the source reputation and returns
// the final credibility score, rounded to one decimal and clamped to
// [0,100]. The result is never NaN.
func (m *CredibilityModel) Run(features *FeatureVector, reputationScore int) float64 {
	p := m.Probability(features)
	score := 100 * (m.modelWeight*p + m.sourceWeight*float64(reputationScore)/100)
	return clampScore(score)
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 50
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return math.Round(score*10) / 10
}
