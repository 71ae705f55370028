package analysis

import (
	"math"
	"testing"

	"github.com/newslens/newslens/app/textutil"
)

// vectorFromTerms builds a feature vector directly from term counts so the
// classifier tests do not depend on tokenization details.
func vectorFromTerms(t *testing.T, vocab *Vocabulary, counts map[string]int) *FeatureVector {
	t.Helper()

	total := 0
	for _, n := range counts {
		total += n
	}

	features := &FeatureVector{
		Weights:    make(map[int]float64, len(counts)),
		Counts:     make(map[int]int, len(counts)),
		TokenCount: total,
	}
	for term, n := range counts {
		index, ok := vocab.Index(term)
		if !ok {
			t.Fatalf("term %q is not in the vocabulary", term)
		}
		features.Counts[index] = n
		features.Weights[index] = float64(n) / float64(total) * vocab.IDF(index)
	}
	return features
}

var institutionalTerms = map[string]int{
	"according": 1,
	"said":      1,
	"officials": 1,
	"data":      1,
	"percent":   1,
	"study":     1,
	"sources":   1,
	"evidence":  1,
}

var clickbaitTerms = map[string]int{
	"shocking":     1,
	"unbelievable": 1,
	"secret":       1,
	"miracle":      1,
}

func TestCredibilityProbability(t *testing.T) {
	models := loadTestModels(t)

	tests := []struct {
		name     string
		features *FeatureVector
		want     float64
	}{
		{
			name:     "institutional language scores high",
			features: vectorFromTerms(t, models.Vocabulary, institutionalTerms),
			want:     0.81,
		},
		{
			name: "clickbait language scores low",
			features: func() *FeatureVector {
				v := vectorFromTerms(t, models.Vocabulary, clickbaitTerms)
				v.Stats = textutil.TextStats{ExclamationDensity: 0.05, CapsRatio: 0.3}
				return v
			}(),
			want: 4.5 / 14.0,
		},
		{
			name:     "no signal lands in the middle",
			features: &FeatureVector{Weights: map[int]float64{}, Counts: map[int]int{}},
			want:     8.62 / 14.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.Credibility.Probability(tt.features)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected probability %v, got %v", tt.want, got)
			}
			if got < 0 || got > 1 {
				t.Errorf("probability %v outside [0,1]", got)
			}
		})
	}
}

func TestCredibilityRun(t *testing.T) {
	models := loadTestModels(t)

	tests := []struct {
		name       string
		counts     map[string]int
		stats      textutil.TextStats
		reputation int
		want       float64
	}{
		{
			name:       "institutional text from a reputable source",
			counts:     institutionalTerms,
			reputation: 90,
			want:       83.7,
		},
		{
			name:       "clickbait from an unknown source",
			counts:     clickbaitTerms,
			stats:      textutil.TextStats{ExclamationDensity: 0.05, CapsRatio: 0.3},
			reputation: 50,
			want:       37.5,
		},
		{
			name:       "neutral text from an unknown source",
			counts:     map[string]int{},
			reputation: 50,
			want:       58.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := vectorFromTerms(t, models.Vocabulary, tt.counts)
			features.Stats = tt.stats

			got := models.Credibility.Run(features, tt.reputation)
			if got != tt.want {
				t.Errorf("expected score %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{name: "nan falls back to midpoint", score: math.NaN(), want: 50},
		{name: "negative clamps to zero", score: -5, want: 0},
		{name: "overflow clamps to hundred", score: 105, want: 100},
		{name: "rounds down", score: 83.64, want: 83.6},
		{name: "rounds half up", score: 83.65, want: 83.7},
		{name: "zero passes through", score: 0, want: 0},
		{name: "hundred passes through", score: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampScore(tt.score); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
