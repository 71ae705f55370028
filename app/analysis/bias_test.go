package analysis

import (
	"math"
	"reflect"
	"testing"
)

func TestBiasRun(t *testing.T) {
	models := loadTestModels(t)

	tests := []struct {
		name           string
		counts         map[string]int
		wantBias       Bias
		wantConfidence float64
	}{
		{
			name: "left saturated text",
			counts: map[string]int{
				"progressive": 3,
				"union":       2,
				"climate":     2,
				"healthcare":  1,
				"inequality":  1,
				"justice":     2,
				"activists":   1,
				"workers":     1,
			},
			wantBias:       BiasLeft,
			wantConfidence: 0.8291,
		},
		{
			name: "right saturated text",
			counts: map[string]int{
				"conservative": 3,
				"taxpayers":    2,
				"border":       2,
				"patriot":      1,
				"faith":        1,
				"freedom":      2,
			},
			wantBias:       BiasRight,
			wantConfidence: 0.8291,
		},
		{
			name: "centrist vocabulary",
			counts: map[string]int{
				"committee": 3,
				"lawmakers": 2,
				"officials": 2,
				"data":      2,
				"policy":    1,
			},
			wantBias:       BiasCenter,
			wantConfidence: 0.787,
		},
		{
			name: "balanced partisan text collapses to center",
			counts: map[string]int{
				"progressive":  3,
				"conservative": 3,
			},
			wantBias:       BiasCenter,
			wantConfidence: 0.2905,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := vectorFromTerms(t, models.Vocabulary, tt.counts)

			got := models.Bias.Run(features)
			if got.Bias != tt.wantBias {
				t.Errorf("expected bias %s, got %s", tt.wantBias, got.Bias)
			}
			if math.Abs(got.Confidence-tt.wantConfidence) > 0.0001 {
				t.Errorf("expected confidence %v, got %v", tt.wantConfidence, got.Confidence)
			}
		})
	}
}

func TestBiasNoSignalDefaultsToCenter(t *testing.T) {
	models := loadTestModels(t)

	features := &FeatureVector{Weights: map[int]float64{}, Counts: map[int]int{}}
	got := models.Bias.Run(features)

	if got.Bias != BiasCenter {
		t.Errorf("expected Center, got %s", got.Bias)
	}
	if got.Confidence != 0.3333 {
		t.Errorf("expected uniform confidence 0.3333, got %v", got.Confidence)
	}
}

func TestBiasUnlexiconedTermsStayCenter(t *testing.T) {
	models := loadTestModels(t)

	// Terms in the vocabulary without class likelihoods get the default log
	// probability for every class, so the posteriors stay near the priors.
	features := vectorFromTerms(t, models.Vocabulary, map[string]int{
		"shocking": 2,
		"miracle":  1,
		"secret":   1,
	})
	got := models.Bias.Run(features)

	if got.Bias != BiasCenter {
		t.Errorf("expected Center, got %s", got.Bias)
	}
	if math.Abs(got.Confidence-1.0/3.0) > 0.001 {
		t.Errorf("expected near-uniform confidence, got %v", got.Confidence)
	}
}

func TestBiasDeterminism(t *testing.T) {
	models := loadTestModels(t)

	counts := map[string]int{
		"progressive":  2,
		"conservative": 1,
		"committee":    2,
		"climate":      1,
		"border":       1,
		"officials":    1,
		"data":         1,
	}

	first := models.Bias.Run(vectorFromTerms(t, models.Vocabulary, counts))
	for i := 0; i < 50; i++ {
		next := models.Bias.Run(vectorFromTerms(t, models.Vocabulary, counts))
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, first, next)
		}
	}
}
