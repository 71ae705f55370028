package textutil

import (
	"math"
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "basic sentences",
			input: "The senate passed the bill. The house votes next week.",
			expected: []string{
				"The senate passed the bill.",
				"The house votes next week.",
			},
		},
		{
			name:  "mixed terminators",
			input: "Really? Yes! The vote was close.",
			expected: []string{
				"Really?",
				"Yes!",
				"The vote was close.",
			},
		},
		{
			name:  "abbreviation does not split",
			input: "Dr. Smith testified on Tuesday. Sen. Jones disagreed.",
			expected: []string{
				"Dr. Smith testified on Tuesday.",
				"Sen. Jones disagreed.",
			},
		},
		{
			name:  "single letter initial does not split",
			input: "George W. Bush spoke first. The crowd listened.",
			expected: []string{
				"George W. Bush spoke first.",
				"The crowd listened.",
			},
		},
		{
			name:  "decimal number does not split",
			input: "Inflation rose 3.5 percent last month. Markets fell.",
			expected: []string{
				"Inflation rose 3.5 percent last month.",
				"Markets fell.",
			},
		},
		{
			name:  "period before lowercase continues",
			input: "The ruling cited Brown v. Wade. the court adjourned after lunch. A recess followed.",
			expected: []string{
				"The ruling cited Brown v. Wade. the court adjourned after lunch.",
				"A recess followed.",
			},
		},
		{
			name:  "terminator runs stay attached",
			input: "Unbelievable!!! You will not believe what happened next. Officials declined to comment.",
			expected: []string{
				"Unbelievable!!!",
				"You will not believe what happened next.",
				"Officials declined to comment.",
			},
		},
		{
			name:  "closing quote stays with sentence",
			input: `"We are done here." The meeting ended.`,
			expected: []string{
				`"We are done here."`,
				"The meeting ended.",
			},
		},
		{
			name:  "trailing fragment kept after terminated sentence",
			input: "The bill passed. More updates to follow",
			expected: []string{
				"The bill passed.",
				"More updates to follow",
			},
		},
		{
			name:  "trailing single word dropped",
			input: "The bill passed. Developing",
			expected: []string{
				"The bill passed.",
			},
		},
		{
			name:     "no terminator yields nothing",
			input:    "breaking news headline without punctuation",
			expected: nil,
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "single sentence",
			input:    "The committee approved the measure.",
			expected: []string{"The committee approved the measure."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitSentences(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats("The senate passed the bill. The house votes next week.")

	if stats.WordCount != 10 {
		t.Errorf("expected 10 words, got %d", stats.WordCount)
	}
	if stats.SentenceCount != 2 {
		t.Errorf("expected 2 sentences, got %d", stats.SentenceCount)
	}
	if stats.CapsRatio != 0 {
		t.Errorf("expected zero caps ratio, got %f", stats.CapsRatio)
	}
	if stats.ExclamationDensity != 0 {
		t.Errorf("expected zero exclamation density, got %f", stats.ExclamationDensity)
	}
}

func TestComputeStatsShouting(t *testing.T) {
	stats := ComputeStats("SHOCKING! You WONT believe this MIRACLE cure! Doctors HATE it!")

	if stats.WordCount != 10 {
		t.Errorf("expected 10 words, got %d", stats.WordCount)
	}

	// SHOCKING, WONT, MIRACLE, HATE are fully uppercase.
	expectedCaps := 0.4
	if math.Abs(stats.CapsRatio-expectedCaps) > 1e-9 {
		t.Errorf("expected caps ratio %f, got %f", expectedCaps, stats.CapsRatio)
	}

	expectedExcl := 0.3
	if math.Abs(stats.ExclamationDensity-expectedExcl) > 1e-9 {
		t.Errorf("expected exclamation density %f, got %f", expectedExcl, stats.ExclamationDensity)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats("")

	if stats.WordCount != 0 {
		t.Errorf("expected zero words, got %d", stats.WordCount)
	}
	if stats.SentenceCount != 0 {
		t.Errorf("expected zero sentences, got %d", stats.SentenceCount)
	}
	if stats.CapsRatio != 0 || stats.ExclamationDensity != 0 || stats.AvgWordLength != 0 {
		t.Error("expected zero-valued stats for empty input")
	}
}
