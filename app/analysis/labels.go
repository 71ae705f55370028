package analysis

import (
	"github.com/newslens/newslens/app/sources"
	"github.com/newslens/newslens/app/textutil"
)

// Labels attached to results by the derivation table.
const (
	LabelHighlyReliable     = "Highly Reliable"
	LabelMixedReliability   = "Mixed Reliability"
	LabelNeedsVerification  = "Needs Verification"
	LabelSatireClickbait    = "Satire/Clickbait"
	LabelLikelyBiased       = "Likely Biased"
	LabelBiased             = "Biased"
	LabelWellSourced        = "Well-sourced"
	LabelInsufficientData   = "InsufficientData"
	LabelSummaryUnavailable = "SummaryUnavailable"
)

// Thresholds used by the label table.
const (
	highlyReliableThreshold       = 80.0
	mixedReliabilityThreshold     = 60.0
	lowCredibilityThreshold       = 40.0
	biasLabelConfidence           = 0.6
	wellSourcedReputation         = 85
	clickbaitExclamationThreshold = 0.03
	clickbaitCapsThreshold        = 0.25
)

// ResultFlags records the degradations a request went through, which the
// label table turns into caller-visible labels.
type ResultFlags struct {
	DegradedExtraction bool
	SummaryFailed      bool
}

// DeriveLabels applies the fixed label rule table. It is a pure function
// of its inputs: identical triples always produce identical label sets, in
// the same order.
func DeriveLabels(score float64, bias BiasResult, rating sources.Rating, stats textutil.TextStats, flags ResultFlags) []string {
	labels := []string{}

	switch {
	case score >= highlyReliableThreshold:
		labels = append(labels, LabelHighlyReliable)
	case score >= mixedReliabilityThreshold:
		labels = append(labels, LabelMixedReliability, LabelNeedsVerification)
	case score < lowCredibilityThreshold:
		if looksLikeClickbait(stats, rating) {
			labels = append(labels, LabelSatireClickbait)
		} else {
			labels = append(labels, LabelLikelyBiased)
		}
	}

	if bias.Bias != BiasCenter && bias.Confidence >= biasLabelConfidence {
		labels = append(labels, LabelBiased)
	}
	if rating.Score >= wellSourcedReputation {
		labels = append(labels, LabelWellSourced)
	}
	if flags.DegradedExtraction {
		labels = append(labels, LabelInsufficientData)
	}
	if flags.SummaryFailed {
		labels = append(labels, LabelSummaryUnavailable)
	}

	return labels
}

func looksLikeClickbait(stats textutil.TextStats, rating sources.Rating) bool {
	return stats.ExclamationDensity >= clickbaitExclamationThreshold ||
		stats.CapsRatio >= clickbaitCapsThreshold ||
		rating.Category == "satire"
}
