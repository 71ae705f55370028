package analysis

import (
	"strings"
)

// Bias is a political-lean class. Every result carries exactly one of the
// three values; ambiguous texts collapse to BiasCenter rather than leaking
// an "unknown" value to callers.
type Bias string

const (
	BiasLeft   Bias = "Left"
	BiasCenter Bias = "Center"
	BiasRight  Bias = "Right"
)

// ParseBias maps a stored bias string to a Bias, defaulting to Center.
func ParseBias(value string) Bias {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left":
		return BiasLeft
	case "right":
		return BiasRight
	default:
		return BiasCenter
	}
}

// Article is the unit of work flowing through the pipeline. It is built
// once by the scraper (URL flow) or from user-supplied text (text flow)
// and never mutated afterwards.
type Article struct {
	URL         string
	Domain      string
	Title       string
	Authors     []string
	PublishedAt string
	Text        string
}

// BiasResult pairs the predicted class with its posterior probability.
type BiasResult struct {
	Bias       Bias
	Confidence float64
}

// Metadata carries the secondary analysis fields nested under the result's
// "metadata" key, keeping the top-level wire schema to its six fixed keys.
type Metadata struct {
	BiasConfidence float64  `json:"bias_confidence"`
	SummaryMethod  string   `json:"summary_method"`
	AnalysisMethod string   `json:"analysis_method"`
	Title          string   `json:"title,omitempty"`
	Authors        []string `json:"authors"`
	PublishedAt    string   `json:"published_at,omitempty"`
	WordCount      int      `json:"word_count"`
	SentenceCount  int      `json:"sentence_count"`
	ModelVersion   string   `json:"model_version"`
}

// Result is the terminal artifact returned to callers. Field order fixes
// the wire key order; identical input articles marshal to identical bytes.
type Result struct {
	Source           string   `json:"source"`
	CredibilityScore float64  `json:"credibility_score"`
	Bias             string   `json:"bias"`
	Summary          string   `json:"summary"`
	Labels           []string `json:"labels"`
	Metadata         Metadata `json:"metadata"`
}

// Pipeline states, logged as each request moves through the orchestrator.
const (
	StateReceived         = "received"
	StateScraped          = "scraped"
	StateFeatureExtracted = "feature_extracted"
	StateClassified       = "classified"
	StateSummarized       = "summarized"
	StateLabeled          = "labeled"
	StateCompleted        = "completed"
	StateFailed           = "failed"
)

// Analysis methods recorded in result metadata.
const (
	MethodFull       = "full"
	MethodSourceOnly = "source_only"
)
