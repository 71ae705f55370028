package api

import (
	"context"

	"github.com/newslens/newslens/app/analysis"
	"github.com/newslens/newslens/app/sources"
	"github.com/newslens/newslens/app/tasks"
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

// AnalyzeTextRequest is the body of POST /analyze/text. Source optionally
// attributes the text to a domain so the registry can inform the result.
type AnalyzeTextRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
}

type AnalyzerInterface interface {
	AnalyzeURL(ctx context.Context, rawURL string) (*analysis.Result, error)
	AnalyzeText(ctx context.Context, text string, sourceHint string) (*analysis.Result, error)
}

var _ AnalyzerInterface = (*analysis.Pipeline)(nil)

type RegistryInterface interface {
	All() []sources.Rating
	Count() int
}

var _ RegistryInterface = (*sources.Registry)(nil)

type Handler struct {
	analyzer AnalyzerInterface
	registry RegistryInterface
	runner   tasks.TaskRunnerInterface
	models   *analysis.Models
	version  string
}
