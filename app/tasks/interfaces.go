package tasks

import (
	"context"

	"github.com/newslens/newslens/app/analysis"
)

// TaskRunnerInterface defines the interface for the worker pool that
// executes analysis tasks. Used by the main application and the API layer.
// Example usage:
//
//	runner := NewRunner(workerCount)
//	runner.Start()
//	defer runner.Stop()
//	runner.Enqueue(NewAnalyzeURLTask(pipeline, url))
type TaskRunnerInterface interface {
	Start()
	Stop()
	Enqueue(task TaskInterface) error
}

// URLAnalyzer runs the full pipeline against a URL.
type URLAnalyzer interface {
	AnalyzeURL(ctx context.Context, rawURL string) (*analysis.Result, error)
}

// TextAnalyzer runs the pipeline against raw text with an optional source
// attribution hint.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string, sourceHint string) (*analysis.Result, error)
}
