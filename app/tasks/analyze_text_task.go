package tasks

import (
	"context"

	"github.com/newslens/newslens/app/analysis"
)

// AnalyzeTextTask analyzes user-supplied text attributed to an optional
// source domain.
type AnalyzeTextTask struct {
	Task
	analyzer   TextAnalyzer
	text       string
	sourceHint string

	done   chan struct{}
	result *analysis.Result
	err    error
}

func NewAnalyzeTextTask(analyzer TextAnalyzer, text string, sourceHint string) *AnalyzeTextTask {
	subject := sourceHint
	if subject == "" {
		subject = "inline-text"
	}

	return &AnalyzeTextTask{
		Task:       NewTask(TaskTypeAnalyzeText, subject),
		analyzer:   analyzer,
		text:       text,
		sourceHint: sourceHint,
		done:       make(chan struct{}),
	}
}

func (t *AnalyzeTextTask) Execute(ctx context.Context) error {
	defer close(t.done)
	t.result, t.err = t.analyzer.AnalyzeText(ctx, t.text, t.sourceHint)
	return t.err
}

// Wait blocks until the task has executed or the context is done.
func (t *AnalyzeTextTask) Wait(ctx context.Context) (*analysis.Result, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
