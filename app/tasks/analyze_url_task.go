package tasks

import (
	"context"

	"github.com/newslens/newslens/app/analysis"
)

// AnalyzeURLTask fetches and analyzes a single article URL. The enqueuing
// request blocks on Wait until a worker finishes the task.
type AnalyzeURLTask struct {
	Task
	analyzer URLAnalyzer
	url      string

	done   chan struct{}
	result *analysis.Result
	err    error
}

func NewAnalyzeURLTask(analyzer URLAnalyzer, rawURL string) *AnalyzeURLTask {
	return &AnalyzeURLTask{
		Task:     NewTask(TaskTypeAnalyzeURL, rawURL),
		analyzer: analyzer,
		url:      rawURL,
		done:     make(chan struct{}),
	}
}

func (t *AnalyzeURLTask) Execute(ctx context.Context) error {
	defer close(t.done)
	t.result, t.err = t.analyzer.AnalyzeURL(ctx, t.url)
	return t.err
}

// Wait blocks until the task has executed or the context is done. The
// returned error is the task's own failure, or the context error if the
// caller gave up first.
func (t *AnalyzeURLTask) Wait(ctx context.Context) (*analysis.Result, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
