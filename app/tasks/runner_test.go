package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/newslens/newslens/app/analysis"
)

// MockURLAnalyzer implements a simple mock for testing
type MockURLAnalyzer struct {
	result *analysis.Result
	err    error
	calls  []string
}

// Ensure MockURLAnalyzer implements URLAnalyzer interface
var _ URLAnalyzer = (*MockURLAnalyzer)(nil)

func (m *MockURLAnalyzer) AnalyzeURL(ctx context.Context, rawURL string) (*analysis.Result, error) {
	m.calls = append(m.calls, rawURL)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// MockTextAnalyzer implements a simple mock for testing
type MockTextAnalyzer struct {
	result *analysis.Result
	err    error
	calls  []string
}

// Ensure MockTextAnalyzer implements TextAnalyzer interface
var _ TextAnalyzer = (*MockTextAnalyzer)(nil)

func (m *MockTextAnalyzer) AnalyzeText(ctx context.Context, text string, sourceHint string) (*analysis.Result, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestNewRunner(t *testing.T) {
	runner := NewRunner(3)

	if runner == nil {
		t.Fatal("expected runner to be created")
	}

	if runner.workerCount != 3 {
		t.Errorf("expected worker count 3, got %d", runner.workerCount)
	}

	if cap(runner.taskQueue) != queueCapacity {
		t.Errorf("expected queue capacity %d, got %d", queueCapacity, cap(runner.taskQueue))
	}
}

func TestNewRunnerClampsWorkerCount(t *testing.T) {
	runner := NewRunner(0)

	if runner.workerCount != 1 {
		t.Errorf("expected worker count clamped to 1, got %d", runner.workerCount)
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeAnalyzeURL, "https://example.com/story")

	if task.GetID() == "" {
		t.Error("expected task ID to be set")
	}

	if !strings.Contains(task.GetID(), "-") {
		t.Errorf("expected task ID in timestamp-suffix form, got %q", task.GetID())
	}

	if task.GetType() != TaskTypeAnalyzeURL {
		t.Errorf("expected type %q, got %q", TaskTypeAnalyzeURL, task.GetType())
	}

	if task.GetSubject() != "https://example.com/story" {
		t.Errorf("expected subject to be the URL, got %q", task.GetSubject())
	}

	if task.GetDuration() != 0 {
		t.Errorf("expected zero duration before start, got %v", task.GetDuration())
	}
}

func TestTaskDurationAfterStart(t *testing.T) {
	task := NewTask(TaskTypeAnalyzeText, "example.com")

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Errorf("expected positive duration after start, got %v", task.GetDuration())
	}
}

func TestAnalyzeURLTaskExecute(t *testing.T) {
	mock := &MockURLAnalyzer{
		result: &analysis.Result{Source: "example.com", CredibilityScore: 83.7},
	}

	task := NewAnalyzeURLTask(mock, "https://example.com/story")

	if task.GetType() != TaskTypeAnalyzeURL {
		t.Errorf("expected type %q, got %q", TaskTypeAnalyzeURL, task.GetType())
	}

	if task.GetSubject() != "https://example.com/story" {
		t.Errorf("expected subject to be the URL, got %q", task.GetSubject())
	}

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected execute error: %v", err)
	}

	result, err := task.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}

	if result != mock.result {
		t.Error("expected wait to return the analyzer result")
	}

	if len(mock.calls) != 1 || mock.calls[0] != "https://example.com/story" {
		t.Errorf("expected one analyzer call with the URL, got %v", mock.calls)
	}
}

func TestAnalyzeURLTaskExecuteError(t *testing.T) {
	analyzerErr := errors.New("fetch failed")
	mock := &MockURLAnalyzer{err: analyzerErr}

	task := NewAnalyzeURLTask(mock, "https://example.com/story")

	if err := task.Execute(context.Background()); !errors.Is(err, analyzerErr) {
		t.Errorf("expected execute to return the analyzer error, got %v", err)
	}

	result, err := task.Wait(context.Background())
	if !errors.Is(err, analyzerErr) {
		t.Errorf("expected wait to return the analyzer error, got %v", err)
	}

	if result != nil {
		t.Errorf("expected nil result on error, got %+v", result)
	}
}

func TestAnalyzeTextTaskExecute(t *testing.T) {
	mock := &MockTextAnalyzer{
		result: &analysis.Result{Source: "example.com", Bias: "Center"},
	}

	task := NewAnalyzeTextTask(mock, "Article body text.", "example.com")

	if task.GetType() != TaskTypeAnalyzeText {
		t.Errorf("expected type %q, got %q", TaskTypeAnalyzeText, task.GetType())
	}

	if task.GetSubject() != "example.com" {
		t.Errorf("expected subject %q, got %q", "example.com", task.GetSubject())
	}

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected execute error: %v", err)
	}

	result, err := task.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}

	if result != mock.result {
		t.Error("expected wait to return the analyzer result")
	}
}

func TestAnalyzeTextTaskSubjectDefault(t *testing.T) {
	mock := &MockTextAnalyzer{result: &analysis.Result{}}

	task := NewAnalyzeTextTask(mock, "Article body text.", "")

	if task.GetSubject() != "inline-text" {
		t.Errorf("expected subject %q for empty source hint, got %q", "inline-text", task.GetSubject())
	}
}

func TestWaitHonorsCallerContext(t *testing.T) {
	mock := &MockURLAnalyzer{result: &analysis.Result{}}

	// Never executed, so Wait can only return via the caller context.
	task := NewAnalyzeURLTask(mock, "https://example.com/story")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := task.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
}

func TestEnqueueQueueFull(t *testing.T) {
	mock := &MockURLAnalyzer{result: &analysis.Result{}}

	// Not started, so nothing drains the queue.
	runner := NewRunner(1)

	for i := 0; i < queueCapacity; i++ {
		task := NewAnalyzeURLTask(mock, "https://example.com/story")
		if err := runner.Enqueue(task); err != nil {
			t.Fatalf("unexpected enqueue error at %d: %v", i, err)
		}
	}

	err := runner.Enqueue(NewAnalyzeURLTask(mock, "https://example.com/story"))
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}

func TestRunnerLifecycle(t *testing.T) {
	mock := &MockURLAnalyzer{
		result: &analysis.Result{Source: "example.com", CredibilityScore: 58.1},
	}

	runner := NewRunner(2)
	runner.Start()
	defer runner.Stop()

	task := NewAnalyzeURLTask(mock, "https://example.com/story")
	if err := runner.Enqueue(task); err != nil {
		t.Fatalf("unexpected enqueue error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := task.Wait(ctx)
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}

	if result != mock.result {
		t.Error("expected wait to return the analyzer result")
	}

	if task.GetDuration() <= 0 {
		t.Errorf("expected positive duration after execution, got %v", task.GetDuration())
	}
}

func TestRunnerPropagatesTaskError(t *testing.T) {
	analyzerErr := errors.New("scrape failed (unreachable): https://example.com/story: HTTP 502")
	mock := &MockURLAnalyzer{err: analyzerErr}

	runner := NewRunner(1)
	runner.Start()
	defer runner.Stop()

	task := NewAnalyzeURLTask(mock, "https://example.com/story")
	if err := runner.Enqueue(task); err != nil {
		t.Fatalf("unexpected enqueue error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := task.Wait(ctx)
	if !errors.Is(err, analyzerErr) {
		t.Errorf("expected the analyzer error, got %v", err)
	}

	if result != nil {
		t.Errorf("expected nil result on error, got %+v", result)
	}
}

func TestRunnerProcessesQueuedBacklog(t *testing.T) {
	mock := &MockTextAnalyzer{result: &analysis.Result{Bias: "Center"}}

	runner := NewRunner(1)
	runner.Start()
	defer runner.Stop()

	waiters := make([]*AnalyzeTextTask, 0, 5)
	for i := 0; i < 5; i++ {
		task := NewAnalyzeTextTask(mock, "Article body text.", "example.com")
		if err := runner.Enqueue(task); err != nil {
			t.Fatalf("unexpected enqueue error at %d: %v", i, err)
		}
		waiters = append(waiters, task)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i, task := range waiters {
		if _, err := task.Wait(ctx); err != nil {
			t.Fatalf("unexpected wait error at %d: %v", i, err)
		}
	}

	if len(mock.calls) != 5 {
		t.Errorf("expected 5 analyzer calls, got %d", len(mock.calls))
	}
}
