package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/config"
)

// mockTask implements domain.ExecutableTask for testing
type mockTask struct {
	name     string
	enabled  bool
	execFunc func(ctx context.Context) (interface{}, error)
}

func (t *mockTask) Name() string {
	return t.name
}

func (t *mockTask) Execute(ctx context.Context) (interface{}, error) {
	if t.execFunc != nil {
		return t.execFunc(ctx)
	}
	return nil, nil
}

func (t *mockTask) IsEnabled() bool {
	return t.enabled
}

func newMockTask(name string, enabled bool) *mockTask {
	return &mockTask{name: name, enabled: enabled}
}

func newMockTaskWithExec(name string, enabled bool, execFunc func(ctx context.Context) (interface{}, error)) *mockTask {
	return &mockTask{name: name, enabled: enabled, execFunc: execFunc}
}

func TestNewParallelExecutorFromConfig(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{
		MaxGoroutines:  8,
		TimeoutSeconds: 120,
	})

	if executor.maxConcurrency != 8 {
		t.Errorf("maxConcurrency should be 8, got %d", executor.maxConcurrency)
	}
	if executor.timeout != 120*time.Second {
		t.Errorf("timeout should be 120s, got %v", executor.timeout)
	}
}

func TestNewParallelExecutorFromConfig_Defaults(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{})

	if executor.maxConcurrency != DefaultMaxConcurrency {
		t.Errorf("maxConcurrency should be %d, got %d", DefaultMaxConcurrency, executor.maxConcurrency)
	}
	if executor.timeout != DefaultTimeout {
		t.Errorf("timeout should be %v, got %v", DefaultTimeout, executor.timeout)
	}
}

func TestParallelExecutor_EmptyTaskList(t *testing.T) {
	if err := NewParallelExecutor().Execute(context.Background(), nil); err != nil {
		t.Errorf("empty task list should return nil, got %v", err)
	}
}

func TestParallelExecutor_AllTasksSucceed(t *testing.T) {
	var executed atomic.Int32
	var tasks []domain.ExecutableTask
	for _, name := range []string{"reek", "flog", "roodi"} {
		tasks = append(tasks, newMockTaskWithExec(name, true, func(ctx context.Context) (interface{}, error) {
			executed.Add(1)
			return nil, nil
		}))
	}

	if err := NewParallelExecutor().Execute(context.Background(), tasks); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if executed.Load() != 3 {
		t.Errorf("all 3 tasks should have executed, got %d", executed.Load())
	}
}

func TestParallelExecutor_PartialFailures(t *testing.T) {
	errReek := errors.New("reek: command not found")
	errRoodi := errors.New("roodi: command not found")

	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("reek", true, func(ctx context.Context) (interface{}, error) {
			return nil, errReek
		}),
		newMockTask("flog", true),
		newMockTaskWithExec("roodi", true, func(ctx context.Context) (interface{}, error) {
			return nil, errRoodi
		}),
	}

	err := NewParallelExecutor().Execute(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected error for partial failures")
	}

	var aggErr *AggregatedError
	if !errors.As(err, &aggErr) {
		t.Fatalf("expected AggregatedError, got %T", err)
	}
	if len(aggErr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(aggErr.Errors))
	}
	if !aggErr.Failed("reek") || !aggErr.Failed("roodi") {
		t.Error("expected reek and roodi failures to be captured")
	}
	if aggErr.Failed("flog") {
		t.Error("flog should not be reported as failed")
	}
}

func TestParallelExecutor_Timeout(t *testing.T) {
	executor := &ParallelExecutorImpl{maxConcurrency: 2, timeout: 100 * time.Millisecond}

	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("slow", true, func(ctx context.Context) (interface{}, error) {
			select {
			case <-time.After(500 * time.Millisecond):
				return nil, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}),
	}

	err := executor.Execute(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestParallelExecutor_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("cancellable", true, func(ctx context.Context) (interface{}, error) {
			close(started)
			select {
			case <-time.After(10 * time.Second):
				return nil, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}),
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- NewParallelExecutor().Execute(ctx, tasks)
	}()

	<-started
	cancel()

	if err := <-errChan; err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestParallelExecutor_DisabledTasksSkipped(t *testing.T) {
	var executed atomic.Int32
	count := func(ctx context.Context) (interface{}, error) {
		executed.Add(1)
		return nil, nil
	}
	tasks := []domain.ExecutableTask{
		newMockTaskWithExec("reek", true, count),
		newMockTaskWithExec("roodi", false, count),
	}

	if err := NewParallelExecutor().Execute(context.Background(), tasks); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if executed.Load() != 1 {
		t.Errorf("only enabled task should execute, got %d executions", executed.Load())
	}
}

func TestParallelExecutor_ConcurrencyLimit(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{
		MaxGoroutines:  2,
		TimeoutSeconds: 30,
	})

	var current, peak atomic.Int32
	var mu sync.Mutex
	var tasks []domain.ExecutableTask
	for i := 0; i < 5; i++ {
		tasks = append(tasks, newMockTaskWithExec("task"+string(rune('0'+i)), true, func(ctx context.Context) (interface{}, error) {
			n := current.Add(1)
			mu.Lock()
			if n > peak.Load() {
				peak.Store(n)
			}
			mu.Unlock()
			time.Sleep(50 * time.Millisecond)
			current.Add(-1)
			return nil, nil
		}))
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if peak.Load() > 2 {
		t.Errorf("max concurrency should not exceed 2, got %d", peak.Load())
	}
}

func TestParallelExecutor_ProgressIntegration(t *testing.T) {
	var increments atomic.Int32
	var completed atomic.Bool
	var description string

	pm := &mockProgressManager{
		startTaskFunc: func(d string, total int) domain.TaskProgress {
			description = d
			return &mockTaskProgress{
				incrementFunc: func(n int) { increments.Add(int32(n)) },
				completeFunc:  func() { completed.Store(true) },
			}
		},
	}

	executor := NewParallelExecutorWithProgress(&config.PerformanceConfig{MaxGoroutines: 4, TimeoutSeconds: 60}, pm)
	tasks := []domain.ExecutableTask{
		newMockTask("reek", true),
		newMockTask("flog", true),
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if increments.Load() != 2 {
		t.Errorf("expected 2 increments, got %d", increments.Load())
	}
	if !completed.Load() {
		t.Error("expected Complete() to be called")
	}
	if description != "Running analyzers" {
		t.Errorf("unexpected task description %q", description)
	}
}

func TestAggregatedError_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   []TaskError
		contains string
	}{
		{name: "no errors", errors: nil, contains: "no errors"},
		{
			name:     "single error",
			errors:   []TaskError{{TaskName: "reek", Err: errors.New("failed")}},
			contains: "[reek] failed",
		},
		{
			name: "multiple errors",
			errors: []TaskError{
				{TaskName: "reek", Err: errors.New("failed1")},
				{TaskName: "flog", Err: errors.New("failed2")},
			},
			contains: "2 analyzers failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := (&AggregatedError{Errors: tt.errors}).Error()
			if !strings.Contains(errStr, tt.contains) {
				t.Errorf("error string should contain %q, got %q", tt.contains, errStr)
			}
		})
	}
}

func TestAggregatedError_Unwrap(t *testing.T) {
	original := errors.New("original error")
	aggErr := &AggregatedError{Errors: []TaskError{{TaskName: "reek", Err: original}}}

	if !errors.Is(aggErr, original) {
		t.Error("AggregatedError should unwrap to the first task's error")
	}
	if (&AggregatedError{}).Unwrap() != nil {
		t.Error("Unwrap on empty errors should return nil")
	}
}

func TestTaskError(t *testing.T) {
	original := errors.New("something went wrong")
	te := TaskError{TaskName: "flog", Err: original}

	if te.Error() != "[flog] something went wrong" {
		t.Errorf("unexpected error string: %s", te.Error())
	}
	if !errors.Is(te, original) {
		t.Error("TaskError should unwrap to original error")
	}
}

type mockProgressManager struct {
	startTaskFunc func(description string, total int) domain.TaskProgress
}

func (m *mockProgressManager) StartTask(description string, total int) domain.TaskProgress {
	if m.startTaskFunc != nil {
		return m.startTaskFunc(description, total)
	}
	return &NoOpTaskProgress{}
}

func (m *mockProgressManager) IsInteractive() bool { return false }

func (m *mockProgressManager) Close() {}

type mockTaskProgress struct {
	incrementFunc func(n int)
	describeFunc  func(description string)
	completeFunc  func()
}

func (m *mockTaskProgress) Increment(n int) {
	if m.incrementFunc != nil {
		m.incrementFunc(n)
	}
}

func (m *mockTaskProgress) Describe(description string) {
	if m.describeFunc != nil {
		m.describeFunc(description)
	}
}

func (m *mockTaskProgress) Complete() {
	if m.completeFunc != nil {
		m.completeFunc()
	}
}
