package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/config"
	"golang.org/x/sync/errgroup"
)

// Default values for parallel executor
const (
	// DefaultMaxConcurrency is used when config value is invalid.
	DefaultMaxConcurrency = config.DefaultMaxGoroutines
	DefaultTimeout        = time.Duration(config.DefaultTimeoutSeconds) * time.Second
)

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d analyzers failed:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// Failed reports whether the named task is among the failures
func (e *AggregatedError) Failed(name string) bool {
	for _, te := range e.Errors {
		if te.TaskName == name {
			return true
		}
	}
	return false
}

// ParallelExecutorImpl implements domain.ParallelExecutor
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
}

// NewParallelExecutor creates a new parallel executor with defaults.
// Uses runtime.NumCPU() for concurrency.
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorFromConfig creates a parallel executor from configuration
func NewParallelExecutorFromConfig(cfg *config.PerformanceConfig) *ParallelExecutorImpl {
	maxConcurrency := cfg.MaxGoroutines
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
	}
}

// NewParallelExecutorWithProgress creates a parallel executor with progress tracking
func NewParallelExecutorWithProgress(cfg *config.PerformanceConfig, pm domain.ProgressManager) *ParallelExecutorImpl {
	executor := NewParallelExecutorFromConfig(cfg)
	executor.progress = pm
	return executor
}

// Execute runs tasks in parallel with the configured concurrency and timeout.
// Every enabled task runs to completion; failures are returned together as
// an *AggregatedError in task order once all of them have finished.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	enabled := e.filterEnabledTasks(tasks)
	if len(enabled) == 0 {
		return nil
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	progress := startTask(e.progress, "Running analyzers", len(enabled))
	defer progress.Complete()

	g, gCtx := errgroup.WithContext(runCtx)
	g.SetLimit(e.maxConcurrency)

	// one slot per task, written only by that task's goroutine
	failures := make([]error, len(enabled))
	for i, t := range enabled {
		i, t := i, t
		g.Go(func() error {
			failures[i] = runTask(gCtx, t, progress)
			return nil
		})
	}
	_ = g.Wait()

	var agg AggregatedError
	for i, err := range failures {
		if err != nil {
			agg.Errors = append(agg.Errors, TaskError{TaskName: enabled[i].Name(), Err: err})
		}
	}
	if len(agg.Errors) > 0 {
		return &agg
	}
	return nil
}

// runTask executes t unless the run was already cancelled
func runTask(ctx context.Context, t domain.ExecutableTask, progress domain.TaskProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	progress.Describe("Running " + t.Name())
	_, err := t.Execute(ctx)
	progress.Increment(1)
	return err
}

// filterEnabledTasks returns only tasks where IsEnabled() returns true
func (e *ParallelExecutorImpl) filterEnabledTasks(tasks []domain.ExecutableTask) []domain.ExecutableTask {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
