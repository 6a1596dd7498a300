package domain

import "context"

// ProgressManager creates progress trackers for long running steps
type ProgressManager interface {
	// StartTask begins tracking a task with the given description and total item count
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress is actually rendered
	IsInteractive() bool

	// Close finishes all outstanding tasks
	Close()
}

// TaskProgress tracks a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work run by a ParallelExecutor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// ParallelExecutor runs independent tasks concurrently and waits for all of them
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}
