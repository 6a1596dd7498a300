package service

import (
	"context"
	"errors"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/adapter"
	"github.com/ludo-technologies/rbscan/internal/analyzer"
)

// GenerationTask runs one generator under the parallel executor. Each task
// owns its result and row store; nothing is shared until the executor returns.
type GenerationTask struct {
	generator domain.MetricGenerator
	files     []string
	result    *domain.MetricResult
	store     *analyzer.RowStore
}

// NewGenerationTask creates a task running generator over files
func NewGenerationTask(generator domain.MetricGenerator, files []string) *GenerationTask {
	return &GenerationTask{generator: generator, files: files}
}

// Name returns the metric name
func (t *GenerationTask) Name() string {
	return t.generator.Metric()
}

// IsEnabled always returns true; disabled analyzers never get a task
func (t *GenerationTask) IsEnabled() bool {
	return true
}

// Execute runs the generator and folds its findings into the task's store
func (t *GenerationTask) Execute(ctx context.Context) (interface{}, error) {
	result, err := t.generator.Generate(ctx, t.files)
	if err != nil {
		return nil, err
	}
	t.result = result
	t.store = StoreFor(result)
	return result, nil
}

// StoreFor folds a parsed result into a fresh row store
func StoreFor(result *domain.MetricResult) *analyzer.RowStore {
	store := analyzer.NewRowStore()
	store.AddRows(result.Metric, adapter.Rows(result.Metric, result.Matches))
	return store
}

// BuildRowStore folds results into one store, in result order
func BuildRowStore(results []*domain.MetricResult) *analyzer.RowStore {
	store := analyzer.NewRowStore()
	for _, r := range results {
		store.Merge(StoreFor(r))
	}
	return store
}

// Generation is the joined outcome of running every generator
type Generation struct {
	Results []*domain.MetricResult
	Store   *analyzer.RowStore

	// Failures holds analyzers that failed while others succeeded
	Failures []TaskError
}

// RunGenerators runs generators in parallel. Stores are merged after the
// executor returns, in generator order, so rankings do not depend on
// scheduling. A failure of every generator is returned as an error; a
// partial failure is reported through Generation.Failures.
func RunGenerators(ctx context.Context, executor domain.ParallelExecutor, generators []domain.MetricGenerator, files []string) (*Generation, error) {
	tasks := make([]*GenerationTask, len(generators))
	execTasks := make([]domain.ExecutableTask, len(generators))
	for i, gen := range generators {
		tasks[i] = NewGenerationTask(gen, files)
		execTasks[i] = tasks[i]
	}

	out := &Generation{Store: analyzer.NewRowStore()}

	failed := &AggregatedError{}
	if err := executor.Execute(ctx, execTasks); err != nil {
		if !errors.As(err, &failed) || len(failed.Errors) >= len(tasks) {
			return nil, err
		}
		out.Failures = failed.Errors
	}

	for _, t := range tasks {
		if failed.Failed(t.Name()) || t.result == nil {
			continue
		}
		out.Results = append(out.Results, t.result)
		out.Store.Merge(t.store)
	}
	return out, nil
}
