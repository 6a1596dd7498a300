package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/adapter"
	"github.com/ludo-technologies/rbscan/internal/analyzer"
	"github.com/ludo-technologies/rbscan/internal/constants"
	"github.com/ludo-technologies/rbscan/service"
)

var _ domain.FileReader = (*FileHelper)(nil)

// Ranker ranks a populated row store
type Ranker interface {
	AnalyzeStore(ctx context.Context, store *analyzer.RowStore, results []*domain.MetricResult, req domain.HotspotRequest) (*domain.HotspotResponse, error)
	CheckStore(ctx context.Context, store *analyzer.RowStore, results []*domain.MetricResult, maxProblems int) (*domain.CheckResult, error)
}

// Annotator builds the per-line annotation index
type Annotator interface {
	Annotate(ctx context.Context, results []*domain.MetricResult) (domain.AnnotationIndex, error)
}

// noFilesWarning is attached to reports of runs that found nothing to analyze
const noFilesWarning = "no Ruby files found in the specified paths"

// HotspotUseCase orchestrates the hotspot workflow: collect files, run the
// analyzers, parse their output, rank and render
type HotspotUseCase struct {
	generators []domain.MetricGenerator
	executor   domain.ParallelExecutor
	ranker     Ranker
	annotator  Annotator
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
	logger     *log.Logger
}

// generation is one run's parsed output before ranking
type generation struct {
	results  []*domain.MetricResult
	store    *analyzer.RowStore
	warnings []string
}

// Execute runs the analyzers and writes the ranked report to req.OutputWriter when set
func (uc *HotspotUseCase) Execute(ctx context.Context, req domain.HotspotRequest) (*domain.HotspotResponse, error) {
	gen, err := uc.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	response, err := uc.ranker.AnalyzeStore(ctx, gen.store, gen.results, req)
	if err != nil {
		return nil, err
	}
	response.Warnings = append(gen.warnings, response.Warnings...)

	if req.Annotations {
		if uc.annotator == nil {
			return nil, domain.NewInvalidInputError("annotations requested but no annotator configured", nil)
		}
		idx, err := uc.annotator.Annotate(ctx, gen.results)
		if err != nil {
			return nil, fmt.Errorf("annotating lines: %w", err)
		}
		response.Annotations = idx
	}

	if req.OutputWriter != nil && uc.formatter != nil {
		if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, domain.NewOutputError("failed to write report", err)
		}
	}
	return response, nil
}

// Check runs the analyzers and flags hotspots with more than maxProblems problems
func (uc *HotspotUseCase) Check(ctx context.Context, req domain.HotspotRequest, maxProblems int) (*domain.CheckResult, error) {
	start := time.Now()

	gen, err := uc.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := uc.ranker.CheckStore(ctx, gen.store, gen.results, maxProblems)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start).Milliseconds()
	return result, nil
}

// Parse returns the parsed analyzer output without ranking it
func (uc *HotspotUseCase) Parse(ctx context.Context, req domain.HotspotRequest) ([]*domain.MetricResult, error) {
	gen, err := uc.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.OutputWriter != nil && uc.formatter != nil {
		if err := uc.formatter.WriteMetrics(gen.results, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, domain.NewOutputError("failed to write parsed output", err)
		}
	}
	return gen.results, nil
}

func (uc *HotspotUseCase) generate(ctx context.Context, req domain.HotspotRequest) (*generation, error) {
	if len(req.CapturedOutput) > 0 {
		return uc.parseCaptured(req)
	}
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}

	out, err := service.RunGenerators(ctx, uc.executor, uc.selectGenerators(req.Analyzers), files)
	if err != nil {
		return nil, fmt.Errorf("running analyzers: %w", err)
	}

	gen := &generation{results: out.Results, store: out.Store}
	if len(files) == 0 {
		gen.warnings = append(gen.warnings, noFilesWarning)
	}
	for _, f := range out.Failures {
		uc.logger.Printf("%s failed: %v", f.TaskName, f.Err)
		gen.warnings = append(gen.warnings, fmt.Sprintf("%s failed: %v", f.TaskName, f.Err))
	}
	return gen, nil
}

// parseCaptured parses replayed output in the bundled analyzer order
func (uc *HotspotUseCase) parseCaptured(req domain.HotspotRequest) (*generation, error) {
	gen := &generation{store: analyzer.NewRowStore()}
	for _, metric := range adapter.Metrics() {
		raw, ok := req.CapturedOutput[metric]
		if !ok {
			continue
		}
		result, err := service.ParseCaptured(metric, raw)
		if err != nil {
			return nil, err
		}
		gen.results = append(gen.results, result)
		gen.store.Merge(service.StoreFor(result))
	}
	if len(gen.results) != len(req.CapturedOutput) {
		return nil, domain.NewInvalidInputError("captured output for an unknown analyzer", nil)
	}
	return gen, nil
}

func (uc *HotspotUseCase) selectGenerators(names []string) []domain.MetricGenerator {
	if len(names) == 0 {
		return uc.generators
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var selected []domain.MetricGenerator
	for _, g := range uc.generators {
		if want[g.Metric()] {
			selected = append(selected, g)
		}
	}
	return selected
}

// HotspotUseCaseBuilder builds a HotspotUseCase
type HotspotUseCaseBuilder struct {
	generators []domain.MetricGenerator
	executor   domain.ParallelExecutor
	ranker     Ranker
	annotator  Annotator
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
	logger     *log.Logger
}

// NewHotspotUseCaseBuilder creates a new builder
func NewHotspotUseCaseBuilder() *HotspotUseCaseBuilder {
	return &HotspotUseCaseBuilder{}
}

// WithGenerators sets the analyzers to run, in report order
func (b *HotspotUseCaseBuilder) WithGenerators(generators ...domain.MetricGenerator) *HotspotUseCaseBuilder {
	b.generators = append(b.generators, generators...)
	return b
}

// WithExecutor sets the parallel executor
func (b *HotspotUseCaseBuilder) WithExecutor(executor domain.ParallelExecutor) *HotspotUseCaseBuilder {
	b.executor = executor
	return b
}

// WithRanker sets the ranker
func (b *HotspotUseCaseBuilder) WithRanker(ranker Ranker) *HotspotUseCaseBuilder {
	b.ranker = ranker
	return b
}

// WithAnnotator sets the line annotator
func (b *HotspotUseCaseBuilder) WithAnnotator(annotator Annotator) *HotspotUseCaseBuilder {
	b.annotator = annotator
	return b
}

// WithFormatter sets the output formatter
func (b *HotspotUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *HotspotUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithFileHelper sets the file helper
func (b *HotspotUseCaseBuilder) WithFileHelper(fh *FileHelper) *HotspotUseCaseBuilder {
	b.fileHelper = fh
	return b
}

// WithLogger sets the logger for analyzer failures
func (b *HotspotUseCaseBuilder) WithLogger(logger *log.Logger) *HotspotUseCaseBuilder {
	b.logger = logger
	return b
}

// Build creates the HotspotUseCase
func (b *HotspotUseCaseBuilder) Build() (*HotspotUseCase, error) {
	if b.ranker == nil {
		return nil, fmt.Errorf("ranker is required")
	}

	uc := &HotspotUseCase{
		generators: b.generators,
		executor:   b.executor,
		ranker:     b.ranker,
		annotator:  b.annotator,
		formatter:  b.formatter,
		fileHelper: b.fileHelper,
		logger:     b.logger,
	}

	if uc.executor == nil {
		uc.executor = service.NewParallelExecutor()
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}
	if uc.logger == nil {
		uc.logger = log.New(os.Stderr, constants.ToolName+": ", 0)
	}

	return uc, nil
}
