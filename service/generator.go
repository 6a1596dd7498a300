package service

import (
	"context"
	"fmt"
	"log"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/adapter"
	"github.com/ludo-technologies/rbscan/internal/config"
)

// AnalyzerGenerator runs one external analyzer and parses its output
type AnalyzerGenerator struct {
	metric string
	cfg    config.AnalyzerConfig
	runner domain.AnalyzerRunner
	parser adapter.Parser
	logger *log.Logger
}

// NewAnalyzerGenerator creates a generator for metric using cfg to build the command line
func NewAnalyzerGenerator(metric string, cfg config.AnalyzerConfig, runner domain.AnalyzerRunner) (*AnalyzerGenerator, error) {
	parser, err := adapter.ForMetric(metric)
	if err != nil {
		return nil, err
	}
	if runner == nil {
		return nil, domain.NewInvalidInputError("analyzer runner is required", nil)
	}
	return &AnalyzerGenerator{
		metric: metric,
		cfg:    cfg,
		runner: runner,
		parser: parser,
		logger: newDefaultLogger(),
	}, nil
}

// SetLogger replaces the logger used for notices
func (g *AnalyzerGenerator) SetLogger(logger *log.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Metric returns the metric this generator produces
func (g *AnalyzerGenerator) Metric() string {
	return g.metric
}

// Generate runs the analyzer over files. An empty file set is not an
// error: the run is skipped and an empty result is returned.
func (g *AnalyzerGenerator) Generate(ctx context.Context, files []string) (*domain.MetricResult, error) {
	if len(files) == 0 {
		g.logger.Printf("Skipping %s, no files found to analyze", g.metric)
		return &domain.MetricResult{Metric: g.metric, Matches: []domain.FileFindings{}, Skipped: true}, nil
	}

	args := g.args(ctx, files)
	out, err := g.runner.Run(ctx, g.cfg.Command, args)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", g.metric, err)
	}
	return ParseOutput(g.parser, out)
}

func (g *AnalyzerGenerator) args(ctx context.Context, files []string) []string {
	args := make([]string, 0, len(g.cfg.Args)+len(files)+3)
	args = append(args, g.cfg.Args...)

	if g.metric != domain.MetricReek {
		return append(args, files...)
	}

	version, err := g.runner.Run(ctx, g.cfg.Command, []string{"--version"})
	if err != nil {
		g.logger.Printf("could not determine reek version: %v", err)
		version = ""
	}
	return append(args, adapter.ReekArgs(adapter.ReekVersion(version), g.cfg.ConfigFilePattern, files)...)
}

// ParseOutput parses raw analyzer output into a MetricResult
func ParseOutput(parser adapter.Parser, raw string) (*domain.MetricResult, error) {
	matches, err := parser.Parse(raw)
	if err != nil {
		return nil, domain.NewParseError(parser.Metric()+" output", err)
	}
	if matches == nil {
		matches = []domain.FileFindings{}
	}
	return &domain.MetricResult{Metric: parser.Metric(), Matches: matches}, nil
}

// ParseCaptured parses output previously captured from the analyzer behind metric
func ParseCaptured(metric, raw string) (*domain.MetricResult, error) {
	parser, err := adapter.ForMetric(metric)
	if err != nil {
		return nil, err
	}
	return ParseOutput(parser, raw)
}

// NewGenerators builds a generator for every analyzer name using cfg
func NewGenerators(cfg *config.Config, names []string, runner domain.AnalyzerRunner, logger *log.Logger) ([]domain.MetricGenerator, error) {
	generators := make([]domain.MetricGenerator, 0, len(names))
	for _, name := range names {
		ac, ok := cfg.Analyzer(name)
		if !ok {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown analyzer %q", name), nil)
		}
		gen, err := NewAnalyzerGenerator(name, ac, runner)
		if err != nil {
			return nil, err
		}
		gen.SetLogger(logger)
		generators = append(generators, gen)
	}
	return generators, nil
}
