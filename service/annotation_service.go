package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/parser"
)

// MethodLines answers where a method definition starts
type MethodLines interface {
	StartLineFor(method string) (int, bool)
}

// LineResolverFunc builds a MethodLines index for one source file
type LineResolverFunc func(ctx context.Context, source []byte, path string) (MethodLines, error)

// resolveWithParser is the default LineResolverFunc backed by tree-sitter
func resolveWithParser(ctx context.Context, source []byte, path string) (MethodLines, error) {
	return parser.NewLineNumbersCtx(ctx, source, path)
}

// AnnotationService builds the per-file, per-line annotation index
type AnnotationService struct {
	reader   domain.SourceReader
	resolve  LineResolverFunc
	progress domain.ProgressManager
	logger   *log.Logger
}

// NewAnnotationService creates an annotation service reading sources through reader
func NewAnnotationService(reader domain.SourceReader) *AnnotationService {
	return &AnnotationService{
		reader:  reader,
		resolve: resolveWithParser,
		logger:  newDefaultLogger(),
	}
}

// NewAnnotationServiceWithProgress creates an annotation service reporting per-file progress
func NewAnnotationServiceWithProgress(reader domain.SourceReader, pm domain.ProgressManager) *AnnotationService {
	s := NewAnnotationService(reader)
	s.progress = pm
	return s
}

// SetLogger replaces the logger used for skipped files
func (s *AnnotationService) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Annotate maps every finding onto the line its method starts on.
// Template files are skipped before any read. A file the resolver cannot
// parse is logged and skipped; any other failure aborts.
func (s *AnnotationService) Annotate(ctx context.Context, results []*domain.MetricResult) (domain.AnnotationIndex, error) {
	idx := make(domain.AnnotationIndex)

	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	task := startTask(s.progress, "Annotating lines", total)
	defer task.Complete()

	cache := make(map[string]MethodLines)
	skipped := make(map[string]bool)

	for _, r := range results {
		for _, file := range r.Matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			task.Describe(file.FilePath)

			lines, ok, err := s.methodLines(ctx, file.FilePath, cache, skipped, r.Metric)
			if err != nil {
				return nil, err
			}
			if ok {
				addAnnotations(idx, r.Metric, file, lines)
			}
			task.Increment(1)
		}
	}
	return idx, nil
}

func (s *AnnotationService) methodLines(ctx context.Context, path string, cache map[string]MethodLines, skipped map[string]bool, metric string) (MethodLines, bool, error) {
	if !parser.Resolvable(path) || skipped[path] {
		return nil, false, nil
	}
	if lines, ok := cache[path]; ok {
		return lines, true, nil
	}

	source, err := s.reader.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	lines, err := s.resolve(ctx, source, path)
	if err != nil {
		if errors.Is(err, parser.ErrUnparseableSource) {
			s.logger.Printf("could not parse %s, method level %s information is unavailable for this file", path, metric)
			skipped[path] = true
			return nil, false, nil
		}
		return nil, false, err
	}
	cache[path] = lines
	return lines, true, nil
}

func addAnnotations(idx domain.AnnotationIndex, metric string, file domain.FileFindings, lines MethodLines) {
	for _, f := range file.CodeSmells {
		line, ok := findingLine(f, lines)
		if !ok {
			continue
		}
		idx.Add(file.FilePath, line, domain.LineAnnotation{
			Type:        metric,
			Description: f.Type + " - " + f.Message,
		})
	}
}

// findingLine prefers the resolved method start and falls back to the
// first line the analyzer reported
func findingLine(f domain.Finding, lines MethodLines) (string, bool) {
	if n, ok := lines.StartLineFor(f.Method); ok {
		return strconv.Itoa(n), true
	}
	if len(f.Lines) > 0 && f.Lines[0] != "" {
		return f.Lines[0], true
	}
	return "", false
}
