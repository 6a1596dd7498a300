package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/analyzer"
	"github.com/ludo-technologies/rbscan/internal/version"
	"github.com/oklog/ulid/v2"
)

// HotspotServiceImpl implements domain.HotspotService
type HotspotServiceImpl struct {
	logger *log.Logger
}

// NewHotspotService creates a new hotspot service
func NewHotspotService() *HotspotServiceImpl {
	return &HotspotServiceImpl{logger: newDefaultLogger()}
}

// SetLogger replaces the logger used for notices
func (s *HotspotServiceImpl) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Analyze folds results into a row store and ranks it
func (s *HotspotServiceImpl) Analyze(ctx context.Context, results []*domain.MetricResult, req domain.HotspotRequest) (*domain.HotspotResponse, error) {
	return s.AnalyzeStore(ctx, BuildRowStore(results), results, req)
}

// AnalyzeStore ranks an already populated store. results are only echoed
// into the report and used for the summary.
func (s *HotspotServiceImpl) AnalyzeStore(ctx context.Context, store *analyzer.RowStore, results []*domain.MetricResult, req domain.HotspotRequest) (*domain.HotspotResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	problems := s.problems(store, req)
	worst, err := problems.WorstItems(req.Top)
	if err != nil {
		return nil, fmt.Errorf("ranking hotspots: %w", err)
	}

	resp := &domain.HotspotResponse{
		RunID:       NewRunID(),
		Hotspots:    *worst,
		Metrics:     results,
		Summary:     summarize(store, results, worst),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
	if store.TotalRows() == 0 {
		const notice = "no problems were reported, nothing to rank"
		s.logger.Print(notice)
		resp.Warnings = append(resp.Warnings, notice)
	}
	return resp, nil
}

// CheckStore flags every hotspot with more rows than maxProblems.
// maxProblems <= 0 disables the check and always passes.
func (s *HotspotServiceImpl) CheckStore(ctx context.Context, store *analyzer.RowStore, results []*domain.MetricResult, maxProblems int) (*domain.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.CheckResult{
		Passed:      true,
		ExitCode:    0,
		Violations:  []domain.CheckViolation{},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Summary: domain.CheckSummary{
			FilesAnalyzed: countFiles(results),
			TotalRows:     store.TotalRows(),
			MaxProblems:   maxProblems,
		},
	}
	if maxProblems <= 0 {
		return result, nil
	}

	rankings := analyzer.NewRankingSet(store, domain.RankByProblems)
	problems := analyzer.NewAnalyzedProblems(rankings)
	for _, kind := range domain.EntityKinds {
		ids, err := rankings.Worst(kind, analyzer.AllItems)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			rows, err := rankings.SubTable(kind, id)
			if err != nil {
				return nil, err
			}
			if len(rows) <= maxProblems {
				// ranked by problem count, nothing further can exceed it
				break
			}
			loc, err := problems.Location(kind, id)
			if err != nil {
				return nil, err
			}
			result.Violations = append(result.Violations, domain.CheckViolation{
				Kind:      kind,
				Rule:      "max-problems",
				Severity:  "error",
				Message:   fmt.Sprintf("%s %s has %d problems", kind, id, len(rows)),
				Location:  loc.String(),
				Actual:    fmt.Sprintf("%d", len(rows)),
				Threshold: fmt.Sprintf("%d", maxProblems),
			})
		}
	}

	result.Summary.TotalViolations = len(result.Violations)
	if len(result.Violations) > 0 {
		result.Passed = false
		result.ExitCode = 1
	}
	return result, nil
}

func (s *HotspotServiceImpl) problems(store *analyzer.RowStore, req domain.HotspotRequest) *analyzer.AnalyzedProblems {
	order := req.RankBy
	if order == "" {
		order = domain.RankByInsertion
	}
	rankings := analyzer.NewRankingSet(store, order)

	var opts []analyzer.ProblemsOption
	if req.Verbosity != "" {
		opts = append(opts, analyzer.WithVerbosity(req.Verbosity))
	}
	if len(req.ExcludeMetrics) > 0 {
		opts = append(opts, analyzer.WithExcludedMetrics(req.ExcludeMetrics))
	}
	return analyzer.NewAnalyzedProblems(rankings, opts...)
}

func summarize(store *analyzer.RowStore, results []*domain.MetricResult, worst *domain.WorstItems) domain.HotspotSummary {
	return domain.HotspotSummary{
		FilesAnalyzed: countFiles(results),
		TotalRows:     store.TotalRows(),
		RowsByMetric:  store.RowCounts(),
		WorstFiles:    len(worst.Files),
		WorstClasses:  len(worst.Classes),
		WorstMethods:  len(worst.Methods),
	}
}

// countFiles counts distinct files named by any analyzer, including files
// an analyzer reported zero warnings for
func countFiles(results []*domain.MetricResult) int {
	seen := make(map[string]bool)
	for _, r := range results {
		for _, m := range r.Matches {
			seen[m.FilePath] = true
		}
	}
	return len(seen)
}

// NewRunID returns a sortable identifier for one report
func NewRunID() string {
	return ulid.Make().String()
}
