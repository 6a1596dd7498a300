package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/rbscan/domain"
)

// AnalyzedProblems turns a RankingSet into ranked hotspots with rendered
// problem descriptions.
type AnalyzedProblems struct {
	rankings  *RankingSet
	verbosity domain.Verbosity
	excluded  []string
}

// ProblemsOption configures AnalyzedProblems
type ProblemsOption func(*AnalyzedProblems)

// WithVerbosity sets how problems are rendered
func WithVerbosity(v domain.Verbosity) ProblemsOption {
	return func(a *AnalyzedProblems) {
		if v.Valid() {
			a.verbosity = v
		}
	}
}

// WithExcludedMetrics drops the named metrics from rendered problems
func WithExcludedMetrics(metrics []string) ProblemsOption {
	return func(a *AnalyzedProblems) {
		a.excluded = append([]string(nil), metrics...)
	}
}

// NewAnalyzedProblems creates a ranker over rankings
func NewAnalyzedProblems(rankings *RankingSet, opts ...ProblemsOption) *AnalyzedProblems {
	a := &AnalyzedProblems{
		rankings:  rankings,
		verbosity: domain.VerbositySummary,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WorstItems returns up to num hotspots per kind, in ranking order.
// num <= 0 (AllItems) returns every known identifier. The first identifier
// with no backing rows aborts the report with an analysis error.
func (a *AnalyzedProblems) WorstItems(num int) (*domain.WorstItems, error) {
	out := &domain.WorstItems{}
	for _, kind := range domain.EntityKinds {
		items, err := a.worstOfKind(kind, num)
		if err != nil {
			return nil, err
		}
		switch kind {
		case domain.KindFile:
			out.Files = items
		case domain.KindClass:
			out.Classes = items
		case domain.KindMethod:
			out.Methods = items
		}
	}
	return out, nil
}

func (a *AnalyzedProblems) worstOfKind(kind domain.EntityKind, num int) ([]domain.WorstItem, error) {
	ids, err := a.rankings.Worst(kind, num)
	if err != nil {
		return nil, err
	}
	items := make([]domain.WorstItem, 0, len(ids))
	for _, id := range ids {
		loc, err := a.Location(kind, id)
		if err != nil {
			return nil, err
		}
		details, err := a.ProblemsWith(kind, id)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.WorstItem{Location: loc, Details: details})
	}
	return items, nil
}

// Location resolves identifier to a Location using the first row of its
// sub-table.
func (a *AnalyzedProblems) Location(kind domain.EntityKind, identifier string) (domain.Location, error) {
	rows, err := a.rankings.SubTable(kind, identifier)
	if err != nil {
		return domain.Location{}, err
	}
	if len(rows) == 0 {
		return domain.Location{}, domain.NewAnalysisError(
			fmt.Sprintf("no rows for %s %q", kind, identifier), nil)
	}

	loc, err := locationOf(kind, rows[0])
	if err != nil {
		return domain.Location{}, domain.NewAnalysisError(
			fmt.Sprintf("first row of %s %q cannot form a location", kind, identifier), err)
	}
	return loc, nil
}

func locationOf(kind domain.EntityKind, row domain.MetricRow) (domain.Location, error) {
	switch kind {
	case domain.KindFile:
		return domain.NewFileLocation(row.FilePath)
	case domain.KindClass:
		return domain.NewClassLocation(row.FilePath, row.ClassName)
	default:
		className := row.ClassName
		if className == "" {
			className = domain.TopLevelClass
		}
		return domain.NewMethodLocation(row.FilePath, className, row.MethodName)
	}
}

// ProblemsWith renders the problems recorded for (kind, identifier)
func (a *AnalyzedProblems) ProblemsWith(kind domain.EntityKind, identifier string) ([]string, error) {
	rows, err := a.rankings.SubTable(kind, identifier)
	if err != nil {
		return nil, err
	}
	return Problems(GroupByMetric(rows), a.verbosity, a.excluded), nil
}
