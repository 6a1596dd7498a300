package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/rbscan/domain"
)

// ProblemPresenter renders the rows of one metric for a hotspot
type ProblemPresenter interface {
	Summary(rows []domain.MetricRow) string
	Detail(row domain.MetricRow) string
}

var presenters = map[string]ProblemPresenter{
	domain.MetricReek:  reekPresenter{},
	domain.MetricFlog:  flogPresenter{},
	domain.MetricRoodi: roodiPresenter{},
}

// PresenterFor returns the presenter registered for metric, or a generic one
func PresenterFor(metric string) ProblemPresenter {
	if p, ok := presenters[metric]; ok {
		return p
	}
	return genericPresenter{}
}

// Problems renders the group at the given verbosity. Metrics named in
// excluded are dropped before rendering. Each line is prefixed with its
// metric name.
func Problems(group *ProblemGroup, verbosity domain.Verbosity, excluded []string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, m := range excluded {
		skip[m] = true
	}

	var out []string
	for _, metric := range group.metrics {
		if skip[metric] {
			continue
		}
		rows := group.rows[metric]
		p := PresenterFor(metric)
		if verbosity == domain.VerbosityDetailed {
			for _, row := range rows {
				out = append(out, metric+": "+p.Detail(row))
			}
			continue
		}
		out = append(out, metric+": "+p.Summary(rows))
	}
	return out
}

type reekPresenter struct{}

func (reekPresenter) Summary(rows []domain.MetricRow) string {
	return countPhrase(len(rows), "code smell")
}

func (reekPresenter) Detail(row domain.MetricRow) string {
	if row.Type == "" {
		return row.Message
	}
	return row.Type + " - " + row.Message
}

type flogPresenter struct{}

func (flogPresenter) Summary(rows []domain.MetricRow) string {
	worst := 0.0
	for _, row := range rows {
		if row.Score > worst {
			worst = row.Score
		}
	}
	return fmt.Sprintf("complexity is %.1f", worst)
}

func (flogPresenter) Detail(row domain.MetricRow) string {
	return fmt.Sprintf("complexity is %.1f", row.Score)
}

type roodiPresenter struct{}

func (roodiPresenter) Summary(rows []domain.MetricRow) string {
	return countPhrase(len(rows), "design problem")
}

func (roodiPresenter) Detail(row domain.MetricRow) string {
	return row.Message
}

type genericPresenter struct{}

func (genericPresenter) Summary(rows []domain.MetricRow) string {
	return countPhrase(len(rows), "problem")
}

func (genericPresenter) Detail(row domain.MetricRow) string {
	parts := make([]string, 0, 2)
	if row.Type != "" {
		parts = append(parts, row.Type)
	}
	if row.Message != "" {
		parts = append(parts, row.Message)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("score %.1f", row.Score)
	}
	return strings.Join(parts, " - ")
}

func countPhrase(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("found 1 %s", noun)
	}
	return fmt.Sprintf("found %d %ss", n, noun)
}
