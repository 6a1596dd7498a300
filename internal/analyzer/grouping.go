package analyzer

import "github.com/ludo-technologies/rbscan/domain"

// ProblemGroup partitions one location's rows by metric name.
// Metrics keep the order they were first seen in.
type ProblemGroup struct {
	metrics []string
	rows    map[string][]domain.MetricRow
}

// GroupByMetric groups rows by their metric name. It does not modify rows
// and returns the same grouping for the same input.
func GroupByMetric(rows []domain.MetricRow) *ProblemGroup {
	g := &ProblemGroup{rows: make(map[string][]domain.MetricRow)}
	for _, row := range rows {
		if _, ok := g.rows[row.Metric]; !ok {
			g.metrics = append(g.metrics, row.Metric)
		}
		g.rows[row.Metric] = append(g.rows[row.Metric], row)
	}
	return g
}

// Metrics returns the metric names in first-seen order
func (g *ProblemGroup) Metrics() []string {
	out := make([]string, len(g.metrics))
	copy(out, g.metrics)
	return out
}

// Rows returns the rows recorded for metric
func (g *ProblemGroup) Rows(metric string) []domain.MetricRow {
	return g.rows[metric]
}

// Len returns the number of metrics in the group
func (g *ProblemGroup) Len() int {
	return len(g.metrics)
}
