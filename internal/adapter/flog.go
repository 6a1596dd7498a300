package adapter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ludo-technologies/rbscan/domain"
)

// score: Context#method  path:start-end
var flogLine = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?):\s+(\S+)\s+(\S+?):(\d+)(?:-(\d+))?\s*$`)

// FlogParser parses `flog --all --details`-style method listings
type FlogParser struct{}

// NewFlogParser creates a flog parser
func NewFlogParser() *FlogParser {
	return &FlogParser{}
}

// Metric returns "flog"
func (p *FlogParser) Metric() string {
	return domain.MetricFlog
}

// Parse groups scored methods by file in first-seen order. Total and
// average lines, and methods without a source location, are dropped.
func (p *FlogParser) Parse(raw string) ([]domain.FileFindings, error) {
	var out []domain.FileFindings
	index := make(map[string]int)

	for _, line := range strings.Split(raw, "\n") {
		m := flogLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		score, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}

		lines := []string{m[4]}
		if m[5] != "" {
			lines = append(lines, m[5])
		}
		f := domain.Finding{
			Lines:   lines,
			Method:  m[2],
			Message: fmt.Sprintf("complexity score %.1f", score),
			Type:    "Complexity",
			Score:   score,
		}

		path := m[3]
		i, ok := index[path]
		if !ok {
			i = len(out)
			index[path] = i
			out = append(out, domain.FileFindings{FilePath: path})
		}
		out[i].CodeSmells = append(out[i].CodeSmells, f)
	}
	return out, nil
}
