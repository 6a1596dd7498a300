// Package adapter turns the free-text output of Ruby quality analyzers
// into structured findings and folds them into metric rows.
package adapter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ludo-technologies/rbscan/domain"
)

// Parser parses the raw output of one analyzer kind
type Parser interface {
	// Metric returns the metric name rows from this parser are stored under
	Metric() string

	// Parse extracts per-file findings. Malformed fragments are dropped.
	Parse(raw string) ([]domain.FileFindings, error)
}

// ForMetric returns the parser registered for metric
func ForMetric(metric string) (Parser, error) {
	switch metric {
	case domain.MetricReek:
		return NewReekParser(), nil
	case domain.MetricFlog:
		return NewFlogParser(), nil
	case domain.MetricRoodi:
		return NewRoodiParser(), nil
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("no parser for metric %q", metric), nil)
	}
}

// Metrics lists the metrics a parser exists for
func Metrics() []string {
	return []string{domain.MetricReek, domain.MetricFlog, domain.MetricRoodi}
}

// Rows folds findings into metric rows, one row per finding, in input order.
// Findings of a file with no path are dropped since no location can hold them.
func Rows(metric string, files []domain.FileFindings) []domain.MetricRow {
	var rows []domain.MetricRow
	for _, file := range files {
		if strings.TrimSpace(file.FilePath) == "" {
			continue
		}
		for _, f := range file.CodeSmells {
			className, methodName := SplitMethod(f.Method)
			var lines []string
			if len(f.Lines) > 0 {
				lines = append(lines, f.Lines...)
			}
			rows = append(rows, domain.MetricRow{
				FilePath:   file.FilePath,
				ClassName:  className,
				MethodName: methodName,
				Metric:     metric,
				Type:       f.Type,
				Message:    f.Message,
				Lines:      lines,
				Score:      f.Score,
			})
		}
	}
	return rows
}

// SplitMethod splits an analyzer's method token into class and method.
//
//	A::B#m     -> A::B, m
//	A#self.m   -> A, self.m
//	A.m        -> A, self.m
//	A::B::m    -> A::B, self.m
//	A::B       -> A::B, ""
//	A#none     -> A, ""        (flog's class body context)
//	m          -> main, m
//	main#none  -> "", ""       (file level)
func SplitMethod(token string) (className, methodName string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ""
	}

	if i := strings.LastIndex(token, "#"); i >= 0 {
		className, methodName = token[:i], token[i+1:]
	} else if i := strings.LastIndex(token, "::"); i >= 0 && startsLower(token[i+2:]) {
		className, methodName = token[:i], "self."+token[i+2:]
	} else if i := strings.Index(token, "."); i > 0 && startsUpper(token) {
		className, methodName = token[:i], "self."+token[i+1:]
	} else if startsUpper(token) {
		return token, ""
	} else {
		return domain.TopLevelClass, token
	}

	if methodName == "none" {
		methodName = ""
	}
	if className == "" {
		className = domain.TopLevelClass
	}
	if className == domain.TopLevelClass && methodName == "" {
		return "", ""
	}
	return className, methodName
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r) || r == '_'
	}
	return false
}
