package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/ludo-technologies/rbscan/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Write writes the hotspot report in the specified format
func (f *OutputFormatterImpl) Write(response *domain.HotspotResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeHotspotsText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteMetrics writes parsed analyzer output as {metric: {matches: [...]}}
func (f *OutputFormatterImpl) WriteMetrics(results []*domain.MetricResult, format domain.OutputFormat, writer io.Writer) error {
	merged := make(map[string]interface{}, len(results))
	for _, r := range results {
		for k, v := range r.ToMap() {
			merged[k] = v
		}
	}

	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, merged)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, merged)
	case domain.OutputFormatText:
		return f.writeMetricsText(results, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteCheck writes a threshold check result
func (f *OutputFormatterImpl) WriteCheck(result *domain.CheckResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, result)
	case domain.OutputFormatText:
		return f.writeCheckText(result, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeHotspotsText writes the hotspot report as plain text
func (f *OutputFormatterImpl) writeHotspotsText(response *domain.HotspotResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Hotspots ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n", response.Version)
	fmt.Fprintf(writer, "Run: %s\n\n", response.RunID)

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files analyzed: %d\n", response.Summary.FilesAnalyzed)
	fmt.Fprintf(writer, "  Total problems: %d\n", response.Summary.TotalRows)
	for _, metric := range sortedKeys(response.Summary.RowsByMetric) {
		fmt.Fprintf(writer, "    %s: %d\n", metric, response.Summary.RowsByMetric[metric])
	}

	titles := map[domain.EntityKind]string{
		domain.KindFile:   "Worst Files",
		domain.KindClass:  "Worst Classes",
		domain.KindMethod: "Worst Methods",
	}
	for _, kind := range domain.EntityKinds {
		items := response.Hotspots.ForKind(kind)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(writer, "\n%s:\n", titles[kind])
		for i, item := range items {
			fmt.Fprintf(writer, "  %d. %s\n", i+1, item.Location)
			for _, d := range item.Details {
				fmt.Fprintf(writer, "       %s\n", d)
			}
		}
	}

	if len(response.Annotations) > 0 {
		fmt.Fprintf(writer, "\nAnnotated Lines:\n")
		for _, path := range sortedKeys(response.Annotations) {
			lines := response.Annotations[path]
			fmt.Fprintf(writer, "  %s\n", path)
			for _, line := range sortedLineKeys(lines) {
				for _, a := range lines[line] {
					fmt.Fprintf(writer, "    %4s  [%s] %s\n", line, a.Type, a.Description)
				}
			}
		}
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	return nil
}

// writeMetricsText writes parsed analyzer output as plain text
func (f *OutputFormatterImpl) writeMetricsText(results []*domain.MetricResult, writer io.Writer) error {
	for _, r := range results {
		fmt.Fprintf(writer, "\n=== %s ===\n", r.Metric)
		if r.Skipped {
			fmt.Fprintf(writer, "  skipped, no files to analyze\n")
			continue
		}
		for _, m := range r.Matches {
			fmt.Fprintf(writer, "%s -- %d warnings\n", m.FilePath, len(m.CodeSmells))
			for _, smell := range m.CodeSmells {
				fmt.Fprintf(writer, "  [%s] %s %s %s\n",
					joinLines(smell.Lines), smell.Method, smell.Type, smell.Message)
			}
		}
		fmt.Fprintf(writer, "%d total warnings\n", r.TotalFindings())
	}
	return nil
}

// writeCheckText writes a threshold check result as plain text
func (f *OutputFormatterImpl) writeCheckText(result *domain.CheckResult, writer io.Writer) error {
	if result.Passed {
		fmt.Fprintf(writer, "Check passed: no hotspot exceeds %d problems (%d problems in %d files)\n",
			result.Summary.MaxProblems, result.Summary.TotalRows, result.Summary.FilesAnalyzed)
		return nil
	}

	fmt.Fprintf(writer, "Check failed: %d hotspots exceed %d problems\n\n",
		result.Summary.TotalViolations, result.Summary.MaxProblems)
	for _, v := range result.Violations {
		fmt.Fprintf(writer, "  [%s] %s: %s\n", v.Severity, v.Location, v.Message)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedLineKeys orders line keys numerically
func sortedLineKeys(m map[string][]domain.LineAnnotation) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += ", "
		}
		out += l
	}
	return out
}
