package domain

import "context"

// Finding is one structured problem extracted from an analyzer's raw output
type Finding struct {
	Lines   []string `json:"lines" yaml:"lines"`
	Method  string   `json:"method" yaml:"method"`
	Message string   `json:"message" yaml:"message"`
	Type    string   `json:"type" yaml:"type"`

	// Score is set by scoring analyzers such as flog
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// FileFindings groups the findings reported for one file.
// An empty CodeSmells list means the analyzer reported zero warnings for it.
type FileFindings struct {
	FilePath   string    `json:"file_path" yaml:"file_path"`
	CodeSmells []Finding `json:"code_smells" yaml:"code_smells"`
}

// MetricResult is the parsed output of one analyzer run
type MetricResult struct {
	Metric  string         `json:"metric" yaml:"metric"`
	Matches []FileFindings `json:"matches" yaml:"matches"`

	// Skipped is set when there was nothing to analyze
	Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// ToMap renders the result as {metric: {matches: [...]}}
func (r *MetricResult) ToMap() map[string]interface{} {
	matches := r.Matches
	if matches == nil {
		matches = []FileFindings{}
	}
	return map[string]interface{}{
		r.Metric: map[string]interface{}{
			"matches": matches,
		},
	}
}

// TotalFindings counts findings across all files
func (r *MetricResult) TotalFindings() int {
	total := 0
	for _, m := range r.Matches {
		total += len(m.CodeSmells)
	}
	return total
}

// LineAnnotation overlays one finding onto a rendered source line
type LineAnnotation struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// AnnotationIndex maps file path -> line number -> annotations
type AnnotationIndex map[string]map[string][]LineAnnotation

// Add appends an annotation for a file line
func (idx AnnotationIndex) Add(filePath, line string, a LineAnnotation) {
	lines, ok := idx[filePath]
	if !ok {
		lines = make(map[string][]LineAnnotation)
		idx[filePath] = lines
	}
	lines[line] = append(lines[line], a)
}

// AnalyzerRunner produces the raw standard output of an external analyzer.
// Invoking the process is the runner's concern, never the parser's.
type AnalyzerRunner interface {
	Run(ctx context.Context, tool string, args []string) (string, error)
}

// SourceReader gives access to the text of source files referenced by findings
type SourceReader interface {
	ReadFile(path string) ([]byte, error)
}
