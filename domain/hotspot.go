package domain

import (
	"context"
	"io"
)

// Verbosity selects how problems are rendered for a hotspot
type Verbosity string

const (
	// VerbositySummary renders one line per metric
	VerbositySummary Verbosity = "summary"
	// VerbosityDetailed renders every underlying row
	VerbosityDetailed Verbosity = "detailed"
)

// Valid reports whether v is a known verbosity
func (v Verbosity) Valid() bool {
	return v == VerbositySummary || v == VerbosityDetailed
}

// RankOrder selects how worst identifiers are ordered before ranking
type RankOrder string

const (
	// RankByInsertion keeps the order in which rows entered the store
	RankByInsertion RankOrder = "insertion"
	// RankByProblems orders identifiers by number of rows, most first
	RankByProblems RankOrder = "problems"
)

// WorstItem is one ranked hotspot with its rendered problems
type WorstItem struct {
	Location Location `json:"location" yaml:"location"`
	Details  []string `json:"details" yaml:"details"`
}

// WorstItems holds the ranked hotspots per entity kind
type WorstItems struct {
	Files   []WorstItem `json:"files" yaml:"files"`
	Classes []WorstItem `json:"classes" yaml:"classes"`
	Methods []WorstItem `json:"methods" yaml:"methods"`
}

// ForKind returns the list for kind, or nil for an invalid kind
func (w *WorstItems) ForKind(kind EntityKind) []WorstItem {
	switch kind {
	case KindFile:
		return w.Files
	case KindClass:
		return w.Classes
	case KindMethod:
		return w.Methods
	default:
		return nil
	}
}

// HotspotRequest represents a request for hotspot analysis
type HotspotRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Analyzers to run (reek, flog, roodi); empty means all enabled in config
	Analyzers []string

	// Captured analyzer output keyed by metric; replaces running the tool
	CapturedOutput map[string]string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer

	// Ranking
	Top            int // 0 means all
	Verbosity      Verbosity
	ExcludeMetrics []string
	RankBy         RankOrder

	// Annotations requests the per-line annotation index
	Annotations bool

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// HotspotSummary holds aggregate counts for a report
type HotspotSummary struct {
	FilesAnalyzed int            `json:"files_analyzed" yaml:"files_analyzed"`
	TotalRows     int            `json:"total_rows" yaml:"total_rows"`
	RowsByMetric  map[string]int `json:"rows_by_metric,omitempty" yaml:"rows_by_metric,omitempty"`
	WorstFiles    int            `json:"worst_files" yaml:"worst_files"`
	WorstClasses  int            `json:"worst_classes" yaml:"worst_classes"`
	WorstMethods  int            `json:"worst_methods" yaml:"worst_methods"`
}

// HotspotResponse represents the complete hotspot report
type HotspotResponse struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	Hotspots    WorstItems      `json:"hotspots" yaml:"hotspots"`
	Metrics     []*MetricResult `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Annotations AnnotationIndex `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Summary     HotspotSummary  `json:"summary" yaml:"summary"`
	Warnings    []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string          `json:"generated_at" yaml:"generated_at"`
	Version     string          `json:"version" yaml:"version"`
	Config      interface{}     `json:"config,omitempty" yaml:"config,omitempty"`
}

// HotspotService ranks hotspots from parsed analyzer results
type HotspotService interface {
	Analyze(ctx context.Context, results []*MetricResult, req HotspotRequest) (*HotspotResponse, error)
}

// MetricGenerator runs one analyzer over a set of files and parses its output
type MetricGenerator interface {
	Metric() string
	Generate(ctx context.Context, files []string) (*MetricResult, error)
}
