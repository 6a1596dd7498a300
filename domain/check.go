package domain

// CheckResult represents the result of a hotspot threshold check
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single hotspot over the problem threshold
type CheckViolation struct {
	Kind      EntityKind `json:"kind"`               // file, class, method
	Rule      string     `json:"rule"`               // max-problems
	Severity  string     `json:"severity"`           // error, warning
	Message   string     `json:"message"`            // Human-readable description
	Location  string     `json:"location,omitempty"` // Rendered location
	Actual    string     `json:"actual"`             // Actual value
	Threshold string     `json:"threshold,omitempty"`
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	TotalViolations int `json:"total_violations"`
	TotalRows       int `json:"total_rows"`
	MaxProblems     int `json:"max_problems"`
}
