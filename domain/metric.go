package domain

import "fmt"

// EntityKind identifies what a ranked hotspot is: a file, a class or a method
type EntityKind string

const (
	KindFile   EntityKind = "file"
	KindClass  EntityKind = "class"
	KindMethod EntityKind = "method"
)

// EntityKinds lists the valid kinds in report order
var EntityKinds = []EntityKind{KindFile, KindClass, KindMethod}

// Valid reports whether k is one of file, class or method
func (k EntityKind) Valid() bool {
	switch k {
	case KindFile, KindClass, KindMethod:
		return true
	default:
		return false
	}
}

// CheckEntityKind returns an argument error for any kind outside the closed set
func CheckEntityKind(k EntityKind) error {
	if !k.Valid() {
		return NewArgumentError(fmt.Sprintf("item must be class, method, or file (got %q)", string(k)))
	}
	return nil
}

// Metric names produced by the bundled adapters
const (
	MetricReek  = "reek"
	MetricFlog  = "flog"
	MetricRoodi = "roodi"
)

// MetricRow is one measurement at one location.
// Rows are treated as immutable once an adapter has produced them.
type MetricRow struct {
	FilePath   string `json:"file_path" yaml:"file_path"`
	ClassName  string `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	MethodName string `json:"method_name,omitempty" yaml:"method_name,omitempty"`

	// Metric is the analyzer that produced the row (reek, flog, ...)
	Metric string `json:"metric" yaml:"metric"`

	// Analyzer specific payload
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
	Lines   []string `json:"lines,omitempty" yaml:"lines,omitempty"`
	Score   float64  `json:"score,omitempty" yaml:"score,omitempty"`
}

// Identifier returns the key under which the row is indexed for kind.
// ok is false when the row carries no identity for that kind. Methods
// defined outside any class belong to no class hotspot; TopLevelClass only
// names their receiver in a method location.
func (r MetricRow) Identifier(kind EntityKind) (id string, ok bool) {
	switch kind {
	case KindFile:
		return r.FilePath, r.FilePath != ""
	case KindClass:
		return r.ClassName, r.ClassName != "" && r.ClassName != TopLevelClass
	case KindMethod:
		if r.MethodName == "" {
			return "", false
		}
		return MethodIdentifier(r.ClassName, r.MethodName), true
	default:
		return "", false
	}
}

// MethodIdentifier joins class and method into the ranking key "Class#method"
func MethodIdentifier(className, methodName string) string {
	if className == "" {
		return methodName
	}
	return className + "#" + methodName
}

// TopLevelClass names the implicit receiver of methods defined outside any class
const TopLevelClass = "main"
