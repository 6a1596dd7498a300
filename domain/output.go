package domain

import "io"

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat maps a flag or config value to an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return OutputFormat(s), nil
	case "yml":
		return OutputFormatYAML, nil
	default:
		return "", NewUnsupportedFormatError(s)
	}
}

// OutputFormatter defines the interface for formatting hotspot reports
type OutputFormatter interface {
	// Write writes the formatted report to the writer
	Write(response *HotspotResponse, format OutputFormat, writer io.Writer) error

	// WriteMetrics writes raw parsed analyzer results as {metric: {matches}}
	WriteMetrics(results []*MetricResult, format OutputFormat, writer io.Writer) error
}

// FileReader defines file collection and reading for Ruby sources
type FileReader interface {
	// CollectRubyFiles finds Ruby files in the given paths
	CollectRubyFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidRubyFile checks if a file is a Ruby source file
	IsValidRubyFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*HotspotRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *HotspotRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *HotspotRequest, override *HotspotRequest) *HotspotRequest
}
