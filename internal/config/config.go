package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default hotspot settings
const (
	// DefaultTop lists every hotspot; any positive value caps each list
	DefaultTop = 0

	// DefaultVerbosity renders one summary line per metric
	DefaultVerbosity = "summary"

	// DefaultRankBy keeps the order in which analyzers reported problems
	DefaultRankBy = "insertion"

	// DefaultMaxProblems disables the check threshold
	DefaultMaxProblems = 0
)

// Default performance settings
const (
	// DefaultMaxGoroutines bounds how many analyzers run at once
	DefaultMaxGoroutines = 3

	// DefaultTimeoutSeconds bounds a whole analyzer run
	DefaultTimeoutSeconds = 300
)

// Config represents the main configuration structure
type Config struct {
	// Analyzers holds per-analyzer configuration
	Analyzers AnalyzersConfig `json:"analyzers" mapstructure:"analyzers" yaml:"analyzers"`

	// Hotspots holds ranking and rendering configuration
	Hotspots HotspotsConfig `json:"hotspots" mapstructure:"hotspots" yaml:"hotspots"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`

	// Performance holds concurrency and timeout configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// AnalyzersConfig holds the configuration of each supported analyzer
type AnalyzersConfig struct {
	Reek  AnalyzerConfig `json:"reek" mapstructure:"reek" yaml:"reek"`
	Flog  AnalyzerConfig `json:"flog" mapstructure:"flog" yaml:"flog"`
	Roodi AnalyzerConfig `json:"roodi" mapstructure:"roodi" yaml:"roodi"`
}

// AnalyzerConfig holds configuration for running one external analyzer
type AnalyzerConfig struct {
	// Enabled controls whether the analyzer is run
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Command is the executable to run, looked up on PATH
	Command string `json:"command" mapstructure:"command" yaml:"command"`

	// Args are passed before the file list
	Args []string `json:"args" mapstructure:"args" yaml:"args"`

	// ConfigFilePattern is passed as --config when set (reek only)
	ConfigFilePattern string `json:"config_file_pattern" mapstructure:"config_file_pattern" yaml:"config_file_pattern"`
}

// HotspotsConfig holds configuration for hotspot ranking
type HotspotsConfig struct {
	// Top caps each worst list; 0 lists everything
	Top int `json:"top" mapstructure:"top" yaml:"top"`

	// Verbosity is summary or detailed
	Verbosity string `json:"verbosity" mapstructure:"verbosity" yaml:"verbosity"`

	// ExcludeMetrics removes whole metrics from rendered problems
	ExcludeMetrics []string `json:"exclude_metrics" mapstructure:"exclude_metrics" yaml:"exclude_metrics"`

	// RankBy is insertion or problems
	RankBy string `json:"rank_by" mapstructure:"rank_by" yaml:"rank_by"`

	// MaxProblems is the check threshold per hotspot; 0 disables it
	MaxProblems int `json:"max_problems" mapstructure:"max_problems" yaml:"max_problems"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`
}

// PerformanceConfig holds concurrency settings
type PerformanceConfig struct {
	// MaxGoroutines bounds concurrently running analyzers
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds the whole run; 0 uses the default
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analyzers: AnalyzersConfig{
			Reek:  AnalyzerConfig{Enabled: true, Command: "reek", Args: []string{}},
			Flog:  AnalyzerConfig{Enabled: true, Command: "flog", Args: []string{"--all", "--continue"}},
			Roodi: AnalyzerConfig{Enabled: false, Command: "roodi", Args: []string{}},
		},
		Hotspots: HotspotsConfig{
			Top:            DefaultTop,
			Verbosity:      DefaultVerbosity,
			ExcludeMetrics: []string{},
			RankBy:         DefaultRankBy,
			MaxProblems:    DefaultMaxProblems,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.rb"},
			ExcludePatterns: []string{
				"vendor/**",
				"tmp/**",
				"node_modules/**",
			},
			Recursive: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// Analyzer returns the configuration of the named analyzer
func (c *Config) Analyzer(name string) (AnalyzerConfig, bool) {
	switch name {
	case "reek":
		return c.Analyzers.Reek, true
	case "flog":
		return c.Analyzers.Flog, true
	case "roodi":
		return c.Analyzers.Roodi, true
	default:
		return AnalyzerConfig{}, false
	}
}

// EnabledAnalyzers returns the names of enabled analyzers in report order
func (c *Config) EnabledAnalyzers() []string {
	var names []string
	for _, name := range []string{"reek", "flog", "roodi"} {
		if a, _ := c.Analyzer(name); a.Enabled {
			names = append(names, name)
		}
	}
	return names
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// DiscoverConfigFile finds the config file that applies to targetPath,
// or "" when none exists
func DiscoverConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigWithTarget loads configuration with target path context
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = DiscoverConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// configCandidates are the file names searched for, in priority order
var configCandidates = []string{
	"rbscan.yaml",
	".rbscan.yaml",
	"rbscan.yml",
	".rbscan.yml",
	".rbscan.toml",
	"rbscan.json",
}

// findDefaultConfig looks for default configuration files in common locations
// targetPath is the path being analyzed (e.g., a Ruby file or the project root)
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			// Search from target directory up to root
			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, configCandidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", configCandidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "rbscan"), configCandidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "rbscan")
		if config := searchConfigInDirectory(configDir, configCandidates); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home, configCandidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("RBSCAN_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	for _, name := range []string{"reek", "flog", "roodi"} {
		a, _ := c.Analyzer(name)
		if a.Enabled && a.Command == "" {
			return fmt.Errorf("analyzers.%s.command cannot be empty when the analyzer is enabled", name)
		}
	}

	if c.Hotspots.Top < 0 {
		return fmt.Errorf("hotspots.top must be >= 0, got %d", c.Hotspots.Top)
	}

	validVerbosity := map[string]bool{
		"summary":  true,
		"detailed": true,
	}
	if !validVerbosity[c.Hotspots.Verbosity] {
		return fmt.Errorf("invalid hotspots.verbosity '%s', must be one of: summary, detailed", c.Hotspots.Verbosity)
	}

	validRankBy := map[string]bool{
		"insertion": true,
		"problems":  true,
	}
	if !validRankBy[c.Hotspots.RankBy] {
		return fmt.Errorf("invalid hotspots.rank_by '%s', must be one of: insertion, problems", c.Hotspots.RankBy)
	}

	if c.Hotspots.MaxProblems < 0 {
		return fmt.Errorf("hotspots.max_problems must be >= 0, got %d", c.Hotspots.MaxProblems)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Performance.MaxGoroutines < 1 {
		return fmt.Errorf("performance.max_goroutines must be >= 1, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}
