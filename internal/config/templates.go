package config

import (
	"strconv"
	"strings"
)

// ProjectType represents the type of Ruby project
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypeRails   ProjectType = "rails"
	ProjectTypeGem     ProjectType = "gem"
)

// Strictness represents how aggressively hotspots are reported
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds configuration presets for different project types
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds hotspot settings for different strictness levels
type StrictnessPreset struct {
	Top         int
	Verbosity   string
	MaxProblems int
	EnableRoodi bool
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{
				"**/*.rb",
			},
			ExcludePatterns: []string{
				"vendor/**",
				"tmp/**",
				"node_modules/**",
			},
		},
		ProjectTypeRails: {
			IncludePatterns: []string{
				"app/**/*.rb",
				"lib/**/*.rb",
				"config/**/*.rb",
			},
			ExcludePatterns: []string{
				"vendor/**",
				"tmp/**",
				"node_modules/**",
				"db/schema.rb",
				"db/migrate/**",
				"spec/**",
				"test/**",
			},
		},
		ProjectTypeGem: {
			IncludePatterns: []string{
				"lib/**/*.rb",
				"bin/*",
			},
			ExcludePatterns: []string{
				"vendor/**",
				"pkg/**",
				"spec/**",
				"test/**",
			},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			Top:         10,
			Verbosity:   "summary",
			MaxProblems: 0, // No limit
			EnableRoodi: false,
		},
		StrictnessStandard: {
			Top:         0,
			Verbosity:   "summary",
			MaxProblems: 0, // No limit
			EnableRoodi: false,
		},
		StrictnessStrict: {
			Top:         0,
			Verbosity:   "detailed",
			MaxProblems: 5,
			EnableRoodi: true,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset := GetProjectPresets()[projectType]
	strict := GetStrictnessPresets()[strictness]

	return `# rbscan configuration
# Documentation: https://github.com/ludo-technologies/rbscan

# ============================================================================
# ANALYZERS
# ============================================================================
# External Ruby analyzers whose reports are aggregated into hotspots
analyzers:
  reek:
    enabled: true
    command: reek
    args: []
    # Passed to reek as --config when set
    config_file_pattern: ""
  flog:
    enabled: true
    command: flog
    args: ["--all", "--continue"]
  roodi:
    enabled: ` + strconv.FormatBool(strict.EnableRoodi) + `
    command: roodi
    args: []

# ============================================================================
# HOTSPOTS
# ============================================================================
hotspots:
  # Number of files, classes and methods to list (0 = all)
  top: ` + strconv.Itoa(strict.Top) + `

  # "summary" prints one line per metric, "detailed" every problem
  verbosity: ` + strict.Verbosity + `

  # Metrics to leave out of rendered problems
  exclude_metrics: []

  # "insertion" keeps analyzer order, "problems" ranks by problem count
  rank_by: insertion

  # rbscan check fails when a hotspot has more problems (0 = no limit)
  max_problems: ` + strconv.Itoa(strict.MaxProblems) + `

# ============================================================================
# OUTPUT SETTINGS
# ============================================================================
output:
  # Output format: "text", "json", "yaml"
  format: text

# ============================================================================
# ANALYSIS SCOPE
# ============================================================================
analysis:
  # File patterns to include (glob patterns)
  include_patterns: ` + formatYAMLList(preset.IncludePatterns) + `

  # File patterns to exclude (gitignore syntax)
  exclude_patterns: ` + formatYAMLList(preset.ExcludePatterns) + `

  recursive: true

# ============================================================================
# PERFORMANCE
# ============================================================================
performance:
  # Number of analyzers run in parallel
  max_goroutines: ` + strconv.Itoa(DefaultMaxGoroutines) + `

  # Timeout for the whole run in seconds (0 uses the default)
  timeout_seconds: ` + strconv.Itoa(DefaultTimeoutSeconds) + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# rbscan configuration (minimal)
# See full options: https://github.com/ludo-technologies/rbscan

analyzers:
  reek:
    enabled: true
  flog:
    enabled: true

hotspots:
  top: 0
  verbosity: summary

analysis:
  include_patterns: ["**/*.rb"]
  exclude_patterns: ["vendor/**", "tmp/**"]
`
}

// formatYAMLList formats a string slice as an indented YAML block sequence
func formatYAMLList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("\n    - \"")
		sb.WriteString(item)
		sb.WriteString("\"")
	}
	return sb.String()
}
