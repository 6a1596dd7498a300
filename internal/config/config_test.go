package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig should not return nil")
	}

	if !config.Analyzers.Reek.Enabled {
		t.Error("Reek should be enabled by default")
	}
	if config.Analyzers.Reek.Command != "reek" {
		t.Errorf("Expected reek command 'reek', got '%s'", config.Analyzers.Reek.Command)
	}
	if !config.Analyzers.Flog.Enabled {
		t.Error("Flog should be enabled by default")
	}
	if config.Analyzers.Roodi.Enabled {
		t.Error("Roodi should be disabled by default")
	}

	if config.Hotspots.Top != DefaultTop {
		t.Errorf("Expected Top %d, got %d", DefaultTop, config.Hotspots.Top)
	}
	if config.Hotspots.Verbosity != DefaultVerbosity {
		t.Errorf("Expected Verbosity %s, got %s", DefaultVerbosity, config.Hotspots.Verbosity)
	}
	if config.Hotspots.RankBy != DefaultRankBy {
		t.Errorf("Expected RankBy %s, got %s", DefaultRankBy, config.Hotspots.RankBy)
	}

	if config.Output.Format != "text" {
		t.Errorf("Expected Format 'text', got '%s'", config.Output.Format)
	}

	if !config.Analysis.Recursive {
		t.Error("Recursive should be true by default")
	}
	if len(config.Analysis.IncludePatterns) == 0 {
		t.Error("IncludePatterns should not be empty")
	}
	if config.Performance.MaxGoroutines != DefaultMaxGoroutines {
		t.Errorf("Expected MaxGoroutines %d, got %d", DefaultMaxGoroutines, config.Performance.MaxGoroutines)
	}
}

func TestLoadDefaultConfigMatchesDefaultConfig(t *testing.T) {
	embedded, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("LoadDefaultConfig failed: %v", err)
	}
	if !reflect.DeepEqual(embedded, DefaultConfig()) {
		t.Errorf("Embedded defaults drifted from DefaultConfig:\n%+v\n%+v", embedded, DefaultConfig())
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}
}

func TestConfig_Validate_EmptyCommand(t *testing.T) {
	config := DefaultConfig()
	config.Analyzers.Flog.Command = ""

	if err := config.Validate(); err == nil {
		t.Error("Expected error for enabled analyzer without command")
	}

	config.Analyzers.Flog.Enabled = false
	if err := config.Validate(); err != nil {
		t.Errorf("Disabled analyzer without command should be valid, got %v", err)
	}
}

func TestConfig_Validate_NegativeTop(t *testing.T) {
	config := DefaultConfig()
	config.Hotspots.Top = -1

	if err := config.Validate(); err == nil {
		t.Error("Expected error for negative top")
	}
}

func TestConfig_Validate_InvalidVerbosity(t *testing.T) {
	config := DefaultConfig()
	config.Hotspots.Verbosity = "loud"

	if err := config.Validate(); err == nil {
		t.Error("Expected error for invalid verbosity")
	}
}

func TestConfig_Validate_InvalidRankBy(t *testing.T) {
	config := DefaultConfig()
	config.Hotspots.RankBy = "alphabetical"

	if err := config.Validate(); err == nil {
		t.Error("Expected error for invalid rank_by")
	}
}

func TestConfig_Validate_NegativeMaxProblems(t *testing.T) {
	config := DefaultConfig()
	config.Hotspots.MaxProblems = -3

	if err := config.Validate(); err == nil {
		t.Error("Expected error for negative max_problems")
	}
}

func TestConfig_Validate_InvalidOutputFormat(t *testing.T) {
	config := DefaultConfig()
	config.Output.Format = "html"

	if err := config.Validate(); err == nil {
		t.Error("Expected error for invalid output format")
	}
}

func TestConfig_Validate_EmptyIncludePatterns(t *testing.T) {
	config := DefaultConfig()
	config.Analysis.IncludePatterns = []string{}

	if err := config.Validate(); err == nil {
		t.Error("Expected error for empty include patterns")
	}
}

func TestConfig_Validate_InvalidPerformance(t *testing.T) {
	config := DefaultConfig()
	config.Performance.MaxGoroutines = 0
	if err := config.Validate(); err == nil {
		t.Error("Expected error for max_goroutines < 1")
	}

	config = DefaultConfig()
	config.Performance.TimeoutSeconds = -1
	if err := config.Validate(); err == nil {
		t.Error("Expected error for negative timeout")
	}
}

func TestConfig_ValidOutputFormats(t *testing.T) {
	config := DefaultConfig()

	for _, format := range []string{"text", "json", "yaml"} {
		config.Output.Format = format
		if err := config.Validate(); err != nil {
			t.Errorf("Format '%s' should be valid, got error: %v", format, err)
		}
	}
}

func TestConfig_EnabledAnalyzers(t *testing.T) {
	config := DefaultConfig()
	config.Analyzers.Roodi.Enabled = true
	config.Analyzers.Flog.Enabled = false

	got := config.EnabledAnalyzers()
	if !reflect.DeepEqual(got, []string{"reek", "roodi"}) {
		t.Errorf("Expected [reek roodi], got %v", got)
	}

	if _, ok := config.Analyzer("saikuro"); ok {
		t.Error("Unknown analyzer should not be found")
	}
}

func TestLoadConfig_Default(t *testing.T) {
	config, err := loadConfigFromFile("")
	if err != nil {
		t.Fatalf("loadConfigFromFile with empty path failed: %v", err)
	}
	if !reflect.DeepEqual(config, DefaultConfig()) {
		t.Error("Loaded config should match default")
	}
}

func TestLoadConfig_NonExistent(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-existent config file")
	}
}

func TestLoadConfig_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rbscan.yaml")
	content := `analyzers:
  reek:
    config_file_pattern: "config/*.reek"
  roodi:
    enabled: true
hotspots:
  top: 5
  verbosity: detailed
  exclude_metrics: [flog]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Analyzers.Reek.ConfigFilePattern != "config/*.reek" {
		t.Errorf("Expected config file pattern, got '%s'", config.Analyzers.Reek.ConfigFilePattern)
	}
	if config.Analyzers.Reek.Command != "reek" {
		t.Errorf("Unset command should keep its default, got '%s'", config.Analyzers.Reek.Command)
	}
	if !config.Analyzers.Roodi.Enabled {
		t.Error("Roodi should be enabled")
	}
	if config.Hotspots.Top != 5 || config.Hotspots.Verbosity != "detailed" {
		t.Errorf("Unexpected hotspots config: %+v", config.Hotspots)
	}
	if !reflect.DeepEqual(config.Hotspots.ExcludeMetrics, []string{"flog"}) {
		t.Errorf("Expected exclude_metrics [flog], got %v", config.Hotspots.ExcludeMetrics)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rbscan.yaml")
	if err := os.WriteFile(path, []byte("hotspots:\n  rank_by: random\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error")
	}
}

func TestSearchConfigInDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "rbscan.yaml")
	if err := os.WriteFile(configPath, []byte("hotspots:\n  top: 5"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	result := searchConfigInDirectory(tempDir, configCandidates)
	if result != configPath {
		t.Errorf("Expected %s, got %s", configPath, result)
	}

	emptyDir := t.TempDir()
	if result := searchConfigInDirectory(emptyDir, configCandidates); result != "" {
		t.Error("Expected empty string for directory without config")
	}
}

func TestFindDefaultConfig_WalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "models")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}
	configPath := filepath.Join(root, ".rbscan.yaml")
	if err := os.WriteFile(configPath, []byte("hotspots:\n  top: 1"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	found := findDefaultConfig(nested)
	if found != configPath {
		t.Errorf("Expected %s, got %s", configPath, found)
	}
}

func TestTemplatesAreValidConfigs(t *testing.T) {
	for projectType := range GetProjectPresets() {
		for strictness := range GetStrictnessPresets() {
			tmpl := GetFullConfigTemplate(projectType, strictness)

			config := DefaultConfig()
			if err := yaml.Unmarshal([]byte(tmpl), config); err != nil {
				t.Errorf("%s/%s template is not valid YAML: %v", projectType, strictness, err)
				continue
			}
			if err := config.Validate(); err != nil {
				t.Errorf("%s/%s template is not a valid config: %v", projectType, strictness, err)
			}
		}
	}

	if !strings.Contains(GetMinimalConfigTemplate(), "include_patterns") {
		t.Error("Minimal template should set include patterns")
	}
}

func TestStrictTemplateSetsThreshold(t *testing.T) {
	tmpl := GetFullConfigTemplate(ProjectTypeRails, StrictnessStrict)

	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(tmpl), config); err != nil {
		t.Fatalf("Template is not valid YAML: %v", err)
	}
	if config.Hotspots.MaxProblems != 5 {
		t.Errorf("Expected max_problems 5, got %d", config.Hotspots.MaxProblems)
	}
	if config.Hotspots.Verbosity != "detailed" {
		t.Errorf("Expected detailed verbosity, got %s", config.Hotspots.Verbosity)
	}
	if !reflect.DeepEqual(config.Analysis.IncludePatterns, GetProjectPresets()[ProjectTypeRails].IncludePatterns) {
		t.Errorf("Unexpected include patterns: %v", config.Analysis.IncludePatterns)
	}
}
