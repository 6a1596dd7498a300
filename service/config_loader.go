package service

import (
	"fmt"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/adapter"
	"github.com/ludo-technologies/rbscan/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.HotspotRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.ToRequest(cfg), nil
}

// LoadFullConfig loads the whole configuration that applies to targetPath.
// An explicit path wins over discovery.
func (c *ConfigurationLoaderImpl) LoadFullConfig(path, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(path, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the discovered configuration, falling back to built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.HotspotRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return c.ToRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file.
// Zero values in override leave the base untouched.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.HotspotRequest, override *domain.HotspotRequest) *domain.HotspotRequest {
	merged := *base

	// Paths always come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if len(override.Analyzers) > 0 {
		merged.Analyzers = override.Analyzers
	}
	if len(override.CapturedOutput) > 0 {
		merged.CapturedOutput = override.CapturedOutput
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	if override.Top > 0 {
		merged.Top = override.Top
	}
	if override.Verbosity != "" {
		merged.Verbosity = override.Verbosity
	}
	if len(override.ExcludeMetrics) > 0 {
		merged.ExcludeMetrics = override.ExcludeMetrics
	}
	if override.RankBy != "" {
		merged.RankBy = override.RankBy
	}
	if override.Annotations {
		merged.Annotations = true
	}

	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// ToRequest converts a Config to a HotspotRequest
func (c *ConfigurationLoaderImpl) ToRequest(cfg *config.Config) *domain.HotspotRequest {
	return &domain.HotspotRequest{
		// Paths are set by the caller, not from config
		Paths:     []string{},
		Analyzers: cfg.EnabledAnalyzers(),

		OutputFormat: domain.OutputFormat(cfg.Output.Format),

		Top:            cfg.Hotspots.Top,
		Verbosity:      domain.Verbosity(cfg.Hotspots.Verbosity),
		ExcludeMetrics: append([]string(nil), cfg.Hotspots.ExcludeMetrics...),
		RankBy:         domain.RankOrder(cfg.Hotspots.RankBy),

		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: append([]string(nil), cfg.Analysis.IncludePatterns...),
		ExcludePatterns: append([]string(nil), cfg.Analysis.ExcludePatterns...),
	}
}

// ValidateConfig validates a merged request
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.HotspotRequest) error {
	if req.Top < 0 {
		return fmt.Errorf("top cannot be negative, got %d", req.Top)
	}

	if req.Verbosity != "" && !req.Verbosity.Valid() {
		return fmt.Errorf("invalid verbosity: %s (must be one of: summary, detailed)", req.Verbosity)
	}

	switch req.RankBy {
	case "", domain.RankByInsertion, domain.RankByProblems:
	default:
		return fmt.Errorf("invalid rank order: %s (must be one of: insertion, problems)", req.RankBy)
	}

	if _, err := domain.ParseOutputFormat(string(req.OutputFormat)); err != nil {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)", req.OutputFormat)
	}

	known := make(map[string]bool)
	for _, m := range adapter.Metrics() {
		known[m] = true
	}
	for _, name := range req.Analyzers {
		if !known[name] {
			return fmt.Errorf("unknown analyzer: %s", name)
		}
	}
	for metric := range req.CapturedOutput {
		if !known[metric] {
			return fmt.Errorf("no parser for captured %s output", metric)
		}
	}

	return nil
}
