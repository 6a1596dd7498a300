package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/rbscan/internal/config"
)

func runInitCmd(t *testing.T, args ...string) error {
	t.Helper()
	cmd := initCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "rbscan.yaml")

	if err := runInitCmd(t, "--config", configPath); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"analyzers:",
		"hotspots:",
		"output:",
		"analysis:",
		"performance:",
		"verbosity",
		"max_problems",
	}
	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}

	if _, err := config.LoadConfig(configPath); err != nil {
		t.Errorf("Generated config does not load: %v", err)
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "rbscan.yaml")

	if err := os.WriteFile(configPath, []byte("existing: true\n"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	err := runInitCmd(t, "--config", configPath)
	if err == nil {
		t.Fatal("Expected error when file exists without --force")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}

	if err := runInitCmd(t, "--config", configPath, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(content), "hotspots:") {
		t.Error("Config file was not overwritten with new content")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "rbscan.yaml")

	if err := runInitCmd(t, "--config", configPath, "--minimal"); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(content), "minimal") {
		t.Error("Expected the minimal template")
	}
	if strings.Contains(string(content), "performance:") {
		t.Error("Minimal config should not document performance settings")
	}
}

func TestInitCommand_ProjectPreset(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "rbscan.yaml")

	if err := runInitCmd(t, "--config", configPath, "--project", "rails", "--strictness", "strict"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if !cfg.Analyzers.Roodi.Enabled {
		t.Error("Strict preset should enable roodi")
	}
	if cfg.Hotspots.MaxProblems != 5 {
		t.Errorf("Expected max_problems 5, got %d", cfg.Hotspots.MaxProblems)
	}
	found := false
	for _, p := range cfg.Analysis.ExcludePatterns {
		if p == "db/migrate/**" {
			found = true
		}
	}
	if !found {
		t.Errorf("Rails preset should exclude migrations, got %v", cfg.Analysis.ExcludePatterns)
	}
}

func TestInitCommand_UnknownPreset(t *testing.T) {
	dir := t.TempDir()

	if err := runInitCmd(t, "--config", filepath.Join(dir, "a.yaml"), "--project", "sinatra"); err == nil {
		t.Error("Expected error for unknown project type")
	}
	if err := runInitCmd(t, "--config", filepath.Join(dir, "b.yaml"), "--strictness", "paranoid"); err == nil {
		t.Error("Expected error for unknown strictness")
	}
}

func TestInitCommand_InvalidDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing", "rbscan.yaml")

	err := runInitCmd(t, "--config", configPath)
	if err == nil {
		t.Fatal("Expected error for non-existent directory")
	}
	if !strings.Contains(err.Error(), "directory does not exist") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestInitCmd_FlagsExist(t *testing.T) {
	cmd := initCmd()

	expectedFlags := []string{"config", "force", "minimal", "project", "strictness", "interactive"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestInitCmd_DefaultConfigPath(t *testing.T) {
	cmd := initCmd()

	flag := cmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatal("config flag not found")
	}
	if flag.DefValue != "rbscan.yaml" {
		t.Errorf("Expected default config path 'rbscan.yaml', got '%s'", flag.DefValue)
	}
}
