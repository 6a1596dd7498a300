package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ludo-technologies/rbscan/domain"
	"gopkg.in/yaml.v3"
)

func sampleResponse(t *testing.T) *domain.HotspotResponse {
	t.Helper()
	svc := NewHotspotService()
	svc.SetLogger(NewDiscardLogger())
	resp, err := svc.Analyze(context.Background(), sampleResults(t), domain.HotspotRequest{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	resp.Annotations = domain.AnnotationIndex{
		"lib/a.rb": {
			"10": {{Type: "reek", Description: "TooManyStatements - has approx 8 statements"}},
			"3":  {{Type: "reek", Description: "DuplicateMethodCall - calls b.c twice"}},
		},
	}
	return resp
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]interface{}{"name": "test", "value": 42}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse output as JSON: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("Expected name to be 'test', got %v", result["name"])
	}
}

func TestOutputFormatterWriteHotspotsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().Write(sampleResponse(t), domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var doc struct {
		Hotspots struct {
			Files []struct {
				Location struct {
					FilePath   string  `json:"file_path"`
					ClassName  *string `json:"class_name"`
					MethodName *string `json:"method_name"`
				} `json:"location"`
				Details []string `json:"details"`
			} `json:"files"`
			Methods []struct {
				Location domain.Location `json:"location"`
			} `json:"methods"`
		} `json:"hotspots"`
		Annotations map[string]map[string][]domain.LineAnnotation `json:"annotations"`
		RunID       string                                        `json:"run_id"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to parse output as JSON: %v", err)
	}

	first := doc.Hotspots.Files[0]
	if first.Location.FilePath != "lib/a.rb" || first.Location.ClassName != nil || first.Location.MethodName != nil {
		t.Errorf("file location should have null class and method, got %+v", first.Location)
	}
	if len(first.Details) != 2 {
		t.Errorf("expected 2 detail lines, got %v", first.Details)
	}
	if got := doc.Hotspots.Methods[0].Location.String(); got != "A#go (lib/a.rb)" {
		t.Errorf("method location = %q", got)
	}
	if len(doc.Annotations["lib/a.rb"]["3"]) != 1 {
		t.Errorf("annotations not serialized: %v", doc.Annotations)
	}
	if doc.RunID == "" {
		t.Error("expected run_id")
	}
}

func TestOutputFormatterWriteHotspotsYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().Write(sampleResponse(t), domain.OutputFormatYAML, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to parse output as YAML: %v", err)
	}
	if _, ok := doc["hotspots"]; !ok {
		t.Error("expected hotspots key")
	}
	if !strings.Contains(buf.String(), "file_path: lib/a.rb") {
		t.Errorf("expected file locations in YAML output:\n%s", buf.String())
	}
}

func TestOutputFormatterWriteHotspotsText(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().Write(sampleResponse(t), domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"=== Hotspots ===",
		"Worst Files:",
		"  1. lib/a.rb",
		"reek: found 2 code smells",
		"Worst Classes:",
		"A (lib/a.rb)",
		"Worst Methods:",
		"C#self.build (lib/c.rb)",
		"Annotated Lines:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "   3  [reek]") > strings.Index(out, "  10  [reek]") {
		t.Error("annotated lines should be ordered numerically")
	}
}

func TestOutputFormatterWriteMetrics(t *testing.T) {
	results := []*domain.MetricResult{
		mustResult(t, domain.MetricReek, reekOutput),
		{Metric: domain.MetricFlog, Skipped: true},
	}

	var buf bytes.Buffer
	if err := NewOutputFormatter().WriteMetrics(results, domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("WriteMetrics failed: %v", err)
	}

	var doc map[string]struct {
		Matches []domain.FileFindings `json:"matches"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to parse output as JSON: %v", err)
	}
	if len(doc["reek"].Matches) != 2 {
		t.Errorf("expected 2 reek files, got %d", len(doc["reek"].Matches))
	}
	if doc["flog"].Matches == nil {
		t.Error("skipped metric should still render an empty matches list")
	}

	buf.Reset()
	if err := NewOutputFormatter().WriteMetrics(results, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("WriteMetrics failed: %v", err)
	}
	if !strings.Contains(buf.String(), "lib/a.rb -- 2 warnings") || !strings.Contains(buf.String(), "skipped") {
		t.Errorf("unexpected text output:\n%s", buf.String())
	}
}

func TestOutputFormatterWriteCheck(t *testing.T) {
	results := sampleResults(t)
	check, err := NewHotspotService().CheckStore(context.Background(), BuildRowStore(results), results, 2)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewOutputFormatter().WriteCheck(check, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("WriteCheck failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Check failed: 2 hotspots exceed 2 problems") {
		t.Errorf("unexpected check output:\n%s", buf.String())
	}
}

func TestOutputFormatterUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter().Write(sampleResponse(t), domain.OutputFormat("html"), &buf)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !domain.HasCode(err, domain.ErrCodeUnsupportedFormat) {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
