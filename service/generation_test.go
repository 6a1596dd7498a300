package service

import (
	"context"
	"testing"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/testutil"
)

func TestRunGenerators_MergesInGeneratorOrder(t *testing.T) {
	gens := mustGenerators(t, capturedRunner(), "reek", "flog", "roodi")

	gen, err := RunGenerators(context.Background(), NewParallelExecutor(), gens, []string{"lib/a.rb"})
	if err != nil {
		t.Fatalf("RunGenerators failed: %v", err)
	}

	if len(gen.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(gen.Results))
	}
	tables := gen.Store.Tables()
	if len(tables) != 3 {
		t.Fatalf("expected 3 tables, got %d", len(tables))
	}
	for i, want := range []string{"reek", "flog", "roodi"} {
		if gen.Results[i].Metric != want {
			t.Errorf("result %d = %s, want %s", i, gen.Results[i].Metric, want)
		}
		if tables[i].Metric() != want {
			t.Errorf("table %d = %s, want %s", i, tables[i].Metric(), want)
		}
	}
	if gen.Store.TotalRows() != 6 {
		t.Errorf("expected 6 rows, got %d", gen.Store.TotalRows())
	}
	if len(gen.Failures) != 0 {
		t.Errorf("expected no failures, got %v", gen.Failures)
	}
}

func TestRunGenerators_PartialFailure(t *testing.T) {
	runner := testutil.NewStaticRunner(map[string]string{"reek": reekOutput})
	gens := mustGenerators(t, runner, "reek", "roodi")

	gen, err := RunGenerators(context.Background(), NewParallelExecutor(), gens, []string{"lib/a.rb"})
	if err != nil {
		t.Fatalf("partial failure should not abort: %v", err)
	}
	if len(gen.Results) != 1 || gen.Results[0].Metric != domain.MetricReek {
		t.Errorf("expected only the reek result, got %v", gen.Results)
	}
	if len(gen.Failures) != 1 || gen.Failures[0].TaskName != "roodi" {
		t.Errorf("expected roodi failure, got %v", gen.Failures)
	}
}

func TestRunGenerators_AllFail(t *testing.T) {
	gens := mustGenerators(t, testutil.NewStaticRunner(map[string]string{}), "flog", "roodi")

	if _, err := RunGenerators(context.Background(), NewParallelExecutor(), gens, []string{"lib/a.rb"}); err == nil {
		t.Fatal("expected error when every analyzer fails")
	}
}

func TestRunGenerators_NoFiles(t *testing.T) {
	gens := mustGenerators(t, capturedRunner(), "reek", "flog")

	gen, err := RunGenerators(context.Background(), NewParallelExecutor(), gens, nil)
	if err != nil {
		t.Fatalf("RunGenerators failed: %v", err)
	}
	for _, r := range gen.Results {
		if !r.Skipped {
			t.Errorf("%s should be skipped", r.Metric)
		}
	}
	if gen.Store.TotalRows() != 0 {
		t.Errorf("expected empty store, got %d rows", gen.Store.TotalRows())
	}
}

func TestBuildRowStore(t *testing.T) {
	store := BuildRowStore([]*domain.MetricResult{
		mustResult(t, domain.MetricReek, reekOutput),
		mustResult(t, domain.MetricFlog, flogOutput),
	})

	counts := store.RowCounts()
	if counts["reek"] != 3 || counts["flog"] != 2 {
		t.Errorf("unexpected row counts %v", counts)
	}
}
