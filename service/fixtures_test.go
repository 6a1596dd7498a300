package service

import (
	"testing"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/config"
	"github.com/ludo-technologies/rbscan/internal/testutil"
)

const reekOutput = `"lib/a.rb" -- 2 warnings:
  [3, 7]:A#go calls b.c twice (DuplicateMethodCall)
  [10]:A#stop has approx 8 statements (TooManyStatements)

"lib/b.rb" -- 1 warning:
  [1]:B has no descriptive comment (IrresponsibleModule)

3 total warnings
`

const flogOutput = `    60.0: flog total
    20.0: flog/method average

    31.3: A#go                             lib/a.rb:3-8
    12.0: C::build                         lib/c.rb:2-4
`

const roodiOutput = `lib/a.rb:10 - Method "stop" has 31 lines. It should have 20 or less.
Found 1 errors.
`

// capturedRunner answers for every bundled analyzer
func capturedRunner() *testutil.StaticRunner {
	r := testutil.NewStaticRunner(map[string]string{
		"reek":  reekOutput,
		"flog":  flogOutput,
		"roodi": roodiOutput,
	})
	r.SetVersion("reek", "reek 6.1.4")
	return r
}

func mustResult(t *testing.T, metric, raw string) *domain.MetricResult {
	t.Helper()
	result, err := ParseCaptured(metric, raw)
	if err != nil {
		t.Fatalf("ParseCaptured(%s) failed: %v", metric, err)
	}
	return result
}

func mustGenerators(t *testing.T, runner domain.AnalyzerRunner, names ...string) []domain.MetricGenerator {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Analyzers.Roodi.Enabled = true
	gens, err := NewGenerators(cfg, names, runner, NewDiscardLogger())
	if err != nil {
		t.Fatalf("NewGenerators failed: %v", err)
	}
	return gens
}
