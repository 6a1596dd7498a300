package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ludo-technologies/rbscan/domain"
)

// StaticRunner replays previously captured analyzer output keyed by tool
type StaticRunner struct {
	mu       sync.Mutex
	outputs  map[string]string
	versions map[string]string
	calls    [][]string
}

// NewStaticRunner creates a runner that answers from outputs
func NewStaticRunner(outputs map[string]string) *StaticRunner {
	return &StaticRunner{
		outputs:  outputs,
		versions: make(map[string]string),
	}
}

// SetVersion sets the answer to `tool --version`
func (r *StaticRunner) SetVersion(tool, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[tool] = version
}

// Run returns the captured output for tool
func (r *StaticRunner) Run(ctx context.Context, tool string, args []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{tool}, args...))

	if len(args) == 1 && args[0] == "--version" {
		return r.versions[tool], nil
	}
	out, ok := r.outputs[tool]
	if !ok {
		return "", domain.NewInvalidInputError(fmt.Sprintf("no captured output for %s", tool), nil)
	}
	return out, nil
}

// Calls returns every invocation seen so far, tool first
func (r *StaticRunner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}
