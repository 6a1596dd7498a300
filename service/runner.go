package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ludo-technologies/rbscan/domain"
)

// ExecRunner runs analyzers as child processes and returns their stdout
type ExecRunner struct {
	// Dir is the working directory; empty means the current one
	Dir string
}

// NewExecRunner creates a runner for installed analyzers
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes tool with args. Analyzers such as reek exit non-zero when
// they report problems, so a failing exit status with output on stdout
// still counts as a successful run.
func (r *ExecRunner) Run(ctx context.Context, tool string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("%s interrupted: %w", tool, ctxErr)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", domain.NewFileNotFoundError(tool, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && stdout.Len() > 0 {
		return stdout.String(), nil
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return "", fmt.Errorf("%s failed: %w", tool, err)
	}
	return "", fmt.Errorf("%s failed: %w: %s", tool, err, msg)
}
