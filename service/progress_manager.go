package service

import (
	"io"
	"os"
	"sync"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// barWidth keeps the bar short enough to leave room for file paths
const barWidth = 18

// ProgressManagerImpl draws one progress bar per pipeline phase on a terminal
type ProgressManagerImpl struct {
	writer io.Writer

	mu   sync.Mutex
	open []*progressbar.ProgressBar
}

// NewProgressManager returns a bar-drawing manager when enabled and stderr
// is interactive, and a no-op manager otherwise
func NewProgressManager(enabled bool) domain.ProgressManager {
	if !enabled || !IsInteractiveEnvironment() {
		return &NoOpProgressManager{}
	}
	return &ProgressManagerImpl{writer: os.Stderr}
}

// IsInteractiveEnvironment reports whether stderr is a terminal outside CI
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" || os.Getenv("RBSCAN_NO_PROGRESS") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// StartTask opens a bar for a phase. A negative total draws a spinner.
func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	bar := pm.newBar(description, total)

	pm.mu.Lock()
	pm.open = append(pm.open, bar)
	pm.mu.Unlock()

	return &TaskProgressImpl{bar: bar}
}

func (pm *ProgressManagerImpl) newBar(description string, total int) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionClearOnFinish(),
	}
	if total < 0 {
		opts = append(opts, progressbar.OptionSpinnerType(14))
		return progressbar.NewOptions(-1, opts...)
	}
	opts = append(opts,
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return progressbar.NewOptions(total, opts...)
}

// IsInteractive always reports true
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes every bar still open
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	open := pm.open
	pm.open = nil
	pm.mu.Unlock()

	for _, bar := range open {
		if !bar.IsFinished() {
			_ = bar.Finish()
		}
	}
}

// TaskProgressImpl reports one phase's progress to its bar
type TaskProgressImpl struct {
	bar *progressbar.ProgressBar
}

func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

func (tp *TaskProgressImpl) Describe(description string) {
	tp.bar.Describe(description)
}

func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager is used for quiet, piped and CI runs
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(string, int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) IsInteractive() bool { return false }

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress discards all progress updates
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(int) {}

func (tp *NoOpTaskProgress) Describe(string) {}

func (tp *NoOpTaskProgress) Complete() {}

// startTask returns a task on pm, or a no-op task when pm is nil
func startTask(pm domain.ProgressManager, description string, total int) domain.TaskProgress {
	if pm == nil {
		return &NoOpTaskProgress{}
	}
	return pm.StartTask(description, total)
}
