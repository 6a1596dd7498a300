package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/constants"
	"github.com/ludo-technologies/rbscan/service"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

// checkOptions holds the flags of the check command
type checkOptions struct {
	runOptions
	maxProblems int
	verbose     bool
}

func checkCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fail when a hotspot has too many problems",
		Long: `Run the analyzers and fail when any file, class or method has more
problems than allowed. Intended for CI/CD pipelines.

Exit codes:
  0 - All hotspots within the limit
  1 - At least one hotspot exceeds --max-problems
  2 - Analysis error (analyzer missing, unreadable output, etc.)

Examples:
  rbscan check --max-problems 5 app/ lib/
  rbscan check --json --max-problems 10 .
  rbscan check --captured reek=reek.txt --max-problems 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	opts.addSourceFlags(cmd)
	opts.addOutputFlags(cmd)
	cmd.Flags().IntVar(&opts.maxProblems, "max-problems", 0,
		"Maximum problems allowed per file, class or method (0 = no limit)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Show analyzer log messages")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, args []string) error {
	cfg, err := opts.loadConfig(args)
	if err != nil {
		return &CheckExitError{Code: constants.ExitExecutionError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	// Apply config values for flags not explicitly set on CLI
	maxProblems := opts.maxProblems
	if !cmd.Flags().Changed("max-problems") {
		maxProblems = cfg.Hotspots.MaxProblems
	}

	req, err := opts.request(cfg, args, cmd.InOrStdin())
	if err != nil {
		return &CheckExitError{Code: constants.ExitExecutionError, Message: err.Error()}
	}
	if err := service.NewConfigurationLoader().ValidateConfig(req); err != nil {
		return &CheckExitError{Code: constants.ExitExecutionError, Message: err.Error()}
	}

	opts.quiet = !opts.verbose
	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText && !opts.noProgress)
	defer pm.Close()

	uc, err := opts.buildUseCase(cfg, req, pm)
	if err != nil {
		return &CheckExitError{Code: constants.ExitExecutionError, Message: err.Error()}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := uc.Check(ctx, *req, maxProblems)
	if err != nil {
		return &CheckExitError{Code: constants.ExitExecutionError, Message: err.Error()}
	}

	writer, closeOutput, err := opts.openOutput(cmd.OutOrStdout())
	if err != nil {
		return &CheckExitError{Code: constants.ExitExecutionError, Message: err.Error()}
	}
	defer closeOutput()

	if err := service.NewOutputFormatter().WriteCheck(result, req.OutputFormat, writer); err != nil {
		return &CheckExitError{Code: constants.ExitExecutionError, Message: fmt.Sprintf("failed to write result: %v", err)}
	}

	if !result.Passed {
		return &CheckExitError{Code: constants.ExitCheckFailed, Message: ""}
	}
	return nil
}
