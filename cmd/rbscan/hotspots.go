package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/service"
	"github.com/spf13/cobra"
)

// hotspotsOptions holds the ranking flags of the hotspots command
type hotspotsOptions struct {
	runOptions
	top            int
	verbosity      string
	excludeMetrics []string
	rankBy         string
	annotate       bool
}

func hotspotsCmd() *cobra.Command {
	opts := &hotspotsOptions{}

	cmd := &cobra.Command{
		Use:   "hotspots [path...]",
		Short: "Rank the worst files, classes and methods",
		Long: `Run the enabled analyzers and rank the files, classes and methods
with the most reported problems.

Examples:
  rbscan hotspots app/ lib/
  rbscan hotspots --top 10 --verbosity detailed .
  rbscan hotspots --analyzers reek,flog --json .
  rbscan hotspots --captured reek=reek.txt --captured flog=flog.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHotspots(cmd, opts, args)
		},
	}

	opts.addSourceFlags(cmd)
	opts.addOutputFlags(cmd)
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0,
		"Number of hotspots to list per kind (0 = all)")
	cmd.Flags().StringVar(&opts.verbosity, "verbosity", "",
		"Problem rendering: summary, detailed")
	cmd.Flags().StringSliceVar(&opts.excludeMetrics, "exclude-metric", nil,
		"Metrics to leave out of rendered problems")
	cmd.Flags().StringVar(&opts.rankBy, "rank-by", "",
		"Ranking order: insertion, problems")
	cmd.Flags().BoolVar(&opts.annotate, "annotate", false,
		"Include per-line annotations for the reported files")

	return cmd
}

func runHotspots(cmd *cobra.Command, opts *hotspotsOptions, args []string) error {
	cfg, err := opts.loadConfig(args)
	if err != nil {
		return err
	}

	req, err := opts.request(cfg, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top") {
		req.Top = opts.top
	}
	if opts.verbosity != "" {
		req.Verbosity = domain.Verbosity(opts.verbosity)
	}
	if len(opts.excludeMetrics) > 0 {
		req.ExcludeMetrics = opts.excludeMetrics
	}
	if opts.rankBy != "" {
		req.RankBy = domain.RankOrder(opts.rankBy)
	}
	req.Annotations = opts.annotate
	if err := service.NewConfigurationLoader().ValidateConfig(req); err != nil {
		return err
	}

	writer, closeOutput, err := opts.openOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()
	req.OutputWriter = writer

	// Create progress manager (auto-disabled for machine output or non-TTY)
	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText && !opts.noProgress)
	defer pm.Close()

	uc, err := opts.buildUseCase(cfg, req, pm)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := uc.Execute(ctx, *req); err != nil {
		return err
	}

	if opts.outputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to: %s\n", opts.outputPath)
	}
	return nil
}
