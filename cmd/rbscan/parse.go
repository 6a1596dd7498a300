package main

import (
	"context"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/service"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "parse metric=path...",
		Short: "Parse captured analyzer output",
		Long: `Parse the saved output of reek, flog or roodi and print the structured
findings as {metric: {matches: [...]}}. A path of - reads stdin.

Examples:
  reek lib/ > reek.txt && rbscan parse reek=reek.txt
  flog --all lib/ | rbscan parse --yaml flog=-`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args)
		},
	}

	opts.addOutputFlags(cmd)
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runParse(cmd *cobra.Command, opts *runOptions, args []string) error {
	paths, err := parseCapturedArgs(args)
	if err != nil {
		return err
	}
	captured, err := readCaptured(paths, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := opts.loadConfig(nil)
	if err != nil {
		return err
	}
	format, err := opts.outputFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	writer, closeOutput, err := opts.openOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	opts.quiet = true
	req := &domain.HotspotRequest{
		CapturedOutput: captured,
		OutputFormat:   format,
		OutputWriter:   writer,
	}
	if err := service.NewConfigurationLoader().ValidateConfig(req); err != nil {
		return err
	}

	uc, err := opts.buildUseCase(cfg, req, service.NewProgressManager(false))
	if err != nil {
		return err
	}
	_, err = uc.Parse(context.Background(), *req)
	return err
}
