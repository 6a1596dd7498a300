package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/ludo-technologies/rbscan/app"
	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/config"
	"github.com/ludo-technologies/rbscan/internal/constants"
	"github.com/ludo-technologies/rbscan/service"
	"github.com/spf13/cobra"
)

// runOptions holds the flags shared by hotspots, parse and check
type runOptions struct {
	configPath   string
	analyzers    []string
	captured     map[string]string
	format       string
	jsonOutput   bool
	yamlOutput   bool
	outputPath   string
	quiet        bool
	noProgress   bool
	includeGlobs []string
	excludeGlobs []string
}

func (o *runOptions) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "",
		"Path to config file (default: discovered "+constants.ConfigFileName+")")
	cmd.Flags().StringSliceVarP(&o.analyzers, "analyzers", "a", nil,
		"Analyzers to run (comma-separated): reek,flog,roodi")
	cmd.Flags().StringToStringVar(&o.captured, "captured", nil,
		"Use captured analyzer output instead of running it, e.g. reek=reek.txt (- reads stdin)")
	cmd.Flags().StringSliceVar(&o.includeGlobs, "include", nil,
		"File patterns to include (glob)")
	cmd.Flags().StringSliceVar(&o.excludeGlobs, "exclude", nil,
		"File patterns to exclude (gitignore syntax)")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false,
		"Suppress analyzer log messages")
	cmd.Flags().BoolVar(&o.noProgress, "no-progress", false,
		"Disable progress bars")
}

func (o *runOptions) addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "",
		"Output format: text, json, yaml (default from config)")
	cmd.Flags().BoolVar(&o.jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&o.yamlOutput, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().StringVarP(&o.outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
}

// outputFormat resolves the format flags against the configured default
func (o *runOptions) outputFormat(configured string) (domain.OutputFormat, error) {
	switch {
	case o.jsonOutput:
		return domain.OutputFormatJSON, nil
	case o.yamlOutput:
		return domain.OutputFormatYAML, nil
	case o.format != "":
		return domain.ParseOutputFormat(o.format)
	case configured != "":
		return domain.ParseOutputFormat(configured)
	default:
		return domain.OutputFormatText, nil
	}
}

// loadConfig loads the explicit config or the one discovered from the first path
func (o *runOptions) loadConfig(args []string) (*config.Config, error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	return service.NewConfigurationLoader().LoadFullConfig(o.configPath, target)
}

// request merges the loaded configuration with the command line
func (o *runOptions) request(cfg *config.Config, args []string, stdin io.Reader) (*domain.HotspotRequest, error) {
	loader := service.NewConfigurationLoader()
	base := loader.ToRequest(cfg)

	format, err := o.outputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	captured, err := readCaptured(o.captured, stdin)
	if err != nil {
		return nil, err
	}

	req := loader.MergeConfig(base, &domain.HotspotRequest{
		Paths:           args,
		Analyzers:       o.analyzers,
		CapturedOutput:  captured,
		OutputFormat:    format,
		IncludePatterns: o.includeGlobs,
		ExcludePatterns: o.excludeGlobs,
		ConfigPath:      o.configPath,
	})
	req.OutputFormat = format

	if len(req.Paths) == 0 && len(req.CapturedOutput) == 0 {
		return nil, fmt.Errorf("no paths specified")
	}
	return req, nil
}

func (o *runOptions) logger() *log.Logger {
	if o.quiet {
		return service.NewDiscardLogger()
	}
	return log.New(os.Stderr, constants.ToolName+": ", 0)
}

// openOutput returns the report destination and a function closing it
func (o *runOptions) openOutput(stdout io.Writer) (io.Writer, func() error, error) {
	if o.outputPath == "" {
		return stdout, func() error { return nil }, nil
	}
	file, err := os.Create(o.outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, file.Close, nil
}

// buildUseCase wires the hotspot pipeline for one command run
func (o *runOptions) buildUseCase(cfg *config.Config, req *domain.HotspotRequest, pm domain.ProgressManager) (*app.HotspotUseCase, error) {
	logger := o.logger()

	generators, err := service.NewGenerators(cfg, req.Analyzers, service.NewExecRunner(), logger)
	if err != nil {
		return nil, err
	}

	ranker := service.NewHotspotService()
	ranker.SetLogger(logger)

	fileHelper := app.NewFileHelper()
	annotator := service.NewAnnotationServiceWithProgress(fileHelper, pm)
	annotator.SetLogger(logger)

	return app.NewHotspotUseCaseBuilder().
		WithGenerators(generators...).
		WithExecutor(service.NewParallelExecutorWithProgress(&cfg.Performance, pm)).
		WithRanker(ranker).
		WithAnnotator(annotator).
		WithFormatter(service.NewOutputFormatter()).
		WithFileHelper(fileHelper).
		WithLogger(logger).
		Build()
}

// readCaptured loads metric=path pairs; the path "-" reads stdin.
// Only one metric may read stdin.
func readCaptured(paths map[string]string, stdin io.Reader) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	metrics := make([]string, 0, len(paths))
	for metric := range paths {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	out := make(map[string]string, len(paths))
	usedStdin := false
	for _, metric := range metrics {
		path := paths[metric]
		var data []byte
		var err error
		if path == "-" {
			if usedStdin {
				return nil, fmt.Errorf("only one analyzer can read captured output from stdin")
			}
			usedStdin = true
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read captured %s output: %w", metric, err)
		}
		out[strings.TrimSpace(metric)] = string(data)
	}
	return out, nil
}

// parseCapturedArgs turns metric=path arguments into a map
func parseCapturedArgs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		metric, path, ok := strings.Cut(arg, "=")
		if !ok || metric == "" || path == "" {
			return nil, fmt.Errorf("invalid argument %q, expected metric=path", arg)
		}
		if _, dup := out[metric]; dup {
			return nil, fmt.Errorf("captured output for %s given twice", metric)
		}
		out[metric] = path
	}
	return out, nil
}
