package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/rbscan/domain"
	"github.com/ludo-technologies/rbscan/internal/version"
	"github.com/ludo-technologies/rbscan/service"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Handle custom exit codes from check command
		if exitErr, ok := err.(*CheckExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			// Silently exit with the specified code (output already printed)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if domain.IsAnalysisError(err) || domain.IsArgumentError(err) {
			fmt.Fprintln(os.Stderr, "This is a bug in rbscan; please report it with the analyzer output that triggered it.")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rbscan",
		Short: "rbscan - hotspot report for Ruby code",
		Long: `rbscan runs reek, flog and roodi over a Ruby project and combines their
reports into a ranked list of the worst files, classes and methods.`,
		Version: Version,
	}

	rootCmd.AddCommand(hotspotsCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			switch {
			case asJSON:
				return service.WriteJSON(cmd.OutOrStdout(), version.Get())
			case verbose:
				fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "rbscan version %s\n", version.GetVersion())
			}
			return nil
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	cmd.Flags().Bool("json", false, "Print version information as JSON")
	return cmd
}
