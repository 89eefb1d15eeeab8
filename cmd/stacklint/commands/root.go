package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklint/stacklint/pkg/lint"
	"github.com/stacklint/stacklint/pkg/telemetry"
)

var (
	// Global flags
	logLevel  string
	logFormat string
	noColor   bool

	logger *telemetry.Logger
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stacklint",
		Short: "Stacklint - Terraform configuration convention checker",
		Long: `Stacklint validates Terraform configuration directories against
naming and positioning conventions.

Features:
  - Naming rules per resource type with per-field regex checks
  - Positioning rules mapping resource types to expected filenames
  - Variable interpolation and counted-resource expansion
  - Lenient mode for partially resolvable configurations`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := telemetry.LoggingConfig{
				Level:   logLevel,
				Format:  logFormat,
				Output:  "stderr",
				NoColor: noColor,
			}
			base, err := telemetry.NewLogger(cfg)
			if err != nil {
				return err
			}
			logger = base.NewComponentLogger("stacklint")
			lint.DisableColor(noColor)
			return nil
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRulesCommand())

	return rootCmd
}
