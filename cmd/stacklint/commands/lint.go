package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stacklint/stacklint/pkg/lint"
)

func newLintCommand() *cobra.Command {
	var (
		namingFile          string
		positioningFile     string
		variablesFile       string
		skipPositioning     bool
		skipPositioningFile string
		lenient             bool
	)

	cmd := &cobra.Command{
		Use:   "lint <directory>",
		Short: "Check a configuration directory against naming and positioning rules",
		Long: `Check every resource of a Terraform configuration directory against
the naming conventions of a rules file and, optionally, the filename
positioning conventions of a positioning file.

Counted resources are expanded and variable references interpolated
before the rules run, so rules see the values a plan would see.`,
		Example: `  # Check naming conventions only
  stacklint lint ./stack --naming naming.yaml

  # Check naming and positioning, with global variables
  stacklint lint ./stack --naming naming.yaml --positioning positioning.yaml --var-file production.tfvars

  # Tolerate unresolvable variable references
  stacklint lint ./stack --naming naming.yaml --lenient`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The environment toggle maps onto the explicit option so
			// CI setups can flip positioning off without flag changes.
			// An empty value does not count as set.
			if os.Getenv("SKIP_POSITIONING") != "" {
				skipPositioning = true
			}

			stack, err := lint.NewStack(args[0], namingFile, lint.StackOptions{
				PositioningFile:     positioningFile,
				VariablesFile:       variablesFile,
				SkipPositioning:     skipPositioning,
				SkipPositioningFile: skipPositioningFile,
				Lenient:             lenient,
				Logger:              logger,
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			findings := stack.Validate()
			for _, finding := range findings {
				fmt.Fprintln(cmd.OutOrStdout(), finding.String())
			}
			if len(findings) > 0 {
				return fmt.Errorf("%d convention violation(s) found", len(findings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&namingFile, "naming", "", "naming rules file (required)")
	cmd.Flags().StringVar(&positioningFile, "positioning", "", "positioning rules file")
	cmd.Flags().StringVar(&variablesFile, "var-file", "", "global variables file")
	cmd.Flags().BoolVar(&skipPositioning, "skip-positioning", false, "skip positioning checks entirely")
	cmd.Flags().StringVar(&skipPositioningFile, "skip-positioning-file", "", "filename exempted from positioning checks")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "echo unresolvable variable references instead of failing")
	_ = cmd.MarkFlagRequired("naming")

	return cmd
}
