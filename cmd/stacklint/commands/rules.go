package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklint/stacklint/pkg/lint"
)

func newRulesCommand() *cobra.Command {
	var positioning bool

	cmd := &cobra.Command{
		Use:   "rules <file>",
		Short: "Validate a rules file against its schema",
		Long: `Validate a naming or positioning rules file without running any
checks, useful for catching schema mistakes before they land in CI.`,
		Example: `  # Validate a naming rules file
  stacklint rules naming.yaml

  # Validate a positioning rules file
  stacklint rules --positioning positioning.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if positioning {
				if _, err := lint.LoadPositioningRules(args[0]); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid positioning rules\n", args[0])
				return nil
			}
			ruleSet, err := lint.LoadNamingRules(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d valid naming rule(s)\n", args[0], len(ruleSet.Rules()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&positioning, "positioning", false, "treat the file as positioning rules")

	return cmd
}
