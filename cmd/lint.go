package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/faultline-dev/faultline/internal/catalog"
)

// NewLintCmd creates the lint subcommand, which validates a template
// catalogue file and reports every problem found.
func NewLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <catalog.toml>",
		Short: "Validate a template catalogue",
		Args:  cobra.ExactArgs(1),
		RunE:  lintRunE,
	}
}

func lintRunE(cmd *cobra.Command, args []string) error {
	path := args[0]
	problems, err := catalog.LintFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(problems) == 0 {
		fmt.Fprintf(out, "%s %s\n", color.GreenString("ok"), path)
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(out, "%s %s\n", color.RedString("error"), p)
	}
	return fmt.Errorf("%s: %d problem(s)", path, len(problems))
}
