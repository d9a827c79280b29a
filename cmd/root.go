// Package cmd implements the faultline CLI commands.
package cmd

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root faultline command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "faultline",
		Short:         "faultline - error catalogue and export tooling",
		Long:          "Tooling around the faultline error management engine:\nvalidate template catalogues, preview rendered error messages, and\ninspect or convert exported snapshots.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable engine diagnostics on stderr")

	root.AddCommand(NewLintCmd())
	root.AddCommand(NewRenderCmd(&verbose))
	root.AddCommand(NewStatsCmd())
	root.AddCommand(NewConvertCmd())
	return root
}

// newDiagLogger builds the logrus logger handed to engines the CLI
// constructs. Quiet unless --verbose.
func newDiagLogger(cmd *cobra.Command, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// parseContextFlags converts repeated k=v flags into a context map.
func parseContextFlags(pairs []string) map[string]interface{} {
	if len(pairs) == 0 {
		return nil
	}
	ctx := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			ctx[pair] = ""
			continue
		}
		ctx[k] = v
	}
	return ctx
}
