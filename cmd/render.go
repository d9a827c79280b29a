package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/faultline-dev/faultline/internal/catalog"
	"github.com/faultline-dev/faultline/pkg/faultline"
)

// NewRenderCmd creates the render subcommand, which registers a catalogue
// into a throwaway engine, logs one error, and prints the rendered
// message with its suggestion table. Useful while authoring catalogues.
func NewRenderCmd(verbose *bool) *cobra.Command {
	var ctxPairs []string

	cmd := &cobra.Command{
		Use:   "render <catalog.toml> <template-key>",
		Short: "Preview a template's rendered message and suggestions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderRunE(cmd, args[0], args[1], ctxPairs, *verbose)
		},
	}
	cmd.Flags().StringArrayVar(&ctxPairs, "ctx", nil, "context field as key=value (repeatable)")
	return cmd
}

func renderRunE(cmd *cobra.Command, path, key string, ctxPairs []string, verbose bool) error {
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}
	sys, err := faultline.New(faultline.WithDiagnostics(newDiagLogger(cmd, verbose)))
	if err != nil {
		return err
	}
	if err := catalog.Register(sys, cat); err != nil {
		return err
	}

	id, err := sys.LogError(key, parseContextFlags(ctxPairs))
	if err != nil {
		return err
	}
	logs := sys.History(1)
	if len(logs) == 0 {
		return fmt.Errorf("log %d missing from history", id)
	}
	log := logs[0]

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", severityColor(log.Severity)(log.Severity.String()), log.Message)
	fmt.Fprintf(out, "category: %s\n", log.Category)
	for _, sg := range log.Suggestions {
		auto := ""
		if sg.Automatic {
			auto = color.CyanString(" [auto]")
		}
		fmt.Fprintf(out, "  %d. %s (%s)%s\n", sg.Priority, sg.Title, sg.ID, auto)
		if sg.Description != "" {
			fmt.Fprintf(out, "     %s\n", sg.Description)
		}
	}
	return nil
}

func severityColor(sev faultline.Severity) func(a ...interface{}) string {
	switch sev {
	case faultline.SeverityCritical:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case faultline.SeverityError:
		return color.New(color.FgRed).SprintFunc()
	case faultline.SeverityWarning:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgBlue).SprintFunc()
	}
}
