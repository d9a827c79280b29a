package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faultline-dev/faultline/pkg/formatters"
)

// NewConvertCmd creates the convert subcommand, which re-encodes an
// exported snapshot between the supported formats.
func NewConvertCmd() *cobra.Command {
	var (
		inFormat  string
		outFormat string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "convert <export-file>",
		Short: "Re-encode an exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertRunE(cmd, args[0], inFormat, outFormat, outPath)
		},
	}
	cmd.Flags().StringVar(&inFormat, "from", "", "input format (json|msgpack); inferred from extension when empty")
	cmd.Flags().StringVar(&outFormat, "format", "json", "output format (json|msgpack)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (stdout when empty)")
	return cmd
}

func convertRunE(cmd *cobra.Command, path, inFormat, outFormat, outPath string) error {
	snap, err := readSnapshot(path, inFormat)
	if err != nil {
		return err
	}
	f, ok := formatters.ByName(outFormat)
	if !ok {
		return fmt.Errorf("unknown format %q (want one of %s)", outFormat, strings.Join(formatters.Names(), ", "))
	}
	data, err := f.Format(snap)
	if err != nil {
		return err
	}
	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
