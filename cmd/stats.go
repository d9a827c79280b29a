package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/faultline-dev/faultline/pkg/faultline"
	"github.com/faultline-dev/faultline/pkg/formatters"
)

// NewStatsCmd creates the stats subcommand, which recomputes aggregate
// statistics from an exported snapshot file.
func NewStatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats <export-file>",
		Short: "Summarize an exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return statsRunE(cmd, args[0], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format (json|msgpack); inferred from extension when empty")
	return cmd
}

func statsRunE(cmd *cobra.Command, path, format string) error {
	snap, err := readSnapshot(path, format)
	if err != nil {
		return err
	}

	total, resolved := 0, 0
	bySeverity := make(map[string]int)
	byCategory := make(map[string]int)
	for _, rec := range snap.Records {
		total++
		if rec.Resolved {
			resolved++
		}
		bySeverity[rec.Severity]++
		byCategory[rec.Category]++
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "snapshot %s (session %s, created %s)\n", snap.SnapshotID, snap.SessionID, snap.CreatedAt)
	fmt.Fprintf(out, "total: %d  resolved: %s  unresolved: %s\n",
		total,
		color.GreenString("%d", resolved),
		color.RedString("%d", total-resolved))
	printBreakdown(out, "by severity", bySeverity)
	printBreakdown(out, "by category", byCategory)
	return nil
}

func printBreakdown(out io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(out, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(out, "  %-12s %d\n", k, counts[k])
	}
}

// readSnapshot loads an export file, inferring the format from the file
// extension unless one is given.
func readSnapshot(path, format string) (faultline.Snapshot, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".msgpack", ".mp":
			format = "msgpack"
		default:
			format = "json"
		}
	}
	f, ok := formatters.ByName(format)
	if !ok {
		return faultline.Snapshot{}, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(formatters.Names(), ", "))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return faultline.Snapshot{}, err
	}
	return f.Parse(data)
}
