package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrNeedsFixing is returned by fix --check when any file would change
var ErrNeedsFixing = errors.New("some files need fixing")

// ErrFailed is returned when any file could not be processed
var ErrFailed = errors.New("some files could not be processed")

func newFixCmd(timeout *time.Duration) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Ensure all lines end with exactly two spaces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, check, *timeout)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "report files that need fixing without changing them")
	return cmd
}

func runFix(cmd *cobra.Command, paths []string, check bool, timeout time.Duration) error {
	app := getApp(cmd)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	report, err := app.Fix(ctx, paths, check)
	printReport(cmd, report)
	if err != nil {
		return err
	}

	if report.Count(StatusFailed) > 0 {
		return ErrFailed
	}
	if check && report.Count(StatusWouldChange) > 0 {
		return ErrNeedsFixing
	}
	return nil
}

func printReport(cmd *cobra.Command, report Report) {
	out := cmd.OutOrStdout()
	changed := color.New(color.FgGreen)
	pending := color.New(color.FgYellow)
	failed := color.New(color.FgRed)

	for _, result := range report.Results {
		switch result.Status {
		case StatusChanged:
			_, _ = changed.Fprintf(out, "%s: %s\n", result.Status, result.Path)
		case StatusWouldChange:
			_, _ = pending.Fprintf(out, "%s: %s\n", result.Status, result.Path)
		case StatusFailed:
			_, _ = failed.Fprintf(out, "%s: %s: %v\n", result.Status, result.Path, result.Err)
		}
	}

	_, _ = fmt.Fprintf(out, "%d fixed, %d need fixing, %d unchanged, %d skipped, %d failed\n",
		report.Count(StatusChanged),
		report.Count(StatusWouldChange),
		report.Count(StatusUnchanged),
		report.Count(StatusSkipped),
		report.Count(StatusFailed))
}
