package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var statsOnly bool

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Render the fixed note to HTML without changing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rendered, err := getApp(cmd).Preview(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !statsOnly {
				_, _ = fmt.Fprintln(out, string(rendered.HTML))
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d hard breaks, %d soft breaks\n", rendered.HardBreaks, rendered.SoftBreaks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&statsOnly, "stats", false, "only print line break counts")
	return cmd
}
