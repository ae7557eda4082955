package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the registered commands and their hotkeys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			out := cmd.OutOrStdout()

			for _, c := range app.Registry.Commands() {
				hotkeys := make([]string, 0, len(c.Hotkeys))
				for _, hk := range c.Hotkeys {
					hotkeys = append(hotkeys, hk.String())
				}

				line := fmt.Sprintf("%s\t%s", c.ID, c.Name)
				if len(hotkeys) > 0 {
					line += "\t" + strings.Join(hotkeys, ", ")
				}
				_, _ = fmt.Fprintln(out, line)
			}

			if app.Registry.HasSaveHandlers() {
				_, _ = fmt.Fprintln(out, "on save\tenabled")
			} else {
				_, _ = fmt.Fprintln(out, "on save\tdisabled")
			}
			return nil
		},
	}
}
