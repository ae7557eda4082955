package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSettings(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a setting (runOnSave, allowHotkey, hotkeyText, excludeCodeBlocks, excludeFrontMatter)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := getApp(cmd).Settings.Set(args[0], args[1]); err != nil {
				return err
			}
			return printSettings(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := getApp(cmd).Settings.Reset(); err != nil {
				return err
			}
			return printSettings(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), getApp(cmd).Settings.Path())
		},
	})

	return cmd
}

func printSettings(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, field := range getApp(cmd).Settings.Snapshot().Fields() {
		if _, err := fmt.Fprintf(out, "%s: %s\n", field[0], field[1]); err != nil {
			return err
		}
	}
	return nil
}
