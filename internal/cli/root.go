// Package cli implements the twospace command line host
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type ctxKey string

const appKey ctxKey = "app"

const defaultTimeout = 5 * time.Minute

// Execute builds the root command and runs it
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command. With paths and no subcommand it behaves like fix
func NewRootCmd() *cobra.Command {
	var opts Options
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:           "twospace [paths...]",
		Short:         "twospace - end every markdown line with a two-space hard break",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := BuildApp(opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, appKey, app)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app, ok := cmd.Context().Value(appKey).(*App); ok {
				app.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runFix(cmd, args, false, timeout)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "settings file (default $XDG_CONFIG_HOME/twospace/settings.yaml)")
	flags.StringVar(&opts.LogDir, "log-dir", "", "directory for the rotating log file (default: log to stderr only)")
	flags.StringVar(&opts.KeysDir, "keys-dir", "", "directory holding age keys (default $XDG_DATA_HOME/twospace/keys)")
	flags.StringVarP(&opts.IdentityFile, "identity", "i", "", "age identity file used to decrypt notes")
	flags.StringVarP(&opts.RecipientFile, "recipient", "r", "", "age recipients file used to encrypt notes")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.DurationVar(&timeout, "timeout", defaultTimeout, "give up after this long")

	cmd.AddCommand(newFixCmd(&timeout))
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newCommandsCmd())
	cmd.AddCommand(newSettingsCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newKeygenCmd())

	return cmd
}

func getApp(cmd *cobra.Command) *App {
	app, ok := cmd.Context().Value(appKey).(*App)
	if !ok {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return app
}
