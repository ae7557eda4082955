package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrickward/twospace/internal/crypto"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an age key pair for encrypted notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			pair, err := crypto.GenerateNewEncryptionPair(app.KeysDir)
			if err != nil {
				return fmt.Errorf("error generating new encryption identity: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Generated new encryption identity:\n")
			_, _ = fmt.Fprintf(out, "  Public key: %s\n", pair.PublicKey)
			_, _ = fmt.Fprintf(out, "  Public key file: %s\n", pair.PublicPath)
			_, _ = fmt.Fprintf(out, "  Private key file: %s\n", pair.PrivatePath)
			_, _ = fmt.Fprintf(out, "\nTo use these keys:\n")
			_, _ = fmt.Fprintf(out, "  twospace --identity %s --recipient %s\n", pair.PrivatePath, pair.PublicPath)
			return nil
		},
	}
}
