package commands

import (
	"github.com/spf13/cobra"

	"github.com/Varbin/xtea3/internal/config"
	"github.com/Varbin/xtea3/pkg/primitive"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg),
		RunE:    run(cfg),
	}

	cmd.Flags().StringP("cipher", "c", primitive.Default, "Block cipher, see the modes command")
	cmd.Flags().StringP("mode", "m", "CBC", "Mode of operation: ECB, CBC, CFB, OFB or CTR")
	cmd.Flags().Int("segment", 0, "CFB segment size in bits (8 to 64, multiple of 8), defaults to 64")
	cmd.Flags().StringP("padding", "p", "pkcs7", "Padding for ECB and CBC: pkcs7, x923 or none")
	cmd.Flags().String("profile", "", "JSONC file with cipher, mode, segment and padding defaults")

	return cmd
}
