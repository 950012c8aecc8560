package commands

import (
	"github.com/spf13/cobra"

	"github.com/Varbin/xtea3/internal/logic"
)

// NewModesCommand creates a command listing modes, ciphers and padding schemes.
func NewModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List supported modes, ciphers and padding schemes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logic.ListModes(cmd.OutOrStdout())
		},
	}
}
