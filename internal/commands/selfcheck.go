package commands

import (
	"github.com/spf13/cobra"

	"github.com/Varbin/xtea3/internal/config"
	"github.com/Varbin/xtea3/internal/logic"
)

// NewSelfCheckCommand creates a command running random round trips through
// every mode and cipher.
func NewSelfCheckCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "selfcheck",
		Aliases: []string{"check"},
		Short:   "Round-trip random messages through every mode concurrently",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.SelfCheck(cmd.OutOrStdout(), cfg.Iterations, cfg.Parallel, cfg.Quiet)
		},
	}

	cmd.Flags().IntP("iterations", "n", 100, "Random messages per mode and cipher")

	return cmd
}
