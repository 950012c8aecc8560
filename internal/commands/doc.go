// Package commands provides the command-line interface for the xtea3 tool.
//
// It implements commands for:
//   - encryption and decryption of files
//   - key generation
//   - listing the supported modes and ciphers
//   - a concurrent self-check of every mode
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/Varbin/xtea3/internal/config"
	"github.com/Varbin/xtea3/internal/logic"
)

// preRun returns a PreRunE handler that stores positional args in cfg.Files
// and validates the configuration. Validation is skipped for --show.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Files = args

		if cfg.Show {
			return nil
		}

		return cfg.Validate()
	}
}

// run either prints the configuration or processes the files.
func run(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if cfg.Show {
			return cfg.Display(cmd.OutOrStdout())
		}

		return logic.Run(cfg)
	}
}
