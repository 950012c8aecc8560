package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/Varbin/xtea3/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "xtea3 [flags] command [flags]"
	root.Short = "XTEA file encryption in classic block cipher modes"
	root.Long = `Encrypts and decrypts files with XTEA (or another 64-bit block cipher)
in ECB, CBC, CFB, OFB or CTR mode. Output files carry a small header with
the mode parameters and a fresh IV, so decryption only needs the key.

Flags can also be set through XTEA3_* environment variables, e.g. XTEA3_KEY_FILE.
The encryption is not authenticated.`

	root.SilenceErrors = true
	root.SilenceUsage = true

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return cfg.Load(cmd.Flags())
	}

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("stats", false, "Print a summary after processing")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")

	flags.StringP("key", "k", "", "Encryption key, hex-encoded (16 bytes are used as is, other lengths are stretched)")
	flags.StringP("key-file", "f", "", "Path to the key file with the hex-encoded encryption key")

	flags.String("encrypt-ext", ".xtea", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewGenerateCommand(),
		NewModesCommand(),
		NewSelfCheckCommand(cfg),
	)

	return root
}
