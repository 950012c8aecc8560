// Command xtea3 encrypts and decrypts files with XTEA in classic block cipher modes.
package main

import (
	"fmt"
	"os"

	"github.com/Varbin/xtea3/internal/commands"
	"github.com/Varbin/xtea3/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		os.Exit(1)
	}
}
