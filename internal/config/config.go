// Package config holds the command-line configuration of xtea3.
package config

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/showa-93/go-mask"
)

// Key selects where the key material comes from.
type Key struct {
	// String is hex encoded key material.
	String string `label:"--key"      mapstructure:"key"      mask:"filled" validate:"exclusive=File,required_without=File"`
	// File is a path to a file holding hex encoded key material.
	File string `label:"--key-file" mapstructure:"key-file"`
}

// Suffixes are appended to output file names.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext"`
	Decrypt string `label:"--decrypt-ext" mapstructure:"decrypt-ext"`
}

// Config represents the full configuration of a run.
type Config struct {
	// Show prints the configuration and exits.
	Show bool

	// Parallel bounds concurrently processed files and ECB workers per file.
	Parallel int `validate:"min=1"`

	Quiet              bool
	Stats              bool
	Delete             bool
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	Key      Key      `mapstructure:",squash"`
	Suffixes Suffixes `mapstructure:",squash"`

	// Cipher names the block primitive used for encryption.
	Cipher string `validate:"omitempty,cipher"`
	// Mode names the mode of operation used for encryption.
	Mode string `validate:"omitempty,mode"`
	// Segment is the CFB segment size in bits, 0 for the default.
	Segment int `validate:"omitempty,min=8,max=64"`
	// Padding names the scheme completing the last block in ECB and CBC.
	Padding string `validate:"omitempty,padding"`

	// Profile is a JSONC file with cipher defaults.
	Profile string

	// Iterations is the number of random messages per mode in a self-check.
	Iterations int

	Decrypt bool     `mapstructure:"-"`
	Files   []string `mapstructure:"-" validate:"min=1,dive,required"`
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}

// Display writes the configuration as YAML with the key masked.
func (c *Config) Display(w io.Writer) error {
	masked, err := mask.Mask(*c)
	if err != nil {
		return fmt.Errorf("masking configuration: %w", err)
	}

	out, err := yaml.Marshal(masked)
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}

	return nil
}
