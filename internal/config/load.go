package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables, e.g. XTEA3_KEY_FILE.
const EnvPrefix = "XTEA3"

// Load fills c from flags, XTEA3_* environment variables and the optional
// profile. Explicit flags win over the environment, which wins over the
// profile, which wins over flag defaults.
func (c *Config) Load(flags *pflag.FlagSet) error {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("profile"); path != "" {
		profile, err := LoadProfile(path)
		if err != nil {
			return err
		}

		if err := v.MergeConfigMap(profile.Settings()); err != nil {
			return fmt.Errorf("applying profile: %w", err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}
