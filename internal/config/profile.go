package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Profile is a reusable set of cipher settings stored as JSONC.
type Profile struct {
	Cipher  string `json:"cipher,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Segment int    `json:"segment,omitempty"`
	Padding string `json:"padding,omitempty"`
}

// LoadProfile reads a JSONC profile. Unknown keys are rejected.
func LoadProfile(path string) (Profile, error) {
	var profile Profile

	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return profile, fmt.Errorf("reading profile %q: %w", path, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSONInPlace(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&profile); err != nil {
		return profile, fmt.Errorf("parsing profile %q: %w", path, err)
	}

	return profile, nil
}

// Settings returns the non-empty profile values keyed like the flags.
func (p Profile) Settings() map[string]any {
	settings := make(map[string]any)

	if p.Cipher != "" {
		settings["cipher"] = p.Cipher
	}

	if p.Mode != "" {
		settings["mode"] = p.Mode
	}

	if p.Segment != 0 {
		settings["segment"] = p.Segment
	}

	if p.Padding != "" {
		settings["padding"] = p.Padding
	}

	return settings
}
