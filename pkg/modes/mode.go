package modes

import (
	"fmt"
	"strings"
)

// Mode selects the chaining algorithm of a Context.
// The numeric values are stable and used in serialized headers.
type Mode byte

const (
	// ECB is Electronic Codebook mode.
	ECB Mode = 1
	// CBC is Cipher Block Chaining mode.
	CBC Mode = 2
	// CFB is Cipher Feedback mode with a configurable segment size.
	CFB Mode = 3
	// OFB is Output Feedback mode.
	OFB Mode = 5
	// CTR is Counter mode with a 64-bit big-endian counter.
	CTR Mode = 6
)

// Value 4 was historically PGP-CFB. It is never accepted.
const modePGP Mode = 4

// Modes returns every supported mode.
func Modes() []Mode {
	return []Mode{ECB, CBC, CFB, OFB, CTR}
}

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	case CTR:
		return "CTR"
	case modePGP:
		return "PGP"
	default:
		return fmt.Sprintf("Mode(%d)", byte(m))
	}
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ECB, CBC, CFB, OFB, CTR:
		return true
	default:
		return false
	}
}

// RequiresIV reports whether m needs an initialization vector.
func (m Mode) RequiresIV() bool {
	return m.Valid() && m != ECB
}

// Aligned reports whether m only accepts whole blocks.
func (m Mode) Aligned() bool {
	return m == ECB || m == CBC
}

// ParseMode converts a case-insensitive mode name into a Mode.
// Unofficial variants such as PGP-CFB and CCM are rejected with ErrConfig.
func ParseMode(name string) (Mode, error) {
	name = strings.ToUpper(strings.TrimSpace(name))

	for _, mode := range Modes() {
		if mode.String() == name {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("%w: unsupported mode %q", ErrConfig, name)
}
