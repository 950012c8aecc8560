package encryption

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/Varbin/xtea3/internal/config"
	"github.com/Varbin/xtea3/pkg/primitive"
)

// loadKey reads hex key material from the flag or key file.
func loadKey(k config.Key) ([]byte, error) {
	material := k.String

	if k.File != "" {
		data, err := os.ReadFile(k.File)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		material = string(data)
	}

	raw, err := key.FromHex(strings.TrimSpace(material))
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	return deriveKey(raw)
}

// deriveKey returns material unchanged when it is already a primitive key and
// stretches anything else to primitive.KeySize bytes with HKDF-SHA256.
func deriveKey(material []byte) ([]byte, error) {
	if len(material) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrKey)
	}

	if len(material) == primitive.KeySize {
		return material, nil
	}

	derived := make([]byte, primitive.KeySize)

	if _, err := io.ReadFull(hkdf.New(sha256.New, material, nil, []byte("xtea3/key")), derived); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	return derived, nil
}
