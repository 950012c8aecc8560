// Package padding implements caller-side padding schemes for block-aligned modes.
//
// The mode engine never pads: ECB and CBC reject misaligned input. Callers that
// need arbitrary-length messages pad before encrypting and unpad after decrypting.
package padding

import (
	"bytes"
	"fmt"
	"strings"
)

// Scheme pads data to a multiple of a block size and removes that padding again.
type Scheme interface {
	// Name returns the scheme identifier.
	Name() string

	// Pad returns data extended to a multiple of blockSize. A full block of
	// padding is appended when data is already aligned.
	Pad(data []byte, blockSize int) []byte

	// Unpad strips and verifies the padding.
	Unpad(data []byte, blockSize int) ([]byte, error)
}

// PKCS7 fills the tail with n bytes of value n.
type PKCS7 struct{}

// Name implements Scheme.
func (PKCS7) Name() string { return "pkcs7" }

// Pad implements Scheme.
func (PKCS7) Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize

	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad implements Scheme.
func (PKCS7) Unpad(data []byte, blockSize int) ([]byte, error) {
	n, err := trailer(data, blockSize)
	if err != nil {
		return nil, err
	}

	for _, b := range data[len(data)-n:] {
		if b != byte(n) {
			return nil, ErrInvalidPadding
		}
	}

	return data[:len(data)-n], nil
}

// ANSIX923 fills the tail with zeros followed by a single length byte.
type ANSIX923 struct{}

// Name implements Scheme.
func (ANSIX923) Name() string { return "x923" }

// Pad implements Scheme.
func (ANSIX923) Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize

	padded := append(bytes.Clone(data), make([]byte, n)...)
	padded[len(padded)-1] = byte(n)

	return padded
}

// Unpad implements Scheme.
func (ANSIX923) Unpad(data []byte, blockSize int) ([]byte, error) {
	n, err := trailer(data, blockSize)
	if err != nil {
		return nil, err
	}

	for _, b := range data[len(data)-n : len(data)-1] {
		if b != 0 {
			return nil, ErrInvalidPadding
		}
	}

	return data[:len(data)-n], nil
}

// trailer validates the shape of padded data and returns the padding length.
func trailer(data []byte, blockSize int) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyData
	}

	if len(data)%blockSize != 0 {
		return 0, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidPadding, len(data), blockSize)
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return 0, fmt.Errorf("%w: size %d", ErrInvalidPadding, n)
	}

	return n, nil
}

// Lookup returns the scheme with the given name.
// "none" and the empty string return a nil Scheme.
func Lookup(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil //nolint:nilnil // no padding is a valid selection
	case "pkcs7":
		return PKCS7{}, nil
	case "x923", "ansix923":
		return ANSIX923{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}
