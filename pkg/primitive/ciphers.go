package primitive

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/tea"
	"golang.org/x/crypto/xtea"
)

// NewXTEA returns the reference primitive: XTEA with 64 Feistel rounds and
// big-endian word order.
func NewXTEA(key []byte) (Primitive, error) {
	return newKeyed("xtea", key, func(key []byte) (cipher.Block, error) {
		return xtea.NewCipher(key)
	})
}

// NewTEA returns TEA with 64 rounds.
func NewTEA(key []byte) (Primitive, error) {
	return newKeyed("tea", key, tea.NewCipher)
}

// NewBlowfish returns Blowfish keyed with a 128-bit key.
func NewBlowfish(key []byte) (Primitive, error) {
	return newKeyed("blowfish", key, func(key []byte) (cipher.Block, error) {
		return blowfish.NewCipher(key)
	})
}

// NewCAST5 returns CAST-128.
func NewCAST5(key []byte) (Primitive, error) {
	return newKeyed("cast5", key, func(key []byte) (cipher.Block, error) {
		return cast5.NewCipher(key)
	})
}

func newKeyed(name string, key []byte, newBlock func([]byte) (cipher.Block, error)) (Primitive, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %s: key is %d bytes, want %d", ErrKeySize, name, len(key), KeySize)
	}

	block, err := newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("creating %s cipher: %w", name, err)
	}

	return FromBlock(block)
}
