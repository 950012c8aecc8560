// Package primitive defines the block cipher boundary used by the mode engine.
//
// A Primitive encrypts or decrypts exactly one 8-byte block under the key it was
// created with. It keeps no state between calls, so the same Primitive can serve
// any number of independent mode contexts.
package primitive

const (
	// BlockSize is the only block size accepted at the boundary, in bytes.
	BlockSize = 8
	// KeySize is the key size of every registered primitive, in bytes.
	KeySize = 16
)

// Primitive is a fixed-key block cipher operating on 8-byte blocks.
type Primitive interface {
	// BlockSize returns the block size in bytes. It is always BlockSize.
	BlockSize() int

	// EncryptBlock encrypts the single block src into dst.
	EncryptBlock(dst, src []byte) error

	// DecryptBlock decrypts the single block src into dst.
	DecryptBlock(dst, src []byte) error
}

// Factory binds a key and returns the resulting Primitive.
type Factory func(key []byte) (Primitive, error)
