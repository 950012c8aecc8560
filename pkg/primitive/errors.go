package primitive

import "errors"

var (
	// ErrBlockSize is returned when a block is not exactly BlockSize bytes,
	// or when an adapted cipher.Block has a different block size.
	ErrBlockSize = errors.New("invalid block size")
	// ErrKeySize is returned when a key is not KeySize bytes.
	ErrKeySize = errors.New("invalid key size")
	// ErrUnknown is returned when no primitive is registered under a name.
	ErrUnknown = errors.New("unknown primitive")
)
