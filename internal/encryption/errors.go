package encryption

import "errors"

var (
	// ErrProcessing indicates a malformed or unsupported envelope.
	ErrProcessing = errors.New("envelope processing error")
	// ErrKey is returned when no usable key material was supplied.
	ErrKey = errors.New("invalid key")
)
