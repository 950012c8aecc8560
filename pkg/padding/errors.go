package padding

import "errors"

var (
	// ErrEmptyData is returned when attempting to unpad empty input.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrUnknownScheme is returned by Lookup for unsupported names.
	ErrUnknownScheme = errors.New("unknown padding scheme")
)
