package modes

import "errors"

var (
	// ErrConfig is returned at construction for an invalid key, IV, segment
	// size, option combination or unsupported mode. Processing returns it when
	// the primitive cannot be created or rejects a block.
	ErrConfig = errors.New("invalid mode configuration")
	// ErrAlignment is returned when ECB or CBC input is not a multiple of the
	// block size. No input is processed and the chaining state is unchanged.
	ErrAlignment = errors.New("input is not a multiple of the block size")
	// ErrState is returned when a finalized context is used, or when a chaining
	// context bound to one direction is used in the other.
	ErrState = errors.New("invalid context state")
)
