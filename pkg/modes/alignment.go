package modes

import "fmt"

// checkAlignment rejects input that a block-aligned mode cannot process
// without padding. Stream-like modes accept any length.
func checkAlignment(mode Mode, n int) error {
	if !mode.Aligned() || n%blockSize == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s got %d bytes, want a multiple of %d", ErrAlignment, mode, n, blockSize)
}
