package encryption

import (
	"sync"
)

// defaultBufferSize is large enough for parallel ECB to split a chunk.
const defaultBufferSize = 256 * 1024

// bufferPool provides reusable read buffers for streaming file contents.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, defaultBufferSize)
	},
}
