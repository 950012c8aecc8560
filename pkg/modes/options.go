package modes

// Option configures a Context at construction.
type Option func(*settings)

type settings struct {
	iv          []byte
	segmentBits int
	segmentSet  bool
	increment   func(uint64) uint64
	parallel    int
}

// WithIV sets the 8-byte initialization vector. For CTR it is the initial
// counter value. It is ignored for ECB.
func WithIV(iv []byte) Option {
	return func(s *settings) {
		s.iv = append([]byte{}, iv...)
	}
}

// WithSegmentSize sets the CFB feedback size in bits. Supported values are
// multiples of 8 from 8 to 64; the default is 64 (full-block feedback).
func WithSegmentSize(bits int) Option {
	return func(s *settings) {
		s.segmentBits = bits
		s.segmentSet = true
	}
}

// WithCounterIncrement replaces the CTR counter step. The default adds one
// modulo 2^64.
func WithCounterIncrement(inc func(uint64) uint64) Option {
	return func(s *settings) {
		s.increment = inc
	}
}

// WithParallelism bounds the number of goroutines used for large ECB inputs.
// Chained modes always run sequentially.
func WithParallelism(n int) Option {
	return func(s *settings) {
		s.parallel = n
	}
}
