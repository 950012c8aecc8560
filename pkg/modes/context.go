package modes

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/Varbin/xtea3/pkg/primitive"
)

const blockSize = primitive.BlockSize

// direction records which way a chaining context has been used.
type direction uint8

const (
	unbound direction = iota
	encrypting
	decrypting
)

func (d direction) String() string {
	switch d {
	case encrypting:
		return "encryption"
	case decrypting:
		return "decryption"
	default:
		return "none"
	}
}

// chainState is the per-mode register carried between calls.
// Implementations process whole inputs; alignment is checked by the caller.
type chainState interface {
	encrypt(prim primitive.Primitive, dst, src []byte) error
	decrypt(prim primitive.Primitive, dst, src []byte) error
	clone() chainState
	wipe()
}

// Context is one message stream under a fixed key, mode and IV.
// It is safe for concurrent use, but interleaving calls from several
// goroutines splits a single stream in an unspecified order.
type Context struct {
	mu sync.Mutex

	factory primitive.Factory
	prim    primitive.Primitive
	key     []byte

	mode        Mode
	segmentBits int
	increment   func(uint64) uint64
	parallel    int

	state     chainState
	dir       direction
	finalized bool
}

// New creates a Context for mode over the primitive produced by factory.
// The key must be primitive.KeySize bytes. The factory is not called until
// the first block is processed.
func New(factory primitive.Factory, key []byte, mode Mode, opts ...Option) (*Context, error) {
	var cfg settings

	for _, opt := range opts {
		opt(&cfg)
	}

	if factory == nil {
		return nil, fmt.Errorf("%w: nil primitive factory", ErrConfig)
	}

	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unsupported mode %s", ErrConfig, mode)
	}

	if len(key) != primitive.KeySize {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", ErrConfig, len(key), primitive.KeySize)
	}

	segmentBits, err := segmentSize(mode, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.increment != nil && mode != CTR {
		return nil, fmt.Errorf("%w: counter increment is only valid for CTR, not %s", ErrConfig, mode)
	}

	increment := cfg.increment
	if increment == nil {
		increment = Increment
	}

	parallel := cfg.parallel
	if parallel == 0 {
		parallel = 1
	}

	if parallel < 1 {
		return nil, fmt.Errorf("%w: parallelism must be positive, got %d", ErrConfig, cfg.parallel)
	}

	ctx := &Context{
		factory:     factory,
		key:         bytes.Clone(key),
		mode:        mode,
		segmentBits: segmentBits,
		increment:   increment,
		parallel:    parallel,
	}

	if ctx.state, err = ctx.newState(cfg.iv); err != nil {
		return nil, err
	}

	return ctx, nil
}

// segmentSize resolves the CFB segment size in bits.
func segmentSize(mode Mode, cfg settings) (int, error) {
	if !cfg.segmentSet {
		if mode == CFB {
			return blockSize * 8, nil
		}

		return 0, nil
	}

	if mode != CFB {
		return 0, fmt.Errorf("%w: segment size is only valid for CFB, not %s", ErrConfig, mode)
	}

	bits := cfg.segmentBits
	if bits < 1 || bits > blockSize*8 {
		return 0, fmt.Errorf("%w: segment size %d bits outside 1..%d", ErrConfig, bits, blockSize*8)
	}

	if bits%8 != 0 {
		return 0, fmt.Errorf("%w: segment size %d bits is not byte aligned", ErrConfig, bits)
	}

	return bits, nil
}

// newState builds the initial chaining register for iv.
func (c *Context) newState(iv []byte) (chainState, error) {
	if c.mode == ECB {
		return &ecbState{parallel: c.parallel}, nil
	}

	switch {
	case len(iv) == 0:
		return nil, fmt.Errorf("%w: %s requires an IV", ErrConfig, c.mode)
	case len(iv) != blockSize:
		return nil, fmt.Errorf("%w: IV is %d bytes, want %d", ErrConfig, len(iv), blockSize)
	}

	switch c.mode {
	case CBC:
		return newCBC(iv), nil
	case CFB:
		return newCFB(iv, c.segmentBits/8), nil
	case OFB:
		return newOFB(iv), nil
	case CTR:
		return newCTR(iv, c.increment), nil
	default:
		return nil, fmt.Errorf("%w: unsupported mode %s", ErrConfig, c.mode)
	}
}

// Mode returns the mode of operation.
func (c *Context) Mode() Mode {
	return c.mode
}

// SegmentSize returns the CFB segment size in bits, or 0 for other modes.
func (c *Context) SegmentSize() int {
	return c.segmentBits
}

// BlockSize returns the block size of the underlying primitive in bytes.
func (c *Context) BlockSize() int {
	return blockSize
}

// Encrypt transforms plaintext and advances the chaining state.
func (c *Context) Encrypt(plaintext []byte) ([]byte, error) {
	return c.process(encrypting, plaintext)
}

// Decrypt transforms ciphertext and advances the chaining state.
func (c *Context) Decrypt(ciphertext []byte) ([]byte, error) {
	return c.process(decrypting, ciphertext)
}

func (c *Context) process(dir direction, src []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finalized {
		return nil, fmt.Errorf("%w: context is finalized", ErrState)
	}

	if c.mode != ECB && c.dir != unbound && c.dir != dir {
		return nil, fmt.Errorf("%w: %s context already used for %s", ErrState, c.mode, c.dir)
	}

	if err := checkAlignment(c.mode, len(src)); err != nil {
		return nil, err
	}

	dst := make([]byte, len(src))
	if len(src) == 0 {
		return dst, nil
	}

	prim, err := c.primitive()
	if err != nil {
		return nil, err
	}

	// Work on a copy so a failed call leaves the stream where it was.
	next := c.state.clone()

	if dir == encrypting {
		err = next.encrypt(prim, dst, src)
	} else {
		err = next.decrypt(prim, dst, src)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrConfig, c.mode, dir, err)
	}

	c.state.wipe()
	c.state = next
	c.dir = dir

	return dst, nil
}

// primitive instantiates the block primitive on first use.
func (c *Context) primitive() (primitive.Primitive, error) {
	if c.prim != nil {
		return c.prim, nil
	}

	prim, err := c.factory(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: creating primitive: %w", ErrConfig, err)
	}

	if size := prim.BlockSize(); size != blockSize {
		return nil, fmt.Errorf("%w: primitive uses %d-byte blocks, want %d", ErrConfig, size, blockSize)
	}

	c.prim = prim

	return prim, nil
}

// Finalize ends the stream. The chaining state is wiped and further
// Encrypt or Decrypt calls fail with ErrState until Reset is called.
func (c *Context) Finalize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.wipe()
	c.finalized = true
}

// Reset starts a new message under the same key with a fresh IV.
// The IV is validated as in New; on error the context is unchanged.
func (c *Context) Reset(iv []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.newState(iv)
	if err != nil {
		return err
	}

	c.state.wipe()
	c.state = state
	c.dir = unbound
	c.finalized = false

	return nil
}
