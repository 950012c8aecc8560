package modes

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/Varbin/xtea3/pkg/primitive"
)

// Increment is the default CTR step: the counter is a big-endian unsigned
// 64-bit integer and wraps from 2^64-1 to 0.
func Increment(counter uint64) uint64 {
	return counter + 1
}

// ctrState holds the next counter value and the unused part of the current
// keystream block.
type ctrState struct {
	counter   uint64
	keystream [blockSize]byte
	used      int
	increment func(uint64) uint64
}

func newCTR(iv []byte, increment func(uint64) uint64) *ctrState {
	return &ctrState{
		counter:   binary.BigEndian.Uint64(iv),
		used:      blockSize,
		increment: increment,
	}
}

func (s *ctrState) encrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.xor(prim, dst, src)
}

func (s *ctrState) decrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.xor(prim, dst, src)
}

func (s *ctrState) xor(prim primitive.Primitive, dst, src []byte) error {
	var block [blockSize]byte

	for len(src) > 0 {
		if s.used == blockSize {
			binary.BigEndian.PutUint64(block[:], s.counter)

			if err := prim.EncryptBlock(s.keystream[:], block[:]); err != nil {
				return err
			}

			s.counter = s.increment(s.counter)
			s.used = 0
		}

		n := subtle.XORBytes(dst, src, s.keystream[s.used:])
		dst, src = dst[n:], src[n:]
		s.used += n
	}

	return nil
}

func (s *ctrState) clone() chainState {
	c := *s

	return &c
}

func (s *ctrState) wipe() {
	s.counter = 0
	s.used = blockSize
	clear(s.keystream[:])
}

// NextCounter returns the counter value that the next CTR keystream block
// will be generated from. The second result is false for other modes.
func (c *Context) NextCounter() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.state.(*ctrState)
	if !ok {
		return 0, false
	}

	return state.counter, true
}
