package modes

import (
	"crypto/subtle"

	"github.com/Varbin/xtea3/pkg/primitive"
)

// ofbState holds O_i and how much of it has been consumed. The keystream
// depends only on the IV, never on the data.
type ofbState struct {
	out  [blockSize]byte
	used int
}

func newOFB(iv []byte) *ofbState {
	s := &ofbState{used: blockSize}
	copy(s.out[:], iv)

	return s
}

func (s *ofbState) encrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.xor(prim, dst, src)
}

func (s *ofbState) decrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.xor(prim, dst, src)
}

func (s *ofbState) xor(prim primitive.Primitive, dst, src []byte) error {
	for len(src) > 0 {
		if s.used == blockSize {
			var next [blockSize]byte

			if err := prim.EncryptBlock(next[:], s.out[:]); err != nil {
				return err
			}

			s.out, s.used = next, 0
		}

		n := subtle.XORBytes(dst, src, s.out[s.used:])
		dst, src = dst[n:], src[n:]
		s.used += n
	}

	return nil
}

func (s *ofbState) clone() chainState {
	c := *s

	return &c
}

func (s *ofbState) wipe() {
	clear(s.out[:])
	s.used = blockSize
}
