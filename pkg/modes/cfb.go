package modes

import (
	"encoding/binary"

	"github.com/Varbin/xtea3/pkg/primitive"
)

// cfbState is the CFB shift register.
//
// The register absorbs each ciphertext byte as soon as it is produced, so after
// a complete segment it equals (S << s) | C. A truncated segment feeds back only
// the bytes actually produced; the keystream of that segment is kept and the
// next call resumes inside it.
type cfbState struct {
	register  uint64
	keystream [blockSize]byte
	segment   int // bytes per segment
	used      int // bytes of the current segment already consumed
}

func newCFB(iv []byte, segment int) *cfbState {
	return &cfbState{
		register: binary.BigEndian.Uint64(iv),
		segment:  segment,
	}
}

func (s *cfbState) encrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.xor(prim, dst, src, false)
}

// decrypt runs the primitive forward as well; only the fed-back byte differs.
func (s *cfbState) decrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.xor(prim, dst, src, true)
}

func (s *cfbState) xor(prim primitive.Primitive, dst, src []byte, decrypt bool) error {
	var in [blockSize]byte

	for i, b := range src {
		if s.used == 0 {
			binary.BigEndian.PutUint64(in[:], s.register)

			if err := prim.EncryptBlock(s.keystream[:], in[:]); err != nil {
				return err
			}
		}

		out := b ^ s.keystream[s.used]

		feedback := out
		if decrypt {
			feedback = b
		}

		s.register = s.register<<8 | uint64(feedback)
		dst[i] = out

		if s.used++; s.used == s.segment {
			s.used = 0
		}
	}

	return nil
}

func (s *cfbState) clone() chainState {
	c := *s

	return &c
}

func (s *cfbState) wipe() {
	s.register = 0
	s.used = 0
	clear(s.keystream[:])
}
