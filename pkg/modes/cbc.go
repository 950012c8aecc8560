package modes

import (
	"crypto/subtle"

	"github.com/Varbin/xtea3/pkg/primitive"
)

// cbcState holds the previous ciphertext block, initially the IV.
type cbcState struct {
	prev [blockSize]byte
}

func newCBC(iv []byte) *cbcState {
	s := &cbcState{}
	copy(s.prev[:], iv)

	return s
}

// encrypt computes C_i = Enc(P_i xor C_{i-1}).
func (s *cbcState) encrypt(prim primitive.Primitive, dst, src []byte) error {
	var mixed [blockSize]byte

	for i := 0; i < len(src); i += blockSize {
		subtle.XORBytes(mixed[:], src[i:i+blockSize], s.prev[:])

		if err := prim.EncryptBlock(dst[i:i+blockSize], mixed[:]); err != nil {
			return err
		}

		copy(s.prev[:], dst[i:i+blockSize])
	}

	return nil
}

// decrypt computes P_i = Dec(C_i) xor C_{i-1}.
func (s *cbcState) decrypt(prim primitive.Primitive, dst, src []byte) error {
	var plain [blockSize]byte

	for i := 0; i < len(src); i += blockSize {
		if err := prim.DecryptBlock(plain[:], src[i:i+blockSize]); err != nil {
			return err
		}

		subtle.XORBytes(dst[i:i+blockSize], plain[:], s.prev[:])
		copy(s.prev[:], src[i:i+blockSize])
	}

	return nil
}

func (s *cbcState) clone() chainState {
	c := *s

	return &c
}

func (s *cbcState) wipe() {
	clear(s.prev[:])
}
