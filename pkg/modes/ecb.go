package modes

import (
	"golang.org/x/sync/errgroup"

	"github.com/Varbin/xtea3/pkg/primitive"
)

// minBlocksPerWorker keeps goroutine overhead below the cost of the work.
const minBlocksPerWorker = 4096

// ecbState carries no chaining register; blocks are independent.
type ecbState struct {
	parallel int
}

func (s *ecbState) encrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.run(prim.EncryptBlock, dst, src)
}

func (s *ecbState) decrypt(prim primitive.Primitive, dst, src []byte) error {
	return s.run(prim.DecryptBlock, dst, src)
}

// run splits large inputs into contiguous ranges processed concurrently.
// Each worker writes only its own range, so output order matches input order.
func (s *ecbState) run(fn func(dst, src []byte) error, dst, src []byte) error {
	blocks := len(src) / blockSize

	workers := min(s.parallel, blocks/minBlocksPerWorker)
	if workers <= 1 {
		return ecbBlocks(fn, dst, src)
	}

	span := (blocks + workers - 1) / workers * blockSize

	group := errgroup.Group{}

	for off := 0; off < len(src); off += span {
		end := min(off+span, len(src))

		group.Go(func() error {
			return ecbBlocks(fn, dst[off:end], src[off:end])
		})
	}

	return group.Wait() //nolint:wrapcheck // block errors are wrapped by the caller
}

func ecbBlocks(fn func(dst, src []byte) error, dst, src []byte) error {
	for i := 0; i < len(src); i += blockSize {
		if err := fn(dst[i:i+blockSize], src[i:i+blockSize]); err != nil {
			return err
		}
	}

	return nil
}

func (s *ecbState) clone() chainState {
	return &ecbState{parallel: s.parallel}
}

func (s *ecbState) wipe() {}
