package primitive

import (
	"crypto/cipher"
	"fmt"
)

// blockPrimitive adapts a crypto/cipher.Block with an 8-byte block size.
type blockPrimitive struct {
	block cipher.Block
}

// FromBlock wraps block as a Primitive.
// It fails with ErrBlockSize unless block operates on 8-byte blocks.
func FromBlock(block cipher.Block) (Primitive, error) {
	if block == nil {
		return nil, fmt.Errorf("%w: nil block cipher", ErrBlockSize)
	}

	if size := block.BlockSize(); size != BlockSize {
		return nil, fmt.Errorf("%w: block cipher uses %d-byte blocks, want %d", ErrBlockSize, size, BlockSize)
	}

	return &blockPrimitive{block: block}, nil
}

func (p *blockPrimitive) BlockSize() int {
	return BlockSize
}

func (p *blockPrimitive) EncryptBlock(dst, src []byte) error {
	if err := checkBlocks(dst, src); err != nil {
		return err
	}

	p.block.Encrypt(dst, src)

	return nil
}

func (p *blockPrimitive) DecryptBlock(dst, src []byte) error {
	if err := checkBlocks(dst, src); err != nil {
		return err
	}

	p.block.Decrypt(dst, src)

	return nil
}

func checkBlocks(dst, src []byte) error {
	if len(src) != BlockSize {
		return fmt.Errorf("%w: input is %d bytes, want %d", ErrBlockSize, len(src), BlockSize)
	}

	if len(dst) != BlockSize {
		return fmt.Errorf("%w: output is %d bytes, want %d", ErrBlockSize, len(dst), BlockSize)
	}

	return nil
}
