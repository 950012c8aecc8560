package encryption

import (
	"errors"
	"fmt"
	"io"

	"github.com/Varbin/xtea3/pkg/modes"
	"github.com/Varbin/xtea3/pkg/padding"
)

// copyChunks feeds r into w one pooled buffer at a time.
func copyChunks(reader io.Reader, writer io.Writer) (int64, error) {
	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return 0, errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	var total int64

	for {
		n, err := reader.Read(buf)
		if n > 0 {
			if _, err := writer.Write(buf[:n]); err != nil {
				return total, err
			}

			total += int64(n)
		}

		if err == io.EOF {
			return total, nil
		}

		if err != nil {
			return total, fmt.Errorf("reading input: %w", err)
		}
	}
}

// encryptStream encrypts everything from reader into writer. For block-aligned
// modes the trailing partial block is completed with scheme; a nil scheme
// requires the input to be aligned already.
func encryptStream(ctx *modes.Context, scheme padding.Scheme, reader io.Reader, writer io.Writer) (int64, error) {
	stream := modes.NewEncryptWriter(ctx, writer)

	read, err := copyChunks(reader, stream)
	if err != nil {
		return read, fmt.Errorf("encrypting: %w", err)
	}

	if scheme != nil {
		pending := stream.Buffered()

		tail := scheme.Pad(make([]byte, pending), ctx.BlockSize())[pending:]
		if _, err := stream.Write(tail); err != nil {
			return read, fmt.Errorf("writing padding: %w", err)
		}
	}

	if err := stream.Close(); err != nil {
		return read, fmt.Errorf("finishing stream: %w", err)
	}

	return read, nil
}

// decryptStream decrypts everything from reader into writer and strips the
// padding added by encryptStream.
func decryptStream(ctx *modes.Context, scheme padding.Scheme, reader io.Reader, writer io.Writer) (int64, error) {
	var (
		sink io.Writer = writer
		tail *unpadWriter
	)

	if scheme != nil {
		tail = newUnpadWriter(writer, scheme, ctx.BlockSize())
		sink = tail
	}

	stream := modes.NewDecryptWriter(ctx, sink)

	read, err := copyChunks(reader, stream)
	if err != nil {
		return read, fmt.Errorf("decrypting: %w", err)
	}

	if err := stream.Close(); err != nil {
		return read, fmt.Errorf("%w: truncated ciphertext: %w", ErrProcessing, err)
	}

	if tail != nil {
		if err := tail.Close(); err != nil {
			return read, err
		}
	}

	return read, nil
}

// unpadWriter holds back the final block until Close, where its padding is
// verified and removed.
type unpadWriter struct {
	w         io.Writer
	scheme    padding.Scheme
	blockSize int
	held      []byte
}

func newUnpadWriter(w io.Writer, scheme padding.Scheme, blockSize int) *unpadWriter {
	return &unpadWriter{
		w:         w,
		scheme:    scheme,
		blockSize: blockSize,
		held:      make([]byte, 0, 2*blockSize),
	}
}

// Write implements io.Writer.
func (u *unpadWriter) Write(data []byte) (int, error) {
	u.held = append(u.held, data...)

	if release := len(u.held) - u.blockSize; release > 0 {
		if _, err := u.w.Write(u.held[:release]); err != nil {
			return 0, fmt.Errorf("writing plaintext: %w", err)
		}

		u.held = append(u.held[:0], u.held[release:]...)
	}

	return len(data), nil
}

// Close implements io.Closer, writing the unpadded final block.
func (u *unpadWriter) Close() error {
	plain, err := u.scheme.Unpad(u.held, u.blockSize)
	if err != nil {
		return fmt.Errorf("removing %s padding: %w", u.scheme.Name(), err)
	}

	if _, err := u.w.Write(plain); err != nil {
		return fmt.Errorf("writing final block: %w", err)
	}

	return nil
}
