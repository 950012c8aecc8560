package modes

import (
	"fmt"
	"io"
)

// Writer streams data through a Context into an underlying writer.
//
// For ECB and CBC the writer holds back a trailing partial block until more
// data arrives; Close fails with ErrAlignment if one is still pending. For
// stream-like modes every Write is transformed immediately.
//
// A failed transformation leaves the Writer usable. Once transformed data
// cannot be written to the underlying writer the stream has advanced past
// it, so that error is sticky and every later Write and Close returns it.
type Writer struct {
	w       io.Writer
	fn      func([]byte) ([]byte, error)
	aligned bool
	pending []byte
	closed  bool
	err     error
}

// NewEncryptWriter returns a Writer that encrypts through ctx.
func NewEncryptWriter(ctx *Context, w io.Writer) *Writer {
	return newWriter(ctx, w, ctx.Encrypt)
}

// NewDecryptWriter returns a Writer that decrypts through ctx.
func NewDecryptWriter(ctx *Context, w io.Writer) *Writer {
	return newWriter(ctx, w, ctx.Decrypt)
}

func newWriter(ctx *Context, w io.Writer, fn func([]byte) ([]byte, error)) *Writer {
	return &Writer{
		w:       w,
		fn:      fn,
		aligned: ctx.Mode().Aligned(),
		pending: make([]byte, 0, 2*blockSize),
	}
}

// Write implements io.Writer.
func (sw *Writer) Write(data []byte) (int, error) {
	if sw.err != nil {
		return 0, sw.err
	}

	if sw.closed {
		return 0, fmt.Errorf("%w: write after close", ErrState)
	}

	if !sw.aligned {
		if err := sw.emit(data); err != nil {
			return 0, err
		}

		return len(data), nil
	}

	held := len(sw.pending)
	sw.pending = append(sw.pending, data...)

	whole := len(sw.pending) - len(sw.pending)%blockSize
	if whole == 0 {
		return len(data), nil
	}

	if err := sw.emit(sw.pending[:whole]); err != nil {
		if sw.err != nil {
			held = 0
		}

		sw.pending = sw.pending[:held]

		return 0, err
	}

	sw.pending = append(sw.pending[:0], sw.pending[whole:]...)

	return len(data), nil
}

// emit transforms chunk and writes the result. A write failure after the
// context has advanced breaks the Writer.
func (sw *Writer) emit(chunk []byte) error {
	out, err := sw.fn(chunk)
	if err != nil {
		return err
	}

	if _, err := sw.w.Write(out); err != nil {
		sw.err = fmt.Errorf("%w: writing transformed data: %w", ErrState, err)

		return sw.err
	}

	return nil
}

// Buffered returns the number of bytes held back waiting for a full block.
func (sw *Writer) Buffered() int {
	return len(sw.pending)
}

// Close checks that no partial block is pending. It does not close the
// underlying writer.
func (sw *Writer) Close() error {
	if sw.err != nil {
		return sw.err
	}

	if sw.closed {
		return nil
	}

	sw.closed = true

	if len(sw.pending) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrAlignment, len(sw.pending))
	}

	return nil
}
