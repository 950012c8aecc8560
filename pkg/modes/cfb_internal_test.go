package modes

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Varbin/xtea3/pkg/primitive"
)

func cfbContext(t *testing.T, bits int) *Context {
	t.Helper()

	ctx, err := New(primitive.NewXTEA, []byte("0123456789ABCDEF"), CFB,
		WithIV([]byte("12345678")), WithSegmentSize(bits))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return ctx
}

// TestCFBPartialSegmentFeedback checks that a truncated segment shifts in
// only the ciphertext bytes it produced.
func TestCFBPartialSegmentFeedback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		size int
		used int
	}{
		{bits: 64, size: 17, used: 1},
		{bits: 64, size: 21, used: 5},
		{bits: 32, size: 13, used: 1},
		{bits: 16, size: 9, used: 1},
		{bits: 8, size: 9, used: 0},
	}

	for _, tc := range tests {
		enc := cfbContext(t, tc.bits)

		out, err := enc.Encrypt(bytes.Repeat([]byte{0x5a}, tc.size))
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}

		state, ok := enc.state.(*cfbState)
		if !ok {
			t.Fatalf("state is %T", enc.state)
		}

		want := binary.BigEndian.Uint64(out[len(out)-blockSize:])
		if state.register != want {
			t.Errorf("CFB-%d/%d register = %#x, want last ciphertext bytes %#x", tc.bits, tc.size, state.register, want)
		}

		if state.used != tc.used {
			t.Errorf("CFB-%d/%d used = %d, want %d", tc.bits, tc.size, state.used, tc.used)
		}

		dec := cfbContext(t, tc.bits)
		if _, err := dec.Decrypt(out); err != nil {
			t.Fatalf("Decrypt: %v", err)
		}

		if got := dec.state.(*cfbState).register; got != want { //nolint:forcetypeassert // checked above
			t.Errorf("CFB-%d/%d decrypt register = %#x, want %#x", tc.bits, tc.size, got, want)
		}
	}
}

func TestWipeClearsState(t *testing.T) {
	t.Parallel()

	ctx := cfbContext(t, 64)

	if _, err := ctx.Encrypt([]byte("abc")); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	ctx.Finalize()

	state := ctx.state.(*cfbState) //nolint:forcetypeassert // constructed as CFB
	if state.register != 0 || state.keystream != [blockSize]byte{} {
		t.Fatalf("Finalize left state behind: %+v", state)
	}
}

// FuzzChunking splits input at an arbitrary point and expects the same
// ciphertext as a single call.
func FuzzChunking(f *testing.F) {
	f.Add([]byte("The quick brown fox jumps over the lazy dog"), uint8(5), uint8(2), uint8(7))
	f.Add([]byte("0123456789abcdef0123456789abcdef"), uint8(16), uint8(0), uint8(0))
	f.Add([]byte{}, uint8(0), uint8(4), uint8(3))

	f.Fuzz(func(t *testing.T, data []byte, split, modeIndex, segmentIndex uint8) {
		all := Modes()
		mode := all[int(modeIndex)%len(all)]

		opts := []Option{WithIV([]byte("12345678"))}
		if mode == CFB {
			opts = append(opts, WithSegmentSize(8*(1+int(segmentIndex)%blockSize)))
		}

		cut := int(split)
		if mode.Aligned() {
			data = data[:len(data)-len(data)%blockSize]
			cut -= cut % blockSize
		}

		cut = min(cut, len(data))

		newCtx := func() *Context {
			ctx, err := New(primitive.NewXTEA, []byte("0123456789ABCDEF"), mode, opts...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			return ctx
		}

		whole, err := newCtx().Encrypt(data)
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}

		ctx := newCtx()

		first, err := ctx.Encrypt(data[:cut])
		if err != nil {
			t.Fatalf("Encrypt first part: %v", err)
		}

		second, err := ctx.Encrypt(data[cut:])
		if err != nil {
			t.Fatalf("Encrypt second part: %v", err)
		}

		if got := append(first, second...); !bytes.Equal(got, whole) {
			t.Fatalf("%s chunked at %d = %x, want %x", mode, cut, got, whole)
		}

		back := newCtx()

		plain, err := back.Decrypt(whole[:cut])
		if err != nil {
			t.Fatalf("Decrypt first part: %v", err)
		}

		rest, err := back.Decrypt(whole[cut:])
		if err != nil {
			t.Fatalf("Decrypt second part: %v", err)
		}

		if got := append(plain, rest...); !bytes.Equal(got, data) {
			t.Fatalf("%s chunked decrypt differs", mode)
		}
	})
}
