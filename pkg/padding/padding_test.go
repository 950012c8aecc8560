package padding_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Varbin/xtea3/pkg/padding"
)

const blockSize = 8

func TestPadUnpad(t *testing.T) {
	t.Parallel()

	for _, scheme := range []padding.Scheme{padding.PKCS7{}, padding.ANSIX923{}} {
		t.Run(scheme.Name(), func(t *testing.T) {
			t.Parallel()

			for n := range 3 * blockSize {
				data := bytes.Repeat([]byte{0xAB}, n)

				padded := scheme.Pad(data, blockSize)
				if len(padded)%blockSize != 0 {
					t.Fatalf("Pad(%d bytes) = %d bytes, not aligned", n, len(padded))
				}

				if len(padded) == n {
					t.Fatalf("Pad(%d bytes) added nothing", n)
				}

				got, err := scheme.Unpad(padded, blockSize)
				if err != nil {
					t.Fatalf("Unpad: %v", err)
				}

				if !bytes.Equal(got, data) {
					t.Fatalf("Unpad(Pad(%x)) = %x", data, got)
				}
			}
		})
	}
}

func TestPadDoesNotAlias(t *testing.T) {
	t.Parallel()

	backing := make([]byte, 4, 16)
	padded := padding.PKCS7{}.Pad(backing, blockSize)
	padded[0] = 0xFF

	if backing[0] != 0 {
		t.Fatal("Pad modified the caller's buffer")
	}
}

func TestUnpadRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scheme padding.Scheme
		data   []byte
		want   error
	}{
		{"pkcs7 empty", padding.PKCS7{}, nil, padding.ErrEmptyData},
		{"pkcs7 zero length byte", padding.PKCS7{}, []byte{1, 2, 3, 4, 5, 6, 7, 0}, padding.ErrInvalidPadding},
		{"pkcs7 too large", padding.PKCS7{}, []byte{1, 2, 3, 4, 5, 6, 7, 9}, padding.ErrInvalidPadding},
		{"pkcs7 inconsistent", padding.PKCS7{}, []byte{1, 2, 3, 4, 5, 2, 3, 3}, padding.ErrInvalidPadding},
		{"pkcs7 misaligned", padding.PKCS7{}, []byte{1, 1, 1}, padding.ErrInvalidPadding},
		{"x923 nonzero fill", padding.ANSIX923{}, []byte{1, 2, 3, 4, 5, 1, 0, 3}, padding.ErrInvalidPadding},
		{"x923 empty", padding.ANSIX923{}, []byte{}, padding.ErrEmptyData},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tc.scheme.Unpad(tc.data, blockSize); !errors.Is(err, tc.want) {
				t.Errorf("Unpad(%x) error = %v, want %v", tc.data, err, tc.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "none", "NONE"} {
		scheme, err := padding.Lookup(name)
		if err != nil || scheme != nil {
			t.Errorf("Lookup(%q) = %v, %v; want nil, nil", name, scheme, err)
		}
	}

	if scheme, err := padding.Lookup("PKCS7"); err != nil || scheme.Name() != "pkcs7" {
		t.Errorf("Lookup(\"PKCS7\") = %v, %v", scheme, err)
	}

	if scheme, err := padding.Lookup("x923"); err != nil || scheme.Name() != "x923" {
		t.Errorf("Lookup(\"x923\") = %v, %v", scheme, err)
	}

	if _, err := padding.Lookup("zeros"); !errors.Is(err, padding.ErrUnknownScheme) {
		t.Errorf("Lookup(\"zeros\") error = %v, want ErrUnknownScheme", err)
	}
}
