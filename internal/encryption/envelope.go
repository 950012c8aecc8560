package encryption

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Varbin/xtea3/pkg/modes"
)

const (
	envelopeMagic   = "XTEA"
	envelopeVersion = byte(1)

	envelopeFlagExec = 0x01

	// maxParamsSize bounds the parameter block read from untrusted input.
	maxParamsSize = 1024
)

// Field numbers of the parameter block.
const (
	fieldMode    protowire.Number = 1
	fieldSegment protowire.Number = 2
	fieldPadding protowire.Number = 3
	fieldCipher  protowire.Number = 4
	fieldIV      protowire.Number = 5
)

// header describes how the payload following it was produced.
type header struct {
	Mode       modes.Mode
	Segment    int
	Padding    string
	Cipher     string
	IV         []byte
	Executable bool
}

// marshal encodes h as magic, version, flags, a uvarint length and the
// parameter block in protobuf wire format.
func (h header) marshal() []byte {
	var params []byte

	params = protowire.AppendTag(params, fieldMode, protowire.VarintType)
	params = protowire.AppendVarint(params, uint64(h.Mode))

	if h.Segment != 0 {
		params = protowire.AppendTag(params, fieldSegment, protowire.VarintType)
		params = protowire.AppendVarint(params, uint64(h.Segment)) //nolint:gosec // validated positive
	}

	if h.Padding != "" {
		params = protowire.AppendTag(params, fieldPadding, protowire.BytesType)
		params = protowire.AppendString(params, h.Padding)
	}

	params = protowire.AppendTag(params, fieldCipher, protowire.BytesType)
	params = protowire.AppendString(params, h.Cipher)

	if len(h.IV) != 0 {
		params = protowire.AppendTag(params, fieldIV, protowire.BytesType)
		params = protowire.AppendBytes(params, h.IV)
	}

	var flags byte

	if h.Executable {
		flags |= envelopeFlagExec
	}

	out := make([]byte, 0, len(envelopeMagic)+2+binary.MaxVarintLen64+len(params))
	out = append(out, envelopeMagic...)
	out = append(out, envelopeVersion, flags)
	out = binary.AppendUvarint(out, uint64(len(params)))

	return append(out, params...)
}

// envelopeReader is what readHeader needs from its input.
type envelopeReader interface {
	io.Reader
	io.ByteReader
}

// readHeader consumes an envelope from r, leaving r at the first payload byte.
func readHeader(r envelopeReader) (header, error) {
	var h header

	prefix := make([]byte, len(envelopeMagic)+2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return h, fmt.Errorf("%w: reading envelope: %w", ErrProcessing, err)
	}

	if !bytes.Equal(prefix[:len(envelopeMagic)], []byte(envelopeMagic)) {
		return h, fmt.Errorf("%w: invalid envelope magic", ErrProcessing)
	}

	if version := prefix[len(envelopeMagic)]; version != envelopeVersion {
		return h, fmt.Errorf("%w: unsupported envelope version %d", ErrProcessing, version)
	}

	h.Executable = prefix[len(envelopeMagic)+1]&envelopeFlagExec != 0

	size, err := binary.ReadUvarint(r)
	if err != nil {
		return h, fmt.Errorf("%w: reading parameter length: %w", ErrProcessing, err)
	}

	if size > maxParamsSize {
		return h, fmt.Errorf("%w: parameter block of %d bytes exceeds %d", ErrProcessing, size, maxParamsSize)
	}

	params := make([]byte, size)
	if _, err := io.ReadFull(r, params); err != nil {
		return h, fmt.Errorf("%w: reading parameters: %w", ErrProcessing, err)
	}

	if err := h.unmarshalParams(params); err != nil {
		return h, err
	}

	if !h.Mode.Valid() {
		return h, fmt.Errorf("%w: unsupported mode %s", ErrProcessing, h.Mode)
	}

	return h, nil
}

//nolint:cyclop // one case per field
func (h *header) unmarshalParams(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrProcessing, protowire.ParseError(n))
		}

		b = b[n:]

		switch {
		case num == fieldMode && typ == protowire.VarintType:
			var v uint64

			v, n = protowire.ConsumeVarint(b)
			if n >= 0 && v > math.MaxUint8 {
				return fmt.Errorf("%w: mode %d out of range", ErrProcessing, v)
			}

			h.Mode = modes.Mode(v)
		case num == fieldSegment && typ == protowire.VarintType:
			var v uint64

			v, n = protowire.ConsumeVarint(b)
			if n >= 0 && v > math.MaxUint8 {
				return fmt.Errorf("%w: segment size %d out of range", ErrProcessing, v)
			}

			h.Segment = int(v) //nolint:gosec // bounded above
		case num == fieldPadding && typ == protowire.BytesType:
			h.Padding, n = protowire.ConsumeString(b)
		case num == fieldCipher && typ == protowire.BytesType:
			h.Cipher, n = protowire.ConsumeString(b)
		case num == fieldIV && typ == protowire.BytesType:
			var iv []byte

			iv, n = protowire.ConsumeBytes(b)
			h.IV = bytes.Clone(iv)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrProcessing, num, protowire.ParseError(n))
		}

		b = b[n:]
	}

	return nil
}
