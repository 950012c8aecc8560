package logic

import (
	"fmt"
	"io"
	"strings"

	"github.com/Varbin/xtea3/pkg/modes"
	"github.com/Varbin/xtea3/pkg/padding"
	"github.com/Varbin/xtea3/pkg/primitive"
)

// ListModes writes the supported modes, primitives and padding schemes.
func ListModes(w io.Writer) {
	fmt.Fprintln(w, "Modes:")

	for _, mode := range modes.Modes() {
		var notes []string

		if mode.RequiresIV() {
			notes = append(notes, "IV")
		}

		if mode.Aligned() {
			notes = append(notes, "padded")
		}

		if mode == modes.CFB {
			notes = append(notes, "segment 8..64 bits")
		}

		fmt.Fprintf(w, "  %-4s %d  %s\n", mode, byte(mode), strings.Join(notes, ", "))
	}

	fmt.Fprintln(w, "Ciphers:")

	for _, name := range primitive.Names() {
		marker := ""
		if name == primitive.Default {
			marker = " (default)"
		}

		fmt.Fprintf(w, "  %s%s\n", name, marker)
	}

	fmt.Fprintln(w, "Padding:")

	for _, scheme := range []padding.Scheme{padding.PKCS7{}, padding.ANSIX923{}} {
		fmt.Fprintf(w, "  %s\n", scheme.Name())
	}

	fmt.Fprintln(w, "  none")
}
