package esm

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/agentstation/openmwmm/pkg/errors"
)

// Morrowind-era files store text as Windows-1252.
var codepage = charmap.Windows1252

// decodeString converts a Windows-1252 byte sequence to a Go string.
// The sequence is terminated at the first NUL byte when one is present.
func decodeString(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	out, err := codepage.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.WrapValidation("string", err)
	}
	return string(out), nil
}

// encodeString converts a Go string to Windows-1252 bytes. Runes outside the
// codepage are an error rather than silently replaced.
func encodeString(s string) ([]byte, error) {
	out, err := codepage.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.NewValidationError("string", s,
			fmt.Sprintf("%q is not representable in Windows-1252", s))
	}
	return out, nil
}

// encodeStringZ encodes s and appends the NUL terminator.
func encodeStringZ(s string) ([]byte, error) {
	out, err := encodeString(s)
	if err != nil {
		return nil, err
	}
	return append(out, 0), nil
}

// encodeFixedString encodes s into an exactly n-byte NUL-padded field.
func encodeFixedString(s string, n int) ([]byte, error) {
	out, err := encodeString(s)
	if err != nil {
		return nil, err
	}
	if len(out) > n {
		return nil, errors.NewValidationError("string", s,
			fmt.Sprintf("encoded length %d exceeds the %d byte field", len(out), n))
	}
	field := make([]byte, n)
	copy(field, out)
	return field, nil
}
