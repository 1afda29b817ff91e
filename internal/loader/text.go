// ABOUTME: Plain-text decoding with strict UTF-8 validation
// ABOUTME: Invalid byte sequences fail loudly instead of being silently replaced
package loader

import (
	"bytes"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText validates that data is well-formed UTF-8 and returns it as a
// string. A leading BOM is dropped so it never leaks into chunk text.
// Invalid sequences produce an EncodingError rather than silent replacement
// characters.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", &EncodingError{Offset: invalidOffset(data)}
	}
	return string(data), nil
}

// invalidOffset finds the byte offset of the first invalid UTF-8 sequence
func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
