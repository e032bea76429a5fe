// Package chunk splits serialized text into byte-bounded pieces.
package chunk

import (
	"errors"
	"strings"
)

const replacementCharacter = "�"

// ErrInvalidChunkSize is returned for a non-positive chunk size.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// Split cuts text at raw byte offsets every maxBytes bytes. A multi-byte
// character cut at a boundary is replaced in each affected piece by U+FFFD, so
// concatenating the pieces reproduces text only when no cut lands inside a
// character. Empty text yields no pieces.
func Split(text string, maxBytes int) ([]string, error) {
	if maxBytes <= 0 {
		return nil, ErrInvalidChunkSize
	}
	pieces := make([]string, 0, Count(len(text), maxBytes))
	for offset := 0; offset < len(text); offset += maxBytes {
		end := offset + maxBytes
		if end > len(text) {
			end = len(text)
		}
		pieces = append(pieces, strings.ToValidUTF8(text[offset:end], replacementCharacter))
	}
	return pieces, nil
}

// Count returns the number of pieces Split produces for a text of textBytes
// bytes, or zero when maxBytes is not positive.
func Count(textBytes int, maxBytes int) int {
	if maxBytes <= 0 || textBytes <= 0 {
		return 0
	}
	return (textBytes + maxBytes - 1) / maxBytes
}
