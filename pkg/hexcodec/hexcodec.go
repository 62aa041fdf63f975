// Package hexcodec provides hex and fixed-width little-endian helpers for wire-exact byte layouts.
package hexcodec

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidHex is returned when a string is not valid hexadecimal.
	ErrInvalidHex = errors.New("invalid hex")
	// ErrInvalidLength is returned when decoded bytes do not have the expected width.
	ErrInvalidLength = errors.New("invalid length")
)

// Decode decodes a hex string, accepting an optional 0x prefix.
func Decode(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// DecodeFixed decodes a hex string that must hold exactly n bytes.
func DecodeFixed(s string, n int) ([]byte, error) {
	b, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), n)
	}
	return b, nil
}

// Encode returns the lowercase hex encoding of b.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

// Reverse returns a reversed copy of b.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

// Uint32LE encodes v as 4 little-endian bytes.
func Uint32LE(v uint32) [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], v)
	return out
}

// Uint64LE encodes v as 8 little-endian bytes.
func Uint64LE(v uint64) [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], v)
	return out
}

// Uint32FromLE decodes exactly 4 little-endian bytes.
func Uint32FromLE(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: got %d bytes, want 4", ErrInvalidLength, len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}
