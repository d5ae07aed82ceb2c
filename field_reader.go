package waveinfo

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// fieldReader consumes typed fields from a chunk payload in order.
type fieldReader struct {
	chunkID string
	data    []byte
	pos     int
}

func (r *fieldReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *fieldReader) fieldError(field string, offset int, reason string) *FieldParseError {
	return &FieldParseError{ChunkID: r.chunkID, Field: field, Offset: offset, Reason: reason}
}

// take returns the next n bytes without copying them.
func (r *fieldReader) take(field string, n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, r.fieldError(field, r.pos,
			fmt.Sprintf("need %d bytes, %d remaining", n, r.remaining()))
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

func (r *fieldReader) u16(field string) (uint16, error) {
	b, err := r.take(field, 2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

func (r *fieldReader) u32(field string) (uint32, error) {
	b, err := r.take(field, 4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

func (r *fieldReader) bytes16(field string) ([16]byte, error) {
	var out [16]byte

	b, err := r.take(field, len(out))
	if err != nil {
		return out, err
	}

	copy(out[:], b)

	return out, nil
}

// ascii reads a fixed length string made only of ASCII bytes.
func (r *fieldReader) ascii(field string, n int) (string, error) {
	start := r.pos

	b, err := r.take(field, n)
	if err != nil {
		return "", err
	}

	for _, c := range b {
		if c > 0x7F {
			r.pos = start
			return "", r.fieldError(field, start, "invalid ASCII text")
		}
	}

	return string(b), nil
}

// zstring reads a NUL terminated string and consumes the terminator.
func (r *fieldReader) zstring(field string) (string, error) {
	start := r.pos
	rest := r.data[r.pos:]

	n := clen(rest)
	if n == len(rest) {
		return "", r.fieldError(field, start, "missing null terminator")
	}

	if !utf8.Valid(rest[:n]) {
		return "", r.fieldError(field, start, "invalid UTF-8 text")
	}

	r.pos += n + 1

	return string(rest[:n]), nil
}
