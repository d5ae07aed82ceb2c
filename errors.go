package waveinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrChunkParse matches errors caused by a malformed chunk header.
	ErrChunkParse = errors.New("chunk parse error")
	// ErrFieldParse matches errors caused by a chunk field that could not be read.
	ErrFieldParse = errors.New("field parse error")
	// ErrIncorrectChunk matches errors caused by a chunk with an unexpected id.
	ErrIncorrectChunk = errors.New("incorrect chunk")
	// ErrMissingChunk matches errors caused by a required chunk that never appeared.
	ErrMissingChunk = errors.New("missing chunk")
	// ErrOverflow matches errors caused by values that don't fit in an int.
	ErrOverflow = errors.New("numeric overflow")
)

const unknownChunkCode = "Unknown"

func chunkCode(id string) string {
	if id == "" {
		return unknownChunkCode
	}

	return id
}

// ChunkParseError reports a chunk header that could not be tokenized.
type ChunkParseError struct {
	ChunkID string
	Reason  string
}

func (e *ChunkParseError) Error() string {
	return fmt.Sprintf("unable to parse %s chunk: %s", chunkCode(e.ChunkID), e.Reason)
}

func (e *ChunkParseError) Unwrap() error { return ErrChunkParse }

// FieldParseError reports a typed field read that failed. Offset is the byte
// offset of the field inside the chunk payload.
type FieldParseError struct {
	ChunkID string
	Field   string
	Offset  int
	Reason  string
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("unable to parse %s chunk field %s byte %d: %s",
		chunkCode(e.ChunkID), e.Field, e.Offset, e.Reason)
}

func (e *FieldParseError) Unwrap() error { return ErrFieldParse }

// IncorrectChunkError reports a chunk found where another id was required.
type IncorrectChunkError struct {
	Expected string
	Actual   string
}

func (e *IncorrectChunkError) Error() string {
	return fmt.Sprintf("expected a %s chunk, got a %s chunk", e.Expected, chunkCode(e.Actual))
}

func (e *IncorrectChunkError) Unwrap() error { return ErrIncorrectChunk }

// MissingChunkError reports a required chunk absent from the stream.
type MissingChunkError struct {
	Expected string
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("no %s chunk found", e.Expected)
}

func (e *MissingChunkError) Unwrap() error { return ErrMissingChunk }

// OverflowError reports a size or count that can't be represented as an int.
type OverflowError struct {
	ChunkID string
	Field   string
	Value   uint64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s chunk %s value %d too big for architecture",
		chunkCode(e.ChunkID), e.Field, e.Value)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }
