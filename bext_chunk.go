package waveinfo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// CIDBext is the id of the Broadcast Wave Format extension chunk.
var CIDBext = [4]byte{'b', 'e', 'x', 't'}

const (
	bextDescriptionLen         = 256
	bextOriginatorLen          = 32
	bextOriginatorReferenceLen = 32
	bextOriginationDateLen     = 10
	bextOriginationTimeLen     = 8
	bextUMIDLen                = 64
	bextReservedLen            = 190
)

// BroadcastChunk is a decoded bext chunk.
type BroadcastChunk struct {
	Description         string
	Originator          string
	OriginatorReference string
	OriginationDate     string
	OriginationTime     string
	// TimeReference is the sample offset of the first sample since midnight.
	TimeReference uint64
	Version       uint16
	UMID          [64]byte
	CodingHistory string
}

func (*BroadcastChunk) ChunkID() [4]byte { return CIDBext }

// DecodeBroadcastChunk decodes a bext chunk. Fields missing from a short
// payload are left empty.
func DecodeBroadcastChunk(ch Chunk) (*BroadcastChunk, error) {
	if ch.ID != CIDBext {
		return nil, &IncorrectChunkError{Expected: string(CIDBext[:]), Actual: ch.IDString()}
	}

	rc := ch.RIFFChunk()

	buf := make([]byte, rc.Size)
	if _, err := io.ReadFull(rc, buf); err != nil {
		return nil, fmt.Errorf("failed to read the bext chunk: %w", err)
	}

	offset := 0

	take := func(n int) []byte {
		out := make([]byte, n)
		if offset < len(buf) {
			copy(out, buf[offset:min(offset+n, len(buf))])
		}

		offset += n

		return out
	}

	fixedString := func(n int) string {
		b := take(n)
		return strings.TrimRight(string(b[:clen(b)]), " ")
	}

	out := &BroadcastChunk{}
	out.Description = fixedString(bextDescriptionLen)
	out.Originator = fixedString(bextOriginatorLen)
	out.OriginatorReference = fixedString(bextOriginatorReferenceLen)
	out.OriginationDate = fixedString(bextOriginationDateLen)
	out.OriginationTime = fixedString(bextOriginationTimeLen)

	low := binary.LittleEndian.Uint32(take(4))
	high := binary.LittleEndian.Uint32(take(4))
	out.TimeReference = uint64(high)<<32 | uint64(low)
	out.Version = binary.LittleEndian.Uint16(take(2))

	copy(out.UMID[:], take(bextUMIDLen))
	take(bextReservedLen)

	if offset < len(buf) {
		out.CodingHistory = string(bytes.TrimRight(buf[offset:], "\x00"))
	}

	return out, nil
}

// BroadcastChunkHandler decodes bext chunks. It is not part of the default
// registry; decoded chunks show up in WavFile.Chunks.
type BroadcastChunkHandler struct{}

func (BroadcastChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDBext
}

func (BroadcastChunkHandler) Decode(ch Chunk) (DecodedChunk, error) {
	return DecodeBroadcastChunk(ch)
}
