package waveinfo

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-audio/riff"
)

const chunkHeaderSize = 8

var (
	// CIDRiff is the chunk ID of the outer RIFF container.
	CIDRiff = riff.RiffID
	// CIDWave is the RIFF form type of WAVE files.
	CIDWave = riff.WavFormatID
	// CIDFmt is the chunk ID of the format chunk.
	CIDFmt = riff.FmtID
	// CIDData is the chunk ID of the audio data chunk.
	CIDData = riff.DataFormatID
	// CIDFact is the chunk ID of the fact chunk.
	CIDFact = [4]byte{'f', 'a', 'c', 't'}
	// CIDList is the chunk ID of a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDInfo is the list type of INFO lists.
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}
)

// Chunk is one RIFF record. Data is a view into the parsed buffer and always
// holds exactly Size bytes.
type Chunk struct {
	ID   [4]byte
	Size uint32
	Data []byte
}

// IDString returns the chunk id as text.
func (c Chunk) IDString() string {
	return string(c.ID[:])
}

// EncodedLen is the number of bytes the chunk occupies in its container,
// header and padding included.
func (c Chunk) EncodedLen() int {
	n := chunkHeaderSize + len(c.Data)
	if c.Size%2 == 1 {
		n++
	}

	return n
}

// RIFFChunk exposes the chunk as a go-audio/riff chunk reading from the
// payload view.
func (c Chunk) RIFFChunk() *riff.Chunk {
	return &riff.Chunk{
		ID:   c.ID,
		Size: len(c.Data),
		R:    bytes.NewReader(c.Data),
	}
}

func (c Chunk) fields() *fieldReader {
	return &fieldReader{chunkID: c.IDString(), data: c.Data}
}

// PopChunk slices the next chunk from the front of buf and advances buf past
// it, including the padding byte of odd sized chunks. The payload is not
// copied.
func PopChunk(buf *[]byte) (Chunk, error) {
	data := *buf
	if len(data) < chunkHeaderSize {
		return Chunk{}, &ChunkParseError{Reason: "invalid chunk header: too short"}
	}

	var id [4]byte

	copy(id[:], data[:4])

	if !isPrintableID(id) {
		return Chunk{}, &ChunkParseError{Reason: "invalid chunk code: not printable ASCII"}
	}

	size := binary.LittleEndian.Uint32(data[4:8])
	if uint64(size) > math.MaxInt-chunkHeaderSize {
		return Chunk{}, &OverflowError{ChunkID: string(id[:]), Field: "size", Value: uint64(size)}
	}

	end := chunkHeaderSize + int(size)
	if end > len(data) {
		return Chunk{}, &ChunkParseError{ChunkID: string(id[:]), Reason: "data out of range"}
	}

	chunk := Chunk{ID: id, Size: size, Data: data[chunkHeaderSize:end:end]}

	// The final padding byte is sometimes omitted by writers.
	if size%2 == 1 && end < len(data) {
		end++
	}

	*buf = data[end:]

	return chunk, nil
}

func isPrintableID(id [4]byte) bool {
	for _, b := range id {
		if b < 0x20 || b > 0x7E {
			return false
		}
	}

	return true
}
