package waveinfo

// DecodedChunk is the result of dispatching a chunk to its decoder. The
// default registry produces *FmtChunk, *FactChunk, *ListChunk, *DataChunk or
// *RawChunk; custom handlers may return their own types.
type DecodedChunk interface {
	ChunkID() [4]byte
}

func (*FmtChunk) ChunkID() [4]byte  { return CIDFmt }
func (*FactChunk) ChunkID() [4]byte { return CIDFact }
func (*ListChunk) ChunkID() [4]byte { return CIDList }
func (*DataChunk) ChunkID() [4]byte { return CIDData }
func (c *RawChunk) ChunkID() [4]byte {
	if c == nil {
		return [4]byte{}
	}

	return c.ID
}

// DataChunk describes the audio payload. Samples are never decoded.
type DataChunk struct {
	Size int
}

// RawChunk is a chunk no handler decoded.
type RawChunk struct {
	ID [4]byte
	// Size mirrors len(Data).
	Size uint32
	// Data is a view into the parsed buffer.
	Data []byte
	// Order is the index of the chunk among the container's sub-chunks.
	Order int
	// BeforeData indicates if this chunk appeared before the data chunk.
	BeforeData bool
}

func (c RawChunk) Clone() RawChunk {
	out := c
	out.Data = append([]byte(nil), c.Data...)

	return out
}

func cloneRawChunks(chunks []RawChunk) []RawChunk {
	if len(chunks) == 0 {
		return nil
	}

	out := make([]RawChunk, len(chunks))
	for i := range chunks {
		out[i] = chunks[i].Clone()
	}

	return out
}

// ExtraChunk is a chunk decoded by a custom handler.
type ExtraChunk struct {
	Chunk DecodedChunk
	// Order is the index of the chunk among the container's sub-chunks.
	Order int
	// BeforeData indicates if this chunk appeared before the data chunk.
	BeforeData bool
}

// SkippedChunk records a chunk whose decoding failed without aborting the parse.
type SkippedChunk struct {
	ID    [4]byte
	Order int
	Err   error
}
