package waveinfo

// FactChunk holds the per-channel sample count of non-PCM files.
type FactChunk struct {
	SampleCount uint32
}

// DecodeFactChunk decodes a fact chunk.
func DecodeFactChunk(ch Chunk) (*FactChunk, error) {
	if ch.ID != CIDFact {
		return nil, &IncorrectChunkError{Expected: string(CIDFact[:]), Actual: ch.IDString()}
	}

	count, err := ch.fields().u32("dwSampleLength")
	if err != nil {
		return nil, err
	}

	return &FactChunk{SampleCount: count}, nil
}
