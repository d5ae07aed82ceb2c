package waveinfo

import "maps"

// FormatChunk returns a copy of the parsed fmt chunk, if available.
func (f *WavFile) FormatChunk() *FmtChunk {
	if f == nil || f.Fmt == nil {
		return nil
	}

	return f.Fmt.Clone()
}

// RawChunks returns copies of the chunks no handler decoded.
func (f *WavFile) RawChunks() []RawChunk {
	if f == nil {
		return nil
	}

	return cloneRawChunks(f.UnknownChunks)
}

// TagMap returns a copy of the INFO tags.
func (f *WavFile) TagMap() map[string]string {
	if f == nil || f.Tags == nil {
		return map[string]string{}
	}

	return maps.Clone(f.Tags)
}

// Broadcast returns the first bext chunk decoded by a BroadcastChunkHandler.
func (f *WavFile) Broadcast() *BroadcastChunk {
	if f == nil {
		return nil
	}

	for _, c := range f.Chunks {
		if b, ok := c.Chunk.(*BroadcastChunk); ok && b != nil {
			return b
		}
	}

	return nil
}
