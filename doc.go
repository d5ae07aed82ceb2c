// Package waveinfo extracts structural metadata from WAVE files without
// decoding their samples.
//
// A file is handed over as a byte slice and walked chunk by chunk: the RIFF
// envelope, the fmt chunk (including WAVE_FORMAT_EXTENSIBLE fields), the fact
// chunk, LIST/INFO tags and the size of the data chunk. The result exposes
// the raw numeric fields (RawDetail) and a derived summary (WavDetail) with
// duration, resolved format and speaker layout.
//
//	info, err := waveinfo.ParseFile("take1.wav")
//	if err != nil {
//		return err
//	}
//	fmt.Println(info.Detail.Format, info.Detail.DurationTime())
//
// Chunk payloads are never copied while walking. Every failure is reported as
// one of *ChunkParseError, *FieldParseError, *IncorrectChunkError,
// *MissingChunkError or *OverflowError, which match ErrChunkParse,
// ErrFieldParse, ErrIncorrectChunk, ErrMissingChunk and ErrOverflow with
// errors.Is.
package waveinfo
