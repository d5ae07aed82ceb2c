package waveinfo

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Decoder extracts WavFile summaries from in-memory WAVE files. A Decoder
// keeps no per-call state and may be shared.
type Decoder struct {
	// Registry dispatches sub-chunks to decoders. Nil means NewChunkRegistry.
	Registry *ChunkRegistry
	// ScanTrailing keeps walking after the data chunk to collect chunks
	// stored behind the audio, such as trailing LIST/INFO tags.
	ScanTrailing bool
}

// NewDecoder creates a decoder with the default chunk registry.
func NewDecoder() *Decoder {
	return &Decoder{Registry: NewChunkRegistry()}
}

// WavFile is the result of decoding a WAVE file.
type WavFile struct {
	Raw    RawDetail
	Detail WavDetail
	// Tags maps INFO labels to values.
	Tags map[string]string

	Fmt      *FmtChunk
	Fact     *FactChunk
	DataSize int

	// UnknownChunks are chunks no handler decoded. Their data is a view into
	// the decoded buffer; use RawChunks for copies.
	UnknownChunks []RawChunk
	// Chunks holds what custom registry handlers decoded, in file order.
	Chunks []ExtraChunk
	// Skipped lists LIST chunks that failed to decode and were ignored.
	Skipped []SkippedChunk
}

// Parse decodes buf with a default Decoder.
func Parse(buf []byte) (*WavFile, error) {
	return NewDecoder().Decode(buf)
}

// ParseReader reads r fully and decodes its content.
func ParseReader(r io.Reader) (*WavFile, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav data: %w", err)
	}

	return Parse(buf)
}

// ParseFile reads the file at path and decodes its content.
func ParseFile(path string) (*WavFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(buf)
}

// Decode validates the RIFF/WAVE envelope and walks its sub-chunks in order:
// fmt first, then fact when the format requires it, then any metadata up to
// the data chunk.
func (d *Decoder) Decode(buf []byte) (*WavFile, error) {
	rest := buf

	riffChunk, err := PopChunk(&rest)
	if err != nil {
		return nil, err
	}

	if riffChunk.ID != CIDRiff {
		return nil, &IncorrectChunkError{Expected: string(CIDRiff[:]), Actual: riffChunk.IDString()}
	}

	fields := riffChunk.fields()

	form, err := fields.ascii("WAVEID", 4)
	if err != nil {
		return nil, err
	}

	if form != string(CIDWave[:]) {
		return nil, fields.fieldError("WAVEID", 0, fmt.Sprintf("incorrect RIFF type %q", form))
	}

	var registry *ChunkRegistry
	if d != nil {
		registry = d.Registry
	}

	a := &assembler{
		walker: NewWalker(riffChunk.Data[fields.pos:], registry),
		file:   &WavFile{Tags: map[string]string{}},
	}

	if err := a.readFmt(); err != nil {
		return nil, err
	}

	if err := a.readFact(); err != nil {
		return nil, err
	}

	if err := a.readData(); err != nil {
		return nil, err
	}

	if d != nil && d.ScanTrailing {
		if err := a.readTrailing(); err != nil {
			return nil, err
		}
	}

	if err := a.assemble(); err != nil {
		return nil, err
	}

	return a.file, nil
}

type assembler struct {
	walker   *Walker
	file     *WavFile
	seenData bool
}

// next returns the next decoded sub-chunk, or nil when a LIST chunk failed to
// decode and was skipped.
func (a *assembler) next() (DecodedChunk, error) {
	ch, err := a.walker.Next()
	if err != nil {
		return nil, err
	}

	decoded, err := a.walker.Decode(ch)
	if err != nil {
		if ch.ID == CIDList {
			a.file.Skipped = append(a.file.Skipped, SkippedChunk{
				ID:    ch.ID,
				Order: a.walker.Order(),
				Err:   err,
			})

			return nil, nil
		}

		return nil, err
	}

	return decoded, nil
}

// collectMetadata folds LIST, unknown and custom chunks into the file. It
// reports false for the fmt, fact and data chunks.
func (a *assembler) collectMetadata(decoded DecodedChunk) bool {
	switch c := decoded.(type) {
	case nil:
		return true
	case *FmtChunk, *FactChunk, *DataChunk:
		return false
	case *ListChunk:
		if c == nil {
			return true
		}

		for label, value := range c.Tags {
			a.file.Tags[label] = value
		}

		return true
	case *RawChunk:
		if c == nil {
			return true
		}

		c.Order = a.walker.Order()
		c.BeforeData = !a.seenData
		a.file.UnknownChunks = append(a.file.UnknownChunks, *c)

		return true
	default:
		a.file.Chunks = append(a.file.Chunks, ExtraChunk{
			Chunk:      decoded,
			Order:      a.walker.Order(),
			BeforeData: !a.seenData,
		})

		return true
	}
}

func (a *assembler) readFmt() error {
	for {
		decoded, err := a.next()
		if errors.Is(err, io.EOF) {
			return &MissingChunkError{Expected: string(CIDFmt[:])}
		}

		if err != nil {
			return err
		}

		if a.collectMetadata(decoded) {
			continue
		}

		if c, ok := decoded.(*FmtChunk); ok {
			if c == nil {
				return &MissingChunkError{Expected: string(CIDFmt[:])}
			}

			a.file.Fmt = c
			return nil
		}

		return &IncorrectChunkError{Expected: string(CIDFmt[:]), Actual: idOf(decoded)}
	}
}

// readFact requires a fact chunk for every format but integer PCM. LIST and
// unknown chunks may sit between the fmt and fact chunks.
func (a *assembler) readFact() error {
	if !a.file.Fmt.Format().RequiresFactChunk() {
		return nil
	}

	for {
		decoded, err := a.next()
		if errors.Is(err, io.EOF) {
			return &MissingChunkError{Expected: string(CIDFact[:])}
		}

		if err != nil {
			return err
		}

		if a.collectMetadata(decoded) {
			continue
		}

		switch c := decoded.(type) {
		case *FactChunk:
			if c == nil {
				return &MissingChunkError{Expected: string(CIDFact[:])}
			}

			a.file.Fact = c

			return nil
		case *DataChunk:
			return &MissingChunkError{Expected: string(CIDFact[:])}
		default:
			return &IncorrectChunkError{Expected: string(CIDFact[:]), Actual: idOf(decoded)}
		}
	}
}

func (a *assembler) readData() error {
	for {
		decoded, err := a.next()
		if errors.Is(err, io.EOF) {
			return &MissingChunkError{Expected: string(CIDData[:])}
		}

		if err != nil {
			return err
		}

		done, err := a.handleBody(decoded)
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

func (a *assembler) readTrailing() error {
	for {
		decoded, err := a.next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if _, err := a.handleBody(decoded); err != nil {
			return err
		}
	}
}

// handleBody processes a chunk following the fmt (and fact) chunk and reports
// whether it was the data chunk.
func (a *assembler) handleBody(decoded DecodedChunk) (bool, error) {
	if a.collectMetadata(decoded) {
		return false, nil
	}

	switch c := decoded.(type) {
	case *DataChunk:
		if c == nil {
			return false, &MissingChunkError{Expected: string(CIDData[:])}
		}

		if a.seenData {
			return false, &IncorrectChunkError{Expected: "metadata", Actual: string(CIDData[:])}
		}

		a.seenData = true
		a.file.DataSize = c.Size

		return true, nil
	case *FactChunk:
		if c == nil {
			return false, nil
		}

		if a.file.Fact != nil {
			return false, &IncorrectChunkError{Expected: "metadata", Actual: string(CIDFact[:])}
		}

		a.file.Fact = c

		return false, nil
	default:
		return false, &IncorrectChunkError{Expected: "metadata", Actual: idOf(decoded)}
	}
}

func (a *assembler) assemble() error {
	f := a.file.Fmt

	total, err := a.totalSamples()
	if err != nil {
		return err
	}

	if !fitsInt(uint64(f.SampleRate)) {
		return &OverflowError{ChunkID: string(CIDFmt[:]), Field: "dwSamplesPerSec", Value: uint64(f.SampleRate)}
	}

	if !fitsInt(uint64(f.AvgBytesPerSec)) {
		return &OverflowError{ChunkID: string(CIDFmt[:]), Field: "dwAvgBytesPerSec", Value: uint64(f.AvgBytesPerSec)}
	}

	a.file.Raw = RawDetail{
		FormatTag:    f.FormatTag,
		Channels:     int(f.NumChannels),
		SampleRate:   int(f.SampleRate),
		DataRate:     int(f.AvgBytesPerSec),
		BlockSize:    int(f.BlockAlign),
		SampleDepth:  int(f.SampleDepth()),
		ChannelMask:  f.ChannelMask(),
		SubFormat:    f.SubFormat(),
		TotalSamples: total,
	}
	a.file.Detail = a.file.Raw.Detail()

	return nil
}

// totalSamples prefers the fact chunk count and otherwise derives the count
// from the data size. A zero bit depth or channel count yields 0.
func (a *assembler) totalSamples() (int, error) {
	if fact := a.file.Fact; fact != nil {
		if !fitsInt(uint64(fact.SampleCount)) {
			return 0, &OverflowError{ChunkID: string(CIDFact[:]), Field: "dwSampleLength", Value: uint64(fact.SampleCount)}
		}

		return int(fact.SampleCount), nil
	}

	f := a.file.Fmt

	divisor := uint64(f.BitsPerSample) * uint64(f.NumChannels)
	if divisor == 0 {
		return 0, nil
	}

	total := 8 * uint64(a.file.DataSize) / divisor
	if !fitsInt(total) {
		return 0, &OverflowError{ChunkID: string(CIDData[:]), Field: "sample count", Value: total}
	}

	return int(total), nil
}

func idOf(decoded DecodedChunk) string {
	if decoded == nil {
		return ""
	}

	id := decoded.ChunkID()

	return string(id[:])
}
