package waveinfo

import "fmt"

const (
	fmtExtensionSizeNone    = 0
	fmtExtensionSizeWaveExt = 22
)

// FmtChunk stores the parsed WAV fmt chunk, including extensible metadata.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	// ExtensionSize is nil when the chunk has no cbSize field.
	ExtensionSize *uint16
	// Extensible is set only when ExtensionSize is 22.
	Extensible *FmtExtensible
}

// FmtExtensible stores WAVE_FORMAT_EXTENSIBLE extra fields.
type FmtExtensible struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
}

func (f *FmtChunk) Clone() *FmtChunk {
	if f == nil {
		return nil
	}

	out := *f

	if f.ExtensionSize != nil {
		size := *f.ExtensionSize
		out.ExtensionSize = &size
	}

	if f.Extensible != nil {
		ext := *f.Extensible
		out.Extensible = &ext
	}

	return &out
}

// SubFormat returns the extensible sub-format GUID, if any.
func (f *FmtChunk) SubFormat() *[16]byte {
	if f == nil || f.Extensible == nil {
		return nil
	}

	guid := f.Extensible.SubFormat

	return &guid
}

// ChannelMask returns the extensible channel mask, if any.
func (f *FmtChunk) ChannelMask() *uint32 {
	if f == nil || f.Extensible == nil {
		return nil
	}

	mask := f.Extensible.ChannelMask

	return &mask
}

// SampleDepth is the number of significant bits per sample: the valid bits of
// an extensible chunk, else the container bit width.
func (f *FmtChunk) SampleDepth() uint16 {
	if f == nil {
		return 0
	}

	if f.Extensible != nil {
		return f.Extensible.ValidBitsPerSample
	}

	return f.BitsPerSample
}

// Format resolves the effective audio format of the chunk.
func (f *FmtChunk) Format() Format {
	if f == nil {
		return FormatUnknown
	}

	return ResolveFormat(f.FormatTag, f.SubFormat())
}

// DecodeFmtChunk decodes a fmt chunk. The optional cbSize field must match the
// remaining payload exactly and be either 0 or 22.
func DecodeFmtChunk(ch Chunk) (*FmtChunk, error) {
	if ch.ID != CIDFmt {
		return nil, &IncorrectChunkError{Expected: string(CIDFmt[:]), Actual: ch.IDString()}
	}

	r := ch.fields()
	out := &FmtChunk{}

	var err error

	if out.FormatTag, err = r.u16("wFormatTag"); err != nil {
		return nil, err
	}

	if out.NumChannels, err = r.u16("wChannels"); err != nil {
		return nil, err
	}

	if out.SampleRate, err = r.u32("dwSamplesPerSec"); err != nil {
		return nil, err
	}

	if out.AvgBytesPerSec, err = r.u32("dwAvgBytesPerSec"); err != nil {
		return nil, err
	}

	if out.BlockAlign, err = r.u16("wBlockAlign"); err != nil {
		return nil, err
	}

	if out.BitsPerSample, err = r.u16("wBitsPerSample"); err != nil {
		return nil, err
	}

	if r.remaining() == 0 {
		return out, nil
	}

	sizeOffset := r.pos

	extSize, err := r.u16("cbSize")
	if err != nil {
		return nil, err
	}

	if int(extSize) != r.remaining() {
		return nil, r.fieldError("cbSize", sizeOffset,
			fmt.Sprintf("extension size mismatch: reported %d, found %d", extSize, r.remaining()))
	}

	out.ExtensionSize = &extSize

	switch extSize {
	case fmtExtensionSizeNone:
		return out, nil
	case fmtExtensionSizeWaveExt:
		ext := &FmtExtensible{}

		if ext.ValidBitsPerSample, err = r.u16("wValidBitsPerSample"); err != nil {
			return nil, err
		}

		if ext.ChannelMask, err = r.u32("dwChannelMask"); err != nil {
			return nil, err
		}

		if ext.SubFormat, err = r.bytes16("SubFormat"); err != nil {
			return nil, err
		}

		out.Extensible = ext

		return out, nil
	default:
		return nil, r.fieldError("cbSize", sizeOffset, fmt.Sprintf("invalid fmt extension size: %d", extSize))
	}
}
