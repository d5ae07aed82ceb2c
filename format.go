package waveinfo

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Format is the audio encoding of a WAVE file, keyed by its fmt format tag.
type Format uint16

const (
	FormatUnknown    Format = 0x0000
	FormatPCM        Format = 0x0001
	FormatIEEEFloat  Format = 0x0003
	FormatALaw       Format = 0x0006
	FormatMuLaw      Format = 0x0007
	FormatExtensible Format = 0xFFFE
)

// ksDataFormatSuffix is the trailing 14 bytes shared by every
// KSDATAFORMAT_SUBTYPE_* GUID derived from a wave format tag.
var ksDataFormatSuffix = [14]byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// FormatFromTag maps a fmt format tag to a Format. Unlisted tags are unknown.
func FormatFromTag(tag uint16) Format {
	switch f := Format(tag); f {
	case FormatPCM, FormatIEEEFloat, FormatALaw, FormatMuLaw, FormatExtensible:
		return f
	default:
		return FormatUnknown
	}
}

// FormatFromSubFormat resolves an extensible sub-format GUID. Only GUIDs built
// on the KSDATAFORMAT suffix are recognized.
func FormatFromSubFormat(guid [16]byte) Format {
	if !bytes.Equal(guid[2:], ksDataFormatSuffix[:]) {
		return FormatUnknown
	}

	f := FormatFromTag(binary.LittleEndian.Uint16(guid[:2]))
	if f == FormatExtensible {
		return FormatUnknown
	}

	return f
}

// ResolveFormat returns the effective format of a tag, looking through the
// sub-format of extensible tags.
func ResolveFormat(tag uint16, subFormat *[16]byte) Format {
	f := FormatFromTag(tag)
	if f != FormatExtensible {
		return f
	}

	if subFormat == nil {
		return FormatUnknown
	}

	return FormatFromSubFormat(*subFormat)
}

// RequiresFactChunk reports whether files of this format must carry a fact
// chunk. Only integer PCM may omit it.
func (f Format) RequiresFactChunk() bool {
	return f != FormatPCM
}

func (f Format) String() string {
	switch f {
	case FormatPCM:
		return "PCM"
	case FormatIEEEFloat:
		return "IEEE_FLOAT"
	case FormatALaw:
		return "ALAW"
	case FormatMuLaw:
		return "MULAW"
	case FormatExtensible:
		return "EXTENSIBLE"
	case FormatUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("Format(0x%04X)", uint16(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
