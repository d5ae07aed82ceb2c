package waveinfo

import "fmt"

// SpeakerPosition is a channel role from the WAVE_FORMAT_EXTENSIBLE channel
// mask. Its value is the position's bit in the mask.
type SpeakerPosition uint32

const (
	SpeakerFrontLeft          SpeakerPosition = 0x00000001
	SpeakerFrontRight         SpeakerPosition = 0x00000002
	SpeakerFrontCenter        SpeakerPosition = 0x00000004
	SpeakerLowFrequency       SpeakerPosition = 0x00000008
	SpeakerBackLeft           SpeakerPosition = 0x00000010
	SpeakerBackRight          SpeakerPosition = 0x00000020
	SpeakerFrontLeftOfCenter  SpeakerPosition = 0x00000040
	SpeakerFrontRightOfCenter SpeakerPosition = 0x00000080
	SpeakerBackCenter         SpeakerPosition = 0x00000100
	SpeakerSideLeft           SpeakerPosition = 0x00000200
	SpeakerSideRight          SpeakerPosition = 0x00000400
	SpeakerTopCenter          SpeakerPosition = 0x00000800
	SpeakerTopFrontLeft       SpeakerPosition = 0x00001000
	SpeakerTopFrontCenter     SpeakerPosition = 0x00002000
	SpeakerTopFrontRight      SpeakerPosition = 0x00004000
	SpeakerTopBackLeft        SpeakerPosition = 0x00008000
	SpeakerTopBackCenter      SpeakerPosition = 0x00010000
	SpeakerTopBackRight       SpeakerPosition = 0x00020000
	// SpeakerReserved fills channels the mask doesn't assign.
	SpeakerReserved SpeakerPosition = 0xFFFFFFFF
)

// speakerPositions lists the named positions by ascending bit value.
var speakerPositions = [...]struct {
	pos  SpeakerPosition
	name string
}{
	{SpeakerFrontLeft, "FRONT_LEFT"},
	{SpeakerFrontRight, "FRONT_RIGHT"},
	{SpeakerFrontCenter, "FRONT_CENTER"},
	{SpeakerLowFrequency, "LOW_FREQUENCY"},
	{SpeakerBackLeft, "BACK_LEFT"},
	{SpeakerBackRight, "BACK_RIGHT"},
	{SpeakerFrontLeftOfCenter, "FRONT_LEFT_OF_CENTER"},
	{SpeakerFrontRightOfCenter, "FRONT_RIGHT_OF_CENTER"},
	{SpeakerBackCenter, "BACK_CENTER"},
	{SpeakerSideLeft, "SIDE_LEFT"},
	{SpeakerSideRight, "SIDE_RIGHT"},
	{SpeakerTopCenter, "TOP_CENTER"},
	{SpeakerTopFrontLeft, "TOP_FRONT_LEFT"},
	{SpeakerTopFrontCenter, "TOP_FRONT_CENTER"},
	{SpeakerTopFrontRight, "TOP_FRONT_RIGHT"},
	{SpeakerTopBackLeft, "TOP_BACK_LEFT"},
	{SpeakerTopBackCenter, "TOP_BACK_CENTER"},
	{SpeakerTopBackRight, "TOP_BACK_RIGHT"},
}

// SpeakerPositionsFromMask assigns a position to each of the given channels.
// Set mask bits are taken in ascending order; a nil or zero mask selects every
// position. Channels left over once the mask is exhausted are SpeakerReserved.
func SpeakerPositionsFromMask(mask *uint32, channels int) []SpeakerPosition {
	if channels <= 0 {
		return nil
	}

	bits := uint32(0xFFFFFFFF)
	if mask != nil && *mask != 0 {
		bits = *mask
	}

	positions := make([]SpeakerPosition, 0, channels)

	for _, sp := range speakerPositions {
		if len(positions) == channels {
			break
		}

		if bits&uint32(sp.pos) != 0 {
			positions = append(positions, sp.pos)
		}
	}

	for len(positions) < channels {
		positions = append(positions, SpeakerReserved)
	}

	return positions
}

func (p SpeakerPosition) String() string {
	if p == SpeakerReserved {
		return "RESERVED"
	}

	for _, sp := range speakerPositions {
		if sp.pos == p {
			return sp.name
		}
	}

	return fmt.Sprintf("SpeakerPosition(0x%08X)", uint32(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p SpeakerPosition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
