package waveinfo

import (
	"time"

	"github.com/go-audio/audio"
	"github.com/google/uuid"
)

// RawDetail holds the numeric facts collected from the fmt, fact and data
// chunks.
type RawDetail struct {
	FormatTag    uint16
	Channels     int
	SampleRate   int
	DataRate     int
	BlockSize    int
	SampleDepth  int
	ChannelMask  *uint32
	SubFormat    *[16]byte
	TotalSamples int
}

// SubFormatGUID renders the sub-format bytes in GUID notation, or "" when the
// file isn't extensible.
func (r RawDetail) SubFormatGUID() string {
	if r.SubFormat == nil {
		return ""
	}

	return uuid.UUID(*r.SubFormat).String()
}

// Detail derives the consumer facing summary.
func (r RawDetail) Detail() WavDetail {
	var duration float64
	if r.SampleRate > 0 {
		duration = float64(r.TotalSamples) / float64(r.SampleRate)
	}

	return WavDetail{
		Format:           ResolveFormat(r.FormatTag, r.SubFormat),
		Duration:         duration,
		Channels:         r.Channels,
		BitDepth:         r.SampleDepth,
		SampleRate:       r.SampleRate,
		ChannelPositions: SpeakerPositionsFromMask(r.ChannelMask, r.Channels),
	}
}

// WavDetail summarizes a WAVE file.
type WavDetail struct {
	Format Format
	// Duration in seconds.
	Duration         float64
	Channels         int
	BitDepth         int
	SampleRate       int
	ChannelPositions []SpeakerPosition
}

// DurationTime returns Duration as a time.Duration.
func (d WavDetail) DurationTime() time.Duration {
	return secondsToDuration(d.Duration)
}

// AudioFormat returns the go-audio format of the content.
func (d WavDetail) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: d.Channels,
		SampleRate:  d.SampleRate,
	}
}
