package waveinfo

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParsePCM(t *testing.T) {
	data := buildWav(
		pcmFmtChunk(2, 44100, 16),
		infoList("ISFT", "Lavf61.1.100"),
		buildChunk("data", make([]byte, 44100*4)),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantRaw := RawDetail{
		FormatTag:    1,
		Channels:     2,
		SampleRate:   44100,
		DataRate:     176400,
		BlockSize:    4,
		SampleDepth:  16,
		TotalSamples: 44100,
	}
	if !reflect.DeepEqual(info.Raw, wantRaw) {
		t.Fatalf("raw mismatch:\n got %+v\nwant %+v", info.Raw, wantRaw)
	}

	if info.Detail.Format != FormatPCM || info.Detail.Duration != 1 {
		t.Fatalf("unexpected detail: %+v", info.Detail)
	}

	if !reflect.DeepEqual(info.Tags, map[string]string{"Software": "Lavf61.1.100"}) {
		t.Fatalf("unexpected tags: %v", info.Tags)
	}

	if info.DataSize != 44100*4 || info.Fact != nil {
		t.Fatalf("unexpected data size %d / fact %+v", info.DataSize, info.Fact)
	}
}

func TestParseSampleCountDerivation(t *testing.T) {
	tests := []struct {
		name     string
		channels uint16
		bits     uint16
		dataLen  int
		want     int
	}{
		{"mono 8 bit", 1, 8, 1000, 1000},
		{"stereo 16 bit", 2, 16, 1000, 250},
		{"5.1 24 bit", 6, 24, 18 * 10, 10},
		{"truncated frame", 2, 16, 7, 1},
		{"zero bits", 2, 0, 100, 0},
		{"zero channels", 0, 16, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildWav(
				buildChunk("fmt ", fmtPayload(1, tt.channels, 8000, 0, 0, tt.bits)),
				buildChunk("data", make([]byte, tt.dataLen)),
			)

			info, err := Parse(data)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			if info.Raw.TotalSamples != tt.want {
				t.Fatalf("total samples: got %d want %d", info.Raw.TotalSamples, tt.want)
			}
		})
	}
}

func TestParseFactFormats(t *testing.T) {
	data := buildWav(
		buildChunk("fmt ", fmtPayload(uint16(FormatALaw), 2, 44100, 88200, 2, 8)),
		factChunk(441441),
		buildChunk("data", make([]byte, 16)),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if info.Raw.TotalSamples != 441441 {
		t.Fatalf("expected fact count to win, got %d", info.Raw.TotalSamples)
	}

	if info.Detail.Format != FormatALaw || math.Abs(info.Detail.Duration-10.01) > 1e-9 {
		t.Fatalf("unexpected detail: %+v", info.Detail)
	}
}

func TestParseExtensible(t *testing.T) {
	data := buildWav(
		buildChunk("fmt ", extensibleFmtPayload(2, 48000, 24, 20, 0x00000003, makeSubFormatGUID(uint16(FormatPCM)))),
		buildChunk("data", make([]byte, 48000*6)),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if info.Detail.Format != FormatPCM {
		t.Fatalf("expected PCM resolution, got %s", info.Detail.Format)
	}

	if info.Raw.SampleDepth != 20 || info.Detail.BitDepth != 20 {
		t.Fatalf("expected valid bits as depth, got %d", info.Raw.SampleDepth)
	}

	if info.Raw.TotalSamples != 48000 {
		t.Fatalf("total samples from container bits: got %d want 48000", info.Raw.TotalSamples)
	}

	if info.Raw.ChannelMask == nil || *info.Raw.ChannelMask != 3 {
		t.Fatalf("channel mask mismatch: %v", info.Raw.ChannelMask)
	}

	if !reflect.DeepEqual(info.Detail.ChannelPositions, []SpeakerPosition{SpeakerFrontLeft, SpeakerFrontRight}) {
		t.Fatalf("positions mismatch: %v", info.Detail.ChannelPositions)
	}
}

func TestParseExtensibleFloatRequiresFact(t *testing.T) {
	fmtChunk := buildChunk("fmt ", extensibleFmtPayload(2, 48000, 32, 32, 3, makeSubFormatGUID(uint16(FormatIEEEFloat))))

	_, err := Parse(buildWav(fmtChunk, buildChunk("data", make([]byte, 8))))

	var missing *MissingChunkError
	if !errors.As(err, &missing) || missing.Expected != "fact" {
		t.Fatalf("expected missing fact chunk, got %v", err)
	}

	info, err := Parse(buildWav(fmtChunk, factChunk(1), buildChunk("data", make([]byte, 8))))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if info.Detail.Format != FormatIEEEFloat || info.Raw.TotalSamples != 1 {
		t.Fatalf("unexpected detail: %+v", info.Detail)
	}
}

// Metadata chunks between fmt and fact are tolerated.
func TestParseMetadataBeforeFact(t *testing.T) {
	data := buildWav(
		buildChunk("fmt ", fmtPayload(uint16(FormatMuLaw), 1, 8000, 8000, 1, 8)),
		infoList("IART", "someone"),
		buildChunk("JUNK", make([]byte, 6)),
		factChunk(8000),
		buildChunk("data", make([]byte, 8000)),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if info.Raw.TotalSamples != 8000 || info.Tags["Artist"] != "someone" {
		t.Fatalf("unexpected result: samples=%d tags=%v", info.Raw.TotalSamples, info.Tags)
	}

	if len(info.UnknownChunks) != 1 || string(info.UnknownChunks[0].ID[:]) != "JUNK" {
		t.Fatalf("expected JUNK to be captured, got %+v", info.UnknownChunks)
	}
}

func TestParseUnknownChunksBeforeFmt(t *testing.T) {
	data := buildWav(
		buildChunk("bext", make([]byte, 12)),
		infoList("INAM", "title"),
		pcmFmtChunk(1, 8000, 8),
		buildChunk("data", make([]byte, 4)),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(info.UnknownChunks) != 1 || info.UnknownChunks[0].Order != 1 || !info.UnknownChunks[0].BeforeData {
		t.Fatalf("unexpected unknown chunks: %+v", info.UnknownChunks)
	}

	if info.Tags["Name"] != "title" {
		t.Fatalf("unexpected tags: %v", info.Tags)
	}
}

func TestParsePCMWithOptionalFact(t *testing.T) {
	data := buildWav(
		pcmFmtChunk(1, 8000, 16),
		factChunk(3),
		buildChunk("data", make([]byte, 100)),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if info.Fact == nil || info.Raw.TotalSamples != 3 {
		t.Fatalf("expected optional fact to be used, got %d", info.Raw.TotalSamples)
	}
}

func TestParseTagsMergeAcrossLists(t *testing.T) {
	data := buildWav(
		pcmFmtChunk(1, 8000, 8),
		infoList("IART", "first", "IGNR", "rock"),
		infoList("IART", "second"),
		buildChunk("data", []byte{1, 2, 3}),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := map[string]string{"Artist": "second", "Genre": "rock"}
	if !reflect.DeepEqual(info.Tags, want) {
		t.Fatalf("got %v, want %v", info.Tags, want)
	}
}

func TestParseToleratesBrokenList(t *testing.T) {
	data := buildWav(
		pcmFmtChunk(1, 8000, 8),
		buildChunk("LIST", []byte("IN")),
		buildChunk("data", []byte{1, 2}),
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(info.Skipped) != 1 || !errors.Is(info.Skipped[0].Err, ErrFieldParse) {
		t.Fatalf("expected one skipped LIST, got %+v", info.Skipped)
	}

	if len(info.Tags) != 0 {
		t.Fatalf("expected no tags, got %v", info.Tags)
	}
}

func TestParseStopsAtData(t *testing.T) {
	data := buildWav(
		pcmFmtChunk(1, 8000, 8),
		buildChunk("data", []byte{1, 2}),
		infoList("IART", "late"),
		[]byte{0xFF, 0xFF},
	)

	info, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(info.Tags) != 0 {
		t.Fatalf("chunks after data must be ignored by default, got %v", info.Tags)
	}
}

func TestDecoderScanTrailing(t *testing.T) {
	data := buildWav(
		pcmFmtChunk(1, 8000, 8),
		buildChunk("data", []byte{1, 2, 3}),
		infoList("IART", "late"),
		buildChunk("id3 ", []byte{1, 2}),
	)

	dec := NewDecoder()
	dec.ScanTrailing = true

	info, err := dec.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if info.Tags["Artist"] != "late" {
		t.Fatalf("expected trailing tags, got %v", info.Tags)
	}

	if len(info.UnknownChunks) != 1 || info.UnknownChunks[0].BeforeData {
		t.Fatalf("expected trailing unknown chunk after data, got %+v", info.UnknownChunks)
	}

	_, err = dec.Decode(buildWav(
		pcmFmtChunk(1, 8000, 8),
		buildChunk("data", []byte{1, 2}),
		pcmFmtChunk(1, 8000, 8),
	))
	if !errors.Is(err, ErrIncorrectChunk) {
		t.Fatalf("expected duplicate fmt after data to fail, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	riffWith := func(form string, chunks ...[]byte) []byte {
		body := []byte(form)
		for _, c := range chunks {
			body = append(body, c...)
		}

		return buildChunk("RIFF", body)
	}

	tests := []struct {
		name     string
		data     []byte
		sentinel error
		check    func(t *testing.T, err error)
	}{
		{
			name:     "empty input",
			data:     nil,
			sentinel: ErrChunkParse,
		},
		{
			name:     "not riff",
			data:     buildChunk("RIFX", []byte("WAVE")),
			sentinel: ErrIncorrectChunk,
			check: func(t *testing.T, err error) {
				var e *IncorrectChunkError
				if !errors.As(err, &e) || e.Expected != "RIFF" || e.Actual != "RIFX" {
					t.Fatalf("unexpected error %v", err)
				}
			},
		},
		{
			name:     "not wave",
			data:     riffWith("AVI "),
			sentinel: ErrFieldParse,
			check: func(t *testing.T, err error) {
				var e *FieldParseError
				if !errors.As(err, &e) || e.Field != "WAVEID" || e.ChunkID != "RIFF" || e.Offset != 0 {
					t.Fatalf("unexpected error %v", err)
				}
			},
		},
		{
			name:     "form type too short",
			data:     riffWith("WA"),
			sentinel: ErrFieldParse,
		},
		{
			name:     "riff size beyond input",
			data:     riffWith("WAVE")[:10],
			sentinel: ErrChunkParse,
		},
		{
			name:     "missing fmt",
			data:     buildWav(buildChunk("JUNK", []byte{0, 0})),
			sentinel: ErrMissingChunk,
			check: func(t *testing.T, err error) {
				var e *MissingChunkError
				if !errors.As(err, &e) || e.Expected != "fmt " {
					t.Fatalf("unexpected error %v", err)
				}
			},
		},
		{
			name:     "data before fmt",
			data:     buildWav(buildChunk("data", []byte{0, 0}), pcmFmtChunk(1, 8000, 8)),
			sentinel: ErrIncorrectChunk,
			check: func(t *testing.T, err error) {
				var e *IncorrectChunkError
				if !errors.As(err, &e) || e.Expected != "fmt " || e.Actual != "data" {
					t.Fatalf("unexpected error %v", err)
				}
			},
		},
		{
			name:     "fact before fmt",
			data:     buildWav(factChunk(1), pcmFmtChunk(1, 8000, 8)),
			sentinel: ErrIncorrectChunk,
		},
		{
			name:     "broken fmt",
			data:     buildWav(buildChunk("fmt ", []byte{1, 0, 2})),
			sentinel: ErrFieldParse,
		},
		{
			name: "missing fact at end",
			data: buildWav(
				buildChunk("fmt ", fmtPayload(uint16(FormatIEEEFloat), 1, 8000, 32000, 4, 32)),
			),
			sentinel: ErrMissingChunk,
		},
		{
			name: "duplicate fmt before fact",
			data: buildWav(
				buildChunk("fmt ", fmtPayload(uint16(FormatIEEEFloat), 1, 8000, 32000, 4, 32)),
				buildChunk("fmt ", fmtPayload(uint16(FormatIEEEFloat), 1, 8000, 32000, 4, 32)),
			),
			sentinel: ErrIncorrectChunk,
		},
		{
			name:     "missing data",
			data:     buildWav(pcmFmtChunk(1, 8000, 8), infoList("IART", "x")),
			sentinel: ErrMissingChunk,
			check: func(t *testing.T, err error) {
				var e *MissingChunkError
				if !errors.As(err, &e) || e.Expected != "data" {
					t.Fatalf("unexpected error %v", err)
				}
			},
		},
		{
			name:     "duplicate fmt",
			data:     buildWav(pcmFmtChunk(1, 8000, 8), pcmFmtChunk(1, 8000, 8), buildChunk("data", nil)),
			sentinel: ErrIncorrectChunk,
		},
		{
			name: "duplicate fact",
			data: buildWav(
				buildChunk("fmt ", fmtPayload(uint16(FormatALaw), 1, 8000, 8000, 1, 8)),
				factChunk(1), factChunk(2), buildChunk("data", nil),
			),
			sentinel: ErrIncorrectChunk,
		},
		{
			name:     "broken fact",
			data:     buildWav(pcmFmtChunk(1, 8000, 8), buildChunk("fact", []byte{1}), buildChunk("data", nil)),
			sentinel: ErrFieldParse,
		},
		{
			name:     "truncated sub-chunk",
			data:     buildWav(pcmFmtChunk(1, 8000, 8), []byte{'d', 'a', 't', 'a', 0x10, 0, 0, 0, 1, 2}),
			sentinel: ErrChunkParse,
		},
		{
			name:     "garbage sub-chunk header",
			data:     buildWav(pcmFmtChunk(1, 8000, 8), []byte{0x00, 0x01, 0x02, 0x03, 0, 0, 0, 0}),
			sentinel: ErrChunkParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.data)
			if err == nil {
				t.Fatalf("expected error, got %+v", info)
			}

			if info != nil {
				t.Fatal("expected nil result on error")
			}

			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v, got %v", tt.sentinel, err)
			}

			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestParseReaderAndFile(t *testing.T) {
	data := buildWav(pcmFmtChunk(2, 8000, 16), buildChunk("data", make([]byte, 32)))

	info, err := ParseReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse reader: %v", err)
	}

	if info.Raw.TotalSamples != 8 {
		t.Fatalf("total samples: got %d want 8", info.Raw.TotalSamples)
	}

	path := filepath.Join(t.TempDir(), "in.wav")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	fromFile, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}

	if !reflect.DeepEqual(fromFile.Raw, info.Raw) {
		t.Fatalf("file and reader results differ: %+v vs %+v", fromFile.Raw, info.Raw)
	}

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil || !strings.Contains(err.Error(), "missing.wav") {
		t.Fatalf("expected error naming the path, got %v", err)
	}
}

func TestDecoderNilReceiver(t *testing.T) {
	var dec *Decoder

	info, err := dec.Decode(buildWav(pcmFmtChunk(1, 8000, 8), buildChunk("data", []byte{1, 2})))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if info.Raw.TotalSamples != 2 {
		t.Fatalf("total samples: got %d want 2", info.Raw.TotalSamples)
	}
}
