package waveinfo

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks is a minimal reference tokenizer for the RIFF/WAVE body.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		chunks = append(chunks, testChunk{id: id, size: size, data: data[offset:end]})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

// buildChunk encodes one chunk, adding the padding byte of odd payloads.
func buildChunk(id string, payload []byte) []byte {
	out := make([]byte, 0, 8+len(payload)+1)
	out = append(out, id...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)

	if len(payload)%2 == 1 {
		out = append(out, 0)
	}

	return out
}

// buildWav wraps already encoded chunks in a RIFF/WAVE envelope.
func buildWav(chunks ...[]byte) []byte {
	body := []byte("WAVE")
	for _, c := range chunks {
		body = append(body, c...)
	}

	return buildChunk("RIFF", body)
}

func fmtPayload(tag, channels uint16, rate, byteRate uint32, align, bits uint16) []byte {
	out := make([]byte, 0, 16)
	out = binary.LittleEndian.AppendUint16(out, tag)
	out = binary.LittleEndian.AppendUint16(out, channels)
	out = binary.LittleEndian.AppendUint32(out, rate)
	out = binary.LittleEndian.AppendUint32(out, byteRate)
	out = binary.LittleEndian.AppendUint16(out, align)
	out = binary.LittleEndian.AppendUint16(out, bits)

	return out
}

func extensibleFmtPayload(channels uint16, rate uint32, bits, validBits uint16, mask uint32, subFormat [16]byte) []byte {
	align := channels * bits / 8
	out := fmtPayload(uint16(FormatExtensible), channels, rate, rate*uint32(align), align, bits)
	out = binary.LittleEndian.AppendUint16(out, 22)
	out = binary.LittleEndian.AppendUint16(out, validBits)
	out = binary.LittleEndian.AppendUint32(out, mask)

	return append(out, subFormat[:]...)
}

func pcmFmtChunk(channels uint16, rate uint32, bits uint16) []byte {
	align := channels * bits / 8
	return buildChunk("fmt ", fmtPayload(uint16(FormatPCM), channels, rate, rate*uint32(align), align, bits))
}

func factChunk(samples uint32) []byte {
	return buildChunk("fact", binary.LittleEndian.AppendUint32(nil, samples))
}

// infoList encodes a LIST/INFO chunk from code/value pairs.
func infoList(pairs ...string) []byte {
	payload := []byte("INFO")
	for i := 0; i+1 < len(pairs); i += 2 {
		payload = append(payload, buildChunk(pairs[i], append([]byte(pairs[i+1]), 0))...)
	}

	return buildChunk("LIST", payload)
}

func makeSubFormatGUID(tag uint16) [16]byte {
	var guid [16]byte

	binary.LittleEndian.PutUint16(guid[:2], tag)
	copy(guid[2:], ksDataFormatSuffix[:])

	return guid
}
