package waveinfo

import "fmt"

// ChunkHandler is a typed decoder for RIFF/WAV chunks.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte) bool
	Decode(ch Chunk) (DecodedChunk, error)
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

// NewChunkRegistry returns a registry with the fmt, fact, LIST and data
// handlers.
func NewChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&fmtChunkHandler{},
			&factChunkHandler{},
			&listChunkHandler{},
			&dataChunkHandler{},
		},
	}
}

// Register adds a handler. Handlers registered later take precedence.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append([]ChunkHandler{handler}, r.handlers...)
}

// Decode dispatches a chunk to the first matching handler. Chunks nobody
// handles come back as a *RawChunk.
func (r *ChunkRegistry) Decode(ch Chunk) (DecodedChunk, error) {
	if r != nil {
		for _, handler := range r.handlers {
			if !handler.CanHandle(ch.ID) {
				continue
			}

			decoded, err := handler.Decode(ch)
			if err != nil {
				return nil, fmt.Errorf("decode %s chunk: %w", ch.IDString(), err)
			}

			return decoded, nil
		}
	}

	return &RawChunk{ID: ch.ID, Size: ch.Size, Data: ch.Data}, nil
}

type fmtChunkHandler struct{}

func (h *fmtChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDFmt
}

func (h *fmtChunkHandler) Decode(ch Chunk) (DecodedChunk, error) {
	return DecodeFmtChunk(ch)
}

type factChunkHandler struct{}

func (h *factChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDFact
}

func (h *factChunkHandler) Decode(ch Chunk) (DecodedChunk, error) {
	return DecodeFactChunk(ch)
}

type listChunkHandler struct{}

func (h *listChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDList
}

func (h *listChunkHandler) Decode(ch Chunk) (DecodedChunk, error) {
	return DecodeListChunk(ch)
}

type dataChunkHandler struct{}

func (h *dataChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDData
}

func (h *dataChunkHandler) Decode(ch Chunk) (DecodedChunk, error) {
	if !fitsInt(uint64(ch.Size)) {
		return nil, &OverflowError{ChunkID: ch.IDString(), Field: "size", Value: uint64(ch.Size)}
	}

	return &DataChunk{Size: int(ch.Size)}, nil
}
