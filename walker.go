package waveinfo

import "io"

// Walker tokenizes the sub-chunks of a container payload in order and
// dispatches them through a ChunkRegistry.
type Walker struct {
	rest     []byte
	registry *ChunkRegistry
	order    int
}

// NewWalker walks body, the container payload following its form or list
// type. A nil registry uses NewChunkRegistry.
func NewWalker(body []byte, registry *ChunkRegistry) *Walker {
	if registry == nil {
		registry = NewChunkRegistry()
	}

	return &Walker{rest: body, registry: registry}
}

// Next pops the next sub-chunk. It returns io.EOF once the body is exhausted.
func (w *Walker) Next() (Chunk, error) {
	if len(w.rest) == 0 {
		return Chunk{}, io.EOF
	}

	ch, err := PopChunk(&w.rest)
	if err != nil {
		// No resynchronization: the rest of the body is unusable.
		w.rest = nil
		return Chunk{}, err
	}

	w.order++

	return ch, nil
}

// Order is the 1-based index of the chunk last returned by Next.
func (w *Walker) Order() int {
	return w.order
}

// Remaining is the number of bytes not yet tokenized.
func (w *Walker) Remaining() int {
	return len(w.rest)
}

// Decode dispatches a chunk returned by Next to its decoder.
func (w *Walker) Decode(ch Chunk) (DecodedChunk, error) {
	return w.registry.Decode(ch)
}

// NextDecoded pops and decodes the next sub-chunk.
func (w *Walker) NextDecoded() (DecodedChunk, error) {
	ch, err := w.Next()
	if err != nil {
		return nil, err
	}

	return w.Decode(ch)
}
