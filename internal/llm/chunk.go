package llm

// ChunkKind discriminates stream chunks. The transport decides how to
// serialize these; inside the process no string sniffing is needed.
type ChunkKind uint8

const (
	// ChunkStart opens a logical response.
	ChunkStart ChunkKind = iota
	// ChunkToken carries one verbatim content fragment.
	ChunkToken
	// ChunkError carries a user-readable failure description.
	ChunkError
	// ChunkEnd closes a logical response. Emitted exactly once per
	// stream, on every exit path.
	ChunkEnd
)

// String names the kind for logs.
func (k ChunkKind) String() string {
	switch k {
	case ChunkStart:
		return "start"
	case ChunkToken:
		return "token"
	case ChunkError:
		return "error"
	case ChunkEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Chunk is one unit of a streamed response. Payload is empty for Start
// and End.
type Chunk struct {
	Kind    ChunkKind
	Payload string
}

// Sink receives stream chunks in emission order. Returning an error
// stops the stream.
type Sink func(Chunk) error
