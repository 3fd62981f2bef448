package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/config"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/resilience"
)

// fakeStreamer replays canned tokens, optionally failing mid-stream.
type fakeStreamer struct {
	tokens  []string
	err     error
	lastReq *api.ChatRequest
}

func (f *fakeStreamer) Chat(_ context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error {
	f.lastReq = req
	for _, tok := range f.tokens {
		if err := fn(api.ChatResponse{Message: api.Message{Role: "assistant", Content: tok}}); err != nil {
			return err
		}
	}
	return f.err
}

type fakeProber struct {
	err   error
	calls int
}

func (f *fakeProber) Probe(context.Context) error {
	f.calls++
	return f.err
}

// recordingSink captures the chunk sequence for framing assertions.
type recordingSink struct {
	chunks []Chunk
}

func (r *recordingSink) sink(c Chunk) error {
	r.chunks = append(r.chunks, c)
	return nil
}

func (r *recordingSink) kinds() []ChunkKind {
	out := make([]ChunkKind, len(r.chunks))
	for i, c := range r.chunks {
		out[i] = c.Kind
	}
	return out
}

func newTestBridge(chat Streamer, probe Prober) *Bridge {
	cfg := config.Default().Ollama
	cfg.ProbeTimeout = 50 * time.Millisecond
	policy := resilience.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond}
	return NewBridge(chat, probe, NewToolset(domain.Departments), cfg, policy, nil)
}

func TestBridgeStreamFraming(t *testing.T) {
	chat := &fakeStreamer{tokens: []string{`{"response": `, `"hi"}`}}
	bridge := newTestBridge(chat, &fakeProber{})
	rec := &recordingSink{}

	err := bridge.Stream(context.Background(), "hello", NewSession("patient-1", ""), rec.sink)
	require.NoError(t, err)

	require.Equal(t, []ChunkKind{ChunkStart, ChunkToken, ChunkToken, ChunkEnd}, rec.kinds())
	assert.Equal(t, `{"response": `, rec.chunks[1].Payload)
	assert.Equal(t, `"hi"}`, rec.chunks[2].Payload)
}

func TestBridgeStreamRequestShape(t *testing.T) {
	chat := &fakeStreamer{tokens: []string{"ok"}}
	bridge := newTestBridge(chat, &fakeProber{})

	sess := NewSession("patient-1", "302B")
	err := bridge.Stream(context.Background(), "hello", sess, func(Chunk) error { return nil })
	require.NoError(t, err)

	req := chat.lastReq
	require.NotNil(t, req)
	assert.Equal(t, "nemotron-mini", req.Model)
	assert.Len(t, req.Tools, 2)
	require.NotNil(t, req.Stream)
	assert.True(t, *req.Stream)
	assert.Equal(t, sess.BuildRequest("hello"), req.Messages)
}

func TestBridgeRejectsBlankInput(t *testing.T) {
	bridge := newTestBridge(&fakeStreamer{}, &fakeProber{})
	rec := &recordingSink{}

	err := bridge.Stream(context.Background(), "   ", NewSession("patient-1", ""), rec.sink)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, rec.chunks)
}

func TestBridgeEmptyStreamEmitsFallback(t *testing.T) {
	bridge := newTestBridge(&fakeStreamer{}, &fakeProber{})
	rec := &recordingSink{}

	err := bridge.Stream(context.Background(), "hello", NewSession("patient-1", ""), rec.sink)
	require.NoError(t, err)

	require.Equal(t, []ChunkKind{ChunkStart, ChunkToken, ChunkEnd}, rec.kinds())
	assert.Equal(t, emptyReplyMessage, rec.chunks[1].Payload)
}

func TestBridgeProbeFailure(t *testing.T) {
	probe := &fakeProber{err: errors.New("connection refused")}
	chat := &fakeStreamer{tokens: []string{"never"}}
	bridge := newTestBridge(chat, probe)
	rec := &recordingSink{}

	err := bridge.Stream(context.Background(), "hello", NewSession("patient-1", ""), rec.sink)
	require.ErrorIs(t, err, ErrServiceUnavailable)

	// Framing survives the failure: Start, error notice, End. No model
	// call was attempted.
	require.Equal(t, []ChunkKind{ChunkStart, ChunkError, ChunkEnd}, rec.kinds())
	assert.Equal(t, serviceDownMessage, rec.chunks[1].Payload)
	assert.Nil(t, chat.lastReq)
}

func TestBridgeMidStreamFailure(t *testing.T) {
	streamErr := errors.New("unexpected EOF")
	chat := &fakeStreamer{tokens: []string{"partial"}, err: streamErr}
	bridge := newTestBridge(chat, &fakeProber{})
	rec := &recordingSink{}

	err := bridge.Stream(context.Background(), "hello", NewSession("patient-1", ""), rec.sink)
	require.ErrorIs(t, err, streamErr)

	require.Equal(t, []ChunkKind{ChunkStart, ChunkToken, ChunkError, ChunkEnd}, rec.kinds())
	assert.Equal(t, streamErrorMessage, rec.chunks[2].Payload)
}
