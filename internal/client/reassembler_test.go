package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(r *Reassembler, tokens ...string) {
	for _, tok := range tokens {
		r.Feed(tok)
	}
}

func TestReassemblerBasicStream(t *testing.T) {
	r := NewReassembler()
	feed(r, "[START]", "Hel", "lo", "[END]")

	messages := r.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, Message{Role: "assistant", Text: "Hello"}, messages[0])
}

func TestReassemblerEmptyStream(t *testing.T) {
	r := NewReassembler()
	feed(r, "[START]", "[END]")
	assert.Empty(t, r.Messages())
}

func TestReassemblerStrayTokenOpensBubble(t *testing.T) {
	r := NewReassembler()
	feed(r, "orphan", "[END]")

	messages := r.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "orphan", messages[0].Text)
}

func TestReassemblerNewStartClosesDanglingBubble(t *testing.T) {
	r := NewReassembler()
	feed(r, "[START]", "first reply", "[START]", "second", "[END]")

	messages := r.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "first reply", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)
}

func TestReassemblerErrorToken(t *testing.T) {
	r := NewReassembler()
	feed(r, "[START]", "[ERROR] The assistant is currently unavailable.", "[END]")

	messages := r.Messages()
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Err)
	assert.Equal(t, "The assistant is currently unavailable.", messages[0].Text)
}

func TestReassemblerIdleFlush(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	r := NewReassembler(WithIdleTimeout(5*time.Second), WithClock(clock))

	feed(r, "[START]", "half a rep")

	// Still within the window: nothing finalizes.
	r.FlushIdle()
	assert.Empty(t, r.Messages())

	now = now.Add(6 * time.Second)
	r.FlushIdle()

	messages := r.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "half a rep", messages[0].Text)
}

func TestReassemblerCallbackDelivery(t *testing.T) {
	var got []Message
	r := NewReassembler(WithOnMessage(func(m Message) { got = append(got, m) }))

	feed(r, "[START]", "Hi", "[END]")
	require.Len(t, got, 1)
	assert.Equal(t, "Hi", got[0].Text)
	assert.Empty(t, r.Messages())
}
