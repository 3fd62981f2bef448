// Package client reassembles "chat response" token streams into chat
// messages. It is the consuming side of the wire contract: plain tokens
// multiplexed with "[START]"/"[END]" sentinels and "[ERROR] "-prefixed
// failures on one event.
package client

import (
	"strings"
	"sync"
	"time"
)

// Token stream sentinels as they appear on the wire.
const (
	sentinelStart = "[START]"
	sentinelEnd   = "[END]"
	errorPrefix   = "[ERROR] "
)

// Message is one finalized chat bubble.
type Message struct {
	Role string
	Text string
	// Err marks a bubble carrying an error notice instead of a reply.
	Err bool
}

// DefaultIdleTimeout force-finalizes a pending bubble when the stream
// goes quiet without an end sentinel, so a dropped connection does not
// leave the UI typing forever.
const DefaultIdleTimeout = 30 * time.Second

// Reassembler folds a token sequence back into messages. One instance
// serves one logical stream channel; all methods are safe for use from
// the transport goroutine plus a timer goroutine.
type Reassembler struct {
	mu      sync.Mutex
	pending strings.Builder
	open    bool
	isErr   bool
	last    time.Time

	idle      time.Duration
	now       func() time.Time
	onMessage func(Message)
	messages  []Message
}

// Option configures a Reassembler.
type Option func(*Reassembler)

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Reassembler) { r.idle = d }
}

// WithOnMessage delivers each finalized message to fn instead of
// accumulating it.
func WithOnMessage(fn func(Message)) Option {
	return func(r *Reassembler) { r.onMessage = fn }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Reassembler) { r.now = now }
}

// NewReassembler creates a reassembler with no open bubble.
func NewReassembler(opts ...Option) *Reassembler {
	r := &Reassembler{
		idle: DefaultIdleTimeout,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Feed consumes one token from the stream.
//
// A start sentinel opens a fresh bubble, implicitly finalizing a
// dangling one whose end sentinel never arrived. An ordinary token
// appends to the open bubble, opening one if the token arrived stray.
// An end sentinel finalizes a non-empty bubble and discards an empty
// one.
func (r *Reassembler) Feed(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = r.now()

	switch {
	case token == sentinelStart:
		r.finalize()
		r.open = true
	case token == sentinelEnd:
		r.finalize()
	case strings.HasPrefix(token, errorPrefix):
		if !r.open {
			r.open = true
		}
		r.isErr = true
		r.pending.WriteString(strings.TrimPrefix(token, errorPrefix))
	default:
		if !r.open {
			r.open = true
		}
		r.pending.WriteString(token)
	}
}

// FlushIdle finalizes a pending bubble that has seen no token for the
// idle timeout. Callers run it on a ticker.
func (r *Reassembler) FlushIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open && r.now().Sub(r.last) >= r.idle {
		r.finalize()
	}
}

// Messages returns the finalized messages accumulated so far. Empty
// when WithOnMessage diverts them.
func (r *Reassembler) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// finalize closes the pending bubble. Empty bubbles vanish. Callers
// hold the lock.
func (r *Reassembler) finalize() {
	defer func() {
		r.pending.Reset()
		r.open = false
		r.isErr = false
	}()

	if !r.open || r.pending.Len() == 0 {
		return
	}
	msg := Message{Role: "assistant", Text: r.pending.String(), Err: r.isErr}
	if r.onMessage != nil {
		r.onMessage(msg)
		return
	}
	r.messages = append(r.messages, msg)
}
