// Package id provides centralized ID generation for the backend.
//
// Live WebSocket connections and chat turns get prefixed ULIDs
// (conn_*, turn_*): lexicographically sortable, unique without
// coordination, and readable in logs. Persisted records use database-side
// UUIDs instead; these IDs are for transient runtime objects only.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ConnID identifies a live WebSocket connection.
type ConnID string

// TurnID identifies one chat exchange (user message plus reply).
type TurnID string

const (
	connPrefix = "conn"
	turnPrefix = "turn"
)

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand entropy.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewConnID generates a new connection ID.
func NewConnID() ConnID {
	return ConnID(Default().GenerateWithPrefix(connPrefix))
}

// NewTurnID generates a new chat turn ID.
func NewTurnID() TurnID {
	return TurnID(Default().GenerateWithPrefix(turnPrefix))
}

func (id ConnID) String() string { return string(id) }
func (id TurnID) String() string { return string(id) }
