package ws

import (
	"encoding/json"
	"fmt"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/llm"
)

// Event names on the wire.
const (
	EventJoin          = "join"
	EventChatMessage   = "chat message"
	EventChatResponse  = "chat response"
	EventNewRequest    = "newRequest"
	EventUpdateRequest = "updateRequest"
	EventRequestUpdate = "requestUpdate"
	EventMessageRead   = "messageRead"
	EventPing          = "ping"
	EventPong          = "pong"
	EventError         = "error"
)

// Envelope is the single frame shape both directions use.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// joinPayload is the inbound "join" body.
type joinPayload struct {
	Role       string `json:"role"`
	Department string `json:"department"`
}

// newRequestPayload is the inbound "newRequest" body.
type newRequestPayload struct {
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Room        string `json:"room"`
}

// updateRequestPayload is the inbound "updateRequest" body.
type updateRequestPayload struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	NurseID string `json:"nurseId"`
}

// messageReadPayload is shared by the inbound event and the outbound
// receipt.
type messageReadPayload struct {
	MessageID string `json:"messageId"`
}

// marshalEnvelope renders one outbound frame.
func marshalEnvelope(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", event, err)
	}
	return frame, nil
}

// Token stream sentinels, string-multiplexed with content on the
// "chat response" event.
const (
	sentinelStart = "[START]"
	sentinelEnd   = "[END]"
	errorPrefix   = "[ERROR] "
)

// encodeChunk maps a typed chunk onto its wire string. This is the only
// place the sentinel strings are produced.
func encodeChunk(c llm.Chunk) string {
	switch c.Kind {
	case llm.ChunkStart:
		return sentinelStart
	case llm.ChunkEnd:
		return sentinelEnd
	case llm.ChunkError:
		return errorPrefix + c.Payload
	default:
		return c.Payload
	}
}
