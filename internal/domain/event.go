package domain

// EventType discriminates request lifecycle notifications.
type EventType string

const (
	EventNew    EventType = "new"
	EventUpdate EventType = "update"
)

// Event is a transient request lifecycle notification pushed to
// department rooms. Events are never persisted.
type Event struct {
	Type    EventType `json:"type"`
	Request *Request  `json:"request"`
}
