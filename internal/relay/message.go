package relay

import "encoding/json"

// Client events
const (
	EventGetDocument  = "get-document"
	EventSendChanges  = "send-changes"
	EventSaveDocument = "save-document"
)

// Server events
const (
	EventLoadDocument   = "load-document"
	EventReceiveChanges = "receive-changes"
)

// Message is the wire envelope for realtime events. Content carries full
// document payloads, Delta carries incremental edits; both are opaque to
// the server.
type Message struct {
	Event      string          `json:"event"`
	DocumentID string          `json:"documentId,omitempty"`
	Content    string          `json:"content,omitempty"`
	Delta      json.RawMessage `json:"delta,omitempty"`
}

// Conn is a transport-level connection handle. Send must not block on the
// network; implementations queue writes and report an error when the queue
// is gone or full.
type Conn interface {
	ID() string
	Send(data []byte) error
	Close() error
}
