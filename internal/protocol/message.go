package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the outer unit received over the stream connection.
// Data is left raw because its shape depends on Type.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Server → Client envelope types.
const (
	TypeStatus       = "status"
	TypeClaudeStream = "claude_stream"
	TypeError        = "error"
)

// Stream phases carried inside claude_stream envelopes. A response is
// framed as start → (partial)* → (complete | error), though the server
// does not guarantee that ordering on the wire.
const (
	PhaseStart    = "start"
	PhasePartial  = "partial"
	PhaseComplete = "complete"
	PhaseError    = "error"
)

// StatusPayload is the data of a status envelope.
type StatusPayload struct {
	Status string `json:"status"`
}

// ErrorPayload is the data of an error envelope.
type ErrorPayload struct {
	Error string `json:"error"`
}

// StreamPayload is the data of a claude_stream envelope. Content is
// present for partial and error phases.
type StreamPayload struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// SubscribeMessage is the first client → server frame after connecting,
// binding the connection to one session.
type SubscribeMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

// NewSubscribe creates the subscribe handshake message for a session.
func NewSubscribe(sessionID string) SubscribeMessage {
	return SubscribeMessage{
		Type:      "subscribe",
		SessionID: sessionID,
	}
}

// ParseEnvelope parses a raw frame into an Envelope. It rejects frames
// that are not JSON objects or that lack a type tag; unknown type
// values are accepted and left to the caller to classify.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("missing 'type' field")
	}
	return &env, nil
}
