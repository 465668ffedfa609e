package stream

import "encoding/json"

// EventKind classifies normalized session events.
type EventKind string

const (
	// KindStatus is a session status update.
	KindStatus EventKind = "status"
	// KindStarted marks the beginning of a model response.
	KindStarted EventKind = "started"
	// KindContent carries incremental response text. Consumers render
	// these in receipt order, concatenated without separators.
	KindContent EventKind = "content"
	// KindCompleted marks a successful end of the response. Terminal.
	KindCompleted EventKind = "completed"
	// KindFailed is a server-reported error, from either an error
	// envelope or an error stream phase. Terminal.
	KindFailed EventKind = "failed"
	// KindUnknown is a diagnostic event for unrecognized envelopes or
	// payloads, carrying the raw data. Never fatal.
	KindUnknown EventKind = "unknown"
)

// Event is one normalized session event produced by the dispatcher.
type Event struct {
	Kind EventKind

	// Status is set for KindStatus.
	Status string
	// Content is set for KindContent.
	Content string
	// Detail is the error description for KindFailed.
	Detail string
	// Raw is the unclassified payload for KindUnknown.
	Raw json.RawMessage
}

// Terminal reports whether the event ends the subscription.
func (e Event) Terminal() bool {
	return e.Kind == KindCompleted || e.Kind == KindFailed
}
