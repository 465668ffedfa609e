package stream

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"claudiactl/internal/protocol"
)

// Dispatcher performs the two-level classification of incoming frames:
// envelope type first, then stream phase for claude_stream envelopes.
// Unknown tags at either level degrade to diagnostic events instead of
// failing the subscription.
type Dispatcher struct {
	log zerolog.Logger

	// started tracks whether a start phase was seen, only to flag
	// out-of-order phases in the log. Delivery is never suppressed.
	started bool
}

// NewDispatcher creates a Dispatcher logging through the given logger.
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Dispatch classifies one raw frame into a session event. It returns an
// error only for frames that cannot be parsed as envelopes; those are
// the caller's to log and discard.
func (d *Dispatcher) Dispatch(raw []byte) (Event, error) {
	env, err := protocol.ParseEnvelope(raw)
	if err != nil {
		return Event{}, err
	}

	switch env.Type {
	case protocol.TypeStatus:
		var p protocol.StatusPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			d.log.Warn().Err(err).Msg("undecodable status payload")
			return Event{Kind: KindUnknown, Raw: json.RawMessage(raw)}, nil
		}
		return Event{Kind: KindStatus, Status: p.Status}, nil

	case protocol.TypeClaudeStream:
		return d.dispatchStream(env.Data), nil

	case protocol.TypeError:
		var p protocol.ErrorPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			d.log.Warn().Err(err).Msg("undecodable error payload")
			return Event{Kind: KindUnknown, Raw: json.RawMessage(raw)}, nil
		}
		return Event{Kind: KindFailed, Detail: p.Error}, nil

	default:
		d.log.Debug().Str("type", env.Type).Msg("unrecognized envelope type")
		return Event{Kind: KindUnknown, Raw: json.RawMessage(raw)}, nil
	}
}

// dispatchStream classifies the inner stream phase of a claude_stream
// envelope.
func (d *Dispatcher) dispatchStream(data json.RawMessage) Event {
	var p protocol.StreamPayload
	if err := json.Unmarshal(data, &p); err != nil {
		d.log.Warn().Err(err).Msg("undecodable claude_stream payload")
		return Event{Kind: KindUnknown, Raw: data}
	}

	switch p.Type {
	case protocol.PhaseStart:
		d.started = true
		return Event{Kind: KindStarted}

	case protocol.PhasePartial:
		if !d.started {
			d.log.Debug().Msg("partial phase before start")
		}
		return Event{Kind: KindContent, Content: p.Content}

	case protocol.PhaseComplete:
		return Event{Kind: KindCompleted}

	case protocol.PhaseError:
		return Event{Kind: KindFailed, Detail: p.Content}

	default:
		d.log.Debug().Str("phase", p.Type).Msg("unrecognized stream phase")
		if p.Content != "" {
			return Event{Kind: KindContent, Content: p.Content}
		}
		return Event{Kind: KindUnknown, Raw: data}
	}
}
