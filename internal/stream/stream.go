// Package stream implements the WebSocket subscription to a Claudia
// session: one connection bound to one session, an ordered receive
// loop, and a dispatcher that normalizes the two-level wire protocol
// into session events.
package stream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"claudiactl/internal/config"
	"claudiactl/internal/logging"
	"claudiactl/internal/protocol"
)

const (
	eventBufferSize = 64
	writeDeadline   = 10 * time.Second
	dialInterval    = 500 * time.Millisecond
)

// Stream owns a single WebSocket connection subscribed to one session.
// Events arrive on Events() in receipt order; the channel closes when
// the subscription ends for any reason, with the socket closed by then.
type Stream struct {
	conn   *websocket.Conn
	events chan Event
	log    zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Subscribe dials the server's stream endpoint, sends the subscribe
// handshake for sessionID, and starts the receive loop. The dial is
// retried with exponential backoff up to cfg.DialRetries extra
// attempts; everything after the handshake is delivered as events.
func Subscribe(ctx context.Context, cfg config.Config, sessionID string) (*Stream, error) {
	wsURL, err := cfg.WebSocketURL()
	if err != nil {
		return nil, err
	}

	log := logging.With().
		Str("session_id", sessionID).
		Str("stream_id", uuid.NewString()).
		Logger()

	conn, err := dial(ctx, wsURL, cfg.DialRetries)
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", wsURL, err)
	}
	log.Debug().Str("url", wsURL).Msg("stream connected")

	if err := conn.WriteJSON(protocol.NewSubscribe(sessionID)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe handshake: %w", err)
	}

	s := &Stream{
		conn:   conn,
		events: make(chan Event, eventBufferSize),
		log:    log,
	}
	go s.readLoop(ctx)
	return s, nil
}

// dial establishes the WebSocket connection, retrying transport
// failures a bounded number of times. retries of zero means a single
// attempt.
func dial(ctx context.Context, wsURL string, retries uint64) (*websocket.Conn, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = dialInterval

	var conn *websocket.Conn
	err := backoff.Retry(func() error {
		c, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx))
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Events returns the session event channel. It is closed when the
// subscription ends: terminal event delivered, connection closed by
// either side, or context cancelled.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Close closes the underlying connection. It is safe to call from any
// goroutine and more than once; the receive loop also closes the
// connection on every exit path, so callers deferring Close never leak
// the socket.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeDeadline),
		)
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// readLoop is the sole reader of the connection. Frames are processed
// strictly in arrival order; a frame that fails to parse or dispatch is
// logged and skipped without ending the subscription.
func (s *Stream) readLoop(ctx context.Context) {
	defer close(s.events)
	defer s.Close()

	// Unblock the pending read when the caller's context ends.
	stop := context.AfterFunc(ctx, func() {
		s.log.Debug().Msg("context cancelled, closing stream")
		s.Close()
	})
	defer stop()

	dispatcher := NewDispatcher(s.log)

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				s.log.Warn().Err(err).Msg("websocket read error")
			} else {
				s.log.Debug().Msg("stream closed")
			}
			return
		}

		evt, err := dispatcher.Dispatch(raw)
		if err != nil {
			s.log.Warn().Err(err).Msg("dropping malformed stream frame")
			continue
		}

		select {
		case s.events <- evt:
		case <-ctx.Done():
			return
		}

		if evt.Terminal() {
			s.log.Debug().Str("kind", string(evt.Kind)).Msg("terminal event delivered")
			return
		}
	}
}
