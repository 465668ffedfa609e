// Package config resolves the client configuration once, at
// construction, instead of consulting the environment ad hoc.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultServerURL is used when neither an explicit URL nor the
	// environment override is supplied.
	DefaultServerURL = "http://localhost:3000"

	// EnvServerURL is the environment override for the server URL.
	EnvServerURL = "CLAUDIA_SERVER_URL"

	defaultHTTPTimeout = 30 * time.Second
	defaultDialRetries = 3
)

// Config holds the resolved client configuration.
type Config struct {
	// ServerURL is the control-plane base URL, without a trailing slash.
	ServerURL string

	// HTTPTimeout bounds each control-plane request.
	HTTPTimeout time.Duration

	// DialRetries is the number of additional WebSocket dial attempts
	// after the first fails. Zero disables retrying. Control-plane
	// calls are never retried.
	DialRetries uint64
}

// Resolve builds a Config. Precedence for the server URL: the explicit
// argument, then CLAUDIA_SERVER_URL, then DefaultServerURL.
func Resolve(explicit string) Config {
	serverURL := explicit
	if serverURL == "" {
		serverURL = os.Getenv(EnvServerURL)
	}
	if serverURL == "" {
		serverURL = DefaultServerURL
	}

	return Config{
		ServerURL:   strings.TrimRight(serverURL, "/"),
		HTTPTimeout: defaultHTTPTimeout,
		DialRetries: defaultDialRetries,
	}
}

// WebSocketURL derives the stream endpoint from the server URL by
// rewriting the scheme to its WebSocket equivalent and appending /ws.
func (c Config) WebSocketURL() (string, error) {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", c.ServerURL, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// Already a WebSocket URL.
	default:
		return "", fmt.Errorf("unsupported scheme %q in server URL", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
