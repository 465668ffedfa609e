// Package client implements the control-plane HTTP client for the
// Claudia server: discrete request/response calls to start, list, and
// cancel sessions and to check server health. Streaming lives in the
// stream package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"claudiactl/internal/config"
)

// Client issues control-plane requests against a Claudia server. It is
// stateless apart from the base URL and may be used concurrently with
// an active stream subscription. No call retries internally.
type Client struct {
	baseURL string
	http    *http.Client
}

// SessionSummary describes one running session as reported by the
// server.
type SessionSummary struct {
	SessionID   string `json:"session_id"`
	ProjectPath string `json:"project_path"`
	Prompt      string `json:"prompt,omitempty"`
	Model       string `json:"model,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
}

// New creates a Client from the resolved configuration.
func New(cfg config.Config) *Client {
	return &Client{
		baseURL: cfg.ServerURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type startSessionRequest struct {
	ProjectPath string `json:"project_path"`
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
}

// StartSession creates a new session on the server and returns its
// server-issued identifier.
func (c *Client) StartSession(ctx context.Context, projectPath, prompt, model string) (string, error) {
	body, err := json.Marshal(startSessionRequest{
		ProjectPath: projectPath,
		Prompt:      prompt,
		Model:       model,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/claude/execute", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.requestError("start session", resp)
	}

	var out struct {
		Data struct {
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode start session response: %w", err)
	}
	if out.Data.SessionID == "" {
		return "", fmt.Errorf("start session: server returned no session_id")
	}
	return out.Data.SessionID, nil
}

// ListRunningSessions returns the sessions the server currently reports
// as running.
func (c *Client) ListRunningSessions(ctx context.Context) ([]SessionSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/claude/sessions/running", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.requestError("list sessions", resp)
	}

	var out struct {
		Data []SessionSummary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode session list: %w", err)
	}
	return out.Data, nil
}

// CancelSession asks the server to cancel a session. A non-200 response
// is always an error, never a silent false.
func (c *Client) CancelSession(ctx context.Context, sessionID string) (bool, error) {
	endpoint := c.baseURL + "/api/claude/cancel/" + url.PathEscape(sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("cancel session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, c.requestError("cancel session", resp)
	}

	var out struct {
		Data struct {
			Cancelled bool `json:"cancelled"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode cancel response: %w", err)
	}
	return out.Data.Cancelled, nil
}

// CheckHealth queries the server health endpoint and returns its
// payload. The server guarantees no structured error body here, so any
// non-200 maps to a fixed message rather than a passthrough.
func (c *Client) CheckHealth(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/status/health", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteRequestError{
			Op:         "check health",
			StatusCode: resp.StatusCode,
			Message:    "server is not healthy",
		}
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return out, nil
}

// requestError builds a RemoteRequestError from a non-200 response,
// preferring the server's error field over the generic message.
func (c *Client) requestError(op string, resp *http.Response) error {
	msg := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	return &RemoteRequestError{Op: op, StatusCode: resp.StatusCode, Message: msg}
}
