package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudiactl/internal/config"
)

func newTestClient(srv *httptest.Server) *Client {
	return New(config.Config{
		ServerURL:   srv.URL,
		HTTPTimeout: 5 * time.Second,
	})
}

func TestStartSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/claude/execute", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "/tmp/project", req["project_path"])
		assert.Equal(t, "do something", req["prompt"])
		assert.Equal(t, "claude-3-5-sonnet-20241022", req["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"session_id":"S"}}`))
	}))
	defer srv.Close()

	id, err := newTestClient(srv).StartSession(context.Background(), "/tmp/project", "do something", "claude-3-5-sonnet-20241022")
	require.NoError(t, err)
	assert.Equal(t, "S", id)
}

func TestStartSession_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"project path does not exist"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).StartSession(context.Background(), "/missing", "p", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project path does not exist")

	var reqErr *RemoteRequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
}

func TestStartSession_UnparseableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).StartSession(context.Background(), "/p", "p", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed with status 500")
}

func TestStartSession_MissingSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).StartSession(context.Background(), "/p", "p", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no session_id")
}

func TestListRunningSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/claude/sessions/running", r.URL.Path)
		w.Write([]byte(`{"data":[{"session_id":"a","project_path":"/p1"},{"session_id":"b","project_path":"/p2"}]}`))
	}))
	defer srv.Close()

	sessions, err := newTestClient(srv).ListRunningSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].SessionID)
	assert.Equal(t, "/p2", sessions[1].ProjectPath)
}

func TestListRunningSessions_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"E"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListRunningSessions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E")
}

func TestCancelSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/claude/cancel/sess-1", r.URL.Path)
		w.Write([]byte(`{"data":{"cancelled":true}}`))
	}))
	defer srv.Close()

	cancelled, err := newTestClient(srv).CancelSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, cancelled)
}

func TestCancelSession_UnknownID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"session not found"}`))
	}))
	defer srv.Close()

	cancelled, err := newTestClient(srv).CancelSession(context.Background(), "unknown-id")
	require.Error(t, err)
	assert.False(t, cancelled)

	var reqErr *RemoteRequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Message, "session not found")
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok","uptime":42}`))
	}))
	defer srv.Close()

	health, err := newTestClient(srv).CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health["status"])
}

func TestCheckHealth_GenericMessageOnFailure(t *testing.T) {
	// Unlike the other calls, health failures never surface the server's
	// error body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"E"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CheckHealth(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "E")
	assert.Contains(t, err.Error(), "server is not healthy")
}

func TestTransportFailureIsNotRemoteRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuse connections.

	_, err := newTestClient(srv).StartSession(context.Background(), "/p", "p", "m")
	require.Error(t, err)

	var reqErr *RemoteRequestError
	assert.False(t, errors.As(err, &reqErr))
}
