package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"type":"status","data":{"status":"running"}}`))
	require.NoError(t, err)
	assert.Equal(t, TypeStatus, env.Type)

	var p StatusPayload
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "running", p.Status)
}

func TestParseEnvelope_UnknownTypeAccepted(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"type":"bogus","data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "bogus", env.Type)
}

func TestParseEnvelope_InvalidJSON(t *testing.T) {
	_, err := ParseEnvelope([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParseEnvelope_MissingType(t *testing.T) {
	_, err := ParseEnvelope([]byte(`{"data":{"status":"running"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing 'type'")
}

func TestNewSubscribe_WireFormat(t *testing.T) {
	data, err := json.Marshal(NewSubscribe("sess-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"subscribe","session_id":"sess-1"}`, string(data))
}

func TestStreamPayload_ContentOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(StreamPayload{Type: PhaseComplete})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"complete"}`, string(data))
}
