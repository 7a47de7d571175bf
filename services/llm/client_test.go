package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, captured *openai.ChatCompletionRequest, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	client, err := NewClient(Config{APIKey: "  "})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSimpleCompletionSendsOptions(t *testing.T) {
	var captured openai.ChatCompletionRequest
	server := newTestServer(t, &captured, http.StatusOK, `{
		"id": "cmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  a short summary \n"}, "finish_reason": "stop"}]
	}`)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "test-model", TopP: 0.9})
	require.NoError(t, err)

	out, err := client.SimpleCompletion(context.Background(), "system prompt", "user prompt",
		WithMaxTokens(500), WithTemperature(0.1), WithResponseFormatJSON())
	require.NoError(t, err)

	assert.Equal(t, "a short summary", out)
	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, 500, captured.MaxTokens)
	assert.InDelta(t, 0.1, captured.Temperature, 0.0001)
	assert.InDelta(t, 0.9, captured.TopP, 0.0001)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, captured.Messages[0].Role)
	assert.Equal(t, "user prompt", captured.Messages[1].Content)
}

func TestSimpleCompletionPropagatesAPIError(t *testing.T) {
	server := newTestServer(t, nil, http.StatusInternalServerError,
		`{"error": {"message": "upstream exploded", "type": "server_error"}}`)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.SimpleCompletion(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestSimpleCompletionNoChoices(t *testing.T) {
	server := newTestServer(t, nil, http.StatusOK, `{"id": "cmpl-2", "choices": []}`)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.SimpleCompletion(context.Background(), "s", "u")
	assert.EqualError(t, err, "no choices returned from completion API")
}

func TestSimpleCompletionLeavesSamplingToCaller(t *testing.T) {
	var captured openai.ChatCompletionRequest
	server := newTestServer(t, &captured, http.StatusOK, `{
		"id": "cmpl-3",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}}]
	}`)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, TopP: 0.5})
	require.NoError(t, err)

	_, err = client.SimpleCompletion(context.Background(), "s", "u")
	require.NoError(t, err)

	assert.Zero(t, captured.MaxTokens)
	assert.Zero(t, captured.Temperature)
	assert.InDelta(t, 0.5, captured.TopP, 0.0001)
	assert.Nil(t, captured.ResponseFormat)
}
