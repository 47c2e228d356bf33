package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"flightmail-service/pkg/flightparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleter(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantType    interface{}
		wantErr     bool
		unavailable bool
	}{
		{name: "disabled", cfg: Config{Provider: "disabled", APIKey: "k"}, unavailable: true},
		{name: "missing key", cfg: Config{Provider: "anthropic"}, unavailable: true},
		{name: "anthropic", cfg: Config{Provider: "anthropic", APIKey: "k"}, wantType: &anthropicClient{}},
		{name: "openai", cfg: Config{Provider: "openai", APIKey: "k"}, wantType: &openAIClient{}},
		{name: "unknown", cfg: Config{Provider: "mystery", APIKey: "k"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompleter(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.unavailable {
				_, err := c.Complete(context.Background(), "sys", "prompt")
				assert.ErrorIs(t, err, flightparser.ErrBackendUnavailable)
				return
			}
			assert.IsType(t, tt.wantType, c)
		})
	}
}

func TestAnthropicClient_Complete(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("Anthropic-Version"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"content":[{"type":"text","text":"{\"origin\":"},{"type":"text","text":"\"SEA\"}"}]}`))
	}))
	defer srv.Close()

	c := newAnthropicClient(Config{APIKey: "secret", BaseURL: srv.URL + "/", RequestsPerSecond: 100})
	reply, err := c.Complete(context.Background(), "system prompt", "user prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"origin":"SEA"}`, reply)
	assert.Equal(t, defaultAnthropicModel, got.Model)
	assert.Equal(t, "system prompt", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user prompt", got.Messages[0].Content)
}

func TestAnthropicClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`, wantMsg: "invalid x-api-key"},
		{name: "server error", status: http.StatusBadGateway, body: `upstream`, wantMsg: "API error (502): upstream"},
		{name: "empty content", status: http.StatusOK, body: `{"content":[]}`, wantMsg: "empty response"},
		{name: "bad json", status: http.StatusOK, body: `not json`, wantMsg: "failed to parse response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newAnthropicClient(Config{APIKey: "k", BaseURL: srv.URL, RequestsPerSecond: 100})
			_, err := c.Complete(context.Background(), "s", "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"origin\":\"JFK\"}"}}]}`))
	}))
	defer srv.Close()

	c := newOpenAIClient(Config{APIKey: "secret", BaseURL: srv.URL, Model: "gpt-test", RequestsPerSecond: 100})
	reply, err := c.Complete(context.Background(), "system prompt", "user prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"origin":"JFK"}`, reply)
	assert.Equal(t, "gpt-test", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user prompt", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := newOpenAIClient(Config{APIKey: "k", BaseURL: srv.URL, RequestsPerSecond: 100})
	_, err := c.Complete(context.Background(), "s", "p")
	assert.ErrorContains(t, err, "empty response")
}

func TestComplete_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newOpenAIClient(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	_, err := c.Complete(ctx, "s", "p")
	assert.ErrorIs(t, err, context.Canceled)
}
