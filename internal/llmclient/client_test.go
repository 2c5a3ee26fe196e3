// File: internal/llmclient/client_test.go
package llmclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		resp := chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "hello world"}}}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Timeout = 2 * time.Second
	client := New(cfg)

	out, err := client.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestGenerateNon2xxReturnsLlmUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	client := New(cfg)

	_, err := client.Generate(context.Background(), "say hello")
	require.ErrorIs(t, err, ErrLlmUnavailable)
}

func TestGenerateUnreachableReturnsLlmUnavailable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1"
	cfg.Timeout = 500 * time.Millisecond
	client := New(cfg)

	_, err := client.Generate(context.Background(), "say hello")
	require.ErrorIs(t, err, ErrLlmUnavailable)
}

func TestGenerateEmptyChoicesReturnsLlmUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse{Choices: nil})
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	client := New(cfg)

	_, err := client.Generate(context.Background(), "say hello")
	require.ErrorIs(t, err, ErrLlmUnavailable)
}

func TestClientForcesHTTP1Transport(t *testing.T) {
	cfg := DefaultConfig()
	client := New(cfg)
	transport, ok := client.httpClient.Transport.(*http.Transport)
	require.True(t, ok)
	assert.False(t, transport.ForceAttemptHTTP2)
	assert.NotNil(t, transport.TLSNextProto)
	assert.Empty(t, transport.TLSNextProto)
}
