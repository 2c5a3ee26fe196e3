// File: internal/searchadapters/tavily_test.go
package searchadapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilyAdapterSendsBearerAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tavily-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"url":"https://example.org/x","title":"t","content":"c"}]}`))
	}))
	defer server.Close()

	adapter := NewTavilyAdapter(TavilyConfig{BaseURL: server.URL, APIKey: "tavily-key", Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "a long natural language query about funding", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.org/x", results[0].URL)
}

func TestPerplexicaAdapterOmitsAuthWhenNoKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"url":"https://example.org/y","title":"t","content":"c"}]}`))
	}))
	defer server.Close()

	adapter := NewPerplexicaAdapter(PerplexicaConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "a long natural language query about funding", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
}
