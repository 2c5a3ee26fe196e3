// File: internal/searchadapters/serper_test.go
package searchadapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerperAdapterSendsJSONBodyAndAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "api-key", r.Header.Get("X-API-KEY"))
		body, _ := io.ReadAll(r.Body)
		var req serperRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "stem grants", req.Q)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[{"link":"https://example.org/x","title":"t","snippet":"s"}]}`))
	}))
	defer server.Close()

	adapter := NewSerperAdapter(SerperConfig{BaseURL: server.URL, APIKey: "api-key", Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "stem grants", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.org/x", results[0].URL)
}
