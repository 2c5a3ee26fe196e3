// File: internal/searchadapters/brave_test.go
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

func TestBraveAdapterSendsAuthHeaderAndNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("X-Subscription-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web":{"results":[{"url":"https://grants.gov/x","title":"Grant","description":"d"}]}}`))
	}))
	defer server.Close()

	adapter := NewBraveAdapter(BraveConfig{BaseURL: server.URL, APIKey: "secret-key", Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "grants", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://grants.gov/x", results[0].URL)
}

func TestBraveAdapterSkipsNonAbsoluteURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web":{"results":[{"url":"/relative/path","title":"Bad","description":"d"}]}}`))
	}))
	defer server.Close()

	adapter := NewBraveAdapter(BraveConfig{BaseURL: server.URL, APIKey: "k", Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "grants", 10)
	require.NoError(t, err)
	assert.Len(t, results, 0)
}
