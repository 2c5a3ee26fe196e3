// File: internal/searchadapters/searxng_test.go
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

func TestSearXNGAdapterNormalizesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"url":"https://ec.europa.eu/funding","title":"  STEM Grants  ","content":"desc"}]}`))
	}))
	defer server.Close()

	adapter := NewSearXNGAdapter(SearXNGConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "stem education grants", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://ec.europa.eu/funding", results[0].URL)
	assert.Equal(t, "STEM Grants", results[0].Title)
	assert.Equal(t, adapter.EngineType(), results[0].Source)
}

func TestSearXNGAdapterZeroResultsIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	adapter := NewSearXNGAdapter(SearXNGConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "query", 10)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Len(t, results, 0)
}

func TestSearXNGAdapterServerErrorReturnsAdapterError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewSearXNGAdapter(SearXNGConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "query", 10)
	require.Error(t, err)
	assert.Nil(t, results)
	require.ErrorIs(t, err, ErrSearchAdapter)
}

func TestSearXNGAdapterRejectsInvalidInputs(t *testing.T) {
	adapter := NewSearXNGAdapter(SearXNGConfig{BaseURL: "http://example.invalid", Timeout: time.Second})
	_, err := adapter.Search(context.Background(), "", 10)
	require.Error(t, err)

	_, err = adapter.Search(context.Background(), "query", 0)
	require.Error(t, err)

	_, err = adapter.Search(context.Background(), "query", 101)
	require.Error(t, err)
}

func TestSearXNGAdapterCapsAtMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"url":"https://a.example.com","title":"a","content":"a"},
			{"url":"https://b.example.com","title":"b","content":"b"},
			{"url":"https://c.example.com","title":"c","content":"c"}
		]}`))
	}))
	defer server.Close()

	adapter := NewSearXNGAdapter(SearXNGConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	results, err := adapter.Search(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
