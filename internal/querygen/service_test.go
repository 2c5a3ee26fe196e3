// File: internal/querygen/service_test.go
package querygen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeStore struct {
	mu    sync.Mutex
	saved []models.SearchQuery
}

func (f *fakeStore) SaveSearchQuery(ctx context.Context, q models.SearchQuery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, q)
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func validRequest() models.QueryGenerationRequest {
	return models.QueryGenerationRequest{
		SearchEngine: taxonomy.EngineSearXNG,
		Categories:   []taxonomy.FundingSearchCategory{taxonomy.CategorySTEMEducation},
		Geographic:   taxonomy.ScopeBulgaria,
		MaxQueries:   5,
		SessionID:    "00000000-0000-0000-0000-000000000001",
	}
}

func TestGenerateQueriesValidation(t *testing.T) {
	svc := New(DefaultConfig(), &fakeLLM{}, &fakeStore{}, logging.NewSimpleLogger())

	_, err := svc.GenerateQueries(context.Background(), models.QueryGenerationRequest{})
	require.ErrorIs(t, err, ErrInvalidRequest)

	req := validRequest()
	req.MaxQueries = 0
	_, err = svc.GenerateQueries(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidRequest)

	req = validRequest()
	req.MaxQueries = 51
	_, err = svc.GenerateQueries(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateQueriesParsesLLMOutput(t *testing.T) {
	llm := &fakeLLM{response: "1. stem education grants bulgaria\n2. early childhood funding bulgaria\n"}
	svc := New(DefaultConfig(), llm, &fakeStore{}, logging.NewSimpleLogger())

	resp, err := svc.GenerateQueries(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, resp.FromCache)
	assert.Len(t, resp.Queries, 2)
	assert.Equal(t, "stem education grants bulgaria", resp.Queries[0])
}

func TestGenerateQueriesCacheHit(t *testing.T) {
	llm := &fakeLLM{response: "stem education grants bulgaria"}
	svc := New(DefaultConfig(), llm, &fakeStore{}, logging.NewSimpleLogger())

	req := validRequest()
	_, err := svc.GenerateQueries(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)

	start := time.Now()
	resp, err := svc.GenerateQueries(context.Background(), req)
	require.NoError(t, err)
	elapsed := time.Since(start)
	assert.True(t, resp.FromCache)
	assert.Equal(t, 1, llm.calls, "second call must be served from cache, not re-invoke the LLM")
	assert.Less(t, elapsed, 50*time.Millisecond)
}

func TestGenerateQueriesFallbackOnLlmUnavailable(t *testing.T) {
	llm := &fakeLLM{err: errors.New("boom")}
	svc := New(DefaultConfig(), llm, &fakeStore{}, logging.NewSimpleLogger())

	resp, err := svc.GenerateQueries(context.Background(), validRequest())
	require.NoError(t, err, "LlmUnavailable must never propagate to the caller")
	assert.NotEmpty(t, resp.Queries)
}

func TestGenerateQueriesPersistsAsynchronously(t *testing.T) {
	llm := &fakeLLM{response: "stem education grants bulgaria\nearly childhood funding bulgaria"}
	store := &fakeStore{}
	svc := New(DefaultConfig(), llm, store, logging.NewSimpleLogger())

	_, err := svc.GenerateQueries(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.count() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestCacheKeyStableForEquivalentRequests(t *testing.T) {
	req1 := validRequest()
	req2 := validRequest()
	req2.Categories = []taxonomy.FundingSearchCategory{taxonomy.CategorySTEMEducation}
	assert.Equal(t, CacheKey(req1), CacheKey(req2))
}
