// File: internal/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinhagel/northstar-funding-sub000/internal/antispam"
	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/processor"
	"github.com/kevinhagel/northstar-funding-sub000/internal/searchadapters"
	"github.com/kevinhagel/northstar-funding-sub000/internal/store"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// --- fakes --- //

type fakeQueryGen struct {
	queriesPerEngine int
	err              map[taxonomy.SearchEngineType]error
}

func (f *fakeQueryGen) GenerateQueries(ctx context.Context, req models.QueryGenerationRequest) (models.QueryGenerationResponse, error) {
	if err, ok := f.err[req.SearchEngine]; ok {
		return models.QueryGenerationResponse{}, err
	}
	n := f.queriesPerEngine
	if n == 0 {
		n = 2
	}
	queries := make([]string, n)
	for i := range queries {
		queries[i] = "query"
	}
	return models.QueryGenerationResponse{Queries: queries, SearchEngine: req.SearchEngine}, nil
}

type fakeAdapter struct {
	engine  taxonomy.SearchEngineType
	results []models.SearchResult
	err     error
}

func (a *fakeAdapter) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.results, nil
}
func (a *fakeAdapter) EngineType() taxonomy.SearchEngineType { return a.engine }
func (a *fakeAdapter) IsAvailable(ctx context.Context) bool  { return a.err == nil }

type fakeRegistry struct {
	adapters map[taxonomy.SearchEngineType]searchadapters.Adapter
}

func (r *fakeRegistry) Get(engine taxonomy.SearchEngineType) (searchadapters.Adapter, error) {
	a, ok := r.adapters[engine]
	if !ok {
		return nil, errors.New("no adapter")
	}
	return a, nil
}

type passSpam struct{}

func (passSpam) Classify(models.SearchResult) antispam.Verdict { return antispam.Verdict{Spam: false} }

type neverBlacklisted struct{}

func (neverBlacklisted) IsBlacklisted(ctx context.Context, domainName string) (bool, error) {
	return false, nil
}

type fixedScore struct{ score decimal.Decimal }

func (f fixedScore) Score(models.SearchResult) decimal.Decimal { return f.score }

type fakeProcessorStore struct {
	mu         sync.Mutex
	domains    []models.Domain
	candidates []models.FundingSourceCandidate
}

func (s *fakeProcessorStore) SaveDomainAndCandidate(ctx context.Context, d models.Domain, c models.FundingSourceCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains = append(s.domains, d)
	s.candidates = append(s.candidates, c)
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.DiscoverySession
	stats    []models.SearchSessionStatistics
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*models.DiscoverySession)}
}

func (s *fakeSessionStore) CreateSession(ctx context.Context, exec store.Querier, session *models.DiscoverySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
	return nil
}

func (s *fakeSessionStore) UpdateSessionStatus(ctx context.Context, exec store.Querier, id uuid.UUID, status models.SessionStatus, completedAt *sql.NullTime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return errors.New("unknown session")
	}
	sess.Status = status
	if completedAt != nil && completedAt.Valid {
		t := completedAt.Time
		sess.CompletedAt = &t
	}
	return nil
}

func (s *fakeSessionStore) UpdateSessionCounters(ctx context.Context, exec store.Querier, id uuid.UUID, stats models.ProcessingStatistics) error {
	return nil
}

func (s *fakeSessionStore) RecordSearchSessionStatistics(ctx context.Context, exec store.Querier, stat *models.SearchSessionStatistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = append(s.stats, *stat)
	return nil
}

func validRequest() models.ExecuteSearchRequest {
	return models.ExecuteSearchRequest{
		Engines:            []taxonomy.SearchEngineType{taxonomy.EngineSearXNG},
		Categories:         []taxonomy.FundingSearchCategory{taxonomy.CategorySTEMEducation},
		Geographic:         taxonomy.ScopeBulgaria,
		MaxResultsPerQuery: 10,
	}
}

func newOrchestrator(qg QueryGenerator, reg AdapterRegistry, procStore *fakeProcessorStore, sessStore *fakeSessionStore) *Orchestrator {
	proc := processor.New(passSpam{}, neverBlacklisted{}, fixedScore{score: decimal.RequireFromString("0.80")}, procStore, logging.NewSimpleLogger())
	return New(DefaultConfig(), qg, reg, proc, sessStore, logging.NewSimpleLogger())
}

func TestExecuteValidation(t *testing.T) {
	o := newOrchestrator(&fakeQueryGen{}, &fakeRegistry{}, &fakeProcessorStore{}, newFakeSessionStore())
	_, err := o.Execute(context.Background(), models.ExecuteSearchRequest{})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestExecuteCompletedWhenAllAdaptersSucceed(t *testing.T) {
	reg := &fakeRegistry{adapters: map[taxonomy.SearchEngineType]searchadapters.Adapter{
		taxonomy.EngineSearXNG: &fakeAdapter{engine: taxonomy.EngineSearXNG, results: []models.SearchResult{
			{URL: "https://example.org/grant", Title: "Grant", Source: taxonomy.EngineSearXNG},
		}},
	}}
	procStore := &fakeProcessorStore{}
	sessStore := newFakeSessionStore()
	o := newOrchestrator(&fakeQueryGen{queriesPerEngine: 1}, reg, procStore, sessStore)

	session, err := o.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCompleted, session.Status)
	assert.Equal(t, 1, session.TotalQueriesGenerated)
	assert.NotNil(t, session.CompletedAt)
}

func TestExecutePartialWhenSomeAdaptersFail(t *testing.T) {
	reg := &fakeRegistry{adapters: map[taxonomy.SearchEngineType]searchadapters.Adapter{
		taxonomy.EngineSearXNG: &fakeAdapter{engine: taxonomy.EngineSearXNG, results: []models.SearchResult{
			{URL: "https://example.org/grant", Title: "Grant", Source: taxonomy.EngineSearXNG},
		}},
		taxonomy.EngineBrave: &fakeAdapter{engine: taxonomy.EngineBrave, err: errors.New("boom")},
	}}
	procStore := &fakeProcessorStore{}
	sessStore := newFakeSessionStore()
	req := validRequest()
	req.Engines = []taxonomy.SearchEngineType{taxonomy.EngineSearXNG, taxonomy.EngineBrave}
	o := newOrchestrator(&fakeQueryGen{queriesPerEngine: 1}, reg, procStore, sessStore)

	session, err := o.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusPartial, session.Status)
	assert.Equal(t, 1, session.TotalAdapterErrors)
}

func TestExecuteFailedWhenAllAdaptersFail(t *testing.T) {
	reg := &fakeRegistry{adapters: map[taxonomy.SearchEngineType]searchadapters.Adapter{
		taxonomy.EngineSearXNG: &fakeAdapter{engine: taxonomy.EngineSearXNG, err: errors.New("boom")},
	}}
	o := newOrchestrator(&fakeQueryGen{queriesPerEngine: 1}, reg, &fakeProcessorStore{}, newFakeSessionStore())

	session, err := o.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusFailed, session.Status)
}

func TestExecuteDeduplicatesAcrossEngines(t *testing.T) {
	sameResult := models.SearchResult{URL: "https://example.org/grant", Title: "Grant"}
	reg := &fakeRegistry{adapters: map[taxonomy.SearchEngineType]searchadapters.Adapter{
		taxonomy.EngineSearXNG: &fakeAdapter{engine: taxonomy.EngineSearXNG, results: []models.SearchResult{sameResult}},
		taxonomy.EngineBrave:   &fakeAdapter{engine: taxonomy.EngineBrave, results: []models.SearchResult{sameResult}},
	}}
	procStore := &fakeProcessorStore{}
	req := validRequest()
	req.Engines = []taxonomy.SearchEngineType{taxonomy.EngineSearXNG, taxonomy.EngineBrave}
	o := newOrchestrator(&fakeQueryGen{queriesPerEngine: 1}, reg, procStore, newFakeSessionStore())

	session, err := o.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, session.TotalDuplicatesSkipped)
	assert.Len(t, procStore.candidates, 1)
}

func TestExecuteZeroResultsIsCompletedNotPartial(t *testing.T) {
	reg := &fakeRegistry{adapters: map[taxonomy.SearchEngineType]searchadapters.Adapter{
		taxonomy.EngineSearXNG: &fakeAdapter{engine: taxonomy.EngineSearXNG, results: []models.SearchResult{}},
	}}
	sessStore := newFakeSessionStore()
	o := newOrchestrator(&fakeQueryGen{queriesPerEngine: 1}, reg, &fakeProcessorStore{}, sessStore)

	session, err := o.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCompleted, session.Status)
	assert.Equal(t, 0, session.TotalResultsFetched)

	require.Len(t, sessStore.stats, 1)
	assert.True(t, sessStore.stats[0].ZeroResult)
	assert.Equal(t, 0, sessStore.stats[0].ResultsCount)
	assert.Nil(t, sessStore.stats[0].Error)
}

func TestExecuteRecordsErrorOnStatisticsRowForFailingAdapter(t *testing.T) {
	reg := &fakeRegistry{adapters: map[taxonomy.SearchEngineType]searchadapters.Adapter{
		taxonomy.EngineSearXNG: &fakeAdapter{engine: taxonomy.EngineSearXNG, err: errors.New("boom")},
	}}
	sessStore := newFakeSessionStore()
	o := newOrchestrator(&fakeQueryGen{queriesPerEngine: 1}, reg, &fakeProcessorStore{}, sessStore)

	_, err := o.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, sessStore.stats, 1)
	require.NotNil(t, sessStore.stats[0].Error)
	assert.Contains(t, *sessStore.stats[0].Error, "boom")
}

type failingProcessorStore struct {
	fakeProcessorStore
}

func (s *failingProcessorStore) SaveDomainAndCandidate(ctx context.Context, d models.Domain, c models.FundingSourceCandidate) error {
	return errors.New("disk full")
}

func TestExecuteFailedWhenCandidateWritesKeepFailing(t *testing.T) {
	reg := &fakeRegistry{adapters: map[taxonomy.SearchEngineType]searchadapters.Adapter{
		taxonomy.EngineSearXNG: &fakeAdapter{engine: taxonomy.EngineSearXNG, results: []models.SearchResult{
			{URL: "https://example.org/grant", Title: "Grant", Source: taxonomy.EngineSearXNG},
		}},
	}}
	procStore := &failingProcessorStore{}
	sessStore := newFakeSessionStore()
	proc := processor.New(passSpam{}, neverBlacklisted{}, fixedScore{score: decimal.RequireFromString("0.80")}, procStore, logging.NewSimpleLogger())
	o := New(DefaultConfig(), &fakeQueryGen{queriesPerEngine: 1}, reg, proc, sessStore, logging.NewSimpleLogger())

	session, err := o.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusFailed, session.Status)
}
