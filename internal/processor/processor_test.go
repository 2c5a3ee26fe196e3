// File: internal/processor/processor_test.go
package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kevinhagel/northstar-funding-sub000/internal/antispam"
	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSpam struct {
	spamURLs map[string]bool
}

func (s stubSpam) Classify(result models.SearchResult) antispam.Verdict {
	if s.spamURLs[result.URL] {
		return antispam.Verdict{Spam: true, Reason: "stub"}
	}
	return antispam.OK
}

type stubBlacklist struct {
	blacklisted map[string]bool
	err         error
}

func (s stubBlacklist) IsBlacklisted(ctx context.Context, domainName string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.blacklisted[domainName], nil
}

type stubScorer struct {
	scores map[string]decimal.Decimal
	def    decimal.Decimal
}

func (s stubScorer) Score(result models.SearchResult) decimal.Decimal {
	if v, ok := s.scores[result.URL]; ok {
		return v
	}
	return s.def
}

type fakeStore struct {
	domains    []models.Domain
	candidates []models.FundingSourceCandidate
}

func (f *fakeStore) SaveDomainAndCandidate(ctx context.Context, d models.Domain, c models.FundingSourceCandidate) error {
	f.domains = append(f.domains, d)
	f.candidates = append(f.candidates, c)
	return nil
}

func result(u string) models.SearchResult {
	return models.SearchResult{
		URL:          u,
		Title:        "Bulgarian STEM Education Foundation Grant",
		Description:  "Funding for science education programmes",
		Source:       taxonomy.EngineSearXNG,
		DiscoveredAt: time.Now().UTC(),
	}
}

func TestProcessInvalidURLSkipped(t *testing.T) {
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{}, stubScorer{def: decimal.NewFromFloat(0.9)}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{result("not-a-url")}, pctx)

	assert.Equal(t, 1, stats.InvalidURLsSkipped)
	assert.Equal(t, 1, stats.Total())
	assert.Empty(t, store.candidates)
}

func TestProcessSpamSkipped(t *testing.T) {
	r := result("https://example.org/a")
	store := &fakeStore{}
	p := New(stubSpam{spamURLs: map[string]bool{r.URL: true}}, stubBlacklist{}, stubScorer{def: decimal.NewFromFloat(0.9)}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	assert.Equal(t, 1, stats.SpamSkipped)
	assert.Empty(t, store.candidates)
}

func TestProcessDuplicateSkipped(t *testing.T) {
	r1 := result("https://example.org/a")
	r2 := result("https://example.org/b")
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{}, stubScorer{def: decimal.NewFromFloat(0.9)}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{r1, r2}, pctx)

	assert.Equal(t, 1, stats.DuplicatesSkipped)
	assert.Equal(t, 1, stats.HighConfidenceCreated)
	assert.Len(t, store.candidates, 1)
}

func TestProcessBlacklistSkipped(t *testing.T) {
	r := result("https://blacklisted.example/a")
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{blacklisted: map[string]bool{"blacklisted.example": true}}, stubScorer{def: decimal.NewFromFloat(0.9)}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	assert.Equal(t, 1, stats.BlacklistSkipped)
	assert.Empty(t, store.candidates)
}

func TestProcessBlacklistOutageCountsAsSkippedAndLogs(t *testing.T) {
	r := result("https://example.org/a")
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{err: errors.New("unreachable")}, stubScorer{def: decimal.NewFromFloat(0.9)}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	assert.Equal(t, 1, stats.BlacklistSkipped)
	assert.Equal(t, 1, stats.Total())
}

func TestProcessHighConfidenceCreatesPendingCrawlCandidate(t *testing.T) {
	r := result("https://example.org/a")
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{}, stubScorer{def: decimal.RequireFromString("0.75")}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	require.Len(t, store.candidates, 1)
	assert.Equal(t, 1, stats.HighConfidenceCreated)
	assert.Equal(t, models.CandidateStatusPendingCrawl, store.candidates[0].Status)
	assert.Equal(t, models.DomainStatusProcessedHighQuality, store.domains[0].Status)
}

func TestProcessLowConfidenceStillCreatesCandidate(t *testing.T) {
	r := result("https://example.org/a")
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{}, stubScorer{def: decimal.RequireFromString("0.10")}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	require.Len(t, store.candidates, 1)
	assert.Equal(t, 1, stats.LowConfidenceCreated)
	assert.Equal(t, models.CandidateStatusSkippedLowConfidence, store.candidates[0].Status)
}

func TestProcessExactThresholdClassifiesHigh(t *testing.T) {
	r := result("https://example.org/a")
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{}, stubScorer{def: decimal.RequireFromString("0.60")}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	assert.Equal(t, 1, stats.HighConfidenceCreated)
}

func TestProcessEveryResultMapsToExactlyOneCounter(t *testing.T) {
	results := []models.SearchResult{
		result("not-a-url"),
		result("https://spam.example/a"),
		result("https://example.org/dup"),
		result("https://example.org/dup"),
		result("https://blacklisted.example/a"),
		result("https://high.example/a"),
		result("https://low.example/a"),
	}
	store := &fakeStore{}
	p := New(
		stubSpam{spamURLs: map[string]bool{"https://spam.example/a": true}},
		stubBlacklist{blacklisted: map[string]bool{"blacklisted.example": true}},
		stubScorer{
			scores: map[string]decimal.Decimal{
				"https://high.example/a": decimal.RequireFromString("0.90"),
				"https://low.example/a":  decimal.RequireFromString("0.05"),
			},
			def: decimal.RequireFromString("0.90"),
		},
		store,
		logging.NewSimpleLogger(),
	)
	pctx := NewProcessingContext(uuid.New())

	stats, _ := p.Process(context.Background(), results, pctx)

	assert.Equal(t, len(results), stats.Total())
}

type flakyStore struct {
	fakeStore
	failures int
}

func (f *flakyStore) SaveDomainAndCandidate(ctx context.Context, d models.Domain, c models.FundingSourceCandidate) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("transient")
	}
	return f.fakeStore.SaveDomainAndCandidate(ctx, d, c)
}

func TestProcessRetriesWriteOnceThenSucceeds(t *testing.T) {
	r := result("https://example.org/a")
	store := &flakyStore{failures: 1}
	p := New(stubSpam{}, stubBlacklist{}, stubScorer{def: decimal.RequireFromString("0.90")}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, err := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.HighConfidenceCreated)
	assert.Len(t, store.candidates, 1)
}

func TestProcessAbortsAfterSecondWriteFailure(t *testing.T) {
	r1 := result("https://first.example/a")
	r2 := result("https://second.example/a")
	store := &flakyStore{failures: 2}
	p := New(stubSpam{}, stubBlacklist{}, stubScorer{def: decimal.RequireFromString("0.90")}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, err := p.Process(context.Background(), []models.SearchResult{r1, r2}, pctx)

	require.ErrorIs(t, err, ErrStoreWriteFailure)
	assert.Equal(t, 0, stats.HighConfidenceCreated)
	assert.Empty(t, store.candidates)
}

type panickingScorer struct{}

func (panickingScorer) Score(models.SearchResult) decimal.Decimal {
	panic("bad table")
}

func TestProcessScoringPanicFallsBackToLowBucket(t *testing.T) {
	r := result("https://example.org/a")
	store := &fakeStore{}
	p := New(stubSpam{}, stubBlacklist{}, panickingScorer{}, store, logging.NewSimpleLogger())
	pctx := NewProcessingContext(uuid.New())

	stats, err := p.Process(context.Background(), []models.SearchResult{r}, pctx)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.LowConfidenceCreated)
	require.Len(t, store.candidates, 1)
	assert.True(t, store.candidates[0].ConfidenceScore.IsZero())
}
