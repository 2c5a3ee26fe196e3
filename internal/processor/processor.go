// File: internal/processor/processor.go
package processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kevinhagel/northstar-funding-sub000/internal/antispam"
	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// SpamClassifier is the narrow slice of the anti-spam filter this component needs.
type SpamClassifier interface {
	Classify(result models.SearchResult) antispam.Verdict
}

// BlacklistChecker is the narrow slice of the blacklist cache this component needs.
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, domainName string) (bool, error)
}

// ConfidenceScorer is the narrow slice of the scorer this component needs.
type ConfidenceScorer interface {
	Score(result models.SearchResult) decimal.Decimal
}

// Store is the write side the processor needs from the primary store.
// SaveDomainAndCandidate is only called for domains that are new within
// this Process call (duplicates never reach it); the store implementation
// registers the domain and inserts the candidate in one transaction, and
// is responsible for merging domain counters when the name already exists
// from a prior session.
type Store interface {
	SaveDomainAndCandidate(ctx context.Context, d models.Domain, c models.FundingSourceCandidate) error
}

// ErrStoreWriteFailure is returned by Process when a domain or candidate
// write fails twice in a row; the caller aborts the session.
var ErrStoreWriteFailure = errors.New("processor: store write failure")

// Processor is the seven-stage per-result pipeline.
type Processor struct {
	spam      SpamClassifier
	blacklist BlacklistChecker
	scorer    ConfidenceScorer
	store     Store
	logger    logging.Logger
}

func New(spam SpamClassifier, blacklist BlacklistChecker, scorer ConfidenceScorer, store Store, logger logging.Logger) *Processor {
	return &Processor{spam: spam, blacklist: blacklist, scorer: scorer, store: store, logger: logger}
}

var wwwPrefix = "www."

// extractAndValidateDomain implements stage 1: parse URL, lowercase host,
// strip leading "www.", reject on parse failure or empty host.
func extractAndValidateDomain(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	return strings.TrimPrefix(host, wwwPrefix), true
}

// Process runs every result in results through the seven-stage pipeline,
// mutating ctx's counters and dedup set, and returns the final
// ProcessingStatistics snapshot. Every result maps to exactly one outcome
// counter, so the counters always sum to the input length; no candidate
// is created for an invalid, spam, duplicate, or blacklisted result.
//
// A domain or candidate write that fails twice in a row aborts the run:
// Process stops, returns the statistics accumulated so far, and reports
// ErrStoreWriteFailure so the caller can mark the session FAILED.
func (p *Processor) Process(ctx context.Context, results []models.SearchResult, pctx *ProcessingContext) (models.ProcessingStatistics, error) {
	var procErr error
	for _, result := range results {
		if err := p.processOne(ctx, result, pctx); err != nil {
			procErr = err
			break
		}
	}
	return models.ProcessingStatistics{
		InvalidURLsSkipped:    pctx.InvalidURLsSkipped,
		SpamSkipped:           pctx.SpamSkipped,
		DuplicatesSkipped:     pctx.DuplicatesSkipped,
		BlacklistSkipped:      pctx.BlacklistSkipped,
		HighConfidenceCreated: pctx.HighConfidenceCreated,
		LowConfidenceCreated:  pctx.LowConfidenceCreated,
	}, procErr
}

func (p *Processor) processOne(ctx context.Context, result models.SearchResult, pctx *ProcessingContext) error {
	// Stage 1.
	domainName, ok := extractAndValidateDomain(result.URL)
	if !ok {
		pctx.InvalidURLsSkipped++
		return nil
	}

	// Stage 2. The spam-TLD denylist named in the seven-stage list is one
	// of the filter's five ordered rules; this processor delegates the full
	// classify() call rather than re-implementing a narrower TLD-only
	// check, so every spam rule runs before blacklist/dedup/scoring.
	if verdict := p.spam.Classify(result); verdict.Spam {
		pctx.SpamSkipped++
		return nil
	}

	// Stage 3.
	if alreadyPresent := pctx.markSeen(domainName); alreadyPresent {
		pctx.DuplicatesSkipped++
		return nil
	}

	// Stage 4.
	blacklisted, err := p.blacklist.IsBlacklisted(ctx, domainName)
	if err != nil {
		p.logger.Error(ctx, "blacklist check failed; treating result as blacklist-skipped pending investigation", map[string]interface{}{
			"domain": domainName,
			"error":  err.Error(),
		})
		pctx.BlacklistSkipped++
		return nil
	}
	if blacklisted {
		pctx.BlacklistSkipped++
		return nil
	}

	// Stage 5. A panicking scorer (misconfigured table, unexpected input)
	// falls back to 0.00, which lands the candidate in the LOW bucket.
	score := p.safeScore(ctx, result)

	// Stage 6. Decimal comparison only, never floating-point equality.
	high := score.Cmp(ConfidenceThreshold) >= 0

	// Stage 7.
	return p.createAndSaveCandidate(ctx, result, domainName, score, high, pctx)
}

func (p *Processor) safeScore(ctx context.Context, result models.SearchResult) (score decimal.Decimal) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "scoring failed; falling back to 0.00", map[string]interface{}{
				"url":   result.URL,
				"panic": fmt.Sprint(r),
			})
			score = decimal.Zero.Round(2)
		}
	}()
	return p.scorer.Score(result)
}

// writeWithRetry runs op, retrying once on failure.
func (p *Processor) writeWithRetry(ctx context.Context, what string, op func() error) error {
	err := op()
	if err == nil {
		return nil
	}
	p.logger.Warn(ctx, "store write failed; retrying once", map[string]interface{}{
		"write": what,
		"error": err.Error(),
	})
	if err = op(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStoreWriteFailure, what, err)
	}
	return nil
}

func (p *Processor) createAndSaveCandidate(ctx context.Context, result models.SearchResult, domainName string, score decimal.Decimal, high bool, pctx *ProcessingContext) error {
	now := time.Now().UTC()
	status := models.DomainStatusProcessedLowQuality
	candidateStatus := models.CandidateStatusSkippedLowConfidence
	if high {
		status = models.DomainStatusProcessedHighQuality
		candidateStatus = models.CandidateStatusPendingCrawl
	}

	domain := models.Domain{
		DomainID:                 uuid.New(),
		Name:                     domainName,
		Status:                   status,
		Blacklisted:              false,
		FirstDiscoveredSessionID: pctx.SessionID,
		FirstDiscoveredAt:        now,
		QualityScore:             &score,
		TimesProcessed:           1,
		CandidatesCreated:        1,
	}
	engine := string(result.Source)
	candidate := models.FundingSourceCandidate{
		CandidateID:        uuid.New(),
		URL:                result.URL,
		DomainName:         domainName,
		Title:              result.Title,
		Description:        result.Description,
		SearchEngineSource: &engine,
		SessionID:          pctx.SessionID,
		ConfidenceScore:    score,
		Status:             candidateStatus,
		DiscoveredAt:       result.DiscoveredAt,
		CreatedAt:          now,
	}
	if err := p.writeWithRetry(ctx, "save domain+candidate "+result.URL, func() error {
		return p.store.SaveDomainAndCandidate(ctx, domain, candidate)
	}); err != nil {
		return err
	}

	if high {
		pctx.HighConfidenceCreated++
	} else {
		pctx.LowConfidenceCreated++
	}
	return nil
}
