// File: internal/models/session.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionType distinguishes a manually triggered run from one started by
// an external scheduler (the scheduler itself is out of scope; this
// pipeline only records which kind of trigger started the session).
type SessionType string

const (
	SessionTypeManual    SessionType = "MANUAL"
	SessionTypeScheduled SessionType = "SCHEDULED"
)

// SessionStatus is the DiscoverySession state machine:
// RUNNING -> COMPLETED | PARTIAL | FAILED (terminal).
type SessionStatus string

const (
	SessionStatusRunning   SessionStatus = "RUNNING"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusFailed    SessionStatus = "FAILED"
	SessionStatusPartial   SessionStatus = "PARTIAL"
)

// DiscoverySession is the per-workflow-run aggregate created by the
// orchestrator at the start of execute() and closed at the end.
type DiscoverySession struct {
	SessionID   uuid.UUID     `db:"session_id" json:"sessionId"`
	SessionType SessionType   `db:"session_type" json:"sessionType"`
	Status      SessionStatus `db:"status" json:"status"`
	StartedAt   time.Time     `db:"started_at" json:"startedAt"`
	CompletedAt *time.Time    `db:"completed_at" json:"completedAt,omitempty"`

	TotalQueriesGenerated   int `db:"total_queries_generated" json:"totalQueriesGenerated"`
	TotalResultsFetched     int `db:"total_results_fetched" json:"totalResultsFetched"`
	TotalInvalidURLsSkipped int `db:"total_invalid_urls_skipped" json:"totalInvalidUrlsSkipped"`
	TotalSpamSkipped        int `db:"total_spam_skipped" json:"totalSpamSkipped"`
	TotalDuplicatesSkipped  int `db:"total_duplicates_skipped" json:"totalDuplicatesSkipped"`
	TotalBlacklistSkipped   int `db:"total_blacklist_skipped" json:"totalBlacklistSkipped"`
	TotalHighConfidence     int `db:"total_high_confidence_created" json:"totalHighConfidenceCreated"`
	TotalLowConfidence      int `db:"total_low_confidence_created" json:"totalLowConfidenceCreated"`
	TotalAdapterErrors      int `db:"total_adapter_errors" json:"totalAdapterErrors"`
}

// ProcessingStatistics returned by the processor for a single
// process() call; the orchestrator folds these into the session's
// aggregate counters.
type ProcessingStatistics struct {
	InvalidURLsSkipped     int
	SpamSkipped            int
	DuplicatesSkipped      int
	BlacklistSkipped       int
	HighConfidenceCreated  int
	LowConfidenceCreated   int
}

// Total returns the sum of all outcome counters, which must equal the
// number of results passed into Process.
func (p ProcessingStatistics) Total() int {
	return p.InvalidURLsSkipped + p.SpamSkipped + p.DuplicatesSkipped +
		p.BlacklistSkipped + p.HighConfidenceCreated + p.LowConfidenceCreated
}

// GenerationMethod records how a SearchQuery's text was produced.
type GenerationMethod string

const (
	GenerationMethodAI       GenerationMethod = "AI"
	GenerationMethodFallback GenerationMethod = "FALLBACK"
	GenerationMethodCached   GenerationMethod = "CACHED"
)

// SearchQuery is an append-only analytics record of a generated query.
type SearchQuery struct {
	QueryID          uuid.UUID        `db:"query_id"`
	SessionID        uuid.UUID        `db:"session_id"`
	QueryText        string           `db:"query_text"`
	SearchEngine     string           `db:"search_engine"`
	Tags             []string         `db:"-"`
	GenerationMethod GenerationMethod `db:"generation_method"`
	AIModel          *string          `db:"ai_model"`
	GeneratedAt      time.Time        `db:"generated_at"`
}

// SearchSessionStatistics is one row per (sessionId, searchEngine,
// queryText) tuple, recording the outcome of a single adapter call.
type SearchSessionStatistics struct {
	SessionID      uuid.UUID `db:"session_id"`
	SearchEngine   string    `db:"search_engine"`
	QueryText      string    `db:"query_text"`
	ResultsCount   int       `db:"results_count"`
	ZeroResult     bool      `db:"zero_result"`
	DurationMillis int64     `db:"duration_ms"`
	Error          *string   `db:"error"`
}
