// File: internal/store/interfaces.go
package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
)

// Querier defines methods common to both *sqlx.DB and *sqlx.Tx, letting
// every store method accept either a pooled connection or an in-flight
// transaction interchangeably.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Transactor starts transactions against the underlying *sqlx.DB.
type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DiscoveryStore is the complete persistence surface the pipeline needs:
// session bookkeeping, generated-query analytics, domain/candidate
// writes, and blacklist reads. Methods that must share a per-candidate
// write transaction accept an exec
// Querier so a caller can pass an in-flight *sqlx.Tx; passing nil means
// "use the store's own *sqlx.DB".
type DiscoveryStore interface {
	Transactor

	CreateSession(ctx context.Context, exec Querier, session *models.DiscoverySession) error
	GetSessionByID(ctx context.Context, exec Querier, id uuid.UUID) (*models.DiscoverySession, error)
	UpdateSessionStatus(ctx context.Context, exec Querier, id uuid.UUID, status models.SessionStatus, completedAt *sql.NullTime) error
	UpdateSessionCounters(ctx context.Context, exec Querier, id uuid.UUID, stats models.ProcessingStatistics) error

	SaveSearchQuery(ctx context.Context, q models.SearchQuery) error
	RecordSearchSessionStatistics(ctx context.Context, exec Querier, s *models.SearchSessionStatistics) error

	// IsDomainBlacklisted satisfies blacklist.Store: the one read the
	// blacklist cache issues on a cold miss.
	IsDomainBlacklisted(ctx context.Context, name string) (bool, error)

	// SaveDomainAndCandidate satisfies processor.Store directly (no
	// caller-managed exec): one processed result is one self-contained
	// write, so the implementation registers the domain and inserts the
	// candidate inside a single internal transaction rather than exposing
	// transaction control to the processor. The domain upsert merges
	// TimesProcessed/CandidatesCreated when the named domain already
	// exists from a prior session, rather than overwriting.
	SaveDomainAndCandidate(ctx context.Context, d models.Domain, c models.FundingSourceCandidate) error

	ListCandidates(ctx context.Context, exec Querier, filter ListCandidatesFilter) ([]*models.FundingSourceCandidate, error)
	CountCandidates(ctx context.Context, exec Querier, filter ListCandidatesFilter) (int64, error)
}

// ListCandidatesFilter supports the candidate-listing query exercised by
// pagination.go's cursor helpers.
type ListCandidatesFilter struct {
	SessionID *uuid.UUID
	Status    *models.CandidateStatus
	Limit     int
	Cursor    string
}
