// File: internal/store/postgres/discovery_store.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/store"
)

// discoveryStorePostgres implements store.DiscoveryStore for PostgreSQL.
type discoveryStorePostgres struct {
	db *sqlx.DB
	tm *TransactionManager
}

// NewDiscoveryStorePostgres creates a new DiscoveryStore for PostgreSQL.
func NewDiscoveryStorePostgres(db *sqlx.DB) store.DiscoveryStore {
	return &discoveryStorePostgres{db: db, tm: NewTransactionManager(db)}
}

// BeginTxx starts a new transaction.
func (s *discoveryStorePostgres) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return s.db.BeginTxx(ctx, opts)
}

func (s *discoveryStorePostgres) exec(q store.Querier) store.Querier {
	if q == nil {
		return s.db
	}
	return q
}

// --- Session lifecycle --- //

func (s *discoveryStorePostgres) CreateSession(ctx context.Context, exec store.Querier, session *models.DiscoverySession) error {
	q := s.exec(exec)
	if session.SessionID == uuid.Nil {
		session.SessionID = uuid.New()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}
	if session.Status == "" {
		session.Status = models.SessionStatusRunning
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO discovery_session (
			session_id, session_type, status, started_at, completed_at,
			total_queries_generated, total_results_fetched, total_invalid_urls_skipped,
			total_spam_skipped, total_duplicates_skipped, total_blacklist_skipped,
			total_high_confidence_created, total_low_confidence_created, total_adapter_errors
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		session.SessionID, session.SessionType, session.Status, session.StartedAt, session.CompletedAt,
		session.TotalQueriesGenerated, session.TotalResultsFetched, session.TotalInvalidURLsSkipped,
		session.TotalSpamSkipped, session.TotalDuplicatesSkipped, session.TotalBlacklistSkipped,
		session.TotalHighConfidence, session.TotalLowConfidence, session.TotalAdapterErrors,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *discoveryStorePostgres) GetSessionByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.DiscoverySession, error) {
	q := s.exec(exec)
	var session models.DiscoverySession
	err := q.GetContext(ctx, &session, `
		SELECT session_id, session_type, status, started_at, completed_at,
			total_queries_generated, total_results_fetched, total_invalid_urls_skipped,
			total_spam_skipped, total_duplicates_skipped, total_blacklist_skipped,
			total_high_confidence_created, total_low_confidence_created, total_adapter_errors
		FROM discovery_session WHERE session_id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (s *discoveryStorePostgres) UpdateSessionStatus(ctx context.Context, exec store.Querier, id uuid.UUID, status models.SessionStatus, completedAt *sql.NullTime) error {
	q := s.exec(exec)
	var completed interface{}
	if completedAt != nil && completedAt.Valid {
		completed = completedAt.Time
	}
	_, err := q.ExecContext(ctx, `
		UPDATE discovery_session SET status = $2, completed_at = $3 WHERE session_id = $1`,
		id, status, completed)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	return nil
}

func (s *discoveryStorePostgres) UpdateSessionCounters(ctx context.Context, exec store.Querier, id uuid.UUID, stats models.ProcessingStatistics) error {
	q := s.exec(exec)
	_, err := q.ExecContext(ctx, `
		UPDATE discovery_session SET
			total_invalid_urls_skipped = total_invalid_urls_skipped + $2,
			total_spam_skipped = total_spam_skipped + $3,
			total_duplicates_skipped = total_duplicates_skipped + $4,
			total_blacklist_skipped = total_blacklist_skipped + $5,
			total_high_confidence_created = total_high_confidence_created + $6,
			total_low_confidence_created = total_low_confidence_created + $7
		WHERE session_id = $1`,
		id, stats.InvalidURLsSkipped, stats.SpamSkipped, stats.DuplicatesSkipped,
		stats.BlacklistSkipped, stats.HighConfidenceCreated, stats.LowConfidenceCreated,
	)
	if err != nil {
		return fmt.Errorf("update session counters: %w", err)
	}
	return nil
}

// --- Query analytics --- //

func (s *discoveryStorePostgres) SaveSearchQuery(ctx context.Context, q models.SearchQuery) error {
	if q.QueryID == uuid.Nil {
		q.QueryID = uuid.New()
	}
	if q.GeneratedAt.IsZero() {
		q.GeneratedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_query (query_id, session_id, query_text, search_engine, tags, generation_method, ai_model, generated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		q.QueryID, q.SessionID, q.QueryText, q.SearchEngine, pq.Array(q.Tags), q.GenerationMethod, q.AIModel, q.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("save search query: %w", err)
	}
	return nil
}

func (s *discoveryStorePostgres) RecordSearchSessionStatistics(ctx context.Context, exec store.Querier, st *models.SearchSessionStatistics) error {
	q := s.exec(exec)
	_, err := q.ExecContext(ctx, `
		INSERT INTO search_session_statistics (session_id, search_engine, query_text, results_count, zero_result, duration_ms, error)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		st.SessionID, st.SearchEngine, st.QueryText, st.ResultsCount, st.ZeroResult, st.DurationMillis, st.Error,
	)
	if err != nil {
		return fmt.Errorf("record search session statistics: %w", err)
	}
	return nil
}

// --- Blacklist --- //

func (s *discoveryStorePostgres) IsDomainBlacklisted(ctx context.Context, name string) (bool, error) {
	var blacklisted bool
	err := s.db.GetContext(ctx, &blacklisted, `SELECT blacklisted FROM domain WHERE name = $1`, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check domain blacklist: %w", err)
	}
	return blacklisted, nil
}

// --- Domain / candidate writes --- //

// SaveDomainAndCandidate is called once per processed result by the
// processor; the domain registration and the candidate insert commit or
// roll back together inside a single transaction.
func (s *discoveryStorePostgres) SaveDomainAndCandidate(ctx context.Context, d models.Domain, c models.FundingSourceCandidate) error {
	return s.tm.SafeTransaction(ctx, nil, "SaveDomainAndCandidate", func(tx *sqlx.Tx) error {
		if d.DomainID == uuid.Nil {
			d.DomainID = uuid.New()
		}
		if d.FirstDiscoveredAt.IsZero() {
			d.FirstDiscoveredAt = time.Now().UTC()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO domain (
				domain_id, name, status, blacklisted, blacklist_reason,
				first_discovered_session_id, first_discovered_at,
				quality_score, times_processed, candidates_created
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (name) DO UPDATE SET
				status = EXCLUDED.status,
				quality_score = COALESCE(EXCLUDED.quality_score, domain.quality_score),
				times_processed = domain.times_processed + 1,
				candidates_created = domain.candidates_created + EXCLUDED.candidates_created`,
			d.DomainID, d.Name, d.Status, d.Blacklisted, d.BlacklistReason,
			d.FirstDiscoveredSessionID, d.FirstDiscoveredAt,
			d.QualityScore, d.TimesProcessed, d.CandidatesCreated,
		)
		if err != nil {
			return fmt.Errorf("upsert domain %s: %w", d.Name, err)
		}

		if c.CandidateID == uuid.Nil {
			c.CandidateID = uuid.New()
		}
		if c.DiscoveredAt.IsZero() {
			c.DiscoveredAt = time.Now().UTC()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO funding_source_candidate (
				candidate_id, url, domain_name, title, description,
				search_engine_source, session_id, confidence_score, status,
				discovered_at, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (url) DO NOTHING`,
			c.CandidateID, c.URL, c.DomainName, c.Title, c.Description,
			c.SearchEngineSource, c.SessionID, c.ConfidenceScore, c.Status,
			c.DiscoveredAt, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("save candidate %s: %w", c.URL, err)
		}
		return nil
	})
}

// --- Candidate listing --- //

func (s *discoveryStorePostgres) ListCandidates(ctx context.Context, exec store.Querier, filter store.ListCandidatesFilter) ([]*models.FundingSourceCandidate, error) {
	q := s.exec(exec)

	baseQuery := `SELECT candidate_id, url, domain_name, title, description, search_engine_source,
			session_id, confidence_score, status, discovered_at, created_at
		FROM funding_source_candidate`
	var conditions []string
	var args []interface{}
	argN := 1

	if filter.SessionID != nil {
		conditions = append(conditions, fmt.Sprintf("session_id = $%d", argN))
		args = append(args, *filter.SessionID)
		argN++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argN))
		args = append(args, *filter.Status)
		argN++
	}

	cursor, err := store.DecodeCursor(filter.Cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	if cursor != nil {
		conditions = append(conditions, fmt.Sprintf("(created_at, candidate_id) > ($%d, $%d)", argN, argN+1))
		args = append(args, cursor.Timestamp, cursor.ID)
		argN += 2
	}

	finalQuery := baseQuery
	if len(conditions) > 0 {
		finalQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	finalQuery += " ORDER BY created_at ASC, candidate_id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	finalQuery += fmt.Sprintf(" LIMIT $%d", argN)
	args = append(args, limit)

	var out []*models.FundingSourceCandidate
	if err := q.SelectContext(ctx, &out, finalQuery, args...); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

func (s *discoveryStorePostgres) CountCandidates(ctx context.Context, exec store.Querier, filter store.ListCandidatesFilter) (int64, error) {
	q := s.exec(exec)

	baseQuery := `SELECT COUNT(*) FROM funding_source_candidate`
	var conditions []string
	var args []interface{}
	argN := 1

	if filter.SessionID != nil {
		conditions = append(conditions, fmt.Sprintf("session_id = $%d", argN))
		args = append(args, *filter.SessionID)
		argN++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argN))
		args = append(args, *filter.Status)
		argN++
	}

	finalQuery := baseQuery
	if len(conditions) > 0 {
		finalQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int64
	if err := q.GetContext(ctx, &count, finalQuery, args...); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return count, nil
}
