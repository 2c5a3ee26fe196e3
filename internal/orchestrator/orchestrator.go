// File: internal/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/metrics"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/monitoring"
	"github.com/kevinhagel/northstar-funding-sub000/internal/observability"
	"github.com/kevinhagel/northstar-funding-sub000/internal/processor"
	"github.com/kevinhagel/northstar-funding-sub000/internal/searchadapters"
	"github.com/kevinhagel/northstar-funding-sub000/internal/store"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// tracer instruments the fan-out and the query-generation/search calls
// it drives. Call sites never hold their own TracerProvider reference;
// the global provider set by observability.InitTracer is used throughout.
var tracer trace.Tracer = otel.Tracer("orchestrator")

// QueryGenerator is the narrow slice of the query-generation service
// this component needs.
type QueryGenerator interface {
	GenerateQueries(ctx context.Context, req models.QueryGenerationRequest) (models.QueryGenerationResponse, error)
}

// AdapterRegistry resolves an engine to its configured adapter.
type AdapterRegistry interface {
	Get(engine taxonomy.SearchEngineType) (searchadapters.Adapter, error)
}

// SessionStore is the session-bookkeeping slice of the primary store this
// component drives directly; the per-result domain/candidate writes are
// delegated to the processor instead.
type SessionStore interface {
	CreateSession(ctx context.Context, exec store.Querier, session *models.DiscoverySession) error
	UpdateSessionStatus(ctx context.Context, exec store.Querier, id uuid.UUID, status models.SessionStatus, completedAt *sql.NullTime) error
	UpdateSessionCounters(ctx context.Context, exec store.Querier, id uuid.UUID, stats models.ProcessingStatistics) error
	RecordSearchSessionStatistics(ctx context.Context, exec store.Querier, s *models.SearchSessionStatistics) error
}

// Config controls orchestration limits: how many queries are generated
// per engine and the total wall-clock budget for one workflow run.
type Config struct {
	MaxQueriesPerEngine int
	TotalTimeout        time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxQueriesPerEngine: 3,
		TotalTimeout:        10 * time.Minute,
	}
}

// Orchestrator is the top-level coordinator. It accepts a request,
// generates queries for each requested engine, fans them out to the
// search adapters concurrently, feeds every result through the
// processor, and persists the resulting DiscoverySession.
type Orchestrator struct {
	cfg       Config
	querygen  QueryGenerator
	adapters  AdapterRegistry
	processor *processor.Processor
	store     SessionStore
	logger    logging.Logger
	monitor   *monitoring.ResourceMonitor
	metrics   *metrics.Registry
}

func New(cfg Config, querygen QueryGenerator, adapters AdapterRegistry, proc *processor.Processor, sessionStore SessionStore, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		querygen:  querygen,
		adapters:  adapters,
		processor: proc,
		store:     sessionStore,
		logger:    logger,
	}
}

// WithMonitor attaches a ResourceMonitor so Execute registers/unregisters
// each session for /healthz's active-session count (optional; nil-safe).
func (o *Orchestrator) WithMonitor(monitor *monitoring.ResourceMonitor) *Orchestrator {
	o.monitor = monitor
	return o
}

// WithMetrics attaches a metrics.Registry so Execute records per-adapter
// call/duration and per-session outcome counters (optional; nil-safe).
func (o *Orchestrator) WithMetrics(reg *metrics.Registry) *Orchestrator {
	o.metrics = reg
	return o
}

func validateRequest(req models.ExecuteSearchRequest) error {
	if len(req.Engines) == 0 {
		return fmt.Errorf("%w: engines must be non-empty", ErrInvalidRequest)
	}
	if len(req.Categories) == 0 {
		return fmt.Errorf("%w: categories must be non-empty", ErrInvalidRequest)
	}
	if req.Geographic == "" {
		return fmt.Errorf("%w: geographic is required", ErrInvalidRequest)
	}
	if req.MaxResultsPerQuery < 1 || req.MaxResultsPerQuery > 100 {
		return fmt.Errorf("%w: maxResultsPerQuery must be in [1,100], got %d", ErrInvalidRequest, req.MaxResultsPerQuery)
	}
	return nil
}

// engineQuery pairs a single generated query with the engine it should
// be searched against.
type engineQuery struct {
	engine taxonomy.SearchEngineType
	query  string
}

// searchOutcome is the per-(engine,query) result of stage 3 (fan-out):
// either a result list or an error, plus the statistics row to persist.
type searchOutcome struct {
	results []models.SearchResult
	stats   models.SearchSessionStatistics
	err     error
}

// Execute runs one full discovery workflow. It blocks the calling
// goroutine until the session reaches a terminal status; callers that
// want fire-and-forget semantics should invoke this from their own
// goroutine, or call ExecuteAsync, which returns as soon as the session
// row exists.
func (o *Orchestrator) Execute(ctx context.Context, req models.ExecuteSearchRequest) (*models.DiscoverySession, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.TotalTimeout)
	defer cancel()

	session, err := o.createSession(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.runWorkflow(ctx, req, session), nil
}

// ExecuteAsync creates the DiscoverySession row synchronously, so the
// caller has a sessionId to hand back immediately, and runs the
// remaining workflow steps in a detached goroutine bounded by its own
// total-timeout context. The
// returned channel receives exactly one value once the session reaches
// a terminal status.
func (o *Orchestrator) ExecuteAsync(ctx context.Context, req models.ExecuteSearchRequest) (*models.DiscoverySession, <-chan *models.DiscoverySession, error) {
	if err := validateRequest(req); err != nil {
		return nil, nil, err
	}

	workflowCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.cfg.TotalTimeout)
	session, err := o.createSession(ctx, req)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	done := make(chan *models.DiscoverySession, 1)
	go func() {
		defer cancel()
		done <- o.runWorkflow(workflowCtx, req, session)
	}()
	return session, done, nil
}

func (o *Orchestrator) createSession(ctx context.Context, req models.ExecuteSearchRequest) (*models.DiscoverySession, error) {
	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = models.SessionTypeManual
	}
	session := &models.DiscoverySession{
		SessionID:   uuid.New(),
		SessionType: sessionType,
		Status:      models.SessionStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	err := o.store.CreateSession(ctx, nil, session)
	if err != nil {
		err = o.store.CreateSession(ctx, nil, session)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %v", ErrStoreWriteFailure, err)
	}
	return session, nil
}

// runWorkflow drives an already-created session to completion: query
// generation, fan-out/fan-in, processing, and the final status/counters
// write. It never returns an error; store-write failures during
// bookkeeping are logged, and an unrecoverable status write failure
// leaves the returned session FAILED.
func (o *Orchestrator) runWorkflow(ctx context.Context, req models.ExecuteSearchRequest, session *models.DiscoverySession) *models.DiscoverySession {
	ctx, span := observability.StartSpan(ctx, tracer, "orchestrator.execute")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", session.SessionID.String()))

	if o.monitor != nil {
		o.monitor.RegisterSession(session.SessionID)
		defer o.monitor.UnregisterSession(session.SessionID)
	}

	o.logger.Info(ctx, "discovery session started", map[string]interface{}{
		"sessionId": session.SessionID,
		"engines":   req.Engines,
	})

	pairs, queriesGenerated := o.generateQueries(ctx, req, session.SessionID)
	session.TotalQueriesGenerated = queriesGenerated

	results, succeeded, attempted := o.fanOut(ctx, session.SessionID, pairs, req.MaxResultsPerQuery)
	session.TotalResultsFetched = len(results)

	pctx := processor.NewProcessingContext(session.SessionID)
	stats, procErr := o.processor.Process(ctx, results, pctx)
	if procErr != nil {
		o.logger.Error(ctx, "result processing aborted", map[string]interface{}{
			"sessionId": session.SessionID,
			"error":     procErr.Error(),
		})
	}
	if err := o.store.UpdateSessionCounters(ctx, nil, session.SessionID, stats); err != nil {
		o.logger.Warn(ctx, "failed to persist session counters", map[string]interface{}{
			"sessionId": session.SessionID,
			"error":     err.Error(),
		})
	}

	status := finalStatus(ctx, succeeded, attempted)
	if procErr != nil {
		status = models.SessionStatusFailed
	}
	completedAt := time.Now().UTC()
	completedAtNull := &sql.NullTime{Time: completedAt, Valid: true}
	err := o.store.UpdateSessionStatus(ctx, nil, session.SessionID, status, completedAtNull)
	if err != nil {
		err = o.store.UpdateSessionStatus(ctx, nil, session.SessionID, status, completedAtNull)
	}
	if err != nil {
		// A status write that fails again on its one retry marks the
		// session FAILED rather than surfacing the error to whatever is
		// waiting on ExecuteAsync's result channel.
		o.logger.Error(ctx, "failed to update session status; marking FAILED", map[string]interface{}{
			"sessionId": session.SessionID,
			"error":     err.Error(),
		})
		status = models.SessionStatusFailed
	}

	session.TotalInvalidURLsSkipped = stats.InvalidURLsSkipped
	session.TotalSpamSkipped = stats.SpamSkipped
	session.TotalDuplicatesSkipped = stats.DuplicatesSkipped
	session.TotalBlacklistSkipped = stats.BlacklistSkipped
	session.TotalHighConfidence = stats.HighConfidenceCreated
	session.TotalLowConfidence = stats.LowConfidenceCreated
	session.TotalAdapterErrors = attempted - succeeded
	session.Status = status
	session.CompletedAt = &completedAt

	if o.metrics != nil {
		o.metrics.ObserveSessionOutcome(string(status))
		o.metrics.ObserveCandidatesCreated(stats.HighConfidenceCreated, stats.LowConfidenceCreated)
	}

	o.logger.Info(ctx, "discovery session finished", map[string]interface{}{
		"sessionId": session.SessionID,
		"status":    status,
		"results":   session.TotalResultsFetched,
	})

	return session
}

// finalStatus picks the terminal session status: COMPLETED if every
// attempted adapter call succeeded, PARTIAL if some succeeded, FAILED if
// none did (including the zero-attempts case, which only arises when no
// query could be generated for any engine).
func finalStatus(ctx context.Context, succeeded, attempted int) models.SessionStatus {
	if ctx.Err() != nil {
		return models.SessionStatusFailed
	}
	if attempted == 0 || succeeded == 0 {
		return models.SessionStatusFailed
	}
	if succeeded < attempted {
		return models.SessionStatusPartial
	}
	return models.SessionStatusCompleted
}

// generateQueries drives the query-generation service once per requested
// engine, building the flat (engine, query) work list for fan-out. A
// generation failure for one engine is logged and simply yields no
// queries for that engine; it never aborts the session.
func (o *Orchestrator) generateQueries(ctx context.Context, req models.ExecuteSearchRequest, sessionID uuid.UUID) ([]engineQuery, int) {
	var pairs []engineQuery
	for _, engine := range req.Engines {
		genReq := models.QueryGenerationRequest{
			SearchEngine:  engine,
			Categories:    req.Categories,
			Geographic:    req.Geographic,
			MaxQueries:    o.cfg.MaxQueriesPerEngine,
			SessionID:     sessionID.String(),
			SourceTypes:   req.SourceTypes,
			Mechanisms:    req.Mechanisms,
			Scales:        req.Scales,
			Beneficiaries: req.Beneficiaries,
			Recipients:    req.Recipients,
			Language:      req.Language,
		}
		resp, err := o.querygen.GenerateQueries(ctx, genReq)
		if err != nil {
			o.logger.Warn(ctx, "query generation failed for engine; skipping", map[string]interface{}{
				"sessionId": sessionID,
				"engine":    engine,
				"error":     err.Error(),
			})
			continue
		}
		for _, q := range resp.Queries {
			pairs = append(pairs, engineQuery{engine: engine, query: q})
		}
	}
	return pairs, len(pairs)
}

// fanOut runs every (engine, query) pair concurrently, bounded by an
// errgroup so a single slow/erroring adapter call never
// blocks the rest, and never aborts the group on a per-call error (only
// ctx cancellation does). It returns the concatenated result list plus
// the count of calls that succeeded vs. were attempted.
func (o *Orchestrator) fanOut(ctx context.Context, sessionID uuid.UUID, pairs []engineQuery, maxResultsPerQuery int) (results []models.SearchResult, succeeded, attempted int) {
	attempted = len(pairs)
	if attempted == 0 {
		return nil, 0, 0
	}

	outcomes := make([]searchOutcome, attempted)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSearches(attempted))

	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			outcomes[i] = o.searchOne(gctx, sessionID, pair, maxResultsPerQuery)
			return nil
		})
	}
	// Errors from individual searches are captured per-outcome, never
	// propagated through the group, so Wait only reports ctx cancellation.
	_ = g.Wait()

	for _, outcome := range outcomes {
		if err := o.store.RecordSearchSessionStatistics(ctx, nil, &outcome.stats); err != nil {
			o.logger.Warn(ctx, "failed to persist search session statistics", map[string]interface{}{
				"sessionId": sessionID,
				"error":     err.Error(),
			})
		}
		if outcome.err == nil {
			succeeded++
		}
		results = append(results, outcome.results...)
	}
	return results, succeeded, attempted
}

// maxConcurrentSearches bounds the errgroup's concurrency at the
// work-list size, capped; never unbounded.
func maxConcurrentSearches(attempted int) int {
	const maxParallel = 32
	if attempted > maxParallel {
		return maxParallel
	}
	return attempted
}

func (o *Orchestrator) searchOne(ctx context.Context, sessionID uuid.UUID, pair engineQuery, maxResultsPerQuery int) searchOutcome {
	ctx, span := observability.StartSpan(ctx, tracer, "orchestrator.search_one")
	span.SetAttributes(attribute.String("engine", string(pair.engine)))
	defer span.End()

	start := time.Now()
	stats := models.SearchSessionStatistics{
		SessionID:    sessionID,
		SearchEngine: string(pair.engine),
		QueryText:    pair.query,
	}

	adapter, err := o.adapters.Get(pair.engine)
	if err != nil {
		errMsg := err.Error()
		stats.Error = &errMsg
		stats.ZeroResult = true
		stats.DurationMillis = time.Since(start).Milliseconds()
		if o.metrics != nil {
			o.metrics.ObserveAdapterCall(string(pair.engine), err, time.Since(start))
		}
		return searchOutcome{stats: stats, err: err}
	}

	results, err := adapter.Search(ctx, pair.query, maxResultsPerQuery)
	elapsed := time.Since(start)
	stats.DurationMillis = elapsed.Milliseconds()
	if o.metrics != nil {
		o.metrics.ObserveAdapterCall(string(pair.engine), err, elapsed)
	}
	if err != nil {
		o.logger.Warn(ctx, "search adapter call failed", map[string]interface{}{
			"sessionId": sessionID,
			"engine":    pair.engine,
			"query":     pair.query,
			"error":     err.Error(),
		})
		errMsg := err.Error()
		stats.Error = &errMsg
		stats.ZeroResult = true
		return searchOutcome{stats: stats, err: err}
	}

	stats.ResultsCount = len(results)
	stats.ZeroResult = len(results) == 0
	return searchOutcome{results: results, stats: stats}
}
