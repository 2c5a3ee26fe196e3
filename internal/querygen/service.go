// File: internal/querygen/service.go
package querygen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kevinhagel/northstar-funding-sub000/internal/cache"
	"github.com/kevinhagel/northstar-funding-sub000/internal/llmclient"
	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
)

// LLM is the subset of *llmclient.Client the service depends on, so tests
// can substitute a fake without standing up an HTTP server. *llmclient.Client
// satisfies this interface directly.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// modelNamer is satisfied by *llmclient.Client; services constructed with a
// real client stamp persisted queries with the model that produced them.
type modelNamer interface {
	Model() string
}

var _ LLM = (*llmclient.Client)(nil)
var _ modelNamer = (*llmclient.Client)(nil)

// QueryPersister is the narrow slice of the store this service needs:
// fire-and-forget persistence of generated queries.
type QueryPersister interface {
	SaveSearchQuery(ctx context.Context, q models.SearchQuery) error
}

// Config controls the cache policy: write-once, TTL 24h, LRU eviction
// at the configured capacity.
type Config struct {
	CacheTTL      time.Duration
	CacheMaxSize  int
	DefaultNQueries int
}

func DefaultConfig() Config {
	return Config{
		CacheTTL:        24 * time.Hour,
		CacheMaxSize:    1000,
		DefaultNQueries: 10,
	}
}

// Service orchestrates query generation: strategy selection, cache lookup, LLM
// invocation, parsing, persistence.
type Service struct {
	cfg    Config
	llm    LLM
	store  QueryPersister
	logger logging.Logger
	cache  *cache.TTLCache
	// modelName is set from LLM.Model() when llm implements modelNamer,
	// so AI-generated queries can be traced to the model that produced them.
	modelName *string
}

// New constructs a Service with its own process-wide query cache, sized
// and aged per cfg.
func New(cfg Config, llm LLM, store QueryPersister, logger logging.Logger) *Service {
	s := &Service{
		cfg:    cfg,
		llm:    llm,
		store:  store,
		logger: logger,
		cache:  cache.New(cfg.CacheTTL, cfg.CacheMaxSize),
	}
	if namer, ok := llm.(modelNamer); ok {
		model := namer.Model()
		s.modelName = &model
	}
	return s
}

// CacheStats exposes the underlying cache's hit/miss/size counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func validate(req models.QueryGenerationRequest) error {
	if req.SearchEngine == "" {
		return fmt.Errorf("%w: searchEngine is required", ErrInvalidRequest)
	}
	if len(req.Categories) == 0 {
		return fmt.Errorf("%w: categories must be non-empty", ErrInvalidRequest)
	}
	if req.Geographic == "" {
		return fmt.Errorf("%w: geographic is required", ErrInvalidRequest)
	}
	if req.MaxQueries < 1 || req.MaxQueries > 50 {
		return fmt.Errorf("%w: maxQueries must be in [1,50], got %d", ErrInvalidRequest, req.MaxQueries)
	}
	return nil
}

// GenerateQueries validates the request, resolves it from the cache or
// the LLM-backed strategy, persists the generated queries in the
// background, and returns the response. It blocks the calling goroutine
// for the LLM round trip; callers that want future/promise semantics
// should invoke it from their own goroutine and communicate the result
// back over a channel.
func (s *Service) GenerateQueries(ctx context.Context, req models.QueryGenerationRequest) (models.QueryGenerationResponse, error) {
	start := time.Now()
	if err := validate(req); err != nil {
		return models.QueryGenerationResponse{}, err
	}

	key := CacheKey(req)
	if cached, ok := s.cache.Get(key); ok {
		resp := cached.(models.QueryGenerationResponse)
		resp.FromCache = true
		resp.DurationMillis = time.Since(start).Milliseconds()
		return resp, nil
	}

	strat := selectStrategy(req.SearchEngine)
	n := req.MaxQueries
	if n <= 0 {
		n = s.cfg.DefaultNQueries
	}

	method := models.GenerationMethodAI
	aiModel := s.modelName
	prompt := strat.buildPrompt(req, n)
	raw, err := s.llm.Generate(ctx, prompt)
	var queries []string
	if err != nil {
		s.logger.Warn(ctx, "llm unavailable, using deterministic fallback", map[string]interface{}{
			"searchEngine": req.SearchEngine,
			"error":        err.Error(),
		})
		queries = strat.fallback(req, n)
		method = models.GenerationMethodFallback
		aiModel = nil
	} else {
		queries = parseQueries(raw, n)
		if len(queries) == 0 {
			queries = strat.fallback(req, n)
			method = models.GenerationMethodFallback
			aiModel = nil
		}
	}

	if len(queries) == 0 {
		return models.QueryGenerationResponse{}, fmt.Errorf("%w: no queries produced and no fallback available", ErrGenerationFailed)
	}

	for _, q := range queries {
		if !strat.validateLength(q) {
			s.logger.Info(ctx, "generated query violates length class for engine", map[string]interface{}{
				"query":        q,
				"searchEngine": req.SearchEngine,
			})
		}
	}

	resp := models.QueryGenerationResponse{
		Queries:        queries,
		SearchEngine:   req.SearchEngine,
		FromCache:      false,
		GeneratedAt:    time.Now().UTC(),
		DurationMillis: time.Since(start).Milliseconds(),
		CacheKey:       key,
	}
	s.cache.Set(key, resp, s.cfg.CacheTTL)

	go s.persistQueries(req, resp, method, aiModel)

	return resp, nil
}

func (s *Service) persistQueries(req models.QueryGenerationRequest, resp models.QueryGenerationResponse, method models.GenerationMethod, aiModel *string) {
	ctx := context.Background()
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		sessionID = uuid.Nil
	}
	tags := tagsForRequest(req)
	for _, q := range resp.Queries {
		rec := models.SearchQuery{
			QueryID:          uuid.New(),
			SessionID:        sessionID,
			QueryText:        q,
			SearchEngine:     string(req.SearchEngine),
			Tags:             tags,
			GenerationMethod: method,
			AIModel:          aiModel,
			GeneratedAt:      resp.GeneratedAt,
		}
		if err := s.store.SaveSearchQuery(ctx, rec); err != nil {
			s.logger.Warn(ctx, "failed to persist generated query; response was already returned", map[string]interface{}{
				"error": err.Error(),
				"query": q,
			})
		}
	}
}

func tagsForRequest(req models.QueryGenerationRequest) []string {
	var tags []string
	for _, c := range req.Categories {
		tags = append(tags, "CATEGORY:"+string(c))
	}
	if req.Geographic != "" {
		tags = append(tags, "GEOGRAPHY:"+string(req.Geographic))
	}
	return tags
}
