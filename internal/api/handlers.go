// File: internal/api/handlers.go
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/monitoring"
	"github.com/kevinhagel/northstar-funding-sub000/internal/orchestrator"
	"github.com/kevinhagel/northstar-funding-sub000/internal/store"
)

// Handlers groups the trigger/poll/health surface: this
// repository exposes two trigger endpoints plus health/metrics, not the
// excluded admin dashboard REST layer.
type Handlers struct {
	orchestrator *orchestrator.Orchestrator
	store        store.DiscoveryStore
	monitor      *monitoring.ResourceMonitor
	logger       logging.Logger
}

func NewHandlers(o *orchestrator.Orchestrator, st store.DiscoveryStore, monitor *monitoring.ResourceMonitor, logger logging.Logger) *Handlers {
	return &Handlers{orchestrator: o, store: st, monitor: monitor, logger: logger}
}

// CreateSession implements "POST /api/v1/discovery/sessions": starts the
// orchestrator asynchronously and returns {sessionId} as soon as the
// DiscoverySession row exists; callers poll GET /sessions/:id for the
// final aggregate.
func (h *Handlers) CreateSession(c *gin.Context) {
	if h.monitor != nil && h.monitor.AtCapacity() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "at maximum concurrent session capacity"})
		return
	}

	var req models.ExecuteSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, _, err := h.orchestrator.ExecuteAsync(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, orchestrator.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error(c.Request.Context(), "failed to start discovery session", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"sessionId": session.SessionID,
		"status":    session.Status,
	})
}

// GetSession implements "GET /api/v1/discovery/sessions/:id": polls the
// current DiscoverySession aggregate, whether still RUNNING or terminal.
func (h *Handlers) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	session, err := h.store.GetSessionByID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error(c.Request.Context(), "failed to load session", map[string]interface{}{"error": err.Error(), "sessionId": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListCandidates implements "GET /api/v1/discovery/candidates": a
// cursor-paginated read of persisted FundingSourceCandidate rows, the one
// read surface this spec exposes directly (full review/approval workflows
// are the excluded admin dashboard's job).
func (h *Handlers) ListCandidates(c *gin.Context) {
	var filter store.ListCandidatesFilter
	if sid := c.Query("sessionId"); sid != "" {
		parsed, err := uuid.Parse(sid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sessionId"})
			return
		}
		filter.SessionID = &parsed
	}
	if status := c.Query("status"); status != "" {
		cs := models.CandidateStatus(status)
		filter.Status = &cs
	}
	filter.Cursor = c.Query("cursor")
	filter.Limit = 50

	candidates, err := h.store.ListCandidates(c.Request.Context(), nil, filter)
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to list candidates", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list candidates"})
		return
	}

	total, err := h.store.CountCandidates(c.Request.Context(), nil, filter)
	if err != nil {
		h.logger.Warn(c.Request.Context(), "failed to count candidates", map[string]interface{}{"error": err.Error()})
	}

	page := store.PageInfo{
		HasNextPage: len(candidates) == filter.Limit,
		TotalCount:  total,
	}
	if len(candidates) > 0 {
		last := candidates[len(candidates)-1]
		page.EndCursor = store.EncodeCursor(store.CursorInfo{ID: last.CandidateID, Timestamp: last.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "pageInfo": page})
}

// Healthz reports process liveness: resource pressure and active-session
// count. It is a liveness signal, not an admin dashboard.
func (h *Handlers) Healthz(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.monitor != nil {
		body["resourceUsage"] = h.monitor.GetSystemUsage()
		body["activeSessions"] = h.monitor.ActiveSessionCount()
	}
	c.JSON(http.StatusOK, body)
}
