// File: internal/processor/context.go
package processor

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConfidenceThreshold is the default HIGH/LOW classification boundary.
var ConfidenceThreshold = decimal.RequireFromString("0.60")

// ProcessingContext is owned by a single process() call: per-session
// dedup state plus outcome counters. Not safe for concurrent use by
// multiple goroutines — the orchestrator feeds it the fanned-in result
// list from a single goroutine after fan-out completes.
type ProcessingContext struct {
	SessionID   uuid.UUID
	seenDomains map[string]struct{}

	InvalidURLsSkipped    int
	SpamSkipped           int
	DuplicatesSkipped     int
	BlacklistSkipped      int
	HighConfidenceCreated int
	LowConfidenceCreated  int
}

// NewProcessingContext starts a fresh dedup set for sessionID.
func NewProcessingContext(sessionID uuid.UUID) *ProcessingContext {
	return &ProcessingContext{
		SessionID:   sessionID,
		seenDomains: make(map[string]struct{}),
	}
}

// markSeen adds domainName to the seen set and reports whether it was
// already present.
func (c *ProcessingContext) markSeen(domainName string) (alreadyPresent bool) {
	if _, ok := c.seenDomains[domainName]; ok {
		return true
	}
	c.seenDomains[domainName] = struct{}{}
	return false
}
