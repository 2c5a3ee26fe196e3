// File: internal/models/domain.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainStatus is the lifecycle state of a Domain row.
type DomainStatus string

const (
	DomainStatusDiscovered          DomainStatus = "DISCOVERED"
	DomainStatusProcessedHighQuality DomainStatus = "PROCESSED_HIGH_QUALITY"
	DomainStatusProcessedLowQuality  DomainStatus = "PROCESSED_LOW_QUALITY"
	DomainStatusBlacklisted          DomainStatus = "BLACKLISTED"
)

// Domain is a persistent record of a distinct registrable domain name seen
// by the pipeline. Name is unique; the processor is the sole writer.
type Domain struct {
	DomainID                 uuid.UUID       `db:"domain_id"`
	Name                     string          `db:"name"`
	Status                   DomainStatus    `db:"status"`
	Blacklisted              bool            `db:"blacklisted"`
	BlacklistReason          *string         `db:"blacklist_reason"`
	FirstDiscoveredSessionID uuid.UUID       `db:"first_discovered_session_id"`
	FirstDiscoveredAt        time.Time       `db:"first_discovered_at"`
	QualityScore             *decimal.Decimal `db:"quality_score"`
	TimesProcessed           int             `db:"times_processed"`
	CandidatesCreated        int             `db:"candidates_created"`
}

// CandidateStatus is the lifecycle status of a FundingSourceCandidate.
// Only the first two values are reachable as phase-1 terminal states; the
// remainder belong to the out-of-scope Phase 2 (deep crawl) and are
// declared here only so stored values round-trip without loss.
type CandidateStatus string

const (
	CandidateStatusPendingCrawl         CandidateStatus = "PENDING_CRAWL"
	CandidateStatusSkippedLowConfidence CandidateStatus = "SKIPPED_LOW_CONFIDENCE"
	CandidateStatusCrawled              CandidateStatus = "CRAWLED"
	CandidateStatusEnhanced             CandidateStatus = "ENHANCED"
	CandidateStatusApproved             CandidateStatus = "APPROVED"
	CandidateStatusRejected             CandidateStatus = "REJECTED"
)

// FundingSourceCandidate is a persistent, immutable-after-creation record
// of a URL the pipeline judged (from metadata alone) as a plausible
// funding source.
type FundingSourceCandidate struct {
	CandidateID        uuid.UUID       `db:"candidate_id" json:"candidateId"`
	URL                string          `db:"url" json:"url"`
	DomainName         string          `db:"domain_name" json:"domainName"`
	Title              string          `db:"title" json:"title"`
	Description        string          `db:"description" json:"description"`
	SearchEngineSource *string         `db:"search_engine_source" json:"searchEngineSource,omitempty"`
	SessionID          uuid.UUID       `db:"session_id" json:"sessionId"`
	ConfidenceScore    decimal.Decimal `db:"confidence_score" json:"confidenceScore"`
	Status             CandidateStatus `db:"status" json:"status"`
	DiscoveredAt       time.Time       `db:"discovered_at" json:"discoveredAt"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
}
