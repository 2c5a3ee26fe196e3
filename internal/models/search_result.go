// File: internal/models/search_result.go
package models

import (
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// SearchResult is the transient transport DTO returned by a search
// adapter and consumed by the processor. It has no identity of
// its own; only the derived Domain/FundingSourceCandidate are persistent.
type SearchResult struct {
	URL          string
	Title        string
	Description  string
	Source       taxonomy.SearchEngineType
	DiscoveredAt time.Time
}

// QueryGenerationResponse is the value object returned by
// Service.GenerateQueries.
type QueryGenerationResponse struct {
	Queries        []string
	SearchEngine   taxonomy.SearchEngineType
	FromCache      bool
	GeneratedAt    time.Time
	DurationMillis int64
	CacheKey       string
}

// QueryGenerationRequest is the value object accepted by
// Service.GenerateQueries.
type QueryGenerationRequest struct {
	SearchEngine taxonomy.SearchEngineType
	Categories   []taxonomy.FundingSearchCategory
	Geographic   taxonomy.GeographicScope
	MaxQueries   int
	SessionID    string

	SourceTypes   []taxonomy.FundingSourceType
	Mechanisms    []taxonomy.FundingMechanism
	Scales        []taxonomy.ProjectScale
	Beneficiaries []taxonomy.BeneficiaryPopulation
	Recipients    []taxonomy.RecipientOrganizationType
	Language      taxonomy.QueryLanguage
}
