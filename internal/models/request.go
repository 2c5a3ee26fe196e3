// File: internal/models/request.go
package models

import "github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"

// ExecuteSearchRequest is the input to the orchestrator's Execute
// operation: taxonomy selections plus the engines to fan out to and the
// per-adapter result cap.
type ExecuteSearchRequest struct {
	Engines    []taxonomy.SearchEngineType      `json:"engines" binding:"required,min=1,dive,required"`
	Categories []taxonomy.FundingSearchCategory `json:"categories" binding:"required,min=1,dive,required"`
	Geographic taxonomy.GeographicScope         `json:"geographic" binding:"required"`

	SourceTypes   []taxonomy.FundingSourceType          `json:"sourceTypes,omitempty"`
	Mechanisms    []taxonomy.FundingMechanism           `json:"mechanisms,omitempty"`
	Scales        []taxonomy.ProjectScale               `json:"scales,omitempty"`
	Beneficiaries []taxonomy.BeneficiaryPopulation      `json:"beneficiaries,omitempty"`
	Recipients    []taxonomy.RecipientOrganizationType  `json:"recipients,omitempty"`
	Language      taxonomy.QueryLanguage                `json:"language,omitempty"`

	MaxResultsPerQuery int         `json:"maxResultsPerQuery" binding:"required,min=1,max=100"`
	SessionType        SessionType `json:"sessionType,omitempty"`
}
