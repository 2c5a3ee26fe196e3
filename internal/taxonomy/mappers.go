// File: internal/taxonomy/mappers.go
package taxonomy

import "fmt"

// Keywords returns the short keyword phrase a query builder should embed
// for c. Every category is guaranteed a non-empty result; see
// mappers_test.go's totality check.
func (c FundingSearchCategory) Keywords() string {
	return categoryKeywords[c]
}

// Description returns the longer conceptual description an LLM prompt can
// use to explain c to the model.
func (c FundingSearchCategory) Description() string {
	return categoryDescriptions[c]
}

// Modifier returns the short phrase a query builder should embed for s
// (e.g. "Bulgaria").
func (s GeographicScope) Modifier() string {
	return geographicModifiers[s]
}

// Description returns the longer conceptual description of s.
func (s GeographicScope) Description() string {
	return geographicDescriptions[s]
}

func (f FundingSourceType) Keywords() string {
	return sourceTypeKeywords[f]
}

func (m FundingMechanism) Keywords() string {
	return mechanismKeywords[m]
}

func (p ProjectScale) Keywords() string {
	return scaleKeywords[p]
}

func (b BeneficiaryPopulation) Keywords() string {
	return beneficiaryKeywords[b]
}

func (r RecipientOrganizationType) Keywords() string {
	return recipientKeywords[r]
}

func (l QueryLanguage) Name() string {
	return languageNames[l]
}

// ConceptualPrompt renders the combination of a category and an optional
// geographic scope into the natural-language phrase the LLM query-generation
// prompt should embed. Geographic scope is optional; pass "" to omit it.
func ConceptualPrompt(category FundingSearchCategory, scope GeographicScope) (string, error) {
	if !category.IsValid() {
		return "", fmt.Errorf("taxonomy: unknown funding search category %q", category)
	}
	if scope == "" {
		return category.Description(), nil
	}
	if !scope.IsValid() {
		return "", fmt.Errorf("taxonomy: unknown geographic scope %q", scope)
	}
	return fmt.Sprintf("%s, specifically %s.", category.Description(), scope.Description()), nil
}
