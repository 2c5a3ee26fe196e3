// File: internal/taxonomy/mappers_test.go
package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllFundingSearchCategoriesHaveMappings(t *testing.T) {
	for _, c := range AllFundingSearchCategories() {
		assert.True(t, c.IsValid(), "category %s should be valid", c)
		assert.NotEmpty(t, c.Keywords(), "category %s missing keywords", c)
		assert.NotEmpty(t, c.Description(), "category %s missing description", c)
	}
}

func TestAllGeographicScopesHaveMappings(t *testing.T) {
	for _, s := range AllGeographicScopes() {
		assert.True(t, s.IsValid())
		assert.NotEmpty(t, s.Modifier())
		assert.NotEmpty(t, s.Description())
	}
}

func TestAllSearchEngineTypesValid(t *testing.T) {
	for _, e := range AllSearchEngineTypes() {
		assert.True(t, e.IsValid())
	}
	assert.False(t, SearchEngineType("BING").IsValid())
}

func TestAllFundingSourceTypesHaveKeywords(t *testing.T) {
	for _, f := range AllFundingSourceTypes() {
		assert.True(t, f.IsValid())
		assert.NotEmpty(t, f.Keywords())
	}
}

func TestAllFundingMechanismsHaveKeywords(t *testing.T) {
	for _, m := range AllFundingMechanisms() {
		assert.True(t, m.IsValid())
		assert.NotEmpty(t, m.Keywords())
	}
}

func TestAllProjectScalesHaveRangesAndKeywords(t *testing.T) {
	for _, p := range AllProjectScales() {
		assert.True(t, p.IsValid())
		assert.NotEmpty(t, p.Keywords())
		r := p.Range()
		if p != ScaleFlagship {
			assert.True(t, r.Max.GreaterThan(r.Min))
		}
	}
}

func TestAllBeneficiaryPopulationsHaveKeywords(t *testing.T) {
	for _, b := range AllBeneficiaryPopulations() {
		assert.True(t, b.IsValid())
		assert.NotEmpty(t, b.Keywords())
	}
}

func TestAllRecipientOrganizationTypesHaveKeywords(t *testing.T) {
	for _, r := range AllRecipientOrganizationTypes() {
		assert.True(t, r.IsValid())
		assert.NotEmpty(t, r.Keywords())
	}
}

func TestAllQueryLanguagesHaveNames(t *testing.T) {
	for _, l := range AllQueryLanguages() {
		assert.True(t, l.IsValid())
		assert.NotEmpty(t, l.Name())
	}
}

func TestConceptualPromptRequiresValidCategory(t *testing.T) {
	_, err := ConceptualPrompt(FundingSearchCategory("NOT_REAL"), "")
	require.Error(t, err)
}

func TestConceptualPromptRejectsInvalidScope(t *testing.T) {
	_, err := ConceptualPrompt(CategorySTEMEducation, GeographicScope("NOT_REAL"))
	require.Error(t, err)
}

func TestConceptualPromptWithoutScope(t *testing.T) {
	prompt, err := ConceptualPrompt(CategorySTEMEducation, "")
	require.NoError(t, err)
	assert.Equal(t, CategorySTEMEducation.Description(), prompt)
}

func TestConceptualPromptWithScope(t *testing.T) {
	prompt, err := ConceptualPrompt(CategoryRuralDevelopment, ScopeBulgaria)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Bulgaria")
	assert.Contains(t, prompt, CategoryRuralDevelopment.Description())
}
