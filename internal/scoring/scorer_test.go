// File: internal/scoring/scorer_test.go
package scoring

import (
	"testing"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newResult(u, title, desc string) models.SearchResult {
	return models.SearchResult{
		URL:          u,
		Title:        title,
		Description:  desc,
		Source:       taxonomy.EngineBrave,
		DiscoveredAt: time.Now(),
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := New(DefaultConfig())
	r := newResult("https://ec.europa.eu/funding/stem", "STEM Education Grants", "EU funding programme for Bulgaria")
	first := s.Score(r)
	second := s.Score(r)
	assert.True(t, first.Equal(second))
}

func TestScoreWithinBounds(t *testing.T) {
	s := New(DefaultConfig())
	r := newResult("https://example.com", "Nothing relevant here", "just a page")
	score := s.Score(r)
	assert.True(t, score.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, score.LessThanOrEqual(decimal.NewFromInt(1)))
}

func TestHighCredibilityDomainScoresHigherThanGeneric(t *testing.T) {
	s := New(DefaultConfig())
	govResult := newResult("https://grants.gov/program", "Grant Program", "A government grant programme for scholarship funding")
	genericResult := newResult("https://randomsite.biz", "Grant Program", "A government grant programme for scholarship funding")

	govScore := s.Score(govResult)
	genericScore := s.Score(genericResult)
	assert.True(t, govScore.GreaterThan(genericScore))
}

func TestScaleIsTwoDecimalPlaces(t *testing.T) {
	s := New(DefaultConfig())
	r := newResult("https://ec.europa.eu/funding", "Foundation Grant Scholarship", "fellowship programme funding award")
	score := s.Score(r)
	assert.LessOrEqual(t, score.Exponent(), int32(0))
	rounded := score.Round(2)
	assert.True(t, score.Equal(rounded))
}
