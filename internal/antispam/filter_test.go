// File: internal/antispam/filter_test.go
package antispam

import (
	"testing"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
	"github.com/stretchr/testify/assert"
)

func newResult(u, title, desc string) models.SearchResult {
	return models.SearchResult{
		URL:          u,
		Title:        title,
		Description:  desc,
		Source:       taxonomy.EngineSearXNG,
		DiscoveredAt: time.Now(),
	}
}

func TestClassifyKeywordStuffing(t *testing.T) {
	f := New(DefaultConfig())
	r := newResult(
		"https://best-grants-grants-grants.top",
		"grants grants grants funding grants grants",
		"grants funding grants",
	)
	v := f.Classify(r)
	assert.True(t, v.Spam)
}

func TestClassifyDomainTitleMismatchScam(t *testing.T) {
	f := New(DefaultConfig())
	r := newResult(
		"https://casinowinners.com/page",
		"Education Scholarships Grants Students",
		"",
	)
	v := f.Classify(r)
	assert.True(t, v.Spam)
}

func TestClassifyLegitimateResultPasses(t *testing.T) {
	f := New(DefaultConfig())
	r := newResult(
		"https://ec.europa.eu/funding/stem",
		"STEM Education Grants for Bulgaria",
		"The European Commission funding programme for STEM education in Eastern Europe.",
	)
	v := f.Classify(r)
	assert.False(t, v.Spam)
}

func TestClassifySpamTLDCombinedWithWeakSignal(t *testing.T) {
	f := New(DefaultConfig())
	r := newResult(
		"https://randomsite123.xyz",
		"Click here for amazing prizes",
		"Not related at all to the domain name",
	)
	v := f.Classify(r)
	assert.True(t, v.Spam)
}

func TestRegistrableDomainStripsWWW(t *testing.T) {
	assert.Equal(t, "example.com", registrableDomain("https://www.example.com/path"))
	assert.Equal(t, "example.com", registrableDomain("https://example.com/path"))
	assert.Equal(t, "", registrableDomain("not-a-url"))
}
