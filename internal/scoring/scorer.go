// File: internal/scoring/scorer.go
package scoring

import (
	"strings"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// Weight of each of the four signals; they sum to 1.00.
const (
	weightFundingKeywords = "0.30"
	weightDomainCredibility = "0.25"
	weightGeographic        = "0.25"
	weightOrgType           = "0.20"
)

// Breakdown exposes the per-signal component scores for diagnostics,
// narrowed to the four
// signals this scorer actually computes.
type Breakdown struct {
	FundingKeywordScore   decimal.Decimal
	DomainCredibilityScore decimal.Decimal
	GeographicScore       decimal.Decimal
	OrgTypeScore          decimal.Decimal
	Total                 decimal.Decimal
}

// TLDWeight pairs a domain suffix/substring with its credibility weight.
// Kept as an ordered slice, not a map, so that when a domain matches more
// than one entry the result does not depend on Go's randomized map
// iteration order; the scorer must stay deterministic.
type TLDWeight struct {
	Suffix string
	Weight decimal.Decimal
}

// Config holds the configuration tables driving the scorer: all of them
// are data, never recompiled constants.
type Config struct {
	FundingKeywords      []string
	TLDWeights           []TLDWeight
	DefaultTLDWeight      decimal.Decimal
	GeographicIndicators []string
	OrgTypePatterns      []string
}

// DefaultConfig returns the curated signal tables. Order
// matters: more specific/higher-precedence entries are listed first.
func DefaultConfig() Config {
	return Config{
		FundingKeywords: []string{
			"grant", "scholarship", "fellowship", "foundation", "programme", "program",
			"funding", "award", "call for proposals",
		},
		TLDWeights: []TLDWeight{
			{Suffix: "europa.eu", Weight: decimal.RequireFromString("1.00")},
			{Suffix: ".gov", Weight: decimal.RequireFromString("1.00")},
			{Suffix: ".edu", Weight: decimal.RequireFromString("1.00")},
			// country-code academic forms, e.g. university.edu.bg, oxford.ac.uk
			{Suffix: ".edu.", Weight: decimal.RequireFromString("1.00")},
			{Suffix: ".ac.", Weight: decimal.RequireFromString("1.00")},
			{Suffix: ".org", Weight: decimal.RequireFromString("0.70")},
		},
		DefaultTLDWeight: decimal.RequireFromString("0.30"),
		GeographicIndicators: []string{
			"bulgaria", "eastern europe", "european union", "eu", "balkans", "romania",
			"greece", "serbia", "southeast europe",
		},
		OrgTypePatterns: []string{
			"ministry of", "european commission", "foundation", "university", "roma",
			"unesco", "unicef", "world bank", "ngo", "non-profit", "nonprofit",
		},
	}
}

// Scorer computes the deterministic metadata-only confidence score.
// Stateless aside from its Config; safe for concurrent use.
type Scorer struct {
	cfg               Config
	fundingWeight     decimal.Decimal
	credibilityWeight decimal.Decimal
	geographicWeight  decimal.Decimal
	orgTypeWeight     decimal.Decimal
}

// New constructs a Scorer from cfg.
func New(cfg Config) *Scorer {
	return &Scorer{
		cfg:               cfg,
		fundingWeight:     decimal.RequireFromString(weightFundingKeywords),
		credibilityWeight: decimal.RequireFromString(weightDomainCredibility),
		geographicWeight:  decimal.RequireFromString(weightGeographic),
		orgTypeWeight:     decimal.RequireFromString(weightOrgType),
	}
}

// Score computes the weighted confidence for result, clamped to
// [0.00, 1.00] and rounded to scale 2 with HALF_UP semantics. Never
// errors: on any unexpected internal failure the caller is expected
// to treat Score's return value as the answer — ScoringFailure's
// fallback-to-0.00 policy lives one layer up, in the processor, since
// this function has no failure path of its own (pure string/decimal
// arithmetic cannot fail).
func (s *Scorer) Score(result models.SearchResult) decimal.Decimal {
	b := s.Breakdown(result)
	return b.Total
}

// Breakdown computes and returns every component score alongside the
// total, for diagnostics and tests.
func (s *Scorer) Breakdown(result models.SearchResult) Breakdown {
	titleDesc := strings.ToLower(result.Title + " " + result.Description)
	domain := hostOf(result.URL)

	funding := s.fundingKeywordScore(titleDesc)
	credibility := s.domainCredibilityScore(domain)
	geographic := s.geographicScore(titleDesc)
	orgType := s.orgTypeScore(titleDesc)

	total := funding.Mul(s.fundingWeight).
		Add(credibility.Mul(s.credibilityWeight)).
		Add(geographic.Mul(s.geographicWeight)).
		Add(orgType.Mul(s.orgTypeWeight)).
		Round(2)

	total = clamp01(total)

	return Breakdown{
		FundingKeywordScore:    funding.Round(2),
		DomainCredibilityScore: credibility.Round(2),
		GeographicScore:        geographic.Round(2),
		OrgTypeScore:           orgType.Round(2),
		Total:                  total,
	}
}

func (s *Scorer) fundingKeywordScore(titleDesc string) decimal.Decimal {
	if len(s.cfg.FundingKeywords) == 0 {
		return decimal.Zero
	}
	matches := 0
	for _, kw := range s.cfg.FundingKeywords {
		if strings.Contains(titleDesc, kw) {
			matches++
		}
	}
	fraction := decimal.NewFromInt(int64(matches)).Div(decimal.NewFromInt(int64(len(s.cfg.FundingKeywords))))
	return clamp01(fraction)
}

// domainCredibilityScore matches the first table entry against the
// domain. Entries ending in "." (".edu.", ".ac.") are infix patterns for
// country-code academic forms; everything else is a plain suffix match,
// so ".gov" never fires on "data.government.example".
func (s *Scorer) domainCredibilityScore(domain string) decimal.Decimal {
	for _, tw := range s.cfg.TLDWeights {
		if strings.HasSuffix(tw.Suffix, ".") {
			if strings.Contains(domain, tw.Suffix) {
				return tw.Weight
			}
			continue
		}
		if strings.HasSuffix(domain, tw.Suffix) {
			return tw.Weight
		}
	}
	return s.cfg.DefaultTLDWeight
}

func (s *Scorer) geographicScore(titleDesc string) decimal.Decimal {
	if len(s.cfg.GeographicIndicators) == 0 {
		return decimal.Zero
	}
	matches := 0
	for _, ind := range s.cfg.GeographicIndicators {
		if strings.Contains(titleDesc, ind) {
			matches++
		}
	}
	fraction := decimal.NewFromInt(int64(matches)).Div(decimal.NewFromInt(int64(len(s.cfg.GeographicIndicators))))
	return clamp01(fraction)
}

func (s *Scorer) orgTypeScore(titleDesc string) decimal.Decimal {
	for _, pattern := range s.cfg.OrgTypePatterns {
		if strings.Contains(titleDesc, pattern) {
			return decimal.NewFromInt(1)
		}
	}
	return decimal.Zero
}

func clamp01(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d.Round(2)
}

func hostOf(rawURL string) string {
	const schemeSep = "://"
	idx := strings.Index(rawURL, schemeSep)
	rest := rawURL
	if idx >= 0 {
		rest = rawURL[idx+len(schemeSep):]
	}
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		rest = rest[:slash]
	}
	return strings.ToLower(strings.TrimPrefix(rest, "www."))
}
