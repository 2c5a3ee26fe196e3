// File: internal/antispam/filter.go
package antispam

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
)

// Verdict is the outcome of classifying a single SearchResult.
type Verdict struct {
	Spam   bool
	Reason string
}

// OK is the non-spam verdict.
var OK = Verdict{Spam: false}

// Config holds the configurable spam tables; thresholds and keyword
// lists are data, not code. Fields have sane embedded
// defaults via DefaultConfig so a caller can start from the curated set
// and override only what they need.
type Config struct {
	FundingKeywords      []string
	ScamSubstrings       []string
	SpamTLDs             []string
	FunctionWords        []string
	MinTokensForStuffing int
	MaxUniqueRatio       float64
	MinDomainTitleSim    float64
	MinFundingTermsForUnnatural int
	MaxFunctionWordsForUnnatural int
}

// DefaultConfig returns the curated default tables and thresholds.
func DefaultConfig() Config {
	return Config{
		FundingKeywords: []string{
			"grant", "scholarship", "fellowship", "foundation", "programme", "program",
			"funding", "award", "call for proposals", "donor", "endowment", "subsidy",
		},
		ScamSubstrings: []string{
			"casino", "poker", "betting", "essaywriter", "paper-mill", "paperwriting",
			"loan-shark", "forex-signals",
		},
		SpamTLDs:             []string{".top", ".click", ".xyz", ".loan", ".win"},
		FunctionWords:        []string{"the", "a", "an", "of", "for", "to", "in", "with", "and", "or"},
		MinTokensForStuffing: 6,
		MaxUniqueRatio:       0.50,
		MinDomainTitleSim:    0.15,
		MinFundingTermsForUnnatural:  4,
		MaxFunctionWordsForUnnatural: 2,
	}
}

// Filter is stateless and deterministic; one instance can be shared
// across goroutines without synchronization since Config is read-only
// after construction.
type Filter struct {
	cfg Config
}

// New constructs a Filter from cfg.
func New(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Classify applies the five ordered spam rules; the
// first rule that fires wins. Runs in well under 5ms: no network I/O,
// only string/token scanning.
func (f *Filter) Classify(result models.SearchResult) Verdict {
	domain := registrableDomain(result.URL)
	titleDesc := result.Title + " " + result.Description

	if v := f.keywordStuffing(titleDesc); v.Spam {
		return v
	}
	if v := f.domainTitleMismatch(domain, result.Title); v.Spam {
		return v
	}
	if v := f.unnaturalKeywordList(result.Title); v.Spam {
		return v
	}
	if v := f.scamSubstring(domain); v.Spam {
		return v
	}
	if v := f.spamTLD(domain, titleDesc); v.Spam {
		return v
	}
	return OK
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	out := make([]string, 0, len(fields))
	for _, t := range fields {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// keywordStuffing: rule 1.
func (f *Filter) keywordStuffing(titleDesc string) Verdict {
	tokens := tokenize(titleDesc)
	if len(tokens) < f.cfg.MinTokensForStuffing {
		return OK
	}
	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}
	ratio := float64(len(unique)) / float64(len(tokens))
	if ratio < f.cfg.MaxUniqueRatio {
		return Verdict{Spam: true, Reason: fmt.Sprintf("keyword stuffing: unique ratio %.2f < %.2f", ratio, f.cfg.MaxUniqueRatio)}
	}
	return OK
}

// domainTitleMismatch: rule 2.
func (f *Filter) domainTitleMismatch(domain, title string) Verdict {
	if domain == "" {
		return OK
	}
	domainTokens := domainTokens(domain)
	titleTokens := tokenize(title)
	sim := cosineSimilarity(domainTokens, titleTokens)
	if sim >= f.cfg.MinDomainTitleSim {
		return OK
	}
	if hasFundingOverlap(titleTokens, f.cfg.FundingKeywords) {
		return OK
	}
	return Verdict{Spam: true, Reason: fmt.Sprintf("domain/title mismatch: similarity %.2f < %.2f", sim, f.cfg.MinDomainTitleSim)}
}

// unnaturalKeywordList: rule 3.
func (f *Filter) unnaturalKeywordList(title string) Verdict {
	tokens := tokenize(title)
	functionCount := 0
	for _, t := range tokens {
		for _, fw := range f.cfg.FunctionWords {
			if t == fw {
				functionCount++
				break
			}
		}
	}
	if functionCount >= f.cfg.MaxFunctionWordsForUnnatural {
		return OK
	}
	fundingTermCount := countFundingTerms(tokens, f.cfg.FundingKeywords)
	if fundingTermCount >= f.cfg.MinFundingTermsForUnnatural {
		return Verdict{Spam: true, Reason: "unnatural keyword list: low function-word density with high funding-term density"}
	}
	return OK
}

// scamSubstring: rule 4.
func (f *Filter) scamSubstring(domain string) Verdict {
	lower := strings.ToLower(domain)
	for _, substr := range f.cfg.ScamSubstrings {
		if strings.Contains(lower, substr) {
			return Verdict{Spam: true, Reason: fmt.Sprintf("known-scam substring %q in domain", substr)}
		}
	}
	return OK
}

// spamTLD: rule 5. Fires only when a spam TLD is combined with another
// weak signal (here: low domain/title similarity).
func (f *Filter) spamTLD(domain, titleDesc string) Verdict {
	lower := strings.ToLower(domain)
	for _, tld := range f.cfg.SpamTLDs {
		if strings.HasSuffix(lower, tld) {
			domainTokens := domainTokens(domain)
			titleTokens := tokenize(titleDesc)
			if cosineSimilarity(domainTokens, titleTokens) < f.cfg.MinDomainTitleSim {
				return Verdict{Spam: true, Reason: fmt.Sprintf("spam TLD %q combined with weak domain/content signal", tld)}
			}
		}
	}
	return OK
}

// registrableDomain extracts and lowercases the host from a URL, per the
// same stripping rule the processor uses: no leading "www.".
func registrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

var commonSuffixes = []string{".com", ".org", ".net", ".gov", ".edu", ".eu", ".co", ".io"}

func domainTokens(domain string) []string {
	stripped := domain
	for _, suffix := range commonSuffixes {
		stripped = strings.TrimSuffix(stripped, suffix)
	}
	parts := strings.FieldsFunc(stripped, func(r rune) bool {
		return r == '-' || r == '.'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

func cosineSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := toSet(a)
	setB := toSet(b)
	var dot float64
	for token := range setA {
		if _, ok := setB[token]; ok {
			dot++
		}
	}
	magA := float64(len(setA))
	magB := float64(len(setB))
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func hasFundingOverlap(titleTokens []string, fundingKeywords []string) bool {
	titleLower := strings.Join(titleTokens, " ")
	for _, kw := range fundingKeywords {
		if strings.Contains(titleLower, kw) {
			return true
		}
	}
	return false
}

func countFundingTerms(tokens []string, fundingKeywords []string) int {
	joined := strings.Join(tokens, " ")
	count := 0
	for _, kw := range fundingKeywords {
		if strings.Contains(joined, kw) {
			count++
		}
	}
	return count
}
