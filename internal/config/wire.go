// File: internal/config/wire.go
package config

import (
	"sort"
	"strings"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/antispam"
	"github.com/kevinhagel/northstar-funding-sub000/internal/blacklist"
	"github.com/kevinhagel/northstar-funding-sub000/internal/llmclient"
	"github.com/kevinhagel/northstar-funding-sub000/internal/querygen"
	"github.com/kevinhagel/northstar-funding-sub000/internal/scoring"
	"github.com/kevinhagel/northstar-funding-sub000/internal/searchadapters"
	"github.com/shopspring/decimal"
)

// LLMClientConfig converts the LLM section of AppConfig into an
// llmclient.Config.
func (ac *AppConfig) LLMClientConfig() llmclient.Config {
	return llmclient.Config{
		BaseURL:     ac.LLM.BaseURL,
		Model:       ac.LLM.Model,
		Timeout:     ac.LLM.Timeout,
		MaxTokens:   ac.LLM.MaxTokens,
		Temperature: ac.LLM.Temperature,
	}
}

// QueryGenConfig converts the queryCache section into a querygen.Config,
// keeping querygen's own DefaultNQueries (not an exposed configuration key).
func (ac *AppConfig) QueryGenConfig() querygen.Config {
	base := querygen.DefaultConfig()
	base.CacheTTL = ac.QueryCache.TTL
	base.CacheMaxSize = ac.QueryCache.MaxSize
	return base
}

// BlacklistConfig converts the blacklist section into a blacklist.Config.
func (ac *AppConfig) BlacklistConfig() blacklist.Config {
	return blacklist.Config{
		CacheTTL:     ac.Blacklist.TTL,
		CacheMaxSize: ac.Blacklist.MaxSize,
	}
}

// ConfidenceThreshold parses the confidence.threshold key as a decimal,
// falling back to the package default on a malformed value.
func (ac *AppConfig) ConfidenceThreshold() decimal.Decimal {
	d, err := decimal.NewFromString(ac.Confidence.Threshold)
	if err != nil {
		return decimal.RequireFromString(DefaultConfidenceThreshold)
	}
	return d
}

// AntispamConfig builds the spam filter's config from the processor
// tables, merged with antispam.DefaultConfig()'s thresholds and function
// words (which are not exposed as configuration keys).
func (ac *AppConfig) AntispamConfig() antispam.Config {
	cfg := antispam.DefaultConfig()
	if len(ac.Processor.SpamTLDs) > 0 {
		cfg.SpamTLDs = ac.Processor.SpamTLDs
	}
	if len(ac.Processor.ScamSubstrings) > 0 {
		cfg.ScamSubstrings = ac.Processor.ScamSubstrings
	}
	if len(ac.Scorer.FundingKeywords) > 0 {
		cfg.FundingKeywords = ac.Scorer.FundingKeywords
	}
	return cfg
}

// ScoringConfig builds the confidence scorer config from the scorer.* tables.
// TLDWeights is read out of the map in descending weight order so the
// more specific/valuable entries are matched first, mirroring the
// ordering invariant scoring.DefaultConfig() documents.
func (ac *AppConfig) ScoringConfig() scoring.Config {
	cfg := scoring.DefaultConfig()
	if len(ac.Scorer.FundingKeywords) > 0 {
		cfg.FundingKeywords = ac.Scorer.FundingKeywords
	}
	if len(ac.Scorer.GeographicIndicators) > 0 {
		cfg.GeographicIndicators = ac.Scorer.GeographicIndicators
	}
	if len(ac.Scorer.OrgTypePatterns) > 0 {
		cfg.OrgTypePatterns = ac.Scorer.OrgTypePatterns
	}
	if len(ac.Scorer.TLDWeights) > 0 {
		weights := make([]scoring.TLDWeight, 0, len(ac.Scorer.TLDWeights))
		for suffix, weight := range ac.Scorer.TLDWeights {
			d, err := decimal.NewFromString(weight)
			if err != nil {
				continue
			}
			weights = append(weights, scoring.TLDWeight{Suffix: suffix, Weight: d})
		}
		// Descending weight, longer suffix first on ties, so the most
		// specific/valuable entry always matches first regardless of map
		// iteration order.
		sort.Slice(weights, func(i, j int) bool {
			if !weights[i].Weight.Equal(weights[j].Weight) {
				return weights[i].Weight.GreaterThan(weights[j].Weight)
			}
			if len(weights[i].Suffix) != len(weights[j].Suffix) {
				return len(weights[i].Suffix) > len(weights[j].Suffix)
			}
			return weights[i].Suffix < weights[j].Suffix
		})
		if len(weights) > 0 {
			cfg.TLDWeights = weights
		}
	}
	if ac.Scorer.DefaultTLDWeight != "" {
		if d, err := decimal.NewFromString(ac.Scorer.DefaultTLDWeight); err == nil {
			cfg.DefaultTLDWeight = d
		}
	}
	return cfg
}

// SearchAdapterRegistry constructs a searchadapters.Registry with one
// adapter per engine enabled in ac.Adapters.
func (ac *AppConfig) SearchAdapterRegistry() *searchadapters.Registry {
	var adapters []searchadapters.Adapter
	if ac.Adapters.SearXNG.Enabled {
		adapters = append(adapters, searchadapters.NewSearXNGAdapter(searchadapters.SearXNGConfig{
			BaseURL: ac.Adapters.SearXNG.BaseURL,
			Timeout: adapterTimeout(ac.Adapters.SearXNG.Timeout),
		}))
	}
	if ac.Adapters.Brave.Enabled {
		adapters = append(adapters, searchadapters.NewBraveAdapter(searchadapters.BraveConfig{
			BaseURL: ac.Adapters.Brave.BaseURL,
			APIKey:  ac.Adapters.Brave.APIKey,
			Timeout: adapterTimeout(ac.Adapters.Brave.Timeout),
		}))
	}
	if ac.Adapters.Serper.Enabled {
		adapters = append(adapters, searchadapters.NewSerperAdapter(searchadapters.SerperConfig{
			BaseURL: ac.Adapters.Serper.BaseURL,
			APIKey:  ac.Adapters.Serper.APIKey,
			Timeout: adapterTimeout(ac.Adapters.Serper.Timeout),
		}))
	}
	if ac.Adapters.Tavily.Enabled {
		adapters = append(adapters, searchadapters.NewTavilyAdapter(searchadapters.TavilyConfig{
			BaseURL: ac.Adapters.Tavily.BaseURL,
			APIKey:  ac.Adapters.Tavily.APIKey,
			Timeout: adapterTimeout(ac.Adapters.Tavily.Timeout),
		}))
	}
	if ac.Adapters.Perplexica.Enabled {
		adapters = append(adapters, searchadapters.NewPerplexicaAdapter(searchadapters.PerplexicaConfig{
			BaseURL: ac.Adapters.Perplexica.BaseURL,
			APIKey:  ac.Adapters.Perplexica.APIKey,
			Timeout: adapterTimeout(ac.Adapters.Perplexica.Timeout),
		}))
	}
	return searchadapters.NewRegistry(adapters...)
}

func adapterTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultAdapterTimeout
	}
	return d
}

// ApplyKeywordSets merges the config-managed keyword sets (loaded
// separately via LoadKeywordSets) into the processor/scorer tables:
// sets whose name contains "spam" or "scam" feed antispam's scam-substring
// table, sets whose name contains "funding" feed the scorer's
// funding-keyword table. Rules of type "regex" are skipped — both tables
// operate on plain substrings.
func ApplyKeywordSets(ac *AppConfig, sets []KeywordSet) {
	for _, ks := range sets {
		category := strings.ToLower(ks.Name)
		for _, rule := range ks.Rules {
			if strings.ToLower(rule.Type) != "string" || rule.Pattern == "" {
				continue
			}
			switch {
			case strings.Contains(category, "spam"), strings.Contains(category, "scam"):
				ac.Processor.ScamSubstrings = appendUnique(ac.Processor.ScamSubstrings, rule.Pattern)
			case strings.Contains(category, "funding"):
				ac.Scorer.FundingKeywords = appendUnique(ac.Scorer.FundingKeywords, rule.Pattern)
			}
		}
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
