// File: internal/config/types.go
package config

import "time"

// ServerConfig controls the HTTP trigger surface (gin) and database pool.
type ServerConfig struct {
	Port                     string `json:"port"`
	GinMode                  string `json:"ginMode"`
	DatabaseURL              string `json:"databaseUrl"`
	DBMaxOpenConns           int    `json:"dbMaxOpenConns"`
	DBMaxIdleConns           int    `json:"dbMaxIdleConns"`
	DBConnMaxLifetimeMinutes int    `json:"dbConnMaxLifetimeMinutes"`
}

// LoggingConfig carries the configured log level (logging.level, LOG_LEVEL).
// SimpleLogger does not read it: it writes every level.
type LoggingConfig struct {
	Level string `json:"level"`
}

// ConfidenceConfig holds the HIGH/LOW confidence cut that separates
// PENDING_CRAWL candidates from SKIPPED_LOW_CONFIDENCE ones.
type ConfidenceConfig struct {
	Threshold string `json:"threshold"`
}

// QueryCacheConfig controls the query-generation cache.
type QueryCacheConfig struct {
	MaxSize int           `json:"maxSize"`
	TTL     time.Duration `json:"ttl"`
}

// BlacklistCacheConfig controls the domain blacklist cache policy.
type BlacklistCacheConfig struct {
	TTL     time.Duration `json:"ttl"`
	MaxSize int           `json:"maxSize"`
}

// LLMConfig controls the HTTP/1.1 chat-completions client.
type LLMConfig struct {
	BaseURL     string        `json:"baseUrl"`
	Model       string        `json:"model"`
	Timeout     time.Duration `json:"timeout"`
	MaxTokens   int           `json:"maxTokens"`
	Temperature float64       `json:"temperature"`
}

// AdapterConfig controls one search engine's wiring.
type AdapterConfig struct {
	Enabled bool          `json:"enabled"`
	APIKey  string        `json:"apiKey"`
	BaseURL string        `json:"baseUrl"`
	Timeout time.Duration `json:"timeout"`
}

// AdaptersConfig is keyed by the lowercase taxonomy.SearchEngineType value
// (searxng, brave, serper, tavily, perplexica).
type AdaptersConfig struct {
	SearXNG     AdapterConfig `json:"searxng"`
	Brave       AdapterConfig `json:"brave"`
	Serper      AdapterConfig `json:"serper"`
	Tavily      AdapterConfig `json:"tavily"`
	Perplexica  AdapterConfig `json:"perplexica"`
}

// ProcessorConfig holds the spam-TLD and scam-substring tables shared by
// the anti-spam filter and the result processor.
type ProcessorConfig struct {
	SpamTLDs      []string `json:"spamTlds"`
	ScamSubstrings []string `json:"scamSubstrings"`
}

// ScorerConfig holds the confidence scorer's weighted-signal tables:
// funding keywords, TLD weights, geographic indicators, and
// organization-type patterns.
type ScorerConfig struct {
	FundingKeywords      []string            `json:"fundingKeywords"`
	TLDWeights           map[string]string   `json:"tldWeights"`
	DefaultTLDWeight     string              `json:"defaultTldWeight"`
	GeographicIndicators []string            `json:"geographicIndicators"`
	OrgTypePatterns      []string            `json:"orgTypePatterns"`
}

// WorkflowConfig controls the orchestrator's fan-out bounds.
type WorkflowConfig struct {
	MaxQueriesPerEngine int           `json:"maxQueriesPerEngine"`
	TotalTimeout        time.Duration `json:"totalTimeout"`
}

// AppConfig aggregates the service's configuration keys. All
// fields have defaults via DefaultConfig; Load layers a JSON file on top of
// them, and LoadWithEnv then applies environment-variable overrides.
type AppConfig struct {
	Server     ServerConfig         `json:"server"`
	Logging    LoggingConfig        `json:"logging"`
	Confidence ConfidenceConfig     `json:"confidence"`
	QueryCache QueryCacheConfig     `json:"queryCache"`
	Blacklist  BlacklistCacheConfig `json:"blacklist"`
	LLM        LLMConfig            `json:"llm"`
	Adapters   AdaptersConfig       `json:"adapters"`
	Processor  ProcessorConfig      `json:"processor"`
	Scorer     ScorerConfig         `json:"scorer"`
	Workflow   WorkflowConfig       `json:"workflow"`

	loadedFromPath string
}

// GetLoadedFromPath returns the file path AppConfig was loaded from, or
// "" if it was never backed by a file (defaults only).
func (ac *AppConfig) GetLoadedFromPath() string {
	return ac.loadedFromPath
}
