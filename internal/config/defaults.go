package config

import "time"

const (
	keywordsConfigFilename = "keywords.config.json"

	DefaultGinMode                  = "release"
	DefaultPort                     = "8080"
	DefaultDBMaxOpenConns           = 25
	DefaultDBMaxIdleConns           = 10
	DefaultDBConnMaxLifetimeMinutes = 30

	// DefaultConfidenceThreshold separates PENDING_CRAWL from
	// SKIPPED_LOW_CONFIDENCE candidates.
	DefaultConfidenceThreshold = "0.60"

	DefaultQueryCacheMaxSize = 1000
	DefaultQueryCacheTTL     = 24 * time.Hour

	DefaultBlacklistCacheTTL     = 24 * time.Hour
	DefaultBlacklistCacheMaxSize = 5000

	DefaultLLMBaseURL     = "http://localhost:11434"
	DefaultLLMModel       = "local-chat"
	DefaultLLMTimeout     = 60 * time.Second
	DefaultLLMMaxTokens   = 200
	DefaultLLMTemperature = 0.7

	DefaultAdapterTimeout = 15 * time.Second

	DefaultWorkflowMaxQueriesPerEngine = 3
	DefaultWorkflowTotalTimeout        = 10 * time.Minute
)

// DefaultConfig returns the fully-populated default configuration,
// before any file or environment overlay is applied.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:                     DefaultPort,
			GinMode:                  DefaultGinMode,
			DBMaxOpenConns:           DefaultDBMaxOpenConns,
			DBMaxIdleConns:           DefaultDBMaxIdleConns,
			DBConnMaxLifetimeMinutes: DefaultDBConnMaxLifetimeMinutes,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Confidence: ConfidenceConfig{
			Threshold: DefaultConfidenceThreshold,
		},
		QueryCache: QueryCacheConfig{
			MaxSize: DefaultQueryCacheMaxSize,
			TTL:     DefaultQueryCacheTTL,
		},
		Blacklist: BlacklistCacheConfig{
			TTL:     DefaultBlacklistCacheTTL,
			MaxSize: DefaultBlacklistCacheMaxSize,
		},
		LLM: LLMConfig{
			BaseURL:     DefaultLLMBaseURL,
			Model:       DefaultLLMModel,
			Timeout:     DefaultLLMTimeout,
			MaxTokens:   DefaultLLMMaxTokens,
			Temperature: DefaultLLMTemperature,
		},
		Adapters: AdaptersConfig{
			SearXNG:    AdapterConfig{Enabled: true, BaseURL: "http://localhost:8888", Timeout: DefaultAdapterTimeout},
			Brave:      AdapterConfig{Enabled: false, BaseURL: "https://api.search.brave.com/res/v1/web/search", Timeout: DefaultAdapterTimeout},
			Serper:     AdapterConfig{Enabled: false, BaseURL: "https://google.serper.dev/search", Timeout: DefaultAdapterTimeout},
			Tavily:     AdapterConfig{Enabled: false, BaseURL: "https://api.tavily.com/search", Timeout: DefaultAdapterTimeout},
			Perplexica: AdapterConfig{Enabled: false, BaseURL: "http://localhost:3000", Timeout: DefaultAdapterTimeout},
		},
		Processor: ProcessorConfig{
			SpamTLDs: []string{
				".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".click", ".loan", ".work",
			},
			ScamSubstrings: []string{
				"free-money", "guaranteed-grant", "no-application-fee", "instant-approval",
				"claim-your-prize", "wire-transfer-fee",
			},
		},
		Scorer: ScorerConfig{
			FundingKeywords: []string{
				"grant", "scholarship", "fellowship", "foundation", "programme", "program",
				"funding", "award", "call for proposals",
			},
			TLDWeights: map[string]string{
				"europa.eu": "1.00",
				".gov":      "1.00",
				".edu":      "1.00",
				".edu.":     "1.00",
				".ac.":      "1.00",
				".org":      "0.70",
			},
			DefaultTLDWeight: "0.30",
			GeographicIndicators: []string{
				"bulgaria", "eastern europe", "european union", "eu", "balkans",
				"southeast europe",
			},
			OrgTypePatterns: []string{
				"ministry of", "european commission", "foundation", "university",
				"roma", "unesco", "trust", "agency", "council",
			},
		},
		Workflow: WorkflowConfig{
			MaxQueriesPerEngine: DefaultWorkflowMaxQueriesPerEngine,
			TotalTimeout:        DefaultWorkflowTotalTimeout,
		},
	}
}
