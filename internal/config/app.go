// File: internal/config/app.go
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads mainConfigPath (defaulting to "config.json"), validates the
// file's contents against the OpenAPI schema, unmarshals them over
// DefaultConfig, and returns the result. A missing file is not an error: DefaultConfig alone is
// returned and written back out so an operator has something to edit.
func Load(mainConfigPath string) (*AppConfig, error) {
	if mainConfigPath == "" {
		mainConfigPath = "config.json"
	}
	log.Printf("config: loading %s", mainConfigPath)

	cfg := DefaultConfig()

	data, err := os.ReadFile(mainConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config: %s not found, writing defaults", mainConfigPath)
			cfg.loadedFromPath = mainConfigPath
			if saveErr := SaveAppConfig(cfg); saveErr != nil {
				log.Printf("config: failed to save default config: %v", saveErr)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", mainConfigPath, err)
	}

	if err := ValidateConfigBytes(data); err != nil {
		return cfg, fmt.Errorf("config: validate %s: %w", mainConfigPath, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", mainConfigPath, err)
	}
	cfg.loadedFromPath = mainConfigPath
	return cfg, nil
}

// LoadWithEnv layers environment-variable overrides on top of Load's
// result, after first loading envFile (if non-empty) into the process
// environment via godotenv; values already set in the environment win
// over the .env file.
func LoadWithEnv(mainConfigPath, envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Printf("config: failed to load env file %s: %v", envFile, err)
		}
	}

	cfg, err := Load(mainConfigPath)
	if err != nil {
		return cfg, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.GinMode = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Server.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CONFIDENCE_THRESHOLD"); v != "" {
		cfg.Confidence.Threshold = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	overrideDuration("LLM_TIMEOUT", &cfg.LLM.Timeout)

	overrideAdapterKey("BRAVE_API_KEY", &cfg.Adapters.Brave.APIKey)
	overrideAdapterKey("SERPER_API_KEY", &cfg.Adapters.Serper.APIKey)
	overrideAdapterKey("TAVILY_API_KEY", &cfg.Adapters.Tavily.APIKey)
	overrideAdapterKey("PERPLEXICA_API_KEY", &cfg.Adapters.Perplexica.APIKey)
}

func overrideAdapterKey(envVar string, field *string) {
	if v := os.Getenv(envVar); v != "" {
		*field = v
	}
}

func overrideDuration(envVar string, field *time.Duration) {
	v := os.Getenv(envVar)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*field = d
		return
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*field = time.Duration(secs) * time.Second
	}
}

// SaveAppConfig writes cfg back to its loadedFromPath as indented JSON.
func SaveAppConfig(cfg *AppConfig) error {
	if cfg.loadedFromPath == "" {
		return fmt.Errorf("config: cannot save, loadedFromPath is empty")
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(cfg.loadedFromPath, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", cfg.loadedFromPath, err)
	}
	log.Printf("config: saved to %s", cfg.loadedFromPath)
	return nil
}
