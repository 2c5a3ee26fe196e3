// File: internal/searchadapters/perplexica.go
package searchadapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// PerplexicaConfig configures the Perplexica adapter, a self-hosted
// REST instance with no fixed vendor contract.
type PerplexicaConfig struct {
	BaseURL string
	APIKey  string // optional; empty means no auth header is sent
	Timeout time.Duration
}

// PerplexicaAdapter queries a self-hosted Perplexica instance: POST JSON,
// result root "results[]" with fields url/title/content.
type PerplexicaAdapter struct {
	cfg    PerplexicaConfig
	client *http.Client
}

func NewPerplexicaAdapter(cfg PerplexicaConfig) *PerplexicaAdapter {
	return &PerplexicaAdapter{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (a *PerplexicaAdapter) EngineType() taxonomy.SearchEngineType { return taxonomy.EnginePerplexica }

type perplexicaRequest struct {
	Query string `json:"query"`
}

type perplexicaResponse struct {
	Results []struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

func (a *PerplexicaAdapter) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if err := validateInputs(query, maxResults); err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	payload, err := json.Marshal(perplexicaRequest{Query: query})
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	endpoint := a.cfg.BaseURL + "/api/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAdapterError(a.EngineType(), fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	var parsed perplexicaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, newAdapterError(a.EngineType(), fmt.Errorf("decode response: %w", err))
	}

	now := time.Now().UTC()
	results := make([]models.SearchResult, 0, len(parsed.Results))
	for i, r := range parsed.Results {
		if i >= maxResults {
			break
		}
		if !isAbsoluteHTTPURL(r.URL) {
			continue
		}
		results = append(results, models.SearchResult{
			URL:          r.URL,
			Title:        trimString(r.Title),
			Description:  trimString(r.Content),
			Source:       a.EngineType(),
			DiscoveredAt: now,
		})
	}
	return results, nil
}

func (a *PerplexicaAdapter) IsAvailable(ctx context.Context) bool {
	return probeHead(ctx, a.client, a.cfg.BaseURL)
}
