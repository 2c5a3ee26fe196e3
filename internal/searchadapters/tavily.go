// File: internal/searchadapters/tavily.go
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

// TavilyConfig configures the Tavily adapter.
type TavilyConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// TavilyAdapter queries the Tavily API: POST JSON with Bearer auth,
// result root "results[]" with fields url/title/content.
type TavilyAdapter struct {
	cfg    TavilyConfig
	client *http.Client
}

func NewTavilyAdapter(cfg TavilyConfig) *TavilyAdapter {
	return &TavilyAdapter{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (a *TavilyAdapter) EngineType() taxonomy.SearchEngineType { return taxonomy.EngineTavily }

type tavilyRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

func (a *TavilyAdapter) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if err := validateInputs(query, maxResults); err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	payload, err := json.Marshal(tavilyRequest{Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	endpoint := a.cfg.BaseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

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

	var parsed tavilyResponse
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

func (a *TavilyAdapter) IsAvailable(ctx context.Context) bool {
	return probeHead(ctx, a.client, a.cfg.BaseURL)
}
