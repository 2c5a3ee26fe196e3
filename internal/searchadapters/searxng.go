// File: internal/searchadapters/searxng.go
package searchadapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// SearXNGConfig configures the SearXNG adapter.
type SearXNGConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SearXNGAdapter queries a self-hosted SearXNG instance: GET with
// ?q=<query>&format=json, result root "results[]" with fields url/title/content.
type SearXNGAdapter struct {
	cfg    SearXNGConfig
	client *http.Client
}

func NewSearXNGAdapter(cfg SearXNGConfig) *SearXNGAdapter {
	return &SearXNGAdapter{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (a *SearXNGAdapter) EngineType() taxonomy.SearchEngineType { return taxonomy.EngineSearXNG }

type searxngResponse struct {
	Results []struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

func (a *SearXNGAdapter) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if err := validateInputs(query, maxResults); err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json", a.cfg.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
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

	var parsed searxngResponse
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

func (a *SearXNGAdapter) IsAvailable(ctx context.Context) bool {
	return probeHead(ctx, a.client, a.cfg.BaseURL)
}
