// File: internal/searchadapters/serper.go
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

// SerperConfig configures the Serper.dev adapter.
type SerperConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SerperAdapter queries the Serper API: POST JSON {q, num} with
// X-API-KEY header, result root "organic[]" with fields link/title/snippet.
type SerperAdapter struct {
	cfg    SerperConfig
	client *http.Client
}

func NewSerperAdapter(cfg SerperConfig) *SerperAdapter {
	return &SerperAdapter{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (a *SerperAdapter) EngineType() taxonomy.SearchEngineType { return taxonomy.EngineSerper }

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (a *SerperAdapter) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if err := validateInputs(query, maxResults); err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	payload, err := json.Marshal(serperRequest{Q: query, Num: maxResults})
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	endpoint := a.cfg.BaseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}
	req.Header.Set("X-API-KEY", a.cfg.APIKey)
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

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, newAdapterError(a.EngineType(), fmt.Errorf("decode response: %w", err))
	}

	now := time.Now().UTC()
	results := make([]models.SearchResult, 0, len(parsed.Organic))
	for i, r := range parsed.Organic {
		if i >= maxResults {
			break
		}
		if !isAbsoluteHTTPURL(r.Link) {
			continue
		}
		results = append(results, models.SearchResult{
			URL:          r.Link,
			Title:        trimString(r.Title),
			Description:  trimString(r.Snippet),
			Source:       a.EngineType(),
			DiscoveredAt: now,
		})
	}
	return results, nil
}

func (a *SerperAdapter) IsAvailable(ctx context.Context) bool {
	return probeHead(ctx, a.client, a.cfg.BaseURL)
}
