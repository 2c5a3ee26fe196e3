// File: internal/searchadapters/brave.go
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

// BraveConfig configures the Brave Search adapter.
type BraveConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// BraveAdapter queries the Brave Search API: GET with
// X-Subscription-Token header, result root "web.results[]" with fields
// url/title/description.
type BraveAdapter struct {
	cfg    BraveConfig
	client *http.Client
}

func NewBraveAdapter(cfg BraveConfig) *BraveAdapter {
	return &BraveAdapter{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (a *BraveAdapter) EngineType() taxonomy.SearchEngineType { return taxonomy.EngineBrave }

type braveResponse struct {
	Web struct {
		Results []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (a *BraveAdapter) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if err := validateInputs(query, maxResults); err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}

	endpoint := fmt.Sprintf("%s/res/v1/web/search?q=%s&count=%d", a.cfg.BaseURL, url.QueryEscape(query), maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newAdapterError(a.EngineType(), err)
	}
	req.Header.Set("X-Subscription-Token", a.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

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

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, newAdapterError(a.EngineType(), fmt.Errorf("decode response: %w", err))
	}

	now := time.Now().UTC()
	results := make([]models.SearchResult, 0, len(parsed.Web.Results))
	for i, r := range parsed.Web.Results {
		if i >= maxResults {
			break
		}
		if !isAbsoluteHTTPURL(r.URL) {
			continue
		}
		results = append(results, models.SearchResult{
			URL:          r.URL,
			Title:        trimString(r.Title),
			Description:  trimString(r.Description),
			Source:       a.EngineType(),
			DiscoveredAt: now,
		})
	}
	return results, nil
}

func (a *BraveAdapter) IsAvailable(ctx context.Context) bool {
	return probeHead(ctx, a.client, a.cfg.BaseURL)
}
