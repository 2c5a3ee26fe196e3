// File: internal/llmclient/client.go
package llmclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrLlmUnavailable is returned for any network, timeout, or non-2xx
// failure talking to the LLM endpoint. Callers must never see the
// underlying transport error; they switch on this sentinel.
var ErrLlmUnavailable = errors.New("llmclient: llm unavailable")

// Config controls the mandatory behavior of the LLM client: HTTP/1.1
// only, bounded timeout, bounded token count, fixed temperature.
type Config struct {
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the client defaults: 60s timeout, 200 max
// tokens, temperature 0.7.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:11434",
		Model:       "local-chat",
		Timeout:     60 * time.Second,
		MaxTokens:   200,
		Temperature: 0.7,
	}
}

// Client is a text-in/text-out client for a local OpenAI-compatible chat
// endpoint. The target server does not negotiate HTTP/2, so the
// transport disables protocol upgrade explicitly rather than relying on
// the default negotiation outcome.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New constructs a Client whose transport forces HTTP/1.1. An empty,
// non-nil TLSNextProto map is what disables the client's ALPN/H2C
// upgrade path in net/http; ForceAttemptHTTP2 must also be false.
func New(cfg Config) *Client {
	transport := &http.Transport{
		ForceAttemptHTTP2: false,
		TLSNextProto:      map[string]func(authority string, c *tls.Conn) http.RoundTripper{},
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Model returns the configured model name, so callers can stamp
// persisted records with which model produced them.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Generate sends prompt as the sole user message and returns the model's
// text reply. Any network, timeout, or non-2xx failure collapses to
// ErrLlmUnavailable; callers never see the raw transport error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrLlmUnavailable, err)
	}

	endpoint := c.cfg.BaseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrLlmUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLlmUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrLlmUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrLlmUnavailable, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrLlmUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrLlmUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}
