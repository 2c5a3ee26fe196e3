// File: internal/searchadapters/adapter.go
package searchadapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// ErrSearchAdapter is the sentinel wrapped by every adapter failure
// (transport, timeout, non-2xx, or malformed JSON shape). Callers
// compare with errors.Is; the concrete *AdapterError carries the engine
// tag and the underlying cause in its Engine and Cause fields (its Unwrap
// returns this sentinel, not the cause).
var ErrSearchAdapter = errors.New("searchadapters: adapter error")

// Adapter is the single contract every search engine integration
// implements: a small capability satisfied by independent values, no
// inheritance.
type Adapter interface {
	// Search translates query into the engine's wire format and returns
	// a normalized result list. Zero results is not an error: it returns
	// an empty, non-nil slice. Any transport/timeout/4xx/5xx/JSON-shape
	// failure returns a nil slice and an error wrapping ErrSearchAdapter.
	Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)

	// EngineType identifies which SearchEngineType this adapter serves.
	EngineType() taxonomy.SearchEngineType

	// IsAvailable is a cheap synchronous health check.
	IsAvailable(ctx context.Context) bool
}

// AdapterError carries the engine tag and the underlying cause for a
// failed Search call.
type AdapterError struct {
	Engine taxonomy.SearchEngineType
	Cause  error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("searchadapters: %s: %v", e.Engine, e.Cause)
}

func (e *AdapterError) Unwrap() error {
	return ErrSearchAdapter
}

func newAdapterError(engine taxonomy.SearchEngineType, cause error) error {
	return &AdapterError{Engine: engine, Cause: cause}
}

// validateInputs enforces the shared precondition every adapter shares:
// non-empty query, 1 <= maxResults <= 100.
func validateInputs(query string, maxResults int) error {
	if query == "" {
		return errors.New("searchadapters: query must not be empty")
	}
	if maxResults < 1 || maxResults > 100 {
		return fmt.Errorf("searchadapters: maxResults must be in [1,100], got %d", maxResults)
	}
	return nil
}
