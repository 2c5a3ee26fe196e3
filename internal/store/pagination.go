// File: internal/store/pagination.go
package store

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CursorInfo is the decoded position of a keyset-pagination cursor over
// (created_at, candidate_id).
type CursorInfo struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// EncodeCursor encodes cursor information into an opaque base64 string.
func EncodeCursor(info CursorInfo) string {
	encoded := info.ID.String() + "|" + strconv.FormatInt(info.Timestamp.Unix(), 10)
	return base64.URLEncoding.EncodeToString([]byte(encoded))
}

// DecodeCursor decodes a base64 cursor string back to CursorInfo. An
// empty cursor decodes to nil (first page).
func DecodeCursor(cursor string) (*CursorInfo, error) {
	if cursor == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}

	parts := strings.Split(string(decoded), "|")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor structure")
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor ID: %w", err)
	}

	timestamp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}

	return &CursorInfo{ID: id, Timestamp: time.Unix(timestamp, 0)}, nil
}

// PageInfo is the pagination metadata returned alongside a candidate page.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor,omitempty"`
	TotalCount  int64  `json:"totalCount,omitempty"`
}
