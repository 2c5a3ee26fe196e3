// File: internal/searchadapters/common.go
package searchadapters

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func trimString(s string) string {
	return strings.TrimSpace(s)
}

// probeHead is the cheap availability check shared by every adapter: a
// HEAD request on the caller's context, bounded by the adapter client's
// timeout, tolerant of any 2xx-5xx response (only transport-level failure
// means "unavailable").
func probeHead(ctx context.Context, client *http.Client, baseURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return true
}
