// File: internal/querygen/cachekey.go
package querygen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
)

// CacheKey computes the opaque QueryCacheKey for req: a hash of
// (searchEngine, sorted categories, geographic, optional taxonomy dims,
// maxQueries). Two requests with identical normalized inputs map to the
// same key.
func CacheKey(req models.QueryGenerationRequest) string {
	categories := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	sourceTypes := sortedStrings(req.SourceTypes)
	mechanisms := sortedStrings(req.Mechanisms)
	scales := sortedStrings(req.Scales)
	beneficiaries := sortedStrings(req.Beneficiaries)
	recipients := sortedStrings(req.Recipients)

	raw := fmt.Sprintf("engine=%s|categories=%s|geo=%s|max=%d|sources=%s|mechanisms=%s|scales=%s|beneficiaries=%s|recipients=%s|lang=%s",
		req.SearchEngine,
		strings.Join(categories, ","),
		req.Geographic,
		req.MaxQueries,
		strings.Join(sourceTypes, ","),
		strings.Join(mechanisms, ","),
		strings.Join(scales, ","),
		strings.Join(beneficiaries, ","),
		strings.Join(recipients, ","),
		req.Language,
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

type stringer interface {
	~string
}

func sortedStrings[T stringer](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	sort.Strings(out)
	return out
}
