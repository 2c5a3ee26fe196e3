// File: internal/querygen/strategy.go
package querygen

import (
	"fmt"
	"strings"

	"github.com/kevinhagel/northstar-funding-sub000/internal/models"
	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// strategy is a tagged choice: two variants keyed by SearchEngineType,
// no inheritance.
type strategy interface {
	// buildPrompt renders the LLM prompt asking for N queries.
	buildPrompt(req models.QueryGenerationRequest, n int) string
	// fallback deterministically derives a query list from taxonomy
	// keywords/descriptions when the LLM is unavailable; never fails.
	fallback(req models.QueryGenerationRequest, n int) []string
	// validateLength reports whether q respects this strategy's word-count
	// class; violations are flagged in logs, never hard-rejected.
	validateLength(q string) bool
}

// selectStrategy implements the "strategy selection keyed by
// searchEngine" tagged choice.
func selectStrategy(engine taxonomy.SearchEngineType) strategy {
	switch engine {
	case taxonomy.EngineTavily, taxonomy.EnginePerplexica:
		return aiOptimizedStrategy{}
	default:
		return keywordStrategy{}
	}
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// keywordStrategy targets BRAVE/SERPER/SEARXNG: short 3-8 word queries.
type keywordStrategy struct{}

func (keywordStrategy) buildPrompt(req models.QueryGenerationRequest, n int) string {
	var categoryPhrases []string
	for _, c := range req.Categories {
		categoryPhrases = append(categoryPhrases, c.Keywords())
	}
	geoPhrase := ""
	if req.Geographic != "" {
		geoPhrase = req.Geographic.Modifier()
	}
	return fmt.Sprintf(
		"Generate %d distinct search-engine queries, each 3 to 8 words, one per line, "+
			"for: %s%s. Return only the queries, no numbering or commentary.",
		n, strings.Join(categoryPhrases, "; "), geoSuffix(geoPhrase),
	)
}

func (keywordStrategy) fallback(req models.QueryGenerationRequest, n int) []string {
	var out []string
	geo := ""
	if req.Geographic != "" {
		geo = " " + req.Geographic.Modifier()
	}
	for _, c := range req.Categories {
		out = append(out, strings.TrimSpace(c.Keywords()+geo))
		if len(out) >= n {
			break
		}
	}
	return out
}

func (keywordStrategy) validateLength(q string) bool {
	n := wordCount(q)
	return n >= 3 && n <= 8
}

// aiOptimizedStrategy targets TAVILY/PERPLEXICA: long 12-40 word natural
// language queries.
type aiOptimizedStrategy struct{}

func (aiOptimizedStrategy) buildPrompt(req models.QueryGenerationRequest, n int) string {
	var descriptions []string
	for _, c := range req.Categories {
		descriptions = append(descriptions, c.Description())
	}
	geoPhrase := ""
	if req.Geographic != "" {
		geoPhrase = req.Geographic.Description()
	}
	return fmt.Sprintf(
		"Generate %d distinct natural-language search queries, each 12 to 40 words, one per line, "+
			"exploring funding opportunities described as: %s%s. Return only the queries, no numbering or commentary.",
		n, strings.Join(descriptions, " "), geoSuffix(geoPhrase),
	)
}

func (aiOptimizedStrategy) fallback(req models.QueryGenerationRequest, n int) []string {
	var out []string
	for _, c := range req.Categories {
		sentence := c.Description()
		if req.Geographic != "" {
			sentence += " Specifically " + req.Geographic.Description()
		}
		out = append(out, sentence)
		if len(out) >= n {
			break
		}
	}
	return out
}

func (aiOptimizedStrategy) validateLength(q string) bool {
	n := wordCount(q)
	return n >= 12 && n <= 40
}

func geoSuffix(geoPhrase string) string {
	if geoPhrase == "" {
		return ""
	}
	return ". Geographic focus: " + geoPhrase
}
