package analysis

import (
	"strings"

	"github.com/geosight/geosight/internal/models"
)

// Brand reputation indicators tuned for B2B software. Matching is by substring,
// so "unreliable" also reports "reliable".
var (
	PositiveIndicators = []string{
		"reliable", "trusted", "best", "leading", "recommended", "popular",
		"excellent", "innovative", "efficient", "powerful", "superior",
		"top-rated", "award-winning", "industry-leading", "user-friendly",
		"highly rated", "premium", "exceptional", "outstanding", "first-choice",
	}

	NegativeIndicators = []string{
		"outdated", "expensive", "complicated", "unreliable", "buggy",
		"discontinued", "closed", "out of business", "shutdown", "failed",
		"problematic", "limited", "poor", "slow", "difficult", "overpriced",
		"lacking", "behind", "struggling", "declining",
	}

	NeutralIndicators = []string{
		"average", "standard", "typical", "basic", "alternative",
		"option", "competitor", "similar", "comparable", "moderate",
		"conventional", "ordinary", "mainstream", "adequate", "mid-range",
		"generic", "regular", "common", "traditional", "baseline",
	}
)

// MatchLexicon returns the indicator words that occur in text, in list order
func MatchLexicon(text string) models.LexiconMatches {
	lower := strings.ToLower(text)

	return models.LexiconMatches{
		Positive: matchAll(lower, PositiveIndicators),
		Negative: matchAll(lower, NegativeIndicators),
		Neutral:  matchAll(lower, NeutralIndicators),
	}
}

func matchAll(lower string, words []string) []string {
	matched := make([]string, 0)
	if lower == "" {
		return matched
	}
	for _, word := range words {
		if strings.Contains(lower, word) {
			matched = append(matched, word)
		}
	}
	return matched
}
