package audit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const previewLength = 300

var (
	urlPattern      = regexp.MustCompile(`https?://[^\s<>"'\[\]]+`)
	listItemPattern = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+`)
)

// recommendCues mark a brand context as an explicit recommendation
var recommendCues = []string{
	"recommend",
	"top pick",
	"best choice",
	"first choice",
	"go-to",
	"worth considering",
	"should consider",
}

// extractCitations merges provider citations with the URLs found in the text,
// keeping first-seen order
func extractCitations(provided []string, text string) []string {
	citations := make([]string, 0, len(provided))
	seen := make(map[string]bool)

	add := func(url string) {
		url = trimURL(strings.TrimSpace(url))
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		citations = append(citations, url)
	}

	for _, url := range provided {
		add(url)
	}
	for _, url := range urlPattern.FindAllString(text, -1) {
		add(url)
	}

	return citations
}

// trimURL drops trailing punctuation and closing parentheses that have no
// opening match inside the URL, so "(see https://x.io/a_(b))" keeps "_(b)".
func trimURL(url string) string {
	for {
		trimmed := strings.TrimRight(url, ".,;:!?*")
		if strings.HasSuffix(trimmed, ")") && strings.Count(trimmed, ")") > strings.Count(trimmed, "(") {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if trimmed == url {
			return url
		}
		url = trimmed
	}
}

// rankingPosition returns the 1-based position of the first list item naming
// brand, or nil when no list item does
func rankingPosition(text, brand string) *int {
	lowerBrand := strings.ToLower(brand)
	position := 0

	for _, line := range strings.Split(text, "\n") {
		if !listItemPattern.MatchString(line) {
			continue
		}
		position++
		if strings.Contains(strings.ToLower(line), lowerBrand) {
			rank := position
			return &rank
		}
	}

	return nil
}

// isRecommended reports whether the brand is ranked first or one of its
// contexts carries a recommendation cue
func isRecommended(contexts []string, rank *int) bool {
	if rank != nil && *rank == 1 {
		return true
	}
	for _, context := range contexts {
		lower := strings.ToLower(context)
		for _, cue := range recommendCues {
			if strings.Contains(lower, cue) {
				return true
			}
		}
	}
	return false
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLength]) + "..."
}
