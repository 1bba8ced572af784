package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/geosight/geosight/internal/models"
)

// DefaultContextWindow is the number of characters kept on each side of a mention
const DefaultContextWindow = 100

// Detector finds brand and competitor mentions in platform responses
type Detector struct {
	window int
}

// NewDetector creates a detector with the given context window (characters per side).
// A non-positive window selects DefaultContextWindow.
func NewDetector(window int) *Detector {
	if window <= 0 {
		window = DefaultContextWindow
	}
	return &Detector{window: window}
}

// Detect reports whether brand occurs in text (case-insensitive substring) and
// extracts one context window per occurrence. Sentiment around the brand is
// classified on the space-joined windows.
func (d *Detector) Detect(text, brand string) models.MentionResult {
	result := models.MentionResult{
		Contexts:             []string{},
		SentimentAroundBrand: models.SentimentNeutral,
		Lexicon:              MatchLexicon(text),
	}

	if text == "" || strings.TrimSpace(brand) == "" {
		return result
	}

	if !strings.Contains(strings.ToLower(text), strings.ToLower(brand)) {
		return result
	}

	result.Mentioned = true
	result.Contexts = d.contexts(text, brand)

	if len(result.Contexts) > 0 {
		result.SentimentAroundBrand = Classify(strings.Join(result.Contexts, " ")).Label
	}

	return result
}

// DetectCompetitors returns every known competitor named in text. The sentiment
// reported for a competitor is that of the whole text, not of a window around it.
func (d *Detector) DetectCompetitors(text string, competitors []string) []models.CompetitorMention {
	found := make([]models.CompetitorMention, 0)
	if text == "" || len(competitors) == 0 {
		return found
	}

	lower := strings.ToLower(text)
	var overall *models.SentimentResult

	for _, competitor := range competitors {
		name := strings.TrimSpace(competitor)
		if name == "" || !strings.Contains(lower, strings.ToLower(name)) {
			continue
		}

		if overall == nil {
			sentiment := Classify(text)
			overall = &sentiment
		}

		found = append(found, models.CompetitorMention{
			Name:      competitor,
			Sentiment: overall.Label,
			Polarity:  overall.Polarity,
		})
	}

	return found
}

// contexts cuts a window around each non-overlapping occurrence of brand. Windows
// stop at line breaks and may overlap each other.
func (d *Detector) contexts(text, brand string) []string {
	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(brand))
	if err != nil {
		return []string{}
	}

	matches := pattern.FindAllStringIndex(text, -1)
	contexts := make([]string, 0, len(matches))

	for _, match := range matches {
		start := d.walkBack(text, match[0])
		end := d.walkForward(text, match[1])
		contexts = append(contexts, text[start:end])
	}

	return contexts
}

func (d *Detector) walkBack(text string, pos int) int {
	for n := 0; n < d.window && pos > 0; n++ {
		r, size := utf8.DecodeLastRuneInString(text[:pos])
		if r == '\n' {
			break
		}
		pos -= size
	}
	return pos
}

func (d *Detector) walkForward(text string, pos int) int {
	for n := 0; n < d.window && pos < len(text); n++ {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if r == '\n' {
			break
		}
		pos += size
	}
	return pos
}
