package analysis

import (
	"regexp"
	"strings"

	"github.com/geosight/geosight/internal/models"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1

	// a negated opinion word keeps half its strength with the sign flipped
	negationFactor = -0.5
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['\-][\p{L}\p{N}]+)*`)

// polarityLexicon maps opinion words to a polarity in [-1, 1]
var polarityLexicon = map[string]float64{
	// positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "best": 1.0, "better": 0.5,
	"amazing": 0.6, "awesome": 1.0, "fantastic": 0.4, "outstanding": 0.5, "exceptional": 0.67,
	"superior": 0.7, "impressive": 1.0, "solid": 0.3, "strong": 0.43, "reliable": 0.6,
	"trusted": 0.5, "leading": 0.4, "recommended": 0.5, "recommend": 0.4, "popular": 0.6,
	"innovative": 0.5, "efficient": 0.5, "powerful": 0.3, "intuitive": 0.5, "easy": 0.43,
	"user-friendly": 0.6, "top-rated": 0.6, "award-winning": 0.6, "industry-leading": 0.6,
	"premium": 0.4, "favorite": 0.5, "love": 0.5, "loved": 0.7, "helpful": 0.5,
	"reputable": 0.6, "satisfied": 0.5, "competitive": 0.2, "effective": 0.6, "valuable": 0.5,
	"robust": 0.4, "seamless": 0.5, "excels": 0.6, "praised": 0.5, "appreciate": 0.4,
	"nice": 0.6, "happy": 0.8, "success": 0.5, "successful": 0.75, "growth": 0.2,
	"thriving": 0.6, "well": 0.2, "fast": 0.2, "affordable": 0.4, "flexible": 0.3,
	"comprehensive": 0.3, "renowned": 0.6, "notable": 0.3, "recognized": 0.3, "quality": 0.3,

	// negative
	"bad": -0.7, "poor": -0.4, "terrible": -1.0, "awful": -1.0, "horrible": -1.0,
	"worst": -1.0, "worse": -0.4, "outdated": -0.5, "expensive": -0.5, "overpriced": -0.6,
	"complicated": -0.5, "unreliable": -0.6, "buggy": -0.7, "broken": -0.4, "discontinued": -0.5,
	"failed": -0.5, "fail": -0.5, "failure": -0.6, "problematic": -0.5, "limited": -0.07,
	"slow": -0.3, "difficult": -0.5, "lacking": -0.4, "struggling": -0.4, "declining": -0.3,
	"frustrating": -0.6, "disappointing": -0.6, "disappointed": -0.75, "hate": -0.8, "annoying": -0.8,
	"confusing": -0.3, "clunky": -0.5, "unstable": -0.4, "insecure": -0.5, "vulnerable": -0.4,
	"complaint": -0.3, "complaints": -0.3, "issue": -0.2, "issues": -0.2, "problem": -0.3,
	"problems": -0.3, "shutdown": -0.4, "closed": -0.1, "mediocre": -0.4, "weak": -0.4,
	"steep": -0.2, "lawsuit": -0.5, "scam": -0.9, "unhelpful": -0.5, "avoid": -0.4,
}

var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "highly": 1.3, "really": 1.2, "incredibly": 1.4,
	"quite": 1.1, "most": 1.2, "so": 1.2, "super": 1.3, "truly": 1.2,
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nothing": true,
	"neither": true, "nor": true, "cannot": true, "hardly": true, "without": true,
}

// Label maps a polarity to its sentiment label
func Label(polarity float64) models.Sentiment {
	switch {
	case polarity > positiveThreshold:
		return models.SentimentPositive
	case polarity < negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Classify returns the sentiment label and polarity of text.
// Polarity is the mean of the opinion words found, adjusted for intensifiers and negation.
func Classify(text string) models.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return models.SentimentResult{Label: models.SentimentNeutral, Polarity: 0.0}
	}

	polarity := Polarity(text)
	return models.SentimentResult{Label: Label(polarity), Polarity: polarity}
}

// Polarity computes the lexical polarity of text in [-1, 1]
func Polarity(text string) float64 {
	tokens := tokenize(text)

	var sum float64
	var hits int

	for i, token := range tokens {
		value, ok := polarityLexicon[token]
		if !ok {
			continue
		}

		if i > 0 {
			if factor, ok := intensifiers[tokens[i-1]]; ok {
				value *= factor
			}
		}

		if isNegated(tokens, i) {
			value *= negationFactor
		}

		sum += clamp(value, -1, 1)
		hits++
	}

	if hits == 0 {
		return 0.0
	}

	return clamp(sum/float64(hits), -1, 1)
}

func tokenize(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, "’", "'"))
	return tokenPattern.FindAllString(text, -1)
}

// isNegated looks at the two tokens preceding position i
func isNegated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		if negators[tokens[j]] || strings.HasSuffix(tokens[j], "n't") {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
