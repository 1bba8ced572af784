package scoring

import (
	"math"

	"github.com/geosight/geosight/internal/models"
)

// Strategy names
const (
	ScoreFromRatio          = "ratio"
	ScoreFromPlatformPoints = "platform_points"
)

// Input is everything a strategy may use to compute a visibility score
type Input struct {
	Mentions         []models.MentionResult
	OverallSentiment models.Sentiment
	CitationCount    int
}

// Strategy computes a visibility score in [0, 100]
type Strategy interface {
	Name() string
	Score(in Input) int
}

// ForMode returns the strategy used by an audit mode
func ForMode(mode models.AuditMode) Strategy {
	if mode == models.ModeQuick {
		return NewPlatformPointsScorer()
	}
	return RatioScorer{}
}

// RatioScorer weighs mention coverage (60), average polarity of mentioning
// responses (20) and their average citation quality (0.2 per point).
type RatioScorer struct{}

var _ Strategy = RatioScorer{}

func (RatioScorer) Name() string { return ScoreFromRatio }

func (RatioScorer) Score(in Input) int {
	total := len(in.Mentions)
	if total == 0 {
		return 0
	}

	var mentioned int
	var polaritySum float64
	var qualitySum int

	for _, m := range in.Mentions {
		if !m.Mentioned {
			continue
		}
		mentioned++
		polaritySum += m.SentimentScore
		qualitySum += m.CitationQuality
	}

	base := float64(mentioned) / float64(total) * 60

	var sentimentBonus, citationBonus float64
	if mentioned > 0 {
		sentimentBonus = polaritySum / float64(mentioned) * 20
		citationBonus = float64(qualitySum) / float64(mentioned) * 0.2
	}

	return clampScore(int(math.Round(base + sentimentBonus + citationBonus)))
}

// PlatformPointsScorer awards fixed points per mentioning platform, adjusts for
// the overall sentiment and adds a small citation bonus.
type PlatformPointsScorer struct {
	Points map[models.Platform]int
}

var _ Strategy = PlatformPointsScorer{}

// NewPlatformPointsScorer returns the scorer with the standard weights:
// 30 for ChatGPT, 30 for Gemini and 20 for Perplexity.
func NewPlatformPointsScorer() PlatformPointsScorer {
	return PlatformPointsScorer{
		Points: map[models.Platform]int{
			models.PlatformChatGPT:    30,
			models.PlatformGemini:     30,
			models.PlatformPerplexity: 20,
		},
	}
}

func (PlatformPointsScorer) Name() string { return ScoreFromPlatformPoints }

func (s PlatformPointsScorer) Score(in Input) int {
	mentioned := make(map[models.Platform]bool)
	for _, m := range in.Mentions {
		if m.Mentioned {
			mentioned[m.Platform] = true
		}
	}

	score := 0
	for platform, points := range s.Points {
		if mentioned[platform] {
			score += points
		}
	}

	switch in.OverallSentiment {
	case models.SentimentPositive:
		score += 10
	case models.SentimentNegative:
		score = max(0, score-10)
	}

	score += min(max(in.CitationCount, 0)*2, 10)

	return clampScore(score)
}

// Grade converts a visibility score to a letter grade
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	case score >= 45:
		return "D+"
	case score >= 40:
		return "D"
	case score >= 35:
		return "D-"
	default:
		return "F"
	}
}

// CitationQuality rates how well a mention is backed up, from 0 to 100.
// Unmentioned responses score 0.
func CitationQuality(m models.MentionResult) int {
	if !m.Mentioned {
		return 0
	}

	quality := 40
	quality += min(len(m.Citations)*10, 30)
	quality += min(len(m.Lexicon.Positive)*5, 20)
	quality -= len(m.Lexicon.Negative) * 5

	if m.RankingPosition != nil && *m.RankingPosition <= 3 {
		quality += 10
	}
	if m.IsRecommended {
		quality += 10
	}

	return clampScore(quality)
}

func clampScore(score int) int {
	return min(max(score, 0), 100)
}
