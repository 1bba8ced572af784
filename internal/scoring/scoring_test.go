package scoring

import (
	"math/rand"
	"testing"

	"github.com/geosight/geosight/internal/models"
	"github.com/stretchr/testify/assert"
)

func mention(platform models.Platform, mentioned bool, polarity float64, quality int) models.MentionResult {
	return models.MentionResult{
		Platform:        platform,
		Mentioned:       mentioned,
		SentimentScore:  polarity,
		CitationQuality: quality,
	}
}

func TestRatioScorer_Score(t *testing.T) {
	scorer := RatioScorer{}

	tests := []struct {
		name     string
		mentions []models.MentionResult
		expected int
	}{
		{
			name:     "No queries",
			mentions: nil,
			expected: 0,
		},
		{
			name: "Nothing mentioned",
			mentions: []models.MentionResult{
				mention(models.PlatformChatGPT, false, 0.5, 0),
				mention(models.PlatformGemini, false, 0, 0),
			},
			expected: 0,
		},
		{
			name: "Half mentioned",
			// base 30, sentiment 0.5*20 = 10, citation 50*0.2 = 10
			mentions: []models.MentionResult{
				mention(models.PlatformChatGPT, true, 0.5, 50),
				mention(models.PlatformGemini, false, 0, 0),
			},
			expected: 50,
		},
		{
			name: "All mentioned at maximum",
			mentions: []models.MentionResult{
				mention(models.PlatformChatGPT, true, 1.0, 100),
				mention(models.PlatformGemini, true, 1.0, 100),
			},
			expected: 100,
		},
		{
			name: "Negative polarity is floored at zero",
			mentions: []models.MentionResult{
				mention(models.PlatformChatGPT, true, -1.0, 0),
				mention(models.PlatformGemini, false, 0, 0),
				mention(models.PlatformClaude, false, 0, 0),
				mention(models.PlatformPerplexity, false, 0, 0),
			},
			expected: 0,
		},
		{
			name: "Rounds to nearest",
			// base 20, sentiment 0.3*20 = 6, citation 42*0.2 = 8.4 -> 34.4
			mentions: []models.MentionResult{
				mention(models.PlatformChatGPT, true, 0.3, 42),
				mention(models.PlatformGemini, false, 0, 0),
				mention(models.PlatformPerplexity, false, 0, 0),
			},
			expected: 34,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.Score(Input{Mentions: tt.mentions}))
		})
	}
}

func TestPlatformPointsScorer_Score(t *testing.T) {
	scorer := NewPlatformPointsScorer()

	all := []models.MentionResult{
		mention(models.PlatformChatGPT, true, 0, 0),
		mention(models.PlatformGemini, true, 0, 0),
		mention(models.PlatformPerplexity, true, 0, 0),
	}
	none := []models.MentionResult{
		mention(models.PlatformChatGPT, false, 0, 0),
		mention(models.PlatformGemini, false, 0, 0),
		mention(models.PlatformPerplexity, false, 0, 0),
	}

	tests := []struct {
		name      string
		mentions  []models.MentionResult
		sentiment models.Sentiment
		citations int
		expected  int
	}{
		{"All platforms, positive, no citations", all, models.SentimentPositive, 0, 90},
		{"No platforms, negative, no citations", none, models.SentimentNegative, 0, 0},
		{"No platforms, neutral", none, models.SentimentNeutral, 0, 0},
		{"All platforms, negative", all, models.SentimentNegative, 0, 70},
		{"All platforms, positive, max citations", all, models.SentimentPositive, 12, 100},
		{"Citation bonus is capped", none, models.SentimentNeutral, 50, 10},
		{"Only Perplexity, positive, two citations", []models.MentionResult{
			mention(models.PlatformPerplexity, true, 0, 0),
			mention(models.PlatformChatGPT, false, 0, 0),
		}, models.SentimentPositive, 2, 34},
		{"Claude earns no points", []models.MentionResult{
			mention(models.PlatformClaude, true, 0, 0),
		}, models.SentimentNeutral, 0, 0},
		{"Platform counted once across queries", []models.MentionResult{
			mention(models.PlatformChatGPT, true, 0, 0),
			mention(models.PlatformChatGPT, true, 0, 0),
		}, models.SentimentNeutral, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Mentions: tt.mentions, OverallSentiment: tt.sentiment, CitationCount: tt.citations}
			assert.Equal(t, tt.expected, scorer.Score(in))
		})
	}
}

func TestStrategies_ScoreAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sentiments := []models.Sentiment{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative}
	strategies := []Strategy{RatioScorer{}, NewPlatformPointsScorer()}

	for i := 0; i < 2000; i++ {
		n := rng.Intn(40)
		mentions := make([]models.MentionResult, n)
		for j := range mentions {
			mentions[j] = mention(
				models.AllPlatforms[rng.Intn(len(models.AllPlatforms))],
				rng.Intn(2) == 0,
				rng.Float64()*2-1,
				rng.Intn(101),
			)
		}
		in := Input{
			Mentions:         mentions,
			OverallSentiment: sentiments[rng.Intn(len(sentiments))],
			CitationCount:    rng.Intn(20),
		}
		for _, strategy := range strategies {
			score := strategy.Score(in)
			assert.GreaterOrEqual(t, score, 0, strategy.Name())
			assert.LessOrEqual(t, score, 100, strategy.Name())
		}
	}
}

func TestForMode(t *testing.T) {
	assert.Equal(t, ScoreFromPlatformPoints, ForMode(models.ModeQuick).Name())
	assert.Equal(t, ScoreFromRatio, ForMode(models.ModeComprehensive).Name())
	assert.Equal(t, ScoreFromRatio, ForMode("").Name())
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "A+"}, {90, "A+"}, {89, "A"}, {85, "A"}, {80, "A-"},
		{75, "B+"}, {70, "B"}, {65, "B-"}, {60, "C+"}, {55, "C"},
		{50, "C-"}, {45, "D+"}, {40, "D"}, {35, "D-"}, {34, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Grade(tt.score), "score %d", tt.score)
	}
}

func TestGrade_Monotonic(t *testing.T) {
	order := []string{"F", "D-", "D", "D+", "C-", "C", "C+", "B-", "B", "B+", "A-", "A", "A+"}
	rank := make(map[string]int)
	for i, grade := range order {
		rank[grade] = i
	}

	previous := rank[Grade(0)]
	for score := 1; score <= 100; score++ {
		current := rank[Grade(score)]
		assert.GreaterOrEqual(t, current, previous, "score %d", score)
		previous = current
	}
}

func TestCitationQuality(t *testing.T) {
	top := 2
	low := 7

	tests := []struct {
		name     string
		mention  models.MentionResult
		expected int
	}{
		{
			name:     "Not mentioned",
			mention:  models.MentionResult{Mentioned: false, Citations: []string{"https://g2.com"}},
			expected: 0,
		},
		{
			name:     "Bare mention",
			mention:  models.MentionResult{Mentioned: true},
			expected: 40,
		},
		{
			name: "Citations, praise, ranking and recommendation",
			mention: models.MentionResult{
				Mentioned:       true,
				Citations:       []string{"a", "b", "c", "d"},
				Lexicon:         models.LexiconMatches{Positive: []string{"reliable", "trusted"}},
				RankingPosition: &top,
				IsRecommended:   true,
			},
			expected: 100,
		},
		{
			name: "Negative indicators and low ranking",
			mention: models.MentionResult{
				Mentioned:       true,
				Lexicon:         models.LexiconMatches{Negative: []string{"buggy", "slow", "poor"}},
				RankingPosition: &low,
			},
			expected: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CitationQuality(tt.mention))
		})
	}
}
