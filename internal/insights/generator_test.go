package insights

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/geosight/geosight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func coverage(chatgpt, gemini, perplexity bool) map[models.Platform]bool {
	return map[models.Platform]bool{
		models.PlatformChatGPT:    chatgpt,
		models.PlatformGemini:     gemini,
		models.PlatformPerplexity: perplexity,
	}
}

func TestCitationGaps_FullCoverageHasNoGaps(t *testing.T) {
	gen := seeded(1)

	for _, sentiment := range []models.Sentiment{models.SentimentPositive, models.SentimentNeutral} {
		gaps := gen.CitationGaps(Context{
			BrandName:         "Acme",
			Industry:          "crm",
			OverallSentiment:  sentiment,
			PlatformMentioned: coverage(true, true, true),
		})
		assert.NotNil(t, gaps)
		assert.Empty(t, gaps, "sentiment %s", sentiment)
	}
}

func TestCitationGaps_ClaudeIsNotRequired(t *testing.T) {
	mentioned := coverage(true, true, true)
	mentioned[models.PlatformClaude] = false

	gaps := seeded(1).CitationGaps(Context{
		BrandName:         "Acme",
		Industry:          "crm",
		OverallSentiment:  models.SentimentNeutral,
		PlatformMentioned: mentioned,
	})
	assert.Empty(t, gaps)
}

func TestCitationGaps_MissingPlatform(t *testing.T) {
	gaps := seeded(7).CitationGaps(Context{
		BrandName:         "Acme Cloud",
		Industry:          "CRM",
		OverallSentiment:  models.SentimentPositive,
		PlatformMentioned: coverage(true, false, true),
	})

	require.Len(t, gaps, len(citationVenues))

	for i, gap := range gaps {
		assert.Equal(t, citationVenues[i].Name, gap.Platform)
		assert.Equal(t, citationVenues[i].Action, gap.ActionType)
		assert.Contains(t, CompetitorsFor("crm"), gap.CompetitorMentioned)
		assert.NotContains(t, gap.PitchTemplate, "{")
		assert.NotContains(t, gap.Context, "{")

		switch {
		case i < 3:
			assert.Equal(t, models.PriorityHigh, gap.Priority)
			assert.True(t, gap.EstimatedImpact >= 5 && gap.EstimatedImpact <= 10, "impact %d", gap.EstimatedImpact)
		case i < 6:
			assert.Equal(t, models.PriorityMedium, gap.Priority)
			assert.True(t, gap.EstimatedImpact >= 3 && gap.EstimatedImpact <= 7, "impact %d", gap.EstimatedImpact)
		default:
			assert.Equal(t, models.PriorityLow, gap.Priority)
			assert.True(t, gap.EstimatedImpact >= 3 && gap.EstimatedImpact <= 7, "impact %d", gap.EstimatedImpact)
		}
	}

	assert.Equal(t, "https://reddit.com/r/crm", gaps[0].URL)
	assert.Equal(t, "https://x.com/search?q=acme+cloud", gaps[9].URL)
	assert.Contains(t, gaps[0].PitchTemplate, "Acme Cloud")
}

func TestCitationGaps_NegativeSentimentTriggers(t *testing.T) {
	gaps := seeded(3).CitationGaps(Context{
		BrandName:         "Acme",
		Industry:          "marketing",
		Competitors:       []string{"Rival"},
		OverallSentiment:  models.SentimentNegative,
		PlatformMentioned: coverage(true, true, true),
	})

	require.Len(t, gaps, 10)
	for _, gap := range gaps {
		assert.Equal(t, "Rival", gap.CompetitorMentioned)
	}
}

func TestCitationGaps_SeedIsReproducible(t *testing.T) {
	ctx := Context{
		BrandName:         "Acme",
		Industry:          "analytics",
		OverallSentiment:  models.SentimentNeutral,
		PlatformMentioned: coverage(false, false, false),
	}
	assert.Equal(t, seeded(99).CitationGaps(ctx), seeded(99).CitationGaps(ctx))
}

func TestHallucinationAlerts(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Triggered raises one or two alerts", func(t *testing.T) {
		for seed := int64(0); seed < 50; seed++ {
			gen := seeded(seed).WithClock(func() time.Time { return fixed })
			alerts := gen.HallucinationAlerts(Context{
				BrandName:         "Acme",
				Industry:          "crm",
				OverallSentiment:  models.SentimentNeutral,
				PlatformMentioned: coverage(true, true, false),
			})

			require.GreaterOrEqual(t, len(alerts), 1)
			require.LessOrEqual(t, len(alerts), 2)

			claims := make(map[string]bool)
			for _, alert := range alerts {
				assert.False(t, claims[alert.IncorrectClaim], "alerts are sampled without replacement")
				claims[alert.IncorrectClaim] = true

				assert.True(t, alert.Platform.Valid())
				assert.Equal(t, fixed, alert.DetectedAt)
				assert.Contains(t, alert.CorrectionDraft, alert.IncorrectClaim)
				assert.Contains(t, alert.CorrectionDraft, alert.CorrectInformation)
				assert.Equal(t, "AI Correction Request: Acme information", alert.ReportTemplate)
				assert.NotEmpty(t, alert.SourceSuggestion)
			}
		}
	})

	t.Run("Not triggered raises at most one alert", func(t *testing.T) {
		for seed := int64(0); seed < 50; seed++ {
			alerts := seeded(seed).HallucinationAlerts(Context{
				BrandName:         "Acme",
				Industry:          "crm",
				OverallSentiment:  models.SentimentPositive,
				PlatformMentioned: coverage(true, true, true),
			})
			assert.NotNil(t, alerts)
			assert.LessOrEqual(t, len(alerts), 1)
		}
	})
}

func TestCompetitorInsights(t *testing.T) {
	gen := seeded(11)

	t.Run("Industry table is capped at four", func(t *testing.T) {
		insights := gen.CompetitorInsights(Context{BrandName: "Acme", Industry: "crm"})
		require.Len(t, insights, 4)
		assert.Equal(t, "Salesforce", insights[0].CompetitorName)

		for _, insight := range insights {
			assert.True(t, insight.Estimated)
			assert.True(t, insight.VisibilityScore >= 45 && insight.VisibilityScore <= 85)
			assert.True(t, len(insight.PlatformsMentioned) >= 2 && len(insight.PlatformsMentioned) <= 4)
			assert.Len(t, insight.KeyStrengths, 3)
			assert.Len(t, insight.YourAdvantages, 2)
			assert.Contains(t, insight.StealOpportunities, "Create comparison content: Acme vs "+insight.CompetitorName)
		}
	})

	t.Run("Request competitors win", func(t *testing.T) {
		insights := gen.CompetitorInsights(Context{
			BrandName:   "Acme",
			Industry:    "crm",
			Competitors: []string{"Rival", " ", "Other"},
		})
		require.Len(t, insights, 2)
		assert.Equal(t, "Rival", insights[0].CompetitorName)
		assert.Equal(t, "Other", insights[1].CompetitorName)
	})

	t.Run("Unknown industry uses defaults", func(t *testing.T) {
		insights := gen.CompetitorInsights(Context{BrandName: "Acme", Industry: "aerospace"})
		require.Len(t, insights, 4)
		assert.Equal(t, "Competitor A", insights[0].CompetitorName)
	})
}

func TestContentRecommendations(t *testing.T) {
	recs := ContentRecommendations(Context{BrandName: "Acme", Industry: "project management"})
	require.Len(t, recs, 4)

	assert.Equal(t, "Ultimate Project Management FAQ: Acme Answers Your Top Questions", recs[0].Title)
	assert.Equal(t, "faq", recs[0].ContentType)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	assert.Equal(t, []string{"What is Acme?", "Best project management tools", "Acme review"}, recs[0].TargetQueries)

	for _, rec := range recs {
		assert.False(t, strings.Contains(rec.Title, "{"), rec.Title)
	}
}

func TestSchemaRecommendations(t *testing.T) {
	recs := SchemaRecommendations(Context{BrandName: "Acme Cloud", Industry: "crm"})
	require.Len(t, recs, 2)

	org := recs[0].GeneratedSchema
	assert.Equal(t, "Organization", recs[0].SchemaType)
	assert.Equal(t, "https://schema.org", org["@context"])
	assert.Equal(t, "Acme Cloud", org["name"])
	assert.Equal(t, "https://acmecloud.com", org["url"])

	faq := recs[1].GeneratedSchema
	assert.Equal(t, "FAQPage", faq["@type"])
	entries, ok := faq["mainEntity"].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 2)
	assert.Equal(t, "What is Acme Cloud?", entries[0]["name"])

	withURL := SchemaRecommendations(Context{BrandName: "Acme", URL: "https://acme.io"})
	assert.Equal(t, "https://acme.io", withURL[0].GeneratedSchema["url"])
}

func TestActionCounts(t *testing.T) {
	gaps := []models.CitationGap{{Priority: models.PriorityHigh}, {Priority: models.PriorityLow}}
	alerts := []models.HallucinationAlert{{Severity: models.PriorityCritical}, {Severity: models.PriorityMedium}}
	content := make([]models.ContentRecommendation, 4)
	schema := make([]models.SchemaRecommendation, 2)

	total, critical := ActionCounts(gaps, alerts, content, schema)
	assert.Equal(t, 10, total)
	assert.Equal(t, 1, critical)

	total, critical = ActionCounts(nil, nil, nil, nil)
	assert.Zero(t, total)
	assert.Zero(t, critical)
}

func TestCompetitorsFor_ReturnsCopy(t *testing.T) {
	list := CompetitorsFor("CRM")
	require.NotEmpty(t, list)
	list[0] = "mutated"
	assert.Equal(t, "Salesforce", CompetitorsFor("crm")[0])
}
