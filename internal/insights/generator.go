package insights

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/geosight/geosight/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Context is the aggregate an audit run hands to the generators
type Context struct {
	BrandName         string
	Industry          string
	URL               string
	Competitors       []string
	OverallSentiment  models.Sentiment
	PlatformMentioned map[models.Platform]bool
}

// competitors returns the request competitors, or the industry table when none were given
func (c Context) competitors() []string {
	var named []string
	for _, competitor := range c.Competitors {
		if strings.TrimSpace(competitor) != "" {
			named = append(named, competitor)
		}
	}
	if len(named) > 0 {
		return named
	}
	return CompetitorsFor(c.Industry)
}

// primaryCoverage reports whether every primary platform mentioned the brand
func (c Context) primaryCoverage() bool {
	for _, platform := range models.PrimaryPlatforms {
		if !c.PlatformMentioned[platform] {
			return false
		}
	}
	return true
}

// Generator produces the action items of an audit. Competitor choice, impact
// estimates, alert sampling and competitor scores are drawn from the injected
// random source; a seeded source makes every output reproducible.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator drawing from rng. A nil rng is seeded from the clock.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, now: time.Now}
}

// WithClock overrides the clock used for alert timestamps
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

// between returns a random int in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	return lo + g.intn(hi-lo+1)
}

func (g *Generator) pick(items []string) string {
	return items[g.intn(len(items))]
}

func (g *Generator) perm(n int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Perm(n)
}

// CitationGaps lists the venues where the brand should earn citations. It is
// empty when every primary platform mentions the brand and the overall
// sentiment is neutral or better.
func (g *Generator) CitationGaps(ctx Context) []models.CitationGap {
	gaps := make([]models.CitationGap, 0, len(citationVenues))
	if ctx.primaryCoverage() && ctx.OverallSentiment != models.SentimentNegative {
		return gaps
	}

	competitors := ctx.competitors()
	industry := strings.ToLower(strings.TrimSpace(ctx.Industry))

	for i, venue := range citationVenues {
		competitor := g.pick(competitors)
		values := map[string]string{
			"brand":      ctx.BrandName,
			"industry":   industry,
			"competitor": competitor,
		}

		priority, impact := models.PriorityLow, 0
		switch {
		case i < 3:
			priority, impact = models.PriorityHigh, g.between(5, 10)
		case i < 6:
			priority, impact = models.PriorityMedium, g.between(3, 7)
		default:
			impact = g.between(3, 7)
		}

		gaps = append(gaps, models.CitationGap{
			Platform:            venue.Name,
			URL:                 fill(venue.URLTemplate, urlValues(ctx.BrandName, industry)),
			CompetitorMentioned: competitor,
			Context:             fill(gapContexts[venue.Action], values),
			Priority:            priority,
			EstimatedImpact:     impact,
			PitchTemplate:       fill(gapPitches[venue.Action], values),
			ActionType:          venue.Action,
		})
	}

	return gaps
}

// HallucinationAlerts samples between zero and two alerts. When the overall
// sentiment is negative or a primary platform misses the brand, at least one
// alert is raised.
func (g *Generator) HallucinationAlerts(ctx Context) []models.HallucinationAlert {
	count := g.intn(2)
	if ctx.OverallSentiment == models.SentimentNegative || !ctx.primaryCoverage() {
		count++
	}

	alerts := make([]models.HallucinationAlert, 0, count)
	if count == 0 {
		return alerts
	}

	order := g.perm(len(hallucinationTemplates))
	for _, idx := range order[:count] {
		tmpl := hallucinationTemplates[idx]
		values := map[string]string{"brand": ctx.BrandName, "industry": ctx.Industry}
		claim := fill(tmpl.Claim, values)
		correct := fill(tmpl.Correct, values)

		values["claim"] = claim
		values["correct"] = correct

		alerts = append(alerts, models.HallucinationAlert{
			Platform:           models.AllPlatforms[g.intn(len(models.AllPlatforms))],
			IncorrectClaim:     claim,
			CorrectInformation: correct,
			Severity:           tmpl.Severity,
			DetectedAt:         g.now().UTC(),
			CorrectionDraft:    fill(correctionDraftTemplate, values),
			SourceSuggestion:   "Create an official blog post or press release about this topic",
			ReportTemplate:     "AI Correction Request: " + ctx.BrandName + " information",
		})
	}

	return alerts
}

// CompetitorInsights builds heuristic profiles for up to four competitors.
// Scores and platforms are generated placeholders, flagged as Estimated.
func (g *Generator) CompetitorInsights(ctx Context) []models.CompetitorInsight {
	competitors := ctx.competitors()
	if len(competitors) > 4 {
		competitors = competitors[:4]
	}

	insights := make([]models.CompetitorInsight, 0, len(competitors))
	for _, competitor := range competitors {
		insights = append(insights, models.CompetitorInsight{
			CompetitorName:     competitor,
			VisibilityScore:    g.between(45, 85),
			PlatformsMentioned: g.samplePlatforms(g.between(2, 4)),
			KeyStrengths: []string{
				"Strong brand recognition",
				"Active in " + g.pick(strengthChannels) + " discussions",
				"Frequently cited for " + g.pick(strengthTopics),
			},
			YourAdvantages: []string{
				"Better " + g.pick(advantageAreas),
				"More " + g.pick(advantageStyles) + " approach",
			},
			StealOpportunities: []string{
				"Target '" + competitor + " alternatives' queries",
				"Create comparison content: " + ctx.BrandName + " vs " + competitor,
				"Respond to " + competitor + " complaints on social",
			},
			Estimated: true,
		})
	}

	return insights
}

func (g *Generator) samplePlatforms(n int) []models.Platform {
	order := g.perm(len(models.AllPlatforms))
	platforms := make([]models.Platform, 0, n)
	for _, idx := range order[:n] {
		platforms = append(platforms, models.AllPlatforms[idx])
	}
	return platforms
}

// ContentRecommendations returns the fixed content plan for the brand
func ContentRecommendations(ctx Context) []models.ContentRecommendation {
	values := map[string]string{
		"brand":    ctx.BrandName,
		"Industry": titleCase(ctx.Industry),
	}

	recommendations := make([]models.ContentRecommendation, 0, len(contentIdeas))
	for _, idea := range contentIdeas {
		title := fill(idea.Title, values)
		recommendations = append(recommendations, models.ContentRecommendation{
			Title:            title,
			ContentType:      idea.Type,
			Priority:         idea.Priority,
			EstimatedImpact:  idea.Impact,
			GeneratedContent: "[AI-generated content will appear here for: " + title + "]",
			TargetQueries: []string{
				"What is " + ctx.BrandName + "?",
				"Best " + ctx.Industry + " tools",
				ctx.BrandName + " review",
			},
		})
	}

	return recommendations
}

func urlValues(brand, industry string) map[string]string {
	return map[string]string{
		"brand":    strings.ReplaceAll(strings.ToLower(brand), " ", "+"),
		"industry": strings.ReplaceAll(industry, " ", "-"),
	}
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// SchemaRecommendations returns Organization and FAQPage JSON-LD blocks for the brand site
func SchemaRecommendations(ctx Context) []models.SchemaRecommendation {
	site := ctx.URL
	if site == "" {
		site = "https://" + strings.ReplaceAll(strings.ToLower(ctx.BrandName), " ", "") + ".com"
	}

	organization := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        ctx.BrandName,
		"url":         site,
		"description": ctx.BrandName + " is a leading " + ctx.Industry + " solution",
		"sameAs": []string{
			"https://linkedin.com/company/" + slug(ctx.BrandName),
			"https://x.com/" + slug(ctx.BrandName),
		},
	}

	faq := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "FAQPage",
		"mainEntity": []map[string]interface{}{
			faqEntry("What is "+ctx.BrandName+"?",
				ctx.BrandName+" is a "+ctx.Industry+" solution that helps businesses improve their operations."),
			faqEntry("How much does "+ctx.BrandName+" cost?",
				ctx.BrandName+" offers flexible pricing plans. Visit our pricing page for current options."),
		},
	}

	return []models.SchemaRecommendation{
		{
			SchemaType:          "Organization",
			Priority:            models.PriorityHigh,
			GeneratedSchema:     organization,
			ImplementationGuide: "Add this JSON-LD to the <head> section of your homepage",
		},
		{
			SchemaType:          "FAQPage",
			Priority:            models.PriorityHigh,
			GeneratedSchema:     faq,
			ImplementationGuide: "Add this to your FAQ page to help AI systems understand common questions",
		},
	}
}

func faqEntry(question, answer string) map[string]interface{} {
	return map[string]interface{}{
		"@type": "Question",
		"name":  question,
		"acceptedAnswer": map[string]interface{}{
			"@type": "Answer",
			"text":  answer,
		},
	}
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// ActionCounts returns the total number of action items and how many of them are critical
func ActionCounts(gaps []models.CitationGap, alerts []models.HallucinationAlert, content []models.ContentRecommendation, schema []models.SchemaRecommendation) (total, critical int) {
	total = len(gaps) + len(alerts) + len(content) + len(schema)
	for _, gap := range gaps {
		if gap.Priority == models.PriorityCritical {
			critical++
		}
	}
	for _, alert := range alerts {
		if alert.Severity == models.PriorityCritical {
			critical++
		}
	}
	return total, critical
}
