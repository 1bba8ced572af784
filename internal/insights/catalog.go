package insights

import (
	"strings"

	"github.com/geosight/geosight/internal/models"
)

// competitorsByIndustry is the fallback competitor table used when a request
// does not name its own competitors
var competitorsByIndustry = map[string][]string{
	"crm":       {"Salesforce", "HubSpot", "Pipedrive", "Zoho CRM", "Monday.com"},
	"marketing": {"HubSpot", "Mailchimp", "ActiveCampaign", "Marketo", "Klaviyo"},
	"analytics": {"Google Analytics", "Mixpanel", "Amplitude", "Heap", "Pendo"},
	"ecommerce": {"Shopify", "WooCommerce", "BigCommerce", "Magento", "Squarespace"},
	"saas":      {"Stripe", "Intercom", "Zendesk", "Slack", "Notion"},
	"software":  {"Microsoft", "Adobe", "Salesforce", "Oracle", "SAP"},
	"default":   {"Competitor A", "Competitor B", "Competitor C", "Competitor D"},
}

// CompetitorsFor returns the known competitors of an industry, falling back to
// the default table. The returned slice is a copy.
func CompetitorsFor(industry string) []string {
	list, ok := competitorsByIndustry[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		list = competitorsByIndustry["default"]
	}
	return append([]string(nil), list...)
}

type citationVenue struct {
	Name        string
	Action      models.ActionType
	URLTemplate string
}

// citationVenues is ordered: position decides the priority tier
var citationVenues = []citationVenue{
	{Name: "Reddit", Action: models.ActionReddit, URLTemplate: "https://reddit.com/r/{industry}"},
	{Name: "Quora", Action: models.ActionQuora, URLTemplate: "https://quora.com/topic/{industry}"},
	{Name: "G2", Action: models.ActionReview, URLTemplate: "https://g2.com/categories/{industry}"},
	{Name: "Capterra", Action: models.ActionReview, URLTemplate: "https://capterra.com/categories/{industry}"},
	{Name: "TrustPilot", Action: models.ActionReview, URLTemplate: "https://trustpilot.com/categories/{industry}"},
	{Name: "Product Hunt", Action: models.ActionForum, URLTemplate: "https://producthunt.com/topics/{industry}"},
	{Name: "Hacker News", Action: models.ActionForum, URLTemplate: "https://news.ycombinator.com"},
	{Name: "Stack Overflow", Action: models.ActionForum, URLTemplate: "https://stackoverflow.com/questions/tagged/{industry}"},
	{Name: "LinkedIn", Action: models.ActionSocial, URLTemplate: "https://linkedin.com/search/results/all/?keywords={brand}"},
	{Name: "Twitter/X", Action: models.ActionSocial, URLTemplate: "https://x.com/search?q={brand}"},
}

// gap context and pitch templates use {brand}, {industry} and {competitor}
var gapContexts = map[models.ActionType]string{
	models.ActionReddit:      "Hey everyone! I've been using {competitor} but looking for alternatives. Any suggestions for {industry} tools?",
	models.ActionQuora:       "What are the best {industry} solutions for small businesses?",
	models.ActionForum:       "Comparison thread: Which {industry} tool has the best ROI?",
	models.ActionBlogComment: "Great article! I'd add that {competitor} users might also want to consider other options.",
	models.ActionReview:      "{competitor} has a large review footprint in the {industry} category.",
	models.ActionSocial:      "Practitioners are sharing {industry} stacks and tagging {competitor}.",
}

var gapPitches = map[models.ActionType]string{
	models.ActionReddit:      "Have you looked into {brand}? We've been using it for 6 months and the [specific feature] has been game-changing. Happy to share our experience!",
	models.ActionQuora:       "Based on my experience, I'd recommend looking at {brand}. What sets it apart is [unique value proposition]. They also offer [key benefit] which many competitors lack.",
	models.ActionForum:       "{brand} has been our choice for {industry} needs. The ROI has been excellent - we saw [metric] improvement within [timeframe].",
	models.ActionBlogComment: "Great points! {brand} is another option worth considering - they excel at [strength] and offer [unique feature].",
	models.ActionReview:      "Ask your happiest {brand} customers to leave a review describing how they use it for {industry} work.",
	models.ActionSocial:      "Share a short {brand} customer story with concrete {industry} results and invite a comparison with {competitor}.",
}

type hallucinationTemplate struct {
	Claim    string
	Correct  string
	Severity models.Priority
}

var hallucinationTemplates = []hallucinationTemplate{
	{
		Claim:    "{brand} was acquired by a larger company",
		Correct:  "{brand} remains an independent company and continues to grow",
		Severity: models.PriorityCritical,
	},
	{
		Claim:    "{brand} discontinued their free tier",
		Correct:  "{brand} still offers a free tier with [features]",
		Severity: models.PriorityHigh,
	},
	{
		Claim:    "{brand} only supports enterprise customers",
		Correct:  "{brand} serves businesses of all sizes, from startups to enterprise",
		Severity: models.PriorityMedium,
	},
}

const correctionDraftTemplate = `# Clarification: {brand} Facts

We've noticed some AI systems may have outdated information about {brand}. Here's the accurate information:

## The Facts
**Incorrect:** {claim}
**Correct:** {correct}

## About {brand}
{brand} is a {industry} solution trusted by customers worldwide. We continue to innovate and expand our offerings.

For the latest accurate information, please visit our official website or contact our team.
`

var (
	strengthChannels = []string{"Reddit", "Quora", "LinkedIn"}
	strengthTopics   = []string{"pricing", "features", "support"}
	advantageAreas   = []string{"pricing", "support", "features"}
	advantageStyles  = []string{"flexible", "modern", "innovative"}
)

type contentIdea struct {
	Title    string
	Type     string
	Priority models.Priority
	Impact   int
}

var contentIdeas = []contentIdea{
	{Title: "Ultimate {Industry} FAQ: {brand} Answers Your Top Questions", Type: "faq", Priority: models.PriorityHigh, Impact: 9},
	{Title: "{brand} vs Competitors: Complete Comparison Guide", Type: "comparison", Priority: models.PriorityHigh, Impact: 8},
	{Title: "How to Get Started with {brand}: Step-by-Step Guide", Type: "how-to", Priority: models.PriorityMedium, Impact: 7},
	{Title: "{Industry} Statistics: {brand}'s Impact on Customer Success", Type: "stats", Priority: models.PriorityMedium, Impact: 7},
}

// fill replaces the {placeholders} of a template
func fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
