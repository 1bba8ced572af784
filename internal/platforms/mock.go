package platforms

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/geosight/geosight/internal/models"
)

// DefaultMentionProbability is the share of simulated answers that mention the brand
const DefaultMentionProbability = 0.6

// cannedAnswers are the bodies of simulated answers, keyed by platform then by
// "industry" or "reputation"
var cannedAnswers = map[models.Platform]map[string]string{
	models.PlatformChatGPT: {
		"industry": `Based on my analysis, here are the top recommended tools:

1. **Salesforce** - Enterprise CRM leader with comprehensive features
2. **HubSpot** - Great for small to mid-size businesses, excellent free tier
3. **Pipedrive** - Sales-focused CRM with intuitive pipeline management
4. **Zoho CRM** - Cost-effective with extensive customization options
5. **Monday.com** - Visual project management with CRM capabilities

Each of these offers different strengths depending on your specific needs. Salesforce excels in enterprise features, while HubSpot provides better value for growing companies.`,
		"reputation": `The company has built a solid reputation in the industry. Key points:

**Strengths:**
- Innovative product development
- Strong customer support
- Regular feature updates
- Good integration ecosystem

**Considerations:**
- Pricing can be on the higher end
- Learning curve for advanced features

Overall, they are considered reliable and trusted by many businesses in the space. The company continues to invest in product development and has shown consistent growth.`,
	},
	models.PlatformGemini: {
		"industry": `Here are the top tools I'd recommend:

**Enterprise Solutions:**
- Salesforce - Industry standard for large organizations
- Microsoft Dynamics 365 - Strong for Microsoft ecosystem users

**Mid-Market:**
- HubSpot - Excellent marketing and sales alignment
- Pipedrive - Sales team favorite

**Small Business:**
- Zoho CRM - Best value proposition
- Freshsales - Simple and effective

The best choice depends on your team size, budget, and specific workflow requirements.`,
		"reputation": `Based on available information:

The brand is recognized as a reputable player in the market. Users frequently mention:
- Reliable service
- Good customer experience
- Competitive pricing
- Active development

Some users have noted that the product could benefit from more advanced reporting features. However, the overall sentiment is positive, with strong reviews on platforms like G2 and Capterra.`,
	},
	models.PlatformPerplexity: {
		"industry": `According to recent industry analysis and user reviews:

**Top Recommendations:**
1. Salesforce - 4.4/5 on G2, used by 150,000+ companies
2. HubSpot - 4.5/5 rating, particularly strong for inbound marketing
3. Pipedrive - 4.3/5, praised for ease of use
4. Zoho CRM - 4.1/5, best for budget-conscious teams

**Sources:** G2.com, Capterra, TechCrunch reviews, Reddit r/sales discussions

Each tool has different pricing tiers and feature sets that may suit different use cases.`,
		"reputation": `Based on my search of available sources:

The brand has an established presence with the following reputation indicators:

**Review Scores:**
- G2: 4.3/5 (500+ reviews)
- Capterra: 4.4/5
- TrustRadius: 8.2/10

**Key Mentions:**
- Featured in industry publications
- Active community presence
- Regular product updates

**Areas for Improvement:**
- Mobile app experience
- Documentation clarity

**Sources:** G2.com, Capterra, company blog, Reddit mentions`,
	},
	models.PlatformClaude: {
		"industry": `Several tools are widely used in this space:

1. **Salesforce** - Deep customization and a large partner ecosystem
2. **HubSpot** - Approachable interface with a generous free tier
3. **Zoho CRM** - Affordable option for smaller teams
4. **Pipedrive** - Focused on visual sales pipelines

The right choice depends on team size, integrations you already rely on, and budget.`,
		"reputation": `From what is publicly available, the company is generally seen as a dependable vendor.

- Customers point to responsive support and steady product updates
- Reviews on G2 and Capterra are mostly favorable
- Some users mention that advanced configuration takes time to learn

Overall the reputation is positive, though it is worth checking recent reviews for your specific use case.`,
	},
}

// brandParagraphs are prepended to a canned body when a simulated answer mentions the brand
var brandParagraphs = []string{
	"{brand} is a well-regarded {industry} option. Users describe it as reliable and intuitive, and it is often recommended alongside the tools below.",
	"Top pick: {brand} is frequently recommended for {industry} teams thanks to its flexible pricing and responsive support.",
	"1. **{brand}** - A popular {industry} choice, praised for ease of use and strong integrations",
	"{brand} appears in some {industry} discussions, although reviewers mention a steep learning curve and occasionally slow performance.",
}

var competitorParagraphs = []string{
	"Teams evaluating {industry} tools usually shortlist {competitor} first.",
	"Most {industry} comparisons start with {competitor} and a couple of established alternatives.",
}

var mockCitations = []string{
	"https://www.g2.com/categories/{industry}",
	"https://www.capterra.com/{industry}-software/",
	"https://www.reddit.com/r/{industry}/",
}

// cannedKind maps a query category to the canned body that answers it
func cannedKind(category models.QueryCategory) string {
	switch category {
	case models.CategoryReputation, models.CategoryProduct:
		return "reputation"
	default:
		return "industry"
	}
}

func cannedAnswer(platform models.Platform, category models.QueryCategory) string {
	answers, ok := cannedAnswers[platform]
	if !ok {
		answers = cannedAnswers[models.PlatformChatGPT]
	}
	return answers[cannedKind(category)]
}

// FallbackResponse is the canned answer recorded when a live query fails or times out
func FallbackResponse(q models.PlatformQuery, err error) models.PlatformResponse {
	resp := models.PlatformResponse{
		Platform: q.Platform,
		Category: q.Category,
		Query:    q.Text,
		Response: cannedAnswer(q.Platform, q.Category),
		IsMock:   true,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// MockClient simulates every platform for which no API key is configured. Whether
// an answer mentions the brand is drawn from the injected random source.
type MockClient struct {
	mu          sync.Mutex
	rng         *rand.Rand
	probability float64
}

// NewMockClient creates a simulated platform. A nil rng is seeded from the clock;
// a probability outside [0, 1] selects DefaultMentionProbability.
func NewMockClient(rng *rand.Rand, probability float64) *MockClient {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if probability < 0 || probability > 1 {
		probability = DefaultMentionProbability
	}
	return &MockClient{rng: rng, probability: probability}
}

func (m *MockClient) GetName() string {
	return "mock"
}

func (m *MockClient) IsEnabled() bool {
	return true
}

// Query synthesizes an answer for q.Platform. It only fails when ctx is done.
func (m *MockClient) Query(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error) {
	if err := ctx.Err(); err != nil {
		return models.PlatformResponse{}, err
	}

	industry := strings.TrimSpace(q.Industry)
	if industry == "" {
		industry = "software"
	}

	m.mu.Lock()
	mentioned := q.BrandName != "" && m.rng.Float64() < m.probability
	var paragraph string
	if mentioned {
		paragraph = brandParagraphs[m.rng.Intn(len(brandParagraphs))]
	} else {
		paragraph = competitorParagraphs[m.rng.Intn(len(competitorParagraphs))]
	}
	competitor := "Salesforce"
	if len(q.Competitors) > 0 {
		competitor = q.Competitors[m.rng.Intn(len(q.Competitors))]
	}
	m.mu.Unlock()

	replacer := strings.NewReplacer(
		"{brand}", q.BrandName,
		"{industry}", industry,
		"{competitor}", competitor,
	)

	resp := models.PlatformResponse{
		Platform: q.Platform,
		Category: q.Category,
		Query:    q.Text,
		Response: replacer.Replace(paragraph) + "\n\n" + cannedAnswer(q.Platform, q.Category),
		IsMock:   true,
	}

	if q.Platform == models.PlatformPerplexity {
		slug := strings.ReplaceAll(strings.ToLower(industry), " ", "-")
		for _, citation := range mockCitations {
			resp.Citations = append(resp.Citations, strings.ReplaceAll(citation, "{industry}", slug))
		}
	}

	return resp, nil
}
