package models

import "time"

// Platform identifies an AI answer engine that is queried during an audit
type Platform string

const (
	PlatformChatGPT    Platform = "chatgpt"
	PlatformGemini     Platform = "gemini"
	PlatformPerplexity Platform = "perplexity"
	PlatformClaude     Platform = "claude"
)

// AllPlatforms lists every supported platform in audit order
var AllPlatforms = []Platform{PlatformChatGPT, PlatformGemini, PlatformPerplexity, PlatformClaude}

// PrimaryPlatforms are the three canonical platforms used by quick audits and insight triggers
var PrimaryPlatforms = []Platform{PlatformChatGPT, PlatformGemini, PlatformPerplexity}

// Valid reports whether p is one of the known platforms
func (p Platform) Valid() bool {
	switch p {
	case PlatformChatGPT, PlatformGemini, PlatformPerplexity, PlatformClaude:
		return true
	}
	return false
}

// QueryCategory groups the questions asked to the platforms
type QueryCategory string

const (
	CategoryIndustry       QueryCategory = "industry"
	CategoryReputation     QueryCategory = "reputation"
	CategoryComparison     QueryCategory = "comparison"
	CategoryProduct        QueryCategory = "product"
	CategoryRecommendation QueryCategory = "recommendation"
	CategoryProblemSolving QueryCategory = "problem_solving"
)

// Sentiment is the three-way sentiment label
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Priority ranks action items; hallucination severity uses the same scale
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ActionType is the kind of venue a citation gap should be worked on
type ActionType string

const (
	ActionReddit      ActionType = "reddit"
	ActionQuora       ActionType = "quora"
	ActionForum       ActionType = "forum"
	ActionBlogComment ActionType = "blog_comment"
	ActionReview      ActionType = "review"
	ActionSocial      ActionType = "social"
)

// AuditMode selects the query plan and the scoring strategy
type AuditMode string

const (
	ModeComprehensive AuditMode = "comprehensive"
	ModeQuick         AuditMode = "quick"
)

// PlatformQuery is a single question sent to one platform
type PlatformQuery struct {
	Platform    Platform      `json:"platform"`
	Category    QueryCategory `json:"category"`
	Text        string        `json:"text"`
	BrandName   string        `json:"brand_name"`
	Industry    string        `json:"industry"`
	Competitors []string      `json:"competitors,omitempty"`
}

// PlatformResponse is the raw answer returned by a platform (or synthesized for it)
type PlatformResponse struct {
	Platform  Platform      `json:"platform"`
	Category  QueryCategory `json:"category"`
	Query     string        `json:"query"`
	Response  string        `json:"response"`
	IsMock    bool          `json:"is_mock"`
	Error     string        `json:"error,omitempty"`
	Citations []string      `json:"citations,omitempty"`
}

// SentimentResult is the output of the sentiment classifier
type SentimentResult struct {
	Label    Sentiment `json:"label"`
	Polarity float64   `json:"polarity"` // -1.0 to 1.0
}

// LexiconMatches holds the indicator words found in a text
type LexiconMatches struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
	Neutral  []string `json:"neutral"`
}

// CompetitorMention is a competitor found in a response, scored on the whole text
type CompetitorMention struct {
	Name      string    `json:"name"`
	Sentiment Sentiment `json:"sentiment"`
	Polarity  float64   `json:"polarity"`
}

// MentionResult is the analysis of one platform response
type MentionResult struct {
	Platform             Platform            `json:"platform"`
	QueryCategory        QueryCategory       `json:"query_category"`
	Query                string              `json:"query"`
	ResponsePreview      string              `json:"response_preview"`
	Mentioned            bool                `json:"brand_mentioned"`
	Contexts             []string            `json:"mention_contexts"`
	SentimentAroundBrand Sentiment           `json:"sentiment_around_brand"`
	Sentiment            Sentiment           `json:"sentiment"`       // whole response
	SentimentScore       float64             `json:"sentiment_score"` // whole response polarity
	Lexicon              LexiconMatches      `json:"lexicon"`
	CitationQuality      int                 `json:"citation_quality"` // 0-100
	Competitors          []CompetitorMention `json:"competitors_mentioned"`
	Citations            []string            `json:"citations"`
	RankingPosition      *int                `json:"ranking_position,omitempty"`
	IsRecommended        bool                `json:"is_recommended"`
	IsMock               bool                `json:"is_mock"`
	Error                string              `json:"error,omitempty"`
}

// CitationGap is a venue where competitors get cited and the brand does not
type CitationGap struct {
	Platform            string     `json:"platform"`
	URL                 string     `json:"url"`
	CompetitorMentioned string     `json:"competitor_mentioned"`
	Context             string     `json:"context"`
	Priority            Priority   `json:"priority"`
	EstimatedImpact     int        `json:"estimated_impact"` // 1-10
	PitchTemplate       string     `json:"pitch_template"`
	ActionType          ActionType `json:"action_type"`
}

// HallucinationAlert is a false or outdated claim an AI platform makes about the brand
type HallucinationAlert struct {
	Platform           Platform  `json:"platform"`
	IncorrectClaim     string    `json:"incorrect_claim"`
	CorrectInformation string    `json:"correct_information"`
	Severity           Priority  `json:"severity"`
	DetectedAt         time.Time `json:"detected_at"`
	CorrectionDraft    string    `json:"correction_draft"`
	SourceSuggestion   string    `json:"source_suggestion"`
	ReportTemplate     string    `json:"report_template"`
}

// CompetitorInsight is heuristic competitive intelligence. Estimated is always true:
// the values are generated placeholders, not measurements.
type CompetitorInsight struct {
	CompetitorName     string     `json:"competitor_name"`
	VisibilityScore    int        `json:"visibility_score"`
	PlatformsMentioned []Platform `json:"platforms_mentioned"`
	KeyStrengths       []string   `json:"key_strengths"`
	YourAdvantages     []string   `json:"your_advantages"`
	StealOpportunities []string   `json:"steal_opportunities"`
	Estimated          bool       `json:"estimated"`
}

// ContentRecommendation is a suggested piece of AI-friendly content
type ContentRecommendation struct {
	Title            string   `json:"title"`
	ContentType      string   `json:"content_type"` // faq, comparison, how-to, stats
	Priority         Priority `json:"priority"`
	EstimatedImpact  int      `json:"estimated_impact"`
	GeneratedContent string   `json:"generated_content"`
	TargetQueries    []string `json:"target_queries"`
}

// SchemaRecommendation is a JSON-LD block the brand should publish
type SchemaRecommendation struct {
	SchemaType          string                 `json:"schema_type"`
	Priority            Priority               `json:"priority"`
	GeneratedSchema     map[string]interface{} `json:"generated_schema"`
	ImplementationGuide string                 `json:"implementation_guide"`
}

// AuditRequest describes one audit run
type AuditRequest struct {
	BrandName   string    `json:"brand_name" yaml:"brand_name"`
	Industry    string    `json:"industry" yaml:"industry"`
	URL         string    `json:"url,omitempty" yaml:"url"`
	UseCase     string    `json:"use_case,omitempty" yaml:"use_case"`
	Competitors []string  `json:"competitors,omitempty" yaml:"competitors"`
	Mode        AuditMode `json:"mode,omitempty" yaml:"mode"`
}

// AuditResult is the complete, immutable outcome of an audit run
type AuditResult struct {
	ID        string    `json:"id"`
	BrandName string    `json:"brand_name"`
	Industry  string    `json:"industry"`
	URL       string    `json:"url,omitempty"`
	Mode      AuditMode `json:"mode"`

	VisibilityScore      int       `json:"visibility_score"` // 0-100
	VisibilityGrade      string    `json:"visibility_grade"` // A+ to F
	ScoringStrategy      string    `json:"scoring_strategy"`
	CitationQualityScore int       `json:"citation_quality_score"`
	SentimentScore       float64   `json:"sentiment_score"`
	OverallSentiment     Sentiment `json:"overall_sentiment"`

	PlatformMentioned map[Platform]bool `json:"platform_mentioned"`
	PlatformsPositive int               `json:"platforms_positive"`
	MockResponses     int               `json:"mock_responses"`

	Mentions               []MentionResult         `json:"mentions"`
	CitationGaps           []CitationGap           `json:"citation_gaps"`
	HallucinationAlerts    []HallucinationAlert    `json:"hallucination_alerts"`
	CompetitorInsights     []CompetitorInsight     `json:"competitor_insights"`
	ContentRecommendations []ContentRecommendation `json:"content_recommendations"`
	SchemaRecommendations  []SchemaRecommendation  `json:"schema_recommendations"`

	TotalActions     int `json:"total_actions"`
	CriticalActions  int `json:"critical_actions"`
	CompletedActions int `json:"completed_actions"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Mentioned reports whether the brand was mentioned by the given platform
func (r *AuditResult) Mentioned(p Platform) bool {
	return r.PlatformMentioned[p]
}

// AuditSummary is the listing view of an archived audit
type AuditSummary struct {
	ID               string    `json:"id"`
	BrandName        string    `json:"brand_name"`
	Industry         string    `json:"industry"`
	Mode             AuditMode `json:"mode"`
	VisibilityScore  int       `json:"visibility_score"`
	VisibilityGrade  string    `json:"visibility_grade"`
	OverallSentiment Sentiment `json:"overall_sentiment"`
	TotalActions     int       `json:"total_actions"`
	CreatedAt        time.Time `json:"created_at"`
}

// Summary returns the listing view of the result
func (r *AuditResult) Summary() AuditSummary {
	return AuditSummary{
		ID:               r.ID,
		BrandName:        r.BrandName,
		Industry:         r.Industry,
		Mode:             r.Mode,
		VisibilityScore:  r.VisibilityScore,
		VisibilityGrade:  r.VisibilityGrade,
		OverallSentiment: r.OverallSentiment,
		TotalActions:     r.TotalActions,
		CreatedAt:        r.CreatedAt,
	}
}

// Alert represents an urgent notification
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "critical", "urgent", "info"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	AuditID   string    `json:"audit_id,omitempty"`
	BrandName string    `json:"brand_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
