package audit

import (
	"strconv"
	"strings"

	"github.com/geosight/geosight/internal/models"
)

// QueryTemplate is a question asked to every platform. Weight ranks how much
// the answer matters to buyers; it is reported, not scored.
type QueryTemplate struct {
	Category models.QueryCategory
	Text     string
	Weight   float64
}

// QueryTemplates is the comprehensive catalog. Audits use a prefix of it.
var QueryTemplates = []QueryTemplate{
	{models.CategoryIndustry, "What are the best {industry} tools in {year}?", 2.0},
	{models.CategoryIndustry, "Top {industry} solutions for businesses", 1.5},
	{models.CategoryIndustry, "Recommended {industry} software companies", 1.5},

	{models.CategoryReputation, "What is {brand_name} known for?", 2.0},
	{models.CategoryReputation, "Is {brand_name} a good company?", 1.5},
	{models.CategoryReputation, "Reviews and reputation of {brand_name}", 1.0},

	{models.CategoryComparison, "{brand_name} vs competitors", 2.0},
	{models.CategoryComparison, "Best alternatives to {brand_name}", 1.5},
	{models.CategoryComparison, "How does {brand_name} compare to others?", 1.0},

	{models.CategoryProduct, "What products does {brand_name} offer?", 1.5},
	{models.CategoryProduct, "{brand_name} pricing and features", 1.5},

	{models.CategoryRecommendation, "Should I use {brand_name} for my business?", 2.0},
	{models.CategoryRecommendation, "Recommend a {industry} solution", 1.5},

	{models.CategoryProblemSolving, "How to solve {industry} challenges?", 1.0},
	{models.CategoryProblemSolving, "Best practices for {industry}", 1.0},
}

// quickTemplates are the two questions of a quick audit
var quickTemplates = []QueryTemplate{
	{models.CategoryIndustry, "What are the top recommended {industry} tools for {use_case}?", 1.0},
	{models.CategoryReputation, "Explain the reputation of {brand_name}.", 1.0},
}

// DefaultTemplateCount is how many catalog templates a comprehensive audit asks
const DefaultTemplateCount = 8

func (t QueryTemplate) render(req models.AuditRequest, year int) string {
	return strings.NewReplacer(
		"{brand_name}", req.BrandName,
		"{industry}", req.Industry,
		"{use_case}", req.UseCase,
		"{year}", strconv.Itoa(year),
	).Replace(t.Text)
}
