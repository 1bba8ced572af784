package audit

import (
	"strings"
	"testing"

	"github.com/geosight/geosight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCitations(t *testing.T) {
	text := "Read https://g2.com/crm. Also (see https://reddit.com/r/crm) and https://g2.com/crm again."

	citations := extractCitations([]string{"https://capterra.com/crm", " https://g2.com/crm "}, text)

	assert.Equal(t, []string{
		"https://capterra.com/crm",
		"https://g2.com/crm",
		"https://reddit.com/r/crm",
	}, citations)
}

func TestExtractCitations_Parentheses(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "balanced in path", text: "See https://en.wikipedia.org/wiki/Salesforce_(company) for details.", expected: "https://en.wikipedia.org/wiki/Salesforce_(company)"},
		{name: "wrapped in parentheses", text: "Reviews (https://g2.com/crm) are mixed.", expected: "https://g2.com/crm"},
		{name: "balanced and wrapped", text: "History (https://en.wikipedia.org/wiki/Acme_(brand)).", expected: "https://en.wikipedia.org/wiki/Acme_(brand)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.expected}, extractCitations(nil, tt.text))
		})
	}
}

func TestExtractCitations_None(t *testing.T) {
	citations := extractCitations(nil, "no links here")
	require.NotNil(t, citations)
	assert.Empty(t, citations)
}

func TestRankingPosition(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int // 0 means unranked
	}{
		{name: "numbered first", text: "1. Acme - great\n2. Rival", expected: 1},
		{name: "numbered third", text: "Intro line\n1. Rival\n2) Other\n3. **Acme**", expected: 3},
		{name: "bullets", text: "- Rival\n* Acme", expected: 2},
		{name: "not in a list", text: "Acme is good.\n- Rival", expected: 0},
		{name: "case insensitive", text: "• ACME CRM", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank := rankingPosition(tt.text, "Acme")
			if tt.expected == 0 {
				assert.Nil(t, rank)
				return
			}
			require.NotNil(t, rank)
			assert.Equal(t, tt.expected, *rank)
		})
	}
}

func TestIsRecommended(t *testing.T) {
	one, two := 1, 2

	assert.True(t, isRecommended(nil, &one))
	assert.False(t, isRecommended(nil, &two))
	assert.True(t, isRecommended([]string{"Acme is our top pick"}, &two))
	assert.True(t, isRecommended([]string{"We Recommend Acme"}, nil))
	assert.False(t, isRecommended([]string{"Acme exists"}, nil))
}

func TestPreview(t *testing.T) {
	short := "short answer"
	assert.Equal(t, short, preview(short))

	long := strings.Repeat("é", previewLength+10)
	p := preview(long)
	assert.True(t, strings.HasSuffix(p, "..."))
	assert.Equal(t, previewLength+3, len([]rune(p)))
}

func TestQueryTemplateRender(t *testing.T) {
	req := models.AuditRequest{BrandName: "Acme", Industry: "crm", UseCase: "sales"}

	assert.Equal(t, "What are the best crm tools in 2025?", QueryTemplates[0].render(req, 2025))
	assert.Equal(t, "What is Acme known for?", QueryTemplates[3].render(req, 2025))
	assert.Equal(t, "What are the top recommended crm tools for sales?", quickTemplates[0].render(req, 2025))
}
