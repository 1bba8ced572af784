package platforms

import (
	"context"
	"fmt"
	"strings"

	"github.com/geosight/geosight/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClient queries Gemini through the Google AI generative language API
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

func (g *GeminiClient) GetName() string {
	return string(models.PlatformGemini)
}

func (g *GeminiClient) Platform() models.Platform {
	return models.PlatformGemini
}

func (g *GeminiClient) IsEnabled() bool {
	return g.apiKey != ""
}

func (g *GeminiClient) Query(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return models.PlatformResponse{}, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetMaxOutputTokens(maxAnswerTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(q.Text))
	if err != nil {
		return models.PlatformResponse{}, fmt.Errorf("gemini generation failed: %w", err)
	}

	text := candidateText(resp)
	if text == "" {
		return models.PlatformResponse{}, fmt.Errorf("gemini returned no text")
	}

	return models.PlatformResponse{
		Platform: models.PlatformGemini,
		Category: q.Category,
		Query:    q.Text,
		Response: text,
	}, nil
}

// candidateText joins the text parts of the first candidate that has content
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}
