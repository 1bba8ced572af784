package platforms

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/geosight/geosight/internal/models"
)

const defaultClaudeModel = "claude-3-5-haiku-latest"

// ClaudeClient queries Claude through the Anthropic messages API
type ClaudeClient struct {
	client *anthropic.Client
	apiKey string
	model  string
}

// NewClaudeClient creates a new Claude client. An empty baseURL targets the public API.
func NewClaudeClient(apiKey, model, baseURL string) *ClaudeClient {
	if model == "" {
		model = defaultClaudeModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)

	return &ClaudeClient{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

func (c *ClaudeClient) GetName() string {
	return string(models.PlatformClaude)
}

func (c *ClaudeClient) Platform() models.Platform {
	return models.PlatformClaude
}

func (c *ClaudeClient) IsEnabled() bool {
	return c.apiKey != ""
}

func (c *ClaudeClient) Query(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxAnswerTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(q.Text)),
		},
	})
	if err != nil {
		return models.PlatformResponse{}, fmt.Errorf("claude message failed: %w", err)
	}

	var parts []string
	for _, block := range message.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}

	if len(parts) == 0 {
		return models.PlatformResponse{}, fmt.Errorf("claude returned no text")
	}

	return models.PlatformResponse{
		Platform: models.PlatformClaude,
		Category: q.Category,
		Query:    q.Text,
		Response: strings.Join(parts, "\n"),
	}, nil
}
