package platforms

import (
	"context"
	"fmt"
	"strings"

	"github.com/geosight/geosight/internal/models"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const defaultChatGPTModel = openai.GPT4o

// ChatGPTClient queries ChatGPT through the OpenAI chat completions API
type ChatGPTClient struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewChatGPTClient creates a new ChatGPT client. An empty baseURL targets the public API.
func NewChatGPTClient(apiKey, model, baseURL string) *ChatGPTClient {
	if model == "" {
		model = defaultChatGPTModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &ChatGPTClient{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
		model:  model,
	}
}

func (c *ChatGPTClient) GetName() string {
	return string(models.PlatformChatGPT)
}

func (c *ChatGPTClient) Platform() models.Platform {
	return models.PlatformChatGPT
}

func (c *ChatGPTClient) IsEnabled() bool {
	return c.apiKey != ""
}

func (c *ChatGPTClient) Query(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: q.Text,
				},
			},
			MaxTokens: maxAnswerTokens,
		},
	)
	if err != nil {
		return models.PlatformResponse{}, fmt.Errorf("chatgpt completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return models.PlatformResponse{}, fmt.Errorf("chatgpt returned no choices")
	}

	logrus.Debugf("ChatGPT answered %q with %d tokens", q.Text, resp.Usage.CompletionTokens)

	return models.PlatformResponse{
		Platform: models.PlatformChatGPT,
		Category: q.Category,
		Query:    q.Text,
		Response: resp.Choices[0].Message.Content,
	}, nil
}
