package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/geosight/geosight/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultPerplexityModel   = "sonar"
	defaultPerplexityBaseURL = "https://api.perplexity.ai"
)

// PerplexityClient queries the Perplexity chat completions API
type PerplexityClient struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type perplexityResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// NewPerplexityClient creates a new Perplexity client. An empty baseURL targets the public API.
func NewPerplexityClient(apiKey, model, baseURL string) *PerplexityClient {
	if model == "" {
		model = defaultPerplexityModel
	}
	if baseURL == "" {
		baseURL = defaultPerplexityBaseURL
	}

	return &PerplexityClient{
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "GEO-Sight/1.0").
			SetHeader("Content-Type", "application/json"),
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (p *PerplexityClient) GetName() string {
	return string(models.PlatformPerplexity)
}

func (p *PerplexityClient) Platform() models.Platform {
	return models.PlatformPerplexity
}

func (p *PerplexityClient) IsEnabled() bool {
	return p.apiKey != ""
}

func (p *PerplexityClient) Query(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error) {
	body := perplexityRequest{
		Model:     p.model,
		Messages:  []chatMessage{{Role: "user", Content: q.Text}},
		MaxTokens: maxAnswerTokens,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(body).
		Post(p.baseURL + "/chat/completions")

	if err != nil {
		return models.PlatformResponse{}, fmt.Errorf("perplexity request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return models.PlatformResponse{}, fmt.Errorf("perplexity API returned status %d", resp.StatusCode())
	}

	var result perplexityResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return models.PlatformResponse{}, fmt.Errorf("failed to decode perplexity response: %w", err)
	}

	if len(result.Choices) == 0 {
		return models.PlatformResponse{}, fmt.Errorf("perplexity returned no choices")
	}

	logrus.Debugf("Perplexity answered %q with %d citations", q.Text, len(result.Citations))

	return models.PlatformResponse{
		Platform:  models.PlatformPerplexity,
		Category:  q.Category,
		Query:     q.Text,
		Response:  result.Choices[0].Message.Content,
		Citations: result.Citations,
	}, nil
}
