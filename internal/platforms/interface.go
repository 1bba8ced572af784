package platforms

import (
	"context"

	"github.com/geosight/geosight/internal/models"
)

// Client interface defines the contract for all AI answer engines
type Client interface {
	GetName() string
	Platform() models.Platform
	IsEnabled() bool
	Query(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error)
}

// Fetcher returns the answer of a platform to one query. Implementations must be
// safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error)
}

const (
	systemPrompt    = "You are a helpful assistant providing information about business tools and brand reputations."
	maxAnswerTokens = 1000
)
