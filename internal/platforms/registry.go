package platforms

import (
	"context"
	"fmt"
	"sort"

	"github.com/geosight/geosight/internal/models"
	"github.com/sirupsen/logrus"
)

// Platform modes reported by the registry
const (
	ModeConfigured = "configured"
	ModeMock       = "mock"
)

// Registry dispatches queries to the client of each platform. Platforms without
// an enabled client are answered by the mock.
type Registry struct {
	clients map[models.Platform]Client
	mock    *MockClient
}

var _ Fetcher = (*Registry)(nil)

// NewRegistry creates a registry over the given clients
func NewRegistry(mock *MockClient, clients ...Client) *Registry {
	if mock == nil {
		mock = NewMockClient(nil, DefaultMentionProbability)
	}

	r := &Registry{
		clients: make(map[models.Platform]Client),
		mock:    mock,
	}

	for _, client := range clients {
		if client == nil {
			continue
		}
		if client.IsEnabled() {
			logrus.Infof("Enabled platform: %s", client.GetName())
		} else {
			logrus.Infof("Platform %s has no credentials, answers will be simulated", client.GetName())
		}
		r.clients[client.Platform()] = client
	}

	return r
}

// Fetch answers q with the platform's live client, or with the mock when the
// platform is not configured
func (r *Registry) Fetch(ctx context.Context, q models.PlatformQuery) (models.PlatformResponse, error) {
	if !q.Platform.Valid() {
		return models.PlatformResponse{}, fmt.Errorf("unknown platform %q", q.Platform)
	}

	client, ok := r.clients[q.Platform]
	if !ok || !client.IsEnabled() {
		return r.mock.Query(ctx, q)
	}

	return client.Query(ctx, q)
}

// Modes reports for every known platform whether it is queried live or simulated
func (r *Registry) Modes() map[models.Platform]string {
	modes := make(map[models.Platform]string, len(models.AllPlatforms))
	for _, platform := range models.AllPlatforms {
		modes[platform] = ModeMock
		if client, ok := r.clients[platform]; ok && client.IsEnabled() {
			modes[platform] = ModeConfigured
		}
	}
	return modes
}

// Client returns the live client registered for a platform
func (r *Registry) Client(platform models.Platform) (Client, bool) {
	client, ok := r.clients[platform]
	return client, ok
}

// Enabled returns the platforms with a live client, in audit order
func (r *Registry) Enabled() []models.Platform {
	var enabled []models.Platform
	for platform, client := range r.clients {
		if client.IsEnabled() {
			enabled = append(enabled, platform)
		}
	}
	order := make(map[models.Platform]int, len(models.AllPlatforms))
	for i, platform := range models.AllPlatforms {
		order[platform] = i
	}
	sort.Slice(enabled, func(i, j int) bool {
		return order[enabled[i]] < order[enabled[j]]
	})
	return enabled
}
