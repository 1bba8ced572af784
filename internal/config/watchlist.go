package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/geosight/geosight/internal/models"
	"gopkg.in/yaml.v3"
)

// Watchlist is the set of brands re-audited on the audit schedule
type Watchlist struct {
	Brands []models.AuditRequest `yaml:"brands"`
}

// LoadWatchlist reads a YAML watchlist file
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}
	return ParseWatchlist(data)
}

// ParseWatchlist decodes and validates watchlist YAML. Missing industries default
// to "software" and missing modes to comprehensive.
func ParseWatchlist(data []byte) (*Watchlist, error) {
	var watchlist Watchlist
	if err := yaml.Unmarshal(data, &watchlist); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %w", err)
	}

	for i := range watchlist.Brands {
		brand := &watchlist.Brands[i]
		brand.BrandName = strings.TrimSpace(brand.BrandName)
		if brand.BrandName == "" {
			return nil, fmt.Errorf("watchlist entry %d has no brand_name", i+1)
		}
		if brand.Industry == "" {
			brand.Industry = "software"
		}
		switch brand.Mode {
		case "":
			brand.Mode = models.ModeComprehensive
		case models.ModeComprehensive, models.ModeQuick:
		default:
			return nil, fmt.Errorf("watchlist entry %q has unknown mode %q", brand.BrandName, brand.Mode)
		}
	}

	return &watchlist, nil
}
