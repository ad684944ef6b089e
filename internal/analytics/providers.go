package analytics

import (
	"context"

	"creator-pulse/internal/models"

	"github.com/google/uuid"
)

// TrendProvider supplies current trending topics per platform. The default
// implementation is static; a real data source can replace it without
// touching the analyzers.
type TrendProvider interface {
	TrendingTopics(ctx context.Context, platform models.Platform) ([]string, error)
}

// AudienceProvider supplies audience demographic breakdowns
type AudienceProvider interface {
	AudienceBreakdown(ctx context.Context, creatorID uuid.UUID) (map[string]float64, error)
}

// StaticTrendProvider returns a fixed per-platform topic list
type StaticTrendProvider struct{}

var staticTrends = map[models.Platform][]string{
	models.PlatformYouTube:   {"long-form tutorials", "behind the scenes", "reaction content"},
	models.PlatformTikTok:    {"day in the life", "quick tips", "trend remixes"},
	models.PlatformInstagram: {"carousels", "before and after", "photo dumps"},
	models.PlatformTwitter:   {"hot takes", "build in public", "threads"},
	models.PlatformBlog:      {"how-to guides", "year in review", "tool comparisons"},
}

func (StaticTrendProvider) TrendingTopics(_ context.Context, platform models.Platform) ([]string, error) {
	if topics, ok := staticTrends[platform]; ok {
		return topics, nil
	}
	return []string{"storytelling", "tutorials"}, nil
}

// StaticAudienceProvider returns a fixed demographic split
type StaticAudienceProvider struct{}

func (StaticAudienceProvider) AudienceBreakdown(_ context.Context, _ uuid.UUID) (map[string]float64, error) {
	return map[string]float64{
		"18-24": 0.3,
		"25-34": 0.4,
		"35-44": 0.2,
		"45+":   0.1,
	}, nil
}
