package analytics

import (
	"strings"
	"testing"

	"creator-pulse/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLengthBucket(t *testing.T) {
	tests := []struct {
		chars    int
		expected string
	}{
		{0, "under 100"},
		{99, "under 100"},
		{100, "100-499"},
		{499, "100-499"},
		{500, "500-999"},
		{999, "500-999"},
		{1000, "1000-1999"},
		{1999, "1000-1999"},
		{2000, "2000+"},
		{10000, "2000+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, lengthBucket(tt.chars), "chars %d", tt.chars)
	}
}

func formatPost(platform models.Platform, bodyLen int, rate float64) JoinedRecord {
	return JoinedRecord{
		Post: models.Post{
			ID:       uuid.New(),
			Platform: platform,
			Body:     strings.Repeat("x", bodyLen),
		},
		Performances: []models.PerformanceRecord{
			{Views: 1000, Likes: int(rate * 1000)},
		},
	}
}

func TestAnalyzeFormats(t *testing.T) {
	records := []JoinedRecord{
		formatPost(models.PlatformYouTube, 1200, 0.30),
		formatPost(models.PlatformYouTube, 1500, 0.40),
		formatPost(models.PlatformYouTube, 50, 0.01),
		formatPost(models.PlatformYouTube, 60, 0.02),
		formatPost(models.PlatformBlog, 3000, 0.05),
		formatPost(models.PlatformBlog, 2500, 0.05),
	}

	patterns := AnalyzeFormats(records, DefaultConfig(), DefaultWeights())

	assert.Len(t, patterns, 2)

	yt := patterns[0]
	assert.Equal(t, models.PlatformYouTube, yt.Platform)
	assert.Equal(t, 4, yt.SampleCount)
	assert.Equal(t, []models.Platform{models.PlatformBlog}, yt.RelatedPlatforms)
	assert.Equal(t, "1000-1999", yt.OptimalLength)
	assert.NotEmpty(t, yt.BestPractices)

	blog := patterns[1]
	assert.Equal(t, models.PlatformBlog, blog.Platform)
	assert.Equal(t, "2000+", blog.OptimalLength)
}

func TestOptimalLengthCountsCharactersNotBytes(t *testing.T) {
	// 90 characters of three-byte text: 270 bytes but still "under 100"
	multibyte := strings.Repeat("日", 90)
	records := []JoinedRecord{
		{
			Post:         models.Post{ID: uuid.New(), Platform: models.PlatformBlog, Body: multibyte},
			Performances: []models.PerformanceRecord{{Views: 1000, Likes: 300}},
		},
		{
			Post:         models.Post{ID: uuid.New(), Platform: models.PlatformBlog, Body: multibyte},
			Performances: []models.PerformanceRecord{{Views: 1000, Likes: 400}},
		},
	}

	assert.Equal(t, "under 100", optimalLength(records, DefaultConfig(), DefaultWeights()))
}

func TestAnalyzeFormatsDropsSmallGroups(t *testing.T) {
	records := []JoinedRecord{
		formatPost(models.PlatformTwitter, 100, 0.5),
	}
	assert.Empty(t, AnalyzeFormats(records, DefaultConfig(), DefaultWeights()))
}
