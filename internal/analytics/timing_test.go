package analytics

import (
	"testing"
	"time"

	"creator-pulse/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTimeBand(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{6, bandMorning},
		{11, bandMorning},
		{12, bandAfternoon},
		{17, bandAfternoon},
		{18, bandEvening},
		{22, bandEvening},
		{23, bandNight},
		{0, bandNight},
		{5, bandNight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, timeBand(tt.hour), "hour %d", tt.hour)
	}
}

// timedPost publishes a post at a fixed weekday and hour with the given rate
func timedPost(platform models.Platform, weekday time.Weekday, hour int, rate float64) JoinedRecord {
	// 2026-08-03 is a Monday
	base := time.Date(2026, 8, 3, hour, 0, 0, 0, time.UTC)
	published := base.AddDate(0, 0, int(weekday-time.Monday))
	return JoinedRecord{
		Post: models.Post{ID: uuid.New(), Platform: platform, PublishedAt: &published},
		Performances: []models.PerformanceRecord{
			{Views: 1000, Likes: int(rate * 1000)},
		},
	}
}

func TestAnalyzeTiming(t *testing.T) {
	records := []JoinedRecord{
		timedPost(models.PlatformYouTube, time.Saturday, 19, 0.30),
		timedPost(models.PlatformYouTube, time.Saturday, 20, 0.40),
		timedPost(models.PlatformYouTube, time.Tuesday, 9, 0.05),
		timedPost(models.PlatformYouTube, time.Tuesday, 10, 0.05),
	}

	pattern := AnalyzeTiming(records, DefaultConfig(), DefaultWeights())

	assert.NotNil(t, pattern)
	assert.Equal(t, 4, pattern.SampleCount)
	assert.InDelta(t, 0.3, pattern.Confidence, 1e-9)

	assert.NotEmpty(t, pattern.BestDays)
	assert.Equal(t, "Saturday", pattern.BestDays[0].Key)

	assert.NotEmpty(t, pattern.BestHours)
	assert.Equal(t, bandEvening, pattern.BestHours[0].Key)

	slots := pattern.PlatformSlots[models.PlatformYouTube]
	assert.NotEmpty(t, slots)
	assert.Equal(t, "Saturday evening", slots[0].Key)
}

func TestAnalyzeTimingNoData(t *testing.T) {
	records := []JoinedRecord{
		{Post: models.Post{ID: uuid.New()}}, // no performance records
	}
	assert.Nil(t, AnalyzeTiming(records, DefaultConfig(), DefaultWeights()))
	assert.Nil(t, AnalyzeTiming(nil, DefaultConfig(), DefaultWeights()))
}
