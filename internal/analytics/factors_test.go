package analytics

import (
	"testing"
	"time"

	"creator-pulse/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func factorPost(hasMedia bool, rate float64) JoinedRecord {
	published := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC) // Wednesday
	return JoinedRecord{
		Post: models.Post{
			ID:          uuid.New(),
			Title:       "a post title",
			Body:        "a post body",
			HasMedia:    hasMedia,
			PublishedAt: &published,
		},
		Performances: []models.PerformanceRecord{
			{Views: 1000, Likes: int(rate * 1000)},
		},
	}
}

func TestIdentifyFactorsReturnsFixedSet(t *testing.T) {
	records := []JoinedRecord{
		factorPost(true, 0.30),
		factorPost(true, 0.25),
		factorPost(false, 0.05),
		factorPost(false, 0.03),
	}

	factors := IdentifyFactors(records, DefaultWeights())

	assert.Len(t, factors, 6)

	names := make(map[string]bool, len(factors))
	for _, f := range factors {
		names[f.Name] = true
		assert.NotEmpty(t, f.Description)
		assert.Equal(t, 4, f.SampleCount)
	}
	for _, expected := range []string{
		"media_presence", "call_to_action", "title_length",
		"content_length", "tag_count", "weekend_publishing",
	} {
		assert.True(t, names[expected], "missing factor %s", expected)
	}
}

func TestIdentifyFactorsRankedByImportance(t *testing.T) {
	records := []JoinedRecord{
		factorPost(true, 0.30),
		factorPost(true, 0.25),
		factorPost(false, 0.05),
		factorPost(false, 0.03),
	}

	factors := IdentifyFactors(records, DefaultWeights())

	for i := 1; i < len(factors); i++ {
		assert.GreaterOrEqual(t, factors[i-1].Importance, factors[i].Importance)
	}

	// Media presence is the only attribute that varies with engagement here
	assert.Equal(t, "media_presence", factors[0].Name)
	assert.Greater(t, factors[0].Coefficient, 0.9)
	assert.InDelta(t, factors[0].Importance, factors[0].Coefficient, 1e-9)
}

func TestIdentifyFactorsNoVariance(t *testing.T) {
	// Identical posts: every coefficient is zero but the set stays complete
	records := []JoinedRecord{
		factorPost(true, 0.10),
		factorPost(true, 0.10),
		factorPost(true, 0.10),
	}

	factors := IdentifyFactors(records, DefaultWeights())

	assert.Len(t, factors, 6)
	for _, f := range factors {
		assert.Equal(t, 0.0, f.Coefficient)
		assert.Equal(t, 0.0, f.Importance)
	}
}
