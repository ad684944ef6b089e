package analytics

import (
	"strings"
	"testing"

	"creator-pulse/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStyles(t *testing.T) {
	t.Run("storytelling", func(t *testing.T) {
		styles := classifyStyles("The story of my first year on camera " + strings.Repeat("x", 500))
		assert.Contains(t, styles, StyleStorytelling)
		assert.NotContains(t, styles, StyleConcise)
	})

	t.Run("call to action", func(t *testing.T) {
		styles := classifyStyles("Subscribe for weekly videos " + strings.Repeat("x", 500))
		assert.Contains(t, styles, StyleCallToAction)
	})

	t.Run("inspirational", func(t *testing.T) {
		styles := classifyStyles("Believe in yourself and keep going " + strings.Repeat("x", 500))
		assert.Contains(t, styles, StyleInspiring)
	})

	t.Run("concise by length", func(t *testing.T) {
		styles := classifyStyles("Quick thought for today.")
		assert.Contains(t, styles, StyleConcise)
	})

	t.Run("multiple styles", func(t *testing.T) {
		styles := classifyStyles("My story: subscribe to follow the journey")
		assert.Contains(t, styles, StyleStorytelling)
		assert.Contains(t, styles, StyleCallToAction)
		assert.Contains(t, styles, StyleConcise)
	})

	t.Run("concise limit counts characters not bytes", func(t *testing.T) {
		// 400 characters of three-byte text is 1200 bytes but still concise
		styles := classifyStyles(strings.Repeat("道", 400))
		assert.Contains(t, styles, StyleConcise)
	})

	t.Run("empty body matches nothing", func(t *testing.T) {
		assert.Empty(t, classifyStyles(""))
	})
}

func stylePost(body string, rate float64) JoinedRecord {
	return JoinedRecord{
		Post: models.Post{ID: uuid.New(), Body: body},
		Performances: []models.PerformanceRecord{
			{Views: 1000, Likes: int(rate * 1000)},
		},
	}
}

func TestAnalyzeStyles(t *testing.T) {
	long := strings.Repeat("x", 600)
	records := []JoinedRecord{
		stylePost("My story of burning out "+long, 0.30),
		stylePost("The journey continues "+long, 0.40),
		stylePost("Subscribe and share this "+long, 0.10), // one CTA post, dropped
	}

	patterns := AnalyzeStyles(records, DefaultConfig(), DefaultWeights())

	assert.Len(t, patterns, 1)
	assert.Equal(t, StyleStorytelling, patterns[0].Style)
	assert.Equal(t, 2, patterns[0].SampleCount)
	assert.InDelta(t, 0.35, patterns[0].AvgEngagement, 1e-9)
	assert.NotEmpty(t, patterns[0].Characteristics)
}

func TestAnalyzeStylesSortedByEngagement(t *testing.T) {
	long := strings.Repeat("x", 600)
	records := []JoinedRecord{
		stylePost("story one "+long, 0.10),
		stylePost("story two "+long, 0.10),
		stylePost("Subscribe now "+long, 0.50),
		stylePost("Follow me for more "+long, 0.50),
	}

	patterns := AnalyzeStyles(records, DefaultConfig(), DefaultWeights())

	assert.Len(t, patterns, 2)
	assert.Equal(t, StyleCallToAction, patterns[0].Style)
	assert.Equal(t, StyleStorytelling, patterns[1].Style)
}
