package analytics

import (
	"unicode/utf8"

	"creator-pulse/internal/models"
)

// FormatPattern reports how a content format (approximated by platform)
// performs for the creator
type FormatPattern struct {
	Platform         models.Platform   `json:"platform"`
	AvgEngagement    float64           `json:"avg_engagement"`
	SampleCount      int               `json:"sample_count"`
	RelatedPlatforms []models.Platform `json:"related_platforms"`
	OptimalLength    string            `json:"optimal_length"`
	BestPractices    []string          `json:"best_practices"`
	Confidence       float64           `json:"confidence"`
}

// Content length buckets in characters
var lengthBucketLabels = []string{"under 100", "100-499", "500-999", "1000-1999", "2000+"}

func lengthBucket(chars int) string {
	switch {
	case chars < 100:
		return lengthBucketLabels[0]
	case chars < 500:
		return lengthBucketLabels[1]
	case chars < 1000:
		return lengthBucketLabels[2]
	case chars < 2000:
		return lengthBucketLabels[3]
	default:
		return lengthBucketLabels[4]
	}
}

// platformBestPractices is a static lookup of per-platform advice, keyed by
// the platform enum so new platforms only need a table entry
var platformBestPractices = map[models.Platform][]string{
	models.PlatformYouTube: {
		"Front-load the hook in the first 15 seconds",
		"Use custom thumbnails with high contrast",
		"End with a subscribe prompt and a linked follow-up video",
	},
	models.PlatformTikTok: {
		"Keep videos under 60 seconds",
		"Jump straight into the payoff, no intro",
		"Ride trending sounds while they are still rising",
	},
	models.PlatformInstagram: {
		"Lead with a strong first image or frame",
		"Use 3-5 focused hashtags instead of hashtag walls",
		"Post carousels for saveable, multi-step content",
	},
	models.PlatformTwitter: {
		"Open with the conclusion, expand in the thread",
		"Keep single posts under 200 characters",
		"Ask a question to invite replies",
	},
	models.PlatformBlog: {
		"Use descriptive subheadings every few paragraphs",
		"Answer the title's promise in the first section",
		"Link related posts to keep readers on site",
	},
}

// AnalyzeFormats groups posts by platform and reports average engagement,
// the best content-length bucket and static best practices per platform
func AnalyzeFormats(records []JoinedRecord, cfg Config, w EngagementWeights) []FormatPattern {
	scored := WithPerformance(records)

	byPlatform := make(map[models.Platform][]JoinedRecord)
	for _, r := range scored {
		byPlatform[r.Post.Platform] = append(byPlatform[r.Post.Platform], r)
	}

	// Rank platforms by average engagement for the related-platforms list
	platformStats := GroupAndScore(scored, func(r JoinedRecord) string {
		return string(r.Post.Platform)
	}, cfg.MinGroupSamples, w)

	patterns := make([]FormatPattern, 0, len(platformStats))
	for _, stat := range platformStats {
		platform := models.Platform(stat.Key)
		group := byPlatform[platform]

		var related []models.Platform
		for _, other := range platformStats {
			if other.Key != stat.Key {
				related = append(related, models.Platform(other.Key))
			}
		}

		patterns = append(patterns, FormatPattern{
			Platform:         platform,
			AvgEngagement:    stat.AvgEngagement,
			SampleCount:      stat.Count,
			RelatedPlatforms: related,
			OptimalLength:    optimalLength(group, cfg, w),
			BestPractices:    platformBestPractices[platform],
			Confidence:       cfg.ConfidenceForSamples(stat.Count),
		})
	}

	return patterns
}

// optimalLength picks the content-length bucket with the highest average
// engagement, ties broken by larger sample count
func optimalLength(group []JoinedRecord, cfg Config, w EngagementWeights) string {
	stats := GroupAndScore(group, func(r JoinedRecord) string {
		return lengthBucket(utf8.RuneCountInString(r.Post.Body))
	}, cfg.MinGroupSamples, w)

	// GroupAndScore orders by engagement, ties broken by sample count
	if len(stats) == 0 {
		return ""
	}
	return stats[0].Key
}
