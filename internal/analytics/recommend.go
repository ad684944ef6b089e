package analytics

import (
	"fmt"
	"time"

	"creator-pulse/internal/models"
)

// RecommendationBundle is the ranked, human-readable output of the
// recommendation synthesizer
type RecommendationBundle struct {
	ContentSuggestions  []string  `json:"content_suggestions"`
	TimingSuggestions   []string  `json:"timing_suggestions"`
	PlatformSuggestions []string  `json:"platform_suggestions"`
	TrendingTopics      []string  `json:"trending_topics"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// Threshold rule table for low-performance suggestions. Purely a lookup
// layer; no learning happens here.
const (
	lowEngagementThreshold = 0.02
	lowReachThreshold      = 500.0
	lowShareRateThreshold  = 0.005
)

var lowEngagementSuggestions = []string{
	"Engagement is below 2%; open with a question or a strong hook to invite interaction",
	"Reply to early comments within the first hour to keep the conversation visible",
}

var lowReachSuggestions = []string{
	"Average reach is under 500 views; post during your top timing slots to catch more of your audience",
	"Cross-post your strongest content to your best-performing platform",
}

var lowShareSuggestions = []string{
	"Content is rarely shared; end posts with a line worth quoting",
}

var platformGrowthSuggestions = map[models.Platform]string{
	models.PlatformYouTube:   "Turn your top-performing topics into a YouTube series with consistent thumbnails",
	models.PlatformTikTok:    "Repackage your best long-form content as short TikTok clips",
	models.PlatformInstagram: "Convert high-engagement posts into Instagram carousels",
	models.PlatformTwitter:   "Thread your top blog topics on Twitter to test new angles cheaply",
	models.PlatformBlog:      "Expand your best short posts into long-form blog articles for search traffic",
}

// Synthesize maps pattern output and creator aggregates through the rule
// tables into a deduplicated, capped recommendation bundle
func Synthesize(report *PatternReport, pooledRate, avgViews, shareRate float64, trending []string, cfg Config) *RecommendationBundle {
	bundle := &RecommendationBundle{
		TrendingTopics: trending,
		GeneratedAt:    time.Now(),
	}

	var content, timing, platform []string

	// Pattern-driven suggestions
	if report != nil {
		if report.Timing != nil {
			for _, day := range report.Timing.BestDays {
				timing = append(timing, fmt.Sprintf("Publish on %s, your highest-engagement day", day.Key))
			}
			for _, band := range report.Timing.BestHours {
				timing = append(timing, fmt.Sprintf("Schedule posts in the %s, when your audience engages most", band.Key))
			}
		}
		for _, topic := range report.Topics {
			if topic.GrowthTrend > 0 {
				content = append(content, fmt.Sprintf("Double down on %q; its engagement is trending up %.0f%%", topic.Topic, topic.GrowthTrend))
			} else {
				content = append(content, fmt.Sprintf("%q is your strongest topic; plan more content around it", topic.Topic))
			}
		}
		for _, style := range report.Styles {
			content = append(content, fmt.Sprintf("Your %s posts outperform; lean into that style", style.Style))
		}
		for _, format := range report.Formats {
			if format.OptimalLength != "" {
				platform = append(platform, fmt.Sprintf("On %s, posts of %s characters perform best", format.Platform, format.OptimalLength))
			}
			if suggestion, ok := platformGrowthSuggestions[format.Platform]; ok {
				platform = append(platform, suggestion)
			}
		}
	}

	// Threshold-driven suggestions
	if pooledRate < lowEngagementThreshold {
		content = append(content, lowEngagementSuggestions...)
	}
	if avgViews < lowReachThreshold {
		timing = append(timing, lowReachSuggestions...)
	}
	if shareRate < lowShareRateThreshold {
		content = append(content, lowShareSuggestions...)
	}

	bundle.ContentSuggestions = dedupeAndCap(content, cfg.MaxSuggestions)
	bundle.TimingSuggestions = dedupeAndCap(timing, cfg.MaxSuggestions)
	bundle.PlatformSuggestions = dedupeAndCap(platform, cfg.MaxSuggestions)
	return bundle
}

// predictionSuggestions produces optimization advice for a single forecast
func predictionSuggestions(req PredictionRequest, result *PredictionResult, cfg Config) []string {
	var suggestions []string

	if result.EngagementScore < lowEngagementThreshold {
		suggestions = append(suggestions, "Predicted engagement is low; sharpen the hook in your title")
	}
	if !req.HasCallToAction {
		suggestions = append(suggestions, "Add a call to action; comparable posts see about 15% more engagement with one")
	}
	if m := timeOfDayMultiplier(req.ScheduledAt.Hour()); m < 1.0 {
		suggestions = append(suggestions, "The scheduled hour is off-peak; moving to 17:00-21:00 should lift engagement")
	}
	if len(req.Tags) == 0 {
		suggestions = append(suggestions, "Tag the post so it can be matched against your strongest past content")
	}
	if result.ReachEstimate < lowReachThreshold {
		suggestions = append(suggestions, lowReachSuggestions[1])
	}

	return dedupeAndCap(suggestions, cfg.MaxSuggestions)
}

// dedupeAndCap removes duplicates preserving order and caps the list
func dedupeAndCap(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
