package analytics

import (
	"fmt"

	"creator-pulse/internal/models"
)

// Time-of-day bands used for timing analysis
const (
	bandMorning   = "morning"   // 6-11
	bandAfternoon = "afternoon" // 12-17
	bandEvening   = "evening"   // 18-22
	bandNight     = "night"     // 23-5
)

// TimingPattern reports when the creator's content performs best
type TimingPattern struct {
	BestDays      []GroupStat                     `json:"best_days"`
	BestHours     []GroupStat                     `json:"best_hours"`
	PlatformSlots map[models.Platform][]GroupStat `json:"platform_slots"`
	SampleCount   int                             `json:"sample_count"`
	Confidence    float64                         `json:"confidence"`
}

// timeBand maps an hour of day onto one of the four posting bands
func timeBand(hour int) string {
	switch {
	case hour >= 6 && hour <= 11:
		return bandMorning
	case hour >= 12 && hour <= 17:
		return bandAfternoon
	case hour >= 18 && hour <= 22:
		return bandEvening
	default:
		return bandNight
	}
}

// AnalyzeTiming buckets posts by day of week and time-of-day band and reports
// the top slots by average engagement, overall and per platform
func AnalyzeTiming(records []JoinedRecord, cfg Config, w EngagementWeights) *TimingPattern {
	scored := WithPerformance(records)
	if len(scored) == 0 {
		return nil
	}

	dayKey := func(r JoinedRecord) string {
		return r.PublishedTime().Weekday().String()
	}
	bandKey := func(r JoinedRecord) string {
		return timeBand(r.PublishedTime().Hour())
	}
	slotKey := func(r JoinedRecord) string {
		t := r.PublishedTime()
		return fmt.Sprintf("%s %s", t.Weekday(), timeBand(t.Hour()))
	}

	pattern := &TimingPattern{
		BestDays:      topN(GroupAndScore(scored, dayKey, cfg.MinGroupSamples, w), cfg.TopPatterns),
		BestHours:     topN(GroupAndScore(scored, bandKey, cfg.MinGroupSamples, w), cfg.TopPatterns),
		PlatformSlots: make(map[models.Platform][]GroupStat),
		SampleCount:   len(scored),
		Confidence:    cfg.ConfidenceForSamples(len(scored)),
	}

	// Per-platform best posting slots
	byPlatform := make(map[models.Platform][]JoinedRecord)
	for _, r := range scored {
		byPlatform[r.Post.Platform] = append(byPlatform[r.Post.Platform], r)
	}
	for platform, group := range byPlatform {
		slots := topN(GroupAndScore(group, slotKey, cfg.MinGroupSamples, w), cfg.TopPatterns)
		if len(slots) > 0 {
			pattern.PlatformSlots[platform] = slots
		}
	}

	return pattern
}
