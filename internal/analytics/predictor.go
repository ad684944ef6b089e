package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"creator-pulse/internal/models"

	"github.com/google/uuid"
)

// PredictionRequest describes a not-yet-published piece of content
type PredictionRequest struct {
	CreatorID       uuid.UUID       `json:"creator_id"`
	Platform        models.Platform `json:"platform"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Tags            []string        `json:"tags"`
	ContentType     string          `json:"content_type"`
	ScheduledAt     time.Time       `json:"scheduled_at"`
	HasCallToAction bool            `json:"has_call_to_action"`
	// Estimated duration in seconds, for video content
	EstimatedDuration int `json:"estimated_duration"`
}

// PredictionResult is the forecast for a prediction request
type PredictionResult struct {
	EngagementScore  float64            `json:"engagement_score"`
	ReachEstimate    float64            `json:"reach_estimate"`
	ViralityScore    float64            `json:"virality_score"`
	Breakdown        map[string]float64 `json:"breakdown"`
	Confidence       float64            `json:"confidence"`
	Suggestions      []string           `json:"suggestions"`
	AudienceResponse string             `json:"audience_response"`
	MatchedPosts     int                `json:"matched_posts"`
}

// Similarity factor base weights. Each factor only contributes when it is
// applicable to both the request and the candidate; the final score is
// normalized by the applicable weight sum, so a perfect match is always 1.0.
const (
	weightPlatform    = 0.30
	weightTitle       = 0.15
	weightDescription = 0.20
	weightTags        = 0.15
)

// Platform multiplier tables, keyed by enum so new platforms are a table edit
var platformReachMultiplier = map[models.Platform]float64{
	models.PlatformYouTube:   1.2,
	models.PlatformTikTok:    1.3,
	models.PlatformInstagram: 1.1,
	models.PlatformTwitter:   0.9,
}

var platformViralityMultiplier = map[models.Platform]float64{
	models.PlatformTikTok:    1.3,
	models.PlatformInstagram: 1.2,
}

var contentTypeReachMultiplier = map[string]float64{
	"video":        1.3,
	"social_media": 1.1,
	"blog":         0.9,
}

var contentTypeViralityMultiplier = map[string]float64{
	"video": 1.25,
}

func platformMultiplier(table map[models.Platform]float64, p models.Platform) float64 {
	if m, ok := table[p]; ok {
		return m
	}
	return 1.0
}

func contentTypeMultiplier(table map[string]float64, contentType string) float64 {
	if m, ok := table[contentType]; ok {
		return m
	}
	return 1.0
}

// Similarity returns the adaptive-weight similarity between a prediction
// request and a historical post, in [0, 1]
func Similarity(req PredictionRequest, candidate JoinedRecord) float64 {
	var score, weights float64

	// Platform match is always applicable
	weights += weightPlatform
	if candidate.Post.Platform == req.Platform {
		score += weightPlatform
	}

	if req.Title != "" && candidate.Post.Title != "" {
		weights += weightTitle
		score += weightTitle * keywordOverlap(req.Title, candidate.Post.Title)
	}

	if req.Description != "" && candidate.Post.Body != "" {
		weights += weightDescription
		score += weightDescription * keywordOverlap(req.Description, candidate.Post.Body)
	}

	if len(req.Tags) > 0 && candidate.Post.Body != "" {
		weights += weightTags
		score += weightTags * tagContainment(req.Tags, candidate.Post.Body)
	}

	if weights == 0 {
		return 0
	}
	return score / weights
}

// keywordOverlap is the case-insensitive word-set intersection divided by
// the request-side word count
func keywordOverlap(request, candidate string) float64 {
	reqWords := wordSet(request)
	if len(reqWords) == 0 {
		return 0
	}
	candWords := wordSet(candidate)

	matches := 0
	for word := range reqWords {
		if candWords[word] {
			matches++
		}
	}
	return float64(matches) / float64(len(reqWords))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[word] = true
	}
	return set
}

// tagContainment is the share of request tags found in the candidate body
func tagContainment(tags []string, body string) float64 {
	lower := strings.ToLower(body)
	matches := 0
	for _, tag := range tags {
		if strings.Contains(lower, strings.ToLower(tag)) {
			matches++
		}
	}
	return float64(matches) / float64(len(tags))
}

// timeOfDayMultiplier boosts or penalizes the predicted engagement based on
// the scheduled hour
func timeOfDayMultiplier(hour int) float64 {
	switch {
	case hour >= 17 && hour <= 21:
		return 1.2 // peak
	case hour >= 7 && hour <= 9:
		return 1.1 // morning commute
	case hour >= 12 && hour <= 14:
		return 1.15 // lunch
	case hour >= 22 || hour <= 5:
		return 0.8 // overnight
	default:
		return 1.0
	}
}

func dayOfWeekMultiplier(day time.Weekday) float64 {
	switch day {
	case time.Saturday, time.Sunday:
		return 1.15
	case time.Monday, time.Friday:
		return 1.1
	default:
		return 1.0
	}
}

type candidate struct {
	record     JoinedRecord
	similarity float64
}

// Predict forecasts engagement, reach and virality for the request from the
// creator's historical joined records. It returns ErrInsufficientData when
// fewer than the configured minimum of posts carry performance data, and
// falls back to creator-wide averages when no post clears the similarity
// threshold.
func Predict(req PredictionRequest, history []JoinedRecord, cfg Config, w EngagementWeights) (*PredictionResult, error) {
	if req.Platform == "" {
		return nil, fmt.Errorf("%w: platform is required", ErrInvalidRequest)
	}

	scored := WithPerformance(history)
	if len(scored) < cfg.MinHistoryForPrediction {
		return nil, fmt.Errorf("%w: %d posts with performance data, need %d",
			ErrInsufficientData, len(scored), cfg.MinHistoryForPrediction)
	}

	// Select candidates above the similarity threshold, best first, capped
	candidates := make([]candidate, 0, len(scored))
	for _, r := range scored {
		if sim := Similarity(req, r); sim > cfg.SimilarityThreshold {
			candidates = append(candidates, candidate{record: r, similarity: sim})
		}
	}
	sort.SliceStable(candidates, func(i, k int) bool {
		return candidates[i].similarity > candidates[k].similarity
	})
	if len(candidates) > cfg.MaxCandidates {
		candidates = candidates[:cfg.MaxCandidates]
	}

	if len(candidates) == 0 {
		return fallbackPrediction(req, scored, cfg, w), nil
	}

	// Similarity-weighted engagement over the candidate set
	var simSum, weightedEngagement, viewSum, shareRateSum float64
	engagements := make([]float64, len(candidates))
	for i, c := range candidates {
		engagements[i] = c.record.EngagementScore(w)
		simSum += c.similarity
		weightedEngagement += c.similarity * engagements[i]
		viewSum += c.record.AvgViews()
		shareRateSum += c.record.ShareRate()
	}
	avgSim := simSum / float64(len(candidates))

	engagement := weightedEngagement / simSum

	ctaBoost := 1.0
	if req.HasCallToAction {
		ctaBoost = 1.15
	}
	timeMult := timeOfDayMultiplier(req.ScheduledAt.Hour())
	dayMult := dayOfWeekMultiplier(req.ScheduledAt.Weekday())
	engagement *= ctaBoost * timeMult * dayMult

	avgViews := viewSum / float64(len(candidates))
	reach := avgViews *
		platformMultiplier(platformReachMultiplier, req.Platform) *
		contentTypeMultiplier(contentTypeReachMultiplier, req.ContentType)

	avgShareRate := shareRateSum / float64(len(candidates))
	viralityRaw := avgShareRate * 10 *
		platformMultiplier(platformViralityMultiplier, req.Platform) *
		contentTypeMultiplier(contentTypeViralityMultiplier, req.ContentType)
	virality := clamp(viralityRaw/10, 0, 1)

	confidence := math.Min(0.9, 0.3+0.1*float64(len(candidates))) *
		avgSim *
		(1 - math.Min(0.5, stddev(engagements)))

	result := &PredictionResult{
		EngagementScore: engagement,
		ReachEstimate:   reach,
		ViralityScore:   virality,
		Breakdown: map[string]float64{
			"base_engagement": weightedEngagement / simSum,
			"cta_boost":       ctaBoost,
			"time_multiplier": timeMult,
			"day_multiplier":  dayMult,
			"avg_similarity":  avgSim,
			"avg_views":       avgViews,
			"avg_share_rate":  avgShareRate,
		},
		Confidence:       confidence,
		AudienceResponse: audienceResponse(engagement, cfg),
		MatchedPosts:     len(candidates),
	}
	result.Suggestions = predictionSuggestions(req, result, cfg)
	return result, nil
}

// fallbackPrediction uses creator-wide averages when no historical post is
// similar enough, with a fixed reduced confidence
func fallbackPrediction(req PredictionRequest, scored []JoinedRecord, cfg Config, w EngagementWeights) *PredictionResult {
	var engagementSum, viewSum, shareRateSum float64
	for _, r := range scored {
		engagementSum += r.EngagementScore(w)
		viewSum += r.AvgViews()
		shareRateSum += r.ShareRate()
	}
	n := float64(len(scored))
	engagement := engagementSum / n
	avgShareRate := shareRateSum / n

	result := &PredictionResult{
		EngagementScore: engagement,
		ReachEstimate: viewSum / n *
			platformMultiplier(platformReachMultiplier, req.Platform) *
			contentTypeMultiplier(contentTypeReachMultiplier, req.ContentType),
		ViralityScore: clamp(avgShareRate, 0, 1),
		Breakdown: map[string]float64{
			"base_engagement": engagement,
			"avg_similarity":  0,
			"avg_views":       viewSum / n,
			"avg_share_rate":  avgShareRate,
		},
		Confidence: cfg.FallbackConfidence,
		Suggestions: []string{
			"No closely comparable past content was found; this estimate uses your overall averages",
			"Align the title and tags with your strongest past content to sharpen future predictions",
		},
		AudienceResponse: audienceResponse(engagement, cfg),
		MatchedPosts:     0,
	}
	return result
}

// audienceResponse grades the predicted engagement on the configured 0-10
// viral score bands
func audienceResponse(engagement float64, cfg Config) string {
	score := engagement * 100
	labels := []string{"viral potential", "highly positive", "positive", "moderate"}
	for i, band := range cfg.ViralScoreBands {
		if score >= band && i < len(labels) {
			return labels[i]
		}
	}
	return "muted"
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
