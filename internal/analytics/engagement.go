// Package analytics is the content performance analytics and prediction
// engine. Everything in this package is a pure, synchronous transform over an
// in-memory snapshot of posts and performance records; persistence and HTTP
// concerns live with the callers.
package analytics

import "creator-pulse/internal/models"

// EngagementWeights controls how interaction types count toward an
// engagement rate. The plain rate weighs everything equally; the weighted
// variant values comments and shares above likes.
type EngagementWeights struct {
	Likes    float64
	Comments float64
	Shares   float64
}

// DefaultWeights returns the plain engagement weighting
func DefaultWeights() EngagementWeights {
	return EngagementWeights{Likes: 1, Comments: 1, Shares: 1}
}

// WeightedEngagement returns the 1/2/3 weighting used for comparative
// pattern mining
func WeightedEngagement() EngagementWeights {
	return EngagementWeights{Likes: 1, Comments: 2, Shares: 3}
}

// PerRecordRate computes the engagement rate of a single performance record.
// A record with zero views has rate 0, never a division by zero.
func PerRecordRate(r models.PerformanceRecord, w EngagementWeights) float64 {
	if r.Views <= 0 {
		return 0
	}
	interactions := w.Likes*float64(r.Likes) +
		w.Comments*float64(r.Comments) +
		w.Shares*float64(r.Shares)
	return interactions / float64(r.Views)
}

// PooledRate computes one engagement rate from counts summed across all
// records. Use it for headline metrics; it weighs high-view records more
// heavily than AverageScore does.
func PooledRate(records []models.PerformanceRecord) float64 {
	var views, interactions int
	for _, r := range records {
		views += r.Views
		interactions += r.Likes + r.Comments + r.Shares
	}
	if views <= 0 {
		return 0
	}
	return float64(interactions) / float64(views)
}

// AverageScore computes the mean of per-record engagement rates. Use it when
// records need to be compared on equal footing, e.g. for pattern mining.
func AverageScore(records []models.PerformanceRecord, w EngagementWeights) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, r := range records {
		total += PerRecordRate(r, w)
	}
	return total / float64(len(records))
}
