package analytics

import (
	"time"

	"creator-pulse/internal/models"
)

// JoinedRecord pairs a post with its performance record collection. It is
// built per request from a fresh snapshot and never persisted or mutated.
type JoinedRecord struct {
	Post         models.Post
	Performances []models.PerformanceRecord
}

// Join matches performance records to posts by post ID. Posts without
// records are included with an empty collection; callers that need a
// comparison basis filter them with WithPerformance. Input order of posts is
// preserved.
func Join(posts []models.Post, records []models.PerformanceRecord) []JoinedRecord {
	byPost := make(map[string][]models.PerformanceRecord, len(posts))
	for _, r := range records {
		key := r.PostID.String()
		byPost[key] = append(byPost[key], r)
	}

	joined := make([]JoinedRecord, 0, len(posts))
	for _, p := range posts {
		joined = append(joined, JoinedRecord{
			Post:         p,
			Performances: byPost[p.ID.String()],
		})
	}
	return joined
}

// WithPerformance filters a snapshot down to records that carry at least one
// performance record
func WithPerformance(records []JoinedRecord) []JoinedRecord {
	filtered := make([]JoinedRecord, 0, len(records))
	for _, r := range records {
		if r.HasPerformance() {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// HasPerformance reports whether any performance data exists for the post
func (j JoinedRecord) HasPerformance() bool {
	return len(j.Performances) > 0
}

// EngagementScore returns the per-record average engagement rate of the
// post, the comparison basis used by the pattern analyzers
func (j JoinedRecord) EngagementScore(w EngagementWeights) float64 {
	return AverageScore(j.Performances, w)
}

// AvgViews returns the mean view count across the post's records
func (j JoinedRecord) AvgViews() float64 {
	if len(j.Performances) == 0 {
		return 0
	}
	var views int
	for _, r := range j.Performances {
		views += r.Views
	}
	return float64(views) / float64(len(j.Performances))
}

// ShareRate returns shares per view, pooled across the post's records
func (j JoinedRecord) ShareRate() float64 {
	var views, shares int
	for _, r := range j.Performances {
		views += r.Views
		shares += r.Shares
	}
	if views <= 0 {
		return 0
	}
	return float64(shares) / float64(views)
}

// PublishedTime returns when the post went live, falling back to the row
// creation time for drafts imported without a publish date
func (j JoinedRecord) PublishedTime() time.Time {
	if j.Post.PublishedAt != nil {
		return *j.Post.PublishedAt
	}
	return j.Post.CreatedAt
}
