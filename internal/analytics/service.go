package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"creator-pulse/internal/models"

	"github.com/google/uuid"
)

// Repository is the data access boundary the analytics engine depends on.
// Implementations return ErrNotFound when the creator or post is absent.
type Repository interface {
	GetCreator(ctx context.Context, creatorID uuid.UUID) (*models.Creator, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	GetPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Post, error)
	GetPerformanceByPost(ctx context.Context, postID uuid.UUID) ([]models.PerformanceRecord, error)
	GetPerformanceByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.PerformanceRecord, error)
}

// Service exposes the analytics operations over a repository snapshot
type Service struct {
	repo     Repository
	cfg      Config
	weights  EngagementWeights
	trends   TrendProvider
	audience AudienceProvider
}

// NewService creates an analytics service with default configuration
func NewService(repo Repository) *Service {
	return NewServiceWithConfig(repo, DefaultConfig())
}

// NewServiceWithConfig creates an analytics service with custom thresholds
func NewServiceWithConfig(repo Repository, cfg Config) *Service {
	return &Service{
		repo:     repo,
		cfg:      cfg,
		weights:  WeightedEngagement(),
		trends:   StaticTrendProvider{},
		audience: StaticAudienceProvider{},
	}
}

// SetTrendProvider replaces the trending-topics source
func (s *Service) SetTrendProvider(p TrendProvider) {
	s.trends = p
}

// SetAudienceProvider replaces the audience demographics source
func (s *Service) SetAudienceProvider(p AudienceProvider) {
	s.audience = p
}

// PatternReport bundles the output of the four pattern analyzers
type PatternReport struct {
	Timing      *TimingPattern  `json:"timing,omitempty"`
	Topics      []TopicInsight  `json:"topics"`
	Formats     []FormatPattern `json:"formats"`
	Styles      []StylePattern  `json:"styles"`
	SampleCount int             `json:"sample_count"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// InsightsReport describes how one published post performed
type InsightsReport struct {
	PostID           uuid.UUID          `json:"post_id"`
	Title            string             `json:"title"`
	Platform         models.Platform    `json:"platform"`
	PooledRate       float64            `json:"pooled_rate"`
	AverageScore     float64            `json:"average_score"`
	TotalViews       int                `json:"total_views"`
	TotalLikes       int                `json:"total_likes"`
	TotalComments    int                `json:"total_comments"`
	TotalShares      int                `json:"total_shares"`
	EstimatedRevenue float64            `json:"estimated_revenue"`
	Grade            string             `json:"grade"`
	VsCreatorAverage float64            `json:"vs_creator_average"` // percent difference
	Audience         map[string]float64 `json:"audience,omitempty"`
	Suggestions      []string           `json:"suggestions"`
	RecordCount      int                `json:"record_count"`
}

// snapshot fetches the creator's posts and performance records and joins
// them into the immutable working set every analyzer reads
func (s *Service) snapshot(ctx context.Context, creatorID uuid.UUID) ([]JoinedRecord, error) {
	if _, err := s.repo.GetCreator(ctx, creatorID); err != nil {
		return nil, err
	}

	posts, err := s.repo.GetPostsByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.GetPerformanceByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	return Join(posts, records), nil
}

// GetContentInsights builds a performance report for one published post
func (s *Service) GetContentInsights(ctx context.Context, postID uuid.UUID) (*InsightsReport, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetPerformanceByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: post %s has no performance records", ErrInsufficientData, postID)
	}

	report := &InsightsReport{
		PostID:       post.ID,
		Title:        post.Title,
		Platform:     post.Platform,
		PooledRate:   PooledRate(records),
		AverageScore: AverageScore(records, s.weights),
		RecordCount:  len(records),
	}
	for _, r := range records {
		report.TotalViews += r.Views
		report.TotalLikes += r.Likes
		report.TotalComments += r.Comments
		report.TotalShares += r.Shares
		report.EstimatedRevenue += r.EstimatedRevenue
	}
	report.Grade = audienceResponse(report.AverageScore, s.cfg)

	// Compare against the creator's overall average
	creatorRecords, err := s.repo.GetPerformanceByCreator(ctx, post.CreatorID)
	if err == nil && len(creatorRecords) > 0 {
		creatorAvg := AverageScore(creatorRecords, s.weights)
		if creatorAvg > 0 {
			report.VsCreatorAverage = (report.AverageScore - creatorAvg) / creatorAvg * 100
		}
	}

	if breakdown, err := s.audience.AudienceBreakdown(ctx, post.CreatorID); err == nil {
		report.Audience = breakdown
	}

	report.Suggestions = insightSuggestions(report, s.cfg)
	return report, nil
}

// insightSuggestions applies the threshold rule table to a single post
func insightSuggestions(report *InsightsReport, cfg Config) []string {
	var suggestions []string
	if report.PooledRate < lowEngagementThreshold {
		suggestions = append(suggestions, lowEngagementSuggestions...)
	}
	avgViews := float64(report.TotalViews) / float64(report.RecordCount)
	if avgViews < lowReachThreshold {
		suggestions = append(suggestions, lowReachSuggestions...)
	}
	if report.TotalViews > 0 && float64(report.TotalShares)/float64(report.TotalViews) < lowShareRateThreshold {
		suggestions = append(suggestions, lowShareSuggestions...)
	}
	if report.VsCreatorAverage > 20 {
		suggestions = append(suggestions, "This post beat your average by a wide margin; study what worked and repeat it")
	}
	return dedupeAndCap(suggestions, cfg.MaxSuggestions)
}

// AnalyzeHighPerformancePatterns runs the four pattern analyzers over the
// creator's history. The analyzers read the same immutable snapshot and
// write no shared state, so they fan out concurrently.
func (s *Service) AnalyzeHighPerformancePatterns(ctx context.Context, creatorID uuid.UUID, topN int) (*PatternReport, error) {
	joined, err := s.snapshot(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	scored := WithPerformance(joined)
	if len(scored) == 0 {
		return nil, fmt.Errorf("%w: creator %s has no posts with performance data", ErrInsufficientData, creatorID)
	}

	if topN <= 0 {
		topN = s.cfg.TopPatterns
	}

	report := &PatternReport{
		SampleCount: len(scored),
		GeneratedAt: time.Now(),
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		report.Timing = AnalyzeTiming(joined, s.cfg, s.weights)
	}()
	go func() {
		defer wg.Done()
		report.Topics = AnalyzeTopics(joined, s.cfg, s.weights)
	}()
	go func() {
		defer wg.Done()
		report.Formats = AnalyzeFormats(joined, s.cfg, s.weights)
	}()
	go func() {
		defer wg.Done()
		report.Styles = AnalyzeStyles(joined, s.cfg, s.weights)
	}()
	wg.Wait()

	if len(report.Topics) > topN {
		report.Topics = report.Topics[:topN]
	}
	if len(report.Formats) > topN {
		report.Formats = report.Formats[:topN]
	}
	if len(report.Styles) > topN {
		report.Styles = report.Styles[:topN]
	}

	return report, nil
}

// GenerateContentRecommendations turns the creator's patterns and aggregates
// into ranked suggestions
func (s *Service) GenerateContentRecommendations(ctx context.Context, creatorID uuid.UUID) (*RecommendationBundle, error) {
	report, err := s.AnalyzeHighPerformancePatterns(ctx, creatorID, s.cfg.TopPatterns)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetPerformanceByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	var views, shares int
	for _, r := range records {
		views += r.Views
		shares += r.Shares
	}
	avgViews := 0.0
	shareRate := 0.0
	if len(records) > 0 {
		avgViews = float64(views) / float64(len(records))
	}
	if views > 0 {
		shareRate = float64(shares) / float64(views)
	}

	// Trend lookup is best effort; recommendations still work without it
	var trending []string
	if len(report.Formats) > 0 {
		if topics, err := s.trends.TrendingTopics(ctx, report.Formats[0].Platform); err == nil {
			trending = topics
		}
	}

	return Synthesize(report, PooledRate(records), avgViews, shareRate, trending, s.cfg), nil
}

// PredictContentPerformance forecasts how a planned post will perform
func (s *Service) PredictContentPerformance(ctx context.Context, req PredictionRequest) (*PredictionResult, error) {
	if req.Platform == "" {
		return nil, fmt.Errorf("%w: platform is required", ErrInvalidRequest)
	}
	if !req.Platform.IsValid() {
		return nil, fmt.Errorf("%w: unknown platform %q", ErrInvalidRequest, req.Platform)
	}

	joined, err := s.snapshot(ctx, req.CreatorID)
	if err != nil {
		return nil, err
	}

	return Predict(req, joined, s.cfg, s.weights)
}

// IdentifyEngagementFactors ranks the tracked content attributes by their
// correlation with engagement
func (s *Service) IdentifyEngagementFactors(ctx context.Context, creatorID uuid.UUID) ([]EngagementFactor, error) {
	joined, err := s.snapshot(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if len(WithPerformance(joined)) == 0 {
		return nil, fmt.Errorf("%w: creator %s has no posts with performance data", ErrInsufficientData, creatorID)
	}

	return IdentifyFactors(joined, s.weights), nil
}
