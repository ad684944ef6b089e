package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"creator-pulse/internal/analytics"
	"creator-pulse/internal/metadata"
	"creator-pulse/internal/models"
	"creator-pulse/internal/platforms"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostsService is the gorm-backed data access layer for posts and their
// performance records. It implements analytics.Repository.
type PostsService struct {
	db             *gorm.DB
	platformClient *platforms.Client
	extractor      *metadata.Extractor
}

// NewPostsService creates a new posts service
func NewPostsService(db *gorm.DB, platformClient *platforms.Client) *PostsService {
	return &PostsService{
		db:             db,
		platformClient: platformClient,
		extractor:      metadata.NewExtractor(),
	}
}

// GetCreator fetches a creator by ID
func (ps *PostsService) GetCreator(ctx context.Context, creatorID uuid.UUID) (*models.Creator, error) {
	var creator models.Creator
	err := ps.db.WithContext(ctx).Where("id = ?", creatorID).First(&creator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("creator %s: %w", creatorID, analytics.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch creator: %w", err)
	}
	return &creator, nil
}

// GetPost fetches a post by ID
func (ps *PostsService) GetPost(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := ps.db.WithContext(ctx).Where("id = ?", postID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("post %s: %w", postID, analytics.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

// GetPostsByCreator fetches all of a creator's posts, newest first
func (ps *PostsService) GetPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	err := ps.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("published_at DESC NULLS LAST").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return posts, nil
}

// GetPerformanceByPost fetches all performance records for one post
func (ps *PostsService) GetPerformanceByPost(ctx context.Context, postID uuid.UUID) ([]models.PerformanceRecord, error) {
	var records []models.PerformanceRecord
	err := ps.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("recorded_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch performance records: %w", err)
	}
	return records, nil
}

// GetPerformanceByCreator fetches all performance records for a creator's
// posts in one query
func (ps *PostsService) GetPerformanceByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.PerformanceRecord, error) {
	var records []models.PerformanceRecord
	err := ps.db.WithContext(ctx).
		Joins("JOIN posts ON posts.id = performance_records.post_id").
		Where("posts.creator_id = ?", creatorID).
		Order("performance_records.recorded_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch creator performance records: %w", err)
	}
	return records, nil
}

// ImportConfig contains configuration for post imports from platforms
type ImportConfig struct {
	MaxPosts  int           // Maximum number of posts to import per account
	RateLimit time.Duration // Rate limiting between API calls
}

// DefaultImportConfig returns the standard import settings
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		MaxPosts:  50,
		RateLimit: 200 * time.Millisecond,
	}
}

// ImportPostsFromPlatforms pulls recent posts and their metrics for every
// connected account of a creator
func (ps *PostsService) ImportPostsFromPlatforms(ctx context.Context, creatorID uuid.UUID, config ImportConfig) error {
	log.Printf("🔄 Starting post import for creator %s...", creatorID)

	var accounts []models.PlatformAccount
	if err := ps.db.Where("creator_id = ? AND is_connected = ?", creatorID, true).Find(&accounts).Error; err != nil {
		return fmt.Errorf("failed to fetch platform accounts: %w", err)
	}

	if len(accounts) == 0 {
		return fmt.Errorf("no connected platform accounts for creator %s", creatorID)
	}

	imported := 0
	for _, account := range accounts {
		count, err := ps.importFromAccount(ctx, &account, config)
		if err != nil {
			log.Printf("⚠️  Failed to import from %s/%s: %v", account.Platform, account.Username, err)
			ps.db.Model(&account).Update("sync_error", err.Error())
			continue
		}
		imported += count

		now := time.Now()
		ps.db.Model(&account).Updates(map[string]interface{}{
			"last_synced_at": &now,
			"sync_error":     "",
		})

		time.Sleep(config.RateLimit)
	}

	log.Printf("✅ Imported %d posts for creator %s", imported, creatorID)
	return nil
}

// importFromAccount imports posts from a single connected account
func (ps *PostsService) importFromAccount(ctx context.Context, account *models.PlatformAccount, config ImportConfig) (int, error) {
	if ps.platformClient == nil {
		return 0, fmt.Errorf("platform client not configured")
	}

	log.Printf("📡 Importing posts from %s (%s)...", account.Username, account.Platform)

	posts, err := ps.platformClient.GetAuthorPosts(ctx, account.Platform, account.Username, config.MaxPosts)
	if err != nil {
		return 0, fmt.Errorf("failed to get posts from %s: %w", account.Platform, err)
	}

	imported := 0
	for _, remote := range posts {
		created, err := ps.upsertRemotePost(ctx, account, remote)
		if err != nil {
			log.Printf("⚠️  Failed to store post %s: %v", remote.ExternalID, err)
			continue
		}
		if created {
			imported++
		}
	}

	return imported, nil
}

// upsertRemotePost stores a platform post and its current metrics snapshot.
// Posts are immutable once stored; only a new performance record is added.
func (ps *PostsService) upsertRemotePost(ctx context.Context, account *models.PlatformAccount, remote platforms.RemotePost) (bool, error) {
	var post models.Post
	err := ps.db.Where("platform = ? AND external_id = ?", account.Platform, remote.ExternalID).First(&post).Error

	created := false
	if errors.Is(err, gorm.ErrRecordNotFound) {
		post = models.Post{
			CreatorID:   account.CreatorID,
			Platform:    account.Platform,
			ExternalID:  remote.ExternalID,
			URL:         remote.URL,
			Title:       remote.Title,
			Body:        remote.Body,
			ContentType: remote.ContentType,
			Tags:        pq.StringArray(remote.Tags),
			HasMedia:    remote.HasMedia,
			Duration:    remote.Duration,
			PublishedAt: remote.PublishedAt,
		}

		// Blog platforms hand back a URL instead of structured content
		if account.Platform == models.PlatformBlog && post.Body == "" && post.URL != "" {
			ps.enrichFromPage(ctx, &post)
		}

		if err := ps.db.Create(&post).Error; err != nil {
			return false, fmt.Errorf("failed to create post: %w", err)
		}
		created = true
		log.Printf("📝 New post tracked: %s", post.Title)
	} else if err != nil {
		return false, fmt.Errorf("failed to query post: %w", err)
	}

	metrics, err := ps.platformClient.GetPostMetrics(ctx, account.Platform, remote.ExternalID)
	if err != nil {
		return created, fmt.Errorf("failed to get metrics: %w", err)
	}

	record := models.PerformanceRecord{
		PostID:           post.ID,
		Platform:         account.Platform,
		RecordedAt:       time.Now(),
		Views:            metrics.Views,
		Likes:            metrics.Likes,
		Comments:         metrics.Comments,
		Shares:           metrics.Shares,
		EstimatedRevenue: metrics.EstimatedRevenue,
	}
	if err := ps.db.Create(&record).Error; err != nil {
		return created, fmt.Errorf("failed to create performance record: %w", err)
	}

	return created, nil
}

// enrichFromPage fills in content fields for a blog post by fetching its
// page. Extraction failures are not fatal; the post is stored as-is.
func (ps *PostsService) enrichFromPage(ctx context.Context, post *models.Post) {
	meta, err := ps.extractor.Extract(ctx, post.URL)
	if err != nil {
		log.Printf("⚠️  Failed to extract metadata from %s: %v", post.URL, err)
		return
	}

	post.Body = meta.TextContent
	if post.Title == "" {
		post.Title = meta.Title
	}
	if meta.HasMedia {
		post.HasMedia = true
	}
}
