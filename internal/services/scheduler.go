package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"creator-pulse/internal/models"
	"creator-pulse/internal/platforms"

	"gorm.io/gorm"
)

// SchedulerService publishes scheduled posts when they come due
type SchedulerService struct {
	db             *gorm.DB
	platformClient *platforms.Client
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(db *gorm.DB, platformClient *platforms.Client) *SchedulerService {
	return &SchedulerService{
		db:             db,
		platformClient: platformClient,
	}
}

// GetDuePosts returns pending posts whose scheduled time has passed
func (ss *SchedulerService) GetDuePosts(limit int) ([]models.ScheduledPost, error) {
	var due []models.ScheduledPost
	err := ss.db.
		Where("status = ? AND scheduled_for <= ?", models.ScheduleStatusPending, time.Now()).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due posts: %w", err)
	}
	return due, nil
}

// PublishDuePosts publishes every due post and records the outcome
func (ss *SchedulerService) PublishDuePosts(ctx context.Context) error {
	due, err := ss.GetDuePosts(20)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	log.Printf("📤 Publishing %d due posts...", len(due))

	for i := range due {
		if err := ss.publishOne(ctx, &due[i]); err != nil {
			log.Printf("⚠️  Failed to publish scheduled post %s: %v", due[i].ID, err)
			ss.db.Model(&due[i]).Updates(map[string]interface{}{
				"status":     models.ScheduleStatusFailed,
				"last_error": err.Error(),
			})
			continue
		}
	}

	return nil
}

// publishOne pushes a single scheduled post through the gateway and stores
// the resulting live post
func (ss *SchedulerService) publishOne(ctx context.Context, scheduled *models.ScheduledPost) error {
	var account models.PlatformAccount
	err := ss.db.
		Where("creator_id = ? AND platform = ? AND is_connected = ?",
			scheduled.CreatorID, scheduled.Platform, true).
		First(&account).Error
	if err != nil {
		return fmt.Errorf("no connected %s account: %w", scheduled.Platform, err)
	}

	resp, err := ss.platformClient.PublishPost(ctx, platforms.PublishRequest{
		Platform:    scheduled.Platform,
		Username:    account.Username,
		Title:       scheduled.Title,
		Body:        scheduled.Body,
		ContentType: scheduled.ContentType,
		Tags:        scheduled.Tags,
	})
	if err != nil {
		return err
	}

	now := time.Now()
	post := models.Post{
		CreatorID:   scheduled.CreatorID,
		Platform:    scheduled.Platform,
		ExternalID:  resp.ExternalID,
		URL:         resp.URL,
		Title:       scheduled.Title,
		Body:        scheduled.Body,
		ContentType: scheduled.ContentType,
		Tags:        scheduled.Tags,
		PublishedAt: &now,
	}
	if err := ss.db.Create(&post).Error; err != nil {
		return fmt.Errorf("failed to store published post: %w", err)
	}

	if err := ss.db.Model(scheduled).Updates(map[string]interface{}{
		"status":       models.ScheduleStatusPublished,
		"published_at": &now,
		"last_error":   "",
	}).Error; err != nil {
		return fmt.Errorf("failed to mark post published: %w", err)
	}

	log.Printf("✅ Published scheduled post %q to %s", scheduled.Title, scheduled.Platform)
	return nil
}
