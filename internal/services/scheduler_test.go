package services

import (
	"context"
	"testing"
	"time"

	"creator-pulse/internal/models"
	"creator-pulse/internal/platforms"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerService_GetDuePosts(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db, nil)

	creator := createTestCreator(t, db, "queue.creator")

	now := time.Now()
	scheduled := []models.ScheduledPost{
		{
			ID:           uuid.New(),
			CreatorID:    creator.ID,
			Platform:     models.PlatformBlog,
			Title:        "Overdue draft",
			ScheduledFor: now.Add(-2 * time.Hour),
			Status:       models.ScheduleStatusPending,
		},
		{
			ID:           uuid.New(),
			CreatorID:    creator.ID,
			Platform:     models.PlatformBlog,
			Title:        "Just due",
			ScheduledFor: now.Add(-time.Minute),
			Status:       models.ScheduleStatusPending,
		},
		{
			ID:           uuid.New(),
			CreatorID:    creator.ID,
			Platform:     models.PlatformBlog,
			Title:        "Tomorrow",
			ScheduledFor: now.Add(24 * time.Hour),
			Status:       models.ScheduleStatusPending,
		},
		{
			ID:           uuid.New(),
			CreatorID:    creator.ID,
			Platform:     models.PlatformBlog,
			Title:        "Already out",
			ScheduledFor: now.Add(-3 * time.Hour),
			Status:       models.ScheduleStatusPublished,
		},
	}
	for i := range scheduled {
		assert.NoError(t, db.Create(&scheduled[i]).Error)
	}

	due, err := service.GetDuePosts(10)
	assert.NoError(t, err)
	assert.Len(t, due, 2)
	assert.Equal(t, "Overdue draft", due[0].Title)
	assert.Equal(t, "Just due", due[1].Title)
}

func TestSchedulerService_PublishDuePosts(t *testing.T) {
	t.Run("publishes due posts and stores the live post", func(t *testing.T) {
		db := setupTestDB(t)
		_, client := newTestGateway(t, nil, platforms.RemoteMetrics{})
		service := NewSchedulerService(db, client)

		creator := createTestCreator(t, db, "publish.creator")
		account := models.PlatformAccount{
			ID:          uuid.New(),
			CreatorID:   creator.ID,
			Platform:    models.PlatformTwitter,
			Username:    "publisher",
			IsConnected: true,
		}
		assert.NoError(t, db.Create(&account).Error)

		scheduled := models.ScheduledPost{
			ID:           uuid.New(),
			CreatorID:    creator.ID,
			Platform:     models.PlatformTwitter,
			Title:        "Launch announcement",
			Body:         "It is finally out. Link in bio.",
			ContentType:  "social_media",
			Tags:         []string{"launch"},
			ScheduledFor: time.Now().Add(-time.Minute),
			Status:       models.ScheduleStatusPending,
		}
		assert.NoError(t, db.Create(&scheduled).Error)

		assert.NoError(t, service.PublishDuePosts(context.Background()))

		var updated models.ScheduledPost
		assert.NoError(t, db.First(&updated, "id = ?", scheduled.ID).Error)
		assert.Equal(t, models.ScheduleStatusPublished, updated.Status)
		assert.NotNil(t, updated.PublishedAt)
		assert.Empty(t, updated.LastError)

		var post models.Post
		assert.NoError(t, db.First(&post, "external_id = ?", "pub-1").Error)
		assert.Equal(t, creator.ID, post.CreatorID)
		assert.Equal(t, "Launch announcement", post.Title)
		assert.Equal(t, "https://example.com/pub-1", post.URL)
		assert.NotNil(t, post.PublishedAt)
	})

	t.Run("marks post failed when no account is connected", func(t *testing.T) {
		db := setupTestDB(t)
		_, client := newTestGateway(t, nil, platforms.RemoteMetrics{})
		service := NewSchedulerService(db, client)

		creator := createTestCreator(t, db, "orphan.creator")
		scheduled := models.ScheduledPost{
			ID:           uuid.New(),
			CreatorID:    creator.ID,
			Platform:     models.PlatformTikTok,
			Title:        "Doomed post",
			ScheduledFor: time.Now().Add(-time.Minute),
			Status:       models.ScheduleStatusPending,
		}
		assert.NoError(t, db.Create(&scheduled).Error)

		assert.NoError(t, service.PublishDuePosts(context.Background()))

		var updated models.ScheduledPost
		assert.NoError(t, db.First(&updated, "id = ?", scheduled.ID).Error)
		assert.Equal(t, models.ScheduleStatusFailed, updated.Status)
		assert.Contains(t, updated.LastError, "no connected tiktok account")
	})

	t.Run("no due posts is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		service := NewSchedulerService(db, nil)
		assert.NoError(t, service.PublishDuePosts(context.Background()))
	})
}
