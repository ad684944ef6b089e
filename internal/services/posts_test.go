package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creator-pulse/internal/analytics"
	"creator-pulse/internal/models"
	"creator-pulse/internal/platforms"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestCreator(t *testing.T, db *gorm.DB, handle string) *models.Creator {
	creator := &models.Creator{
		ID:          uuid.New(),
		Handle:      handle,
		DisplayName: "Test Creator",
		Email:       handle + "@example.com",
		IsActive:    true,
	}
	if err := db.Create(creator).Error; err != nil {
		t.Fatalf("Failed to create test creator: %v", err)
	}
	return creator
}

func TestPostsService_GetCreator(t *testing.T) {
	db := setupTestDB(t)
	service := NewPostsService(db, nil)
	ctx := context.Background()

	creator := createTestCreator(t, db, "alice.creator")

	t.Run("returns existing creator", func(t *testing.T) {
		got, err := service.GetCreator(ctx, creator.ID)
		assert.NoError(t, err)
		assert.Equal(t, creator.ID, got.ID)
		assert.Equal(t, "alice.creator", got.Handle)
	})

	t.Run("wraps missing creator as not found", func(t *testing.T) {
		_, err := service.GetCreator(ctx, uuid.New())
		assert.Error(t, err)
		assert.ErrorIs(t, err, analytics.ErrNotFound)
	})
}

func TestPostsService_GetPost(t *testing.T) {
	db := setupTestDB(t)
	service := NewPostsService(db, nil)
	ctx := context.Background()

	creator := createTestCreator(t, db, "bob.creator")

	published := time.Now().Add(-24 * time.Hour)
	post := models.Post{
		ID:          uuid.New(),
		CreatorID:   creator.ID,
		Platform:    models.PlatformYouTube,
		ExternalID:  "yt-100",
		Title:       "How I Edit My Videos",
		ContentType: "video",
		PublishedAt: &published,
	}
	assert.NoError(t, db.Create(&post).Error)

	got, err := service.GetPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "How I Edit My Videos", got.Title)

	_, err = service.GetPost(ctx, uuid.New())
	assert.ErrorIs(t, err, analytics.ErrNotFound)
}

func TestPostsService_GetPostsByCreator(t *testing.T) {
	db := setupTestDB(t)
	service := NewPostsService(db, nil)
	ctx := context.Background()

	creator := createTestCreator(t, db, "carol.creator")
	other := createTestCreator(t, db, "other.creator")

	now := time.Now()
	oldest := now.Add(-72 * time.Hour)
	middle := now.Add(-48 * time.Hour)
	newest := now.Add(-24 * time.Hour)

	posts := []models.Post{
		{ID: uuid.New(), CreatorID: creator.ID, Platform: models.PlatformBlog, ExternalID: "b-1", Title: "Oldest", PublishedAt: &oldest},
		{ID: uuid.New(), CreatorID: creator.ID, Platform: models.PlatformBlog, ExternalID: "b-2", Title: "Newest", PublishedAt: &newest},
		{ID: uuid.New(), CreatorID: creator.ID, Platform: models.PlatformBlog, ExternalID: "b-3", Title: "Middle", PublishedAt: &middle},
		{ID: uuid.New(), CreatorID: other.ID, Platform: models.PlatformBlog, ExternalID: "b-4", Title: "Someone else", PublishedAt: &now},
	}
	for i := range posts {
		assert.NoError(t, db.Create(&posts[i]).Error)
	}

	got, err := service.GetPostsByCreator(ctx, creator.ID)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "Newest", got[0].Title)
	assert.Equal(t, "Middle", got[1].Title)
	assert.Equal(t, "Oldest", got[2].Title)
}

func TestPostsService_GetPerformanceByCreator(t *testing.T) {
	db := setupTestDB(t)
	service := NewPostsService(db, nil)
	ctx := context.Background()

	creator := createTestCreator(t, db, "dana.creator")
	other := createTestCreator(t, db, "noise.creator")

	published := time.Now().Add(-7 * 24 * time.Hour)
	mine := models.Post{ID: uuid.New(), CreatorID: creator.ID, Platform: models.PlatformInstagram, ExternalID: "ig-1", PublishedAt: &published}
	theirs := models.Post{ID: uuid.New(), CreatorID: other.ID, Platform: models.PlatformInstagram, ExternalID: "ig-2", PublishedAt: &published}
	assert.NoError(t, db.Create(&mine).Error)
	assert.NoError(t, db.Create(&theirs).Error)

	records := []models.PerformanceRecord{
		{ID: uuid.New(), PostID: mine.ID, Platform: models.PlatformInstagram, RecordedAt: published.Add(48 * time.Hour), Views: 2000, Likes: 150},
		{ID: uuid.New(), PostID: mine.ID, Platform: models.PlatformInstagram, RecordedAt: published.Add(24 * time.Hour), Views: 1000, Likes: 80},
		{ID: uuid.New(), PostID: theirs.ID, Platform: models.PlatformInstagram, RecordedAt: published.Add(24 * time.Hour), Views: 9999, Likes: 999},
	}
	for i := range records {
		assert.NoError(t, db.Create(&records[i]).Error)
	}

	got, err := service.GetPerformanceByCreator(ctx, creator.ID)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	// Oldest snapshot first
	assert.Equal(t, 1000, got[0].Views)
	assert.Equal(t, 2000, got[1].Views)

	byPost, err := service.GetPerformanceByPost(ctx, mine.ID)
	assert.NoError(t, err)
	assert.Len(t, byPost, 2)
	assert.Equal(t, 1000, byPost[0].Views)
}

// newTestGateway builds an httptest server that answers the gateway
// endpoints the import path hits, plus a platforms.Client pointed at it.
func newTestGateway(t *testing.T, posts []platforms.RemotePost, metrics platforms.RemoteMetrics) (*httptest.Server, *platforms.Client) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == "GET" && strings.HasSuffix(r.URL.Path, "/posts"):
			json.NewEncoder(w).Encode(map[string]interface{}{"posts": posts})
		case r.Method == "GET" && strings.HasSuffix(r.URL.Path, "/metrics"):
			json.NewEncoder(w).Encode(metrics)
		case r.Method == "POST" && r.URL.Path == "/v1/publish":
			json.NewEncoder(w).Encode(platforms.PublishResponse{
				ExternalID: "pub-1",
				URL:        "https://example.com/pub-1",
			})
		default:
			t.Errorf("unexpected gateway request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, platforms.NewClient(server.URL)
}

func TestPostsService_ImportPostsFromPlatforms(t *testing.T) {
	published := time.Now().Add(-48 * time.Hour)
	remotePosts := []platforms.RemotePost{
		{
			ExternalID:  "yt-1",
			Platform:    models.PlatformYouTube,
			URL:         "https://youtube.example/yt-1",
			Title:       "Editing - My Full Workflow",
			Body:        "Everything about how I cut my videos.",
			ContentType: "video",
			Tags:        []string{"editing", "tutorial"},
			HasMedia:    true,
			Duration:    612,
			PublishedAt: &published,
		},
		{
			ExternalID:  "yt-2",
			Platform:    models.PlatformYouTube,
			Title:       "Gear - What Is In My Bag",
			ContentType: "video",
			HasMedia:    true,
			PublishedAt: &published,
		},
	}
	remoteMetrics := platforms.RemoteMetrics{Views: 5400, Likes: 310, Comments: 45, Shares: 12}

	t.Run("imports posts and metrics for connected accounts", func(t *testing.T) {
		db := setupTestDB(t)
		_, client := newTestGateway(t, remotePosts, remoteMetrics)
		service := NewPostsService(db, client)

		creator := createTestCreator(t, db, "eve.creator")
		account := models.PlatformAccount{
			ID:          uuid.New(),
			CreatorID:   creator.ID,
			Platform:    models.PlatformYouTube,
			Username:    "eve_films",
			IsConnected: true,
		}
		assert.NoError(t, db.Create(&account).Error)

		err := service.ImportPostsFromPlatforms(context.Background(), creator.ID, ImportConfig{MaxPosts: 10})
		assert.NoError(t, err)

		var posts []models.Post
		assert.NoError(t, db.Where("creator_id = ?", creator.ID).Find(&posts).Error)
		assert.Len(t, posts, 2)

		var records []models.PerformanceRecord
		assert.NoError(t, db.Find(&records).Error)
		assert.Len(t, records, 2)
		assert.Equal(t, 5400, records[0].Views)

		var synced models.PlatformAccount
		assert.NoError(t, db.First(&synced, "id = ?", account.ID).Error)
		assert.NotNil(t, synced.LastSyncedAt)
		assert.Empty(t, synced.SyncError)
	})

	t.Run("running twice only adds new snapshots", func(t *testing.T) {
		db := setupTestDB(t)
		_, client := newTestGateway(t, remotePosts, remoteMetrics)
		service := NewPostsService(db, client)

		creator := createTestCreator(t, db, "frank.creator")
		account := models.PlatformAccount{
			ID:          uuid.New(),
			CreatorID:   creator.ID,
			Platform:    models.PlatformYouTube,
			Username:    "frank_films",
			IsConnected: true,
		}
		assert.NoError(t, db.Create(&account).Error)

		cfg := ImportConfig{MaxPosts: 10}
		assert.NoError(t, service.ImportPostsFromPlatforms(context.Background(), creator.ID, cfg))
		assert.NoError(t, service.ImportPostsFromPlatforms(context.Background(), creator.ID, cfg))

		var postCount, recordCount int64
		db.Model(&models.Post{}).Count(&postCount)
		db.Model(&models.PerformanceRecord{}).Count(&recordCount)
		assert.Equal(t, int64(2), postCount)
		assert.Equal(t, int64(4), recordCount)
	})

	t.Run("fills blog content from the post page", func(t *testing.T) {
		blogPage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, `<html><head>
				<title>fallback title</title>
				<meta property="og:title" content="Five Lessons From A Year Of Blogging"/>
			</head><body><article>
				<img src="/cover.jpg"/>
				<p>Lesson one took the longest to learn.</p>
			</article></body></html>`)
		}))
		t.Cleanup(blogPage.Close)

		db := setupTestDB(t)
		_, client := newTestGateway(t, []platforms.RemotePost{{
			ExternalID:  "blog-1",
			Platform:    models.PlatformBlog,
			URL:         blogPage.URL + "/lessons",
			ContentType: "blog",
		}}, platforms.RemoteMetrics{Views: 300, Likes: 20})
		service := NewPostsService(db, client)

		creator := createTestCreator(t, db, "ivy.creator")
		account := models.PlatformAccount{
			ID:          uuid.New(),
			CreatorID:   creator.ID,
			Platform:    models.PlatformBlog,
			Username:    "ivy_writes",
			IsConnected: true,
		}
		assert.NoError(t, db.Create(&account).Error)

		err := service.ImportPostsFromPlatforms(context.Background(), creator.ID, ImportConfig{MaxPosts: 5})
		assert.NoError(t, err)

		var post models.Post
		assert.NoError(t, db.First(&post, "external_id = ?", "blog-1").Error)
		assert.Equal(t, "Five Lessons From A Year Of Blogging", post.Title)
		assert.Contains(t, post.Body, "Lesson one took the longest to learn")
		assert.True(t, post.HasMedia)
	})

	t.Run("errors when creator has no connected accounts", func(t *testing.T) {
		db := setupTestDB(t)
		service := NewPostsService(db, nil)

		creator := createTestCreator(t, db, "grace.creator")
		err := service.ImportPostsFromPlatforms(context.Background(), creator.ID, DefaultImportConfig())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no connected platform accounts")
	})

	t.Run("records sync error when client is not configured", func(t *testing.T) {
		db := setupTestDB(t)
		service := NewPostsService(db, nil)

		creator := createTestCreator(t, db, "henry.creator")
		account := models.PlatformAccount{
			ID:          uuid.New(),
			CreatorID:   creator.ID,
			Platform:    models.PlatformBlog,
			Username:    "henry_writes",
			IsConnected: true,
		}
		assert.NoError(t, db.Create(&account).Error)

		err := service.ImportPostsFromPlatforms(context.Background(), creator.ID, ImportConfig{MaxPosts: 5})
		assert.NoError(t, err)

		var updated models.PlatformAccount
		assert.NoError(t, db.First(&updated, "id = ?", account.ID).Error)
		assert.Contains(t, updated.SyncError, "platform client not configured")
	})
}
