package handlers

import (
	"net/http"
	"os"
	"time"

	"creator-pulse/internal/models"
	"creator-pulse/internal/services"
	"creator-pulse/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminHandler handles the admin interface
type AdminHandler struct {
	db            *gorm.DB
	postsService  *services.PostsService
	workerService *worker.WorkerService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, postsService *services.PostsService, workerService *worker.WorkerService) *AdminHandler {
	return &AdminHandler{
		db:            db,
		postsService:  postsService,
		workerService: workerService,
	}
}

// AdminAuth middleware for basic password protection
func (h *AdminHandler) AdminAuth() gin.HandlerFunc {
	return gin.BasicAuth(gin.Accounts{
		"admin": getAdminPassword(),
	})
}

// getAdminPassword returns the admin password from environment or default
func getAdminPassword() string {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123" // Default password for development
	}
	return password
}

// GetStats returns platform-wide counts for the admin dashboard
func (h *AdminHandler) GetStats(c *gin.Context) {
	var creatorCount, accountCount, postCount, recordCount int64
	h.db.Model(&models.Creator{}).Count(&creatorCount)
	h.db.Model(&models.PlatformAccount{}).Count(&accountCount)
	h.db.Model(&models.Post{}).Count(&postCount)
	h.db.Model(&models.PerformanceRecord{}).Count(&recordCount)

	var recentPosts []models.Post
	h.db.Order("created_at DESC").Limit(5).Find(&recentPosts)

	c.JSON(http.StatusOK, gin.H{
		"creators":            creatorCount,
		"platform_accounts":   accountCount,
		"posts":               postCount,
		"performance_records": recordCount,
		"recent_posts":        recentPosts,
	})
}

// GetWorkerStatus returns the status of the background worker service
func (h *AdminHandler) GetWorkerStatus(c *gin.Context) {
	if h.workerService == nil {
		c.JSON(http.StatusOK, gin.H{"running": false})
		return
	}
	c.JSON(http.StatusOK, h.workerService.GetStatus())
}

// RefreshCreatorPosts handles manual re-import of a creator's posts
func (h *AdminHandler) RefreshCreatorPosts(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator ID"})
		return
	}

	config := services.DefaultImportConfig()
	if err := h.postsService.ImportPostsFromPlatforms(c.Request.Context(), creatorID, config); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import posts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully imported posts for creator " + creatorID.String(),
	})
}

// RefreshAllMetrics handles manual refresh of metrics across all stale accounts
func (h *AdminHandler) RefreshAllMetrics(c *gin.Context) {
	// Force refresh config (ignore time limits)
	config := services.RefreshConfig{
		RefreshInterval: 0,
		BatchSize:       50,
		RateLimit:       100 * time.Millisecond,
	}

	synced, err := h.postsService.RefreshStaleAccounts(c.Request.Context(), config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh metrics: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"accounts_synced": synced,
	})
}
