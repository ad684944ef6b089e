package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"creator-pulse/internal/analytics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalyticsHandler serves the analytics and prediction API
type AnalyticsHandler struct {
	service *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// statusForError maps analytics errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, analytics.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, analytics.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analytics.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetContentInsights handles GET /api/analytics/content/:id/insights
func (h *AnalyticsHandler) GetContentInsights(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	insights, err := h.service.GetContentInsights(c.Request.Context(), postID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, insights)
}

// GetPerformancePatterns handles GET /api/analytics/creators/:id/patterns
func (h *AnalyticsHandler) GetPerformancePatterns(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator ID"})
		return
	}

	topN, err := strconv.Atoi(c.DefaultQuery("top_n", "5"))
	if err != nil || topN < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "top_n must be a positive integer"})
		return
	}

	report, err := h.service.AnalyzeHighPerformancePatterns(c.Request.Context(), creatorID, topN)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetRecommendations handles GET /api/analytics/creators/:id/recommendations
func (h *AnalyticsHandler) GetRecommendations(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator ID"})
		return
	}

	bundle, err := h.service.GenerateContentRecommendations(c.Request.Context(), creatorID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// PredictPerformance handles POST /api/analytics/predictions
func (h *AnalyticsHandler) PredictPerformance(c *gin.Context) {
	var req analytics.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.PredictContentPerformance(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEngagementFactors handles GET /api/analytics/creators/:id/factors
func (h *AnalyticsHandler) GetEngagementFactors(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator ID"})
		return
	}

	factors, err := h.service.IdentifyEngagementFactors(c.Request.Context(), creatorID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creator_id": creatorID,
		"factors":    factors,
	})
}

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "creator-pulse",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
