package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"creator-pulse/internal/analytics"
	"creator-pulse/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("creator abc: %w", analytics.ErrNotFound), http.StatusNotFound},
		{"insufficient data", fmt.Errorf("need more: %w", analytics.ErrInsufficientData), http.StatusUnprocessableEntity},
		{"invalid request", fmt.Errorf("bad platform: %w", analytics.ErrInvalidRequest), http.StatusBadRequest},
		{"unknown error", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenServiceWithSecret("handler-test-secret")

	router := gin.New()
	router.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		creatorID := c.MustGet("creator_id").(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"creator_id": creatorID})
	})

	t.Run("rejects missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts valid token", func(t *testing.T) {
		creatorID := uuid.New()
		token, err := tokens.IssueToken(creatorID)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), creatorID.String())
	})
}
