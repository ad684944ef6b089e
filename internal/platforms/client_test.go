package platforms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"creator-pulse/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/sessions", r.URL.Path)

		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "demo", payload["identifier"])

		json.NewEncoder(w).Encode(Session{AccessToken: "token-123"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.CreateSession(context.Background(), "demo", "secret")

	assert.NoError(t, err)
	assert.NotNil(t, client.session)
	assert.Equal(t, "token-123", client.session.AccessToken)
}

func TestGetAuthorPosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/platforms/youtube/accounts/demo-channel/posts", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "CreatorPulse/1.0", r.Header.Get("User-Agent"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"posts": []RemotePost{
				{ExternalID: "yt-1", Platform: models.PlatformYouTube, Title: "First Video"},
				{ExternalID: "yt-2", Platform: models.PlatformYouTube, Title: "Second Video"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.session = &Session{AccessToken: "token-123"}

	posts, err := client.GetAuthorPosts(context.Background(), models.PlatformYouTube, "demo-channel", 50)

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "yt-1", posts[0].ExternalID)
	assert.Equal(t, "First Video", posts[0].Title)
}

func TestGetPostMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/platforms/youtube/posts/yt-1/metrics", r.URL.Path)
		json.NewEncoder(w).Encode(RemoteMetrics{
			ExternalID: "yt-1",
			Views:      1000,
			Likes:      50,
			Comments:   10,
			Shares:     5,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	metrics, err := client.GetPostMetrics(context.Background(), models.PlatformYouTube, "yt-1")

	assert.NoError(t, err)
	assert.Equal(t, 1000, metrics.Views)
	assert.Equal(t, 5, metrics.Shares)
}

func TestPublishPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/publish", r.URL.Path)

		var req PublishRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.PlatformBlog, req.Platform)

		json.NewEncoder(w).Encode(PublishResponse{ExternalID: "blog-9", URL: "https://example.com/blog-9"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.PublishPost(context.Background(), PublishRequest{
		Platform: models.PlatformBlog,
		Username: "blog.demo",
		Title:    "New Post",
	})

	assert.NoError(t, err)
	assert.Equal(t, "blog-9", resp.ExternalID)
}

func TestErrorResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream rate limit", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetPostMetrics(context.Background(), models.PlatformYouTube, "yt-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
