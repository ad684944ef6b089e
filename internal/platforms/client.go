package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"creator-pulse/internal/models"
)

// Client talks to the metrics gateway that fronts the social platform APIs.
// One gateway session covers every connected platform.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Session represents an authenticated gateway session
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// RemotePost is a post as returned by the gateway
type RemotePost struct {
	ExternalID  string          `json:"externalId"`
	Platform    models.Platform `json:"platform"`
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	ContentType string          `json:"contentType"`
	Tags        []string        `json:"tags,omitempty"`
	HasMedia    bool            `json:"hasMedia"`
	Duration    int             `json:"duration,omitempty"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
}

// RemoteMetrics is the current engagement snapshot for a post
type RemoteMetrics struct {
	ExternalID       string  `json:"externalId"`
	Views            int     `json:"views"`
	Likes            int     `json:"likes"`
	Comments         int     `json:"comments"`
	Shares           int     `json:"shares"`
	EstimatedRevenue float64 `json:"estimatedRevenue"`
}

// PublishRequest is the payload for publishing a post through the gateway
type PublishRequest struct {
	Platform    models.Platform `json:"platform"`
	Username    string          `json:"username"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	ContentType string          `json:"contentType"`
	Tags        []string        `json:"tags,omitempty"`
}

// PublishResponse is the gateway's answer to a publish request
type PublishResponse struct {
	ExternalID string `json:"externalId"`
	URL        string `json:"url"`
}

// NewClient creates a new gateway client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateSession authenticates with the gateway
func (c *Client) CreateSession(ctx context.Context, identifier, secret string) error {
	payload := map[string]string{
		"identifier": identifier,
		"secret":     secret,
	}

	var session Session
	if err := c.post(ctx, "/v1/sessions", payload, &session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	c.session = &session
	return nil
}

// GetAuthorPosts fetches recent posts for an account on a platform
func (c *Client) GetAuthorPosts(ctx context.Context, platform models.Platform, username string, limit int) ([]RemotePost, error) {
	endpoint := fmt.Sprintf("/v1/platforms/%s/accounts/%s/posts?limit=%d",
		platform, url.PathEscape(username), limit)

	var response struct {
		Posts []RemotePost `json:"posts"`
	}
	if err := c.get(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return response.Posts, nil
}

// GetPostMetrics fetches the current engagement counts for a post
func (c *Client) GetPostMetrics(ctx context.Context, platform models.Platform, externalID string) (*RemoteMetrics, error) {
	endpoint := fmt.Sprintf("/v1/platforms/%s/posts/%s/metrics",
		platform, url.PathEscape(externalID))

	var metrics RemoteMetrics
	if err := c.get(ctx, endpoint, &metrics); err != nil {
		return nil, fmt.Errorf("failed to fetch metrics: %w", err)
	}
	return &metrics, nil
}

// PublishPost publishes content through the gateway
func (c *Client) PublishPost(ctx context.Context, req PublishRequest) (*PublishResponse, error) {
	var response PublishResponse
	if err := c.post(ctx, "/v1/publish", req, &response); err != nil {
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}
	return &response, nil
}

// get performs an authenticated GET request
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

// post performs an authenticated POST request with a JSON body
func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("User-Agent", "CreatorPulse/1.0")
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
