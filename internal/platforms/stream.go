package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"creator-pulse/internal/models"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// StreamConsumer handles the gateway's live engagement event stream and
// folds events into stored performance records
type StreamConsumer struct {
	db        *gorm.DB
	streamURL string
	dialer    *websocket.Dialer
}

// NewStreamConsumer creates a new engagement stream consumer
func NewStreamConsumer(db *gorm.DB, streamURL string) *StreamConsumer {
	return &StreamConsumer{
		db:        db,
		streamURL: streamURL,
		dialer:    websocket.DefaultDialer,
	}
}

// EngagementEvent is one live update from the gateway stream
type EngagementEvent struct {
	Platform   models.Platform `json:"platform"`
	ExternalID string          `json:"externalId"`
	Kind       string          `json:"kind"` // metrics, post, heartbeat
	TimeUS     int64           `json:"time_us"`
	Metrics    *RemoteMetrics  `json:"metrics,omitempty"`
}

// StartConsuming starts consuming the engagement stream, reconnecting on
// failure until the context is cancelled
func (sc *StreamConsumer) StartConsuming(ctx context.Context) error {
	log.Printf("Connecting to engagement stream: %s", sc.streamURL)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := sc.connectAndConsume(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("Engagement stream error: %v. Reconnecting in 10 seconds...", err)

				select {
				case <-time.After(10 * time.Second):
					continue
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// connectAndConsume handles a single connection to the stream
func (sc *StreamConsumer) connectAndConsume(ctx context.Context) error {
	conn, _, err := sc.dialer.DialContext(ctx, sc.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}
	defer conn.Close()

	log.Println("Successfully connected to engagement stream")

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	// Keepalive pings
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.Printf("Failed to send ping: %v", err)
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			_, message, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("failed to read message: %w", err)
			}

			if err := sc.processMessage(message); err != nil {
				log.Printf("Error processing stream message: %v", err)
				// Keep consuming even when one event fails
			}
		}
	}
}

// processMessage processes a single stream message
func (sc *StreamConsumer) processMessage(data []byte) error {
	var event EngagementEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to unmarshal stream event: %w", err)
	}

	if event.Kind != "metrics" || event.Metrics == nil {
		return nil
	}

	return sc.processMetricsEvent(&event)
}

// processMetricsEvent appends a performance record for a tracked post. Posts
// we are not tracking are skipped silently; the stream carries events for
// every gateway tenant.
func (sc *StreamConsumer) processMetricsEvent(event *EngagementEvent) error {
	var post models.Post
	result := sc.db.Where("platform = ? AND external_id = ?", event.Platform, event.ExternalID).First(&post)
	if result.Error != nil {
		return nil
	}

	record := models.PerformanceRecord{
		PostID:           post.ID,
		Platform:         event.Platform,
		RecordedAt:       time.Now(),
		Views:            event.Metrics.Views,
		Likes:            event.Metrics.Likes,
		Comments:         event.Metrics.Comments,
		Shares:           event.Metrics.Shares,
		EstimatedRevenue: event.Metrics.EstimatedRevenue,
	}

	if err := sc.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create performance record: %w", err)
	}

	log.Printf("Live metrics tracked for post %s (%d views)", post.Title, event.Metrics.Views)
	return nil
}
