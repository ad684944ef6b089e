package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post represents a published piece of content on one of the creator's
// platforms. Posts are treated as immutable once fetched; only their
// associated performance records change over time.
type Post struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	CreatorID uuid.UUID `json:"creator_id" db:"creator_id" gorm:"not null;index"`
	Platform  Platform  `json:"platform" db:"platform" gorm:"not null;index"`

	// Platform-side identity
	ExternalID string `json:"external_id" db:"external_id" gorm:"index"`
	URL        string `json:"url" db:"url"`

	// Content
	Title       string         `json:"title" db:"title"`
	Body        string         `json:"body" db:"body" gorm:"type:text"`
	ContentType string         `json:"content_type" db:"content_type"` // video, social_media, blog, ...
	Tags        pq.StringArray `json:"tags" db:"tags" gorm:"type:text[]"`
	HasMedia    bool           `json:"has_media" db:"has_media" gorm:"default:false"`

	// Duration in seconds, for video content
	Duration int `json:"duration" db:"duration" gorm:"default:0"`

	PublishedAt *time.Time `json:"published_at" db:"published_at" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Creator            Creator             `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID"`
	PerformanceRecords []PerformanceRecord `json:"performance_records,omitempty" gorm:"foreignKey:PostID"`
}

// TableName sets the table name for the Post model
func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns an ID when one is not already set
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
