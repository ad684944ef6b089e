package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Scheduled post statuses
const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusPublished = "published"
	ScheduleStatusFailed    = "failed"
)

// ScheduledPost represents content queued for future publishing
type ScheduledPost struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	CreatorID uuid.UUID `json:"creator_id" db:"creator_id" gorm:"not null;index"`
	Platform  Platform  `json:"platform" db:"platform" gorm:"not null"`

	Title       string         `json:"title" db:"title"`
	Body        string         `json:"body" db:"body" gorm:"type:text"`
	ContentType string         `json:"content_type" db:"content_type"`
	Tags        pq.StringArray `json:"tags" db:"tags" gorm:"type:text[]"`

	ScheduledFor time.Time  `json:"scheduled_for" db:"scheduled_for" gorm:"index;not null"`
	Status       string     `json:"status" db:"status" gorm:"default:'pending';index"`
	PublishedAt  *time.Time `json:"published_at" db:"published_at"`
	LastError    string     `json:"last_error" db:"last_error"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Creator Creator `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID"`
}

// TableName sets the table name for the ScheduledPost model
func (ScheduledPost) TableName() string {
	return "scheduled_posts"
}

// BeforeCreate assigns an ID when one is not already set
func (sp *ScheduledPost) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return nil
}
