package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerformanceRecord is one engagement snapshot for a post. A post can have
// several records, one per collection date or per platform surface.
type PerformanceRecord struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	PostID   uuid.UUID `json:"post_id" db:"post_id" gorm:"not null;index"`
	Platform Platform  `json:"platform" db:"platform" gorm:"not null;index"`

	RecordedAt time.Time `json:"recorded_at" db:"recorded_at" gorm:"index"`

	// Raw engagement counts from the platform
	Views    int `json:"views" db:"views" gorm:"default:0"`
	Likes    int `json:"likes" db:"likes" gorm:"default:0"`
	Comments int `json:"comments" db:"comments" gorm:"default:0"`
	Shares   int `json:"shares" db:"shares" gorm:"default:0"`

	EstimatedRevenue float64 `json:"estimated_revenue" db:"estimated_revenue" gorm:"default:0.0"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Post Post `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
}

// TableName sets the table name for the PerformanceRecord model
func (PerformanceRecord) TableName() string {
	return "performance_records"
}

// BeforeCreate assigns an ID when one is not already set
func (pr *PerformanceRecord) BeforeCreate(tx *gorm.DB) error {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	return nil
}
