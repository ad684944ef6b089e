package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Creator represents a content creator that signed up for analytics
type Creator struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	Handle      string    `json:"handle" db:"handle" gorm:"uniqueIndex;not null"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Email       string    `json:"email" db:"email" gorm:"uniqueIndex;not null"`
	Avatar      string    `json:"avatar" db:"avatar"`
	Bio         string    `json:"bio" db:"bio"`

	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
	LastSeenAt time.Time `json:"last_seen_at" db:"last_seen_at"`
	IsActive   bool      `json:"is_active" db:"is_active" gorm:"default:true"`

	// Relationships
	PlatformAccounts []PlatformAccount `json:"platform_accounts,omitempty" gorm:"foreignKey:CreatorID"`
	Posts            []Post            `json:"posts,omitempty" gorm:"foreignKey:CreatorID"`
}

// TableName sets the table name for the Creator model
func (Creator) TableName() string {
	return "creators"
}

// BeforeCreate assigns an ID when one is not already set
func (c *Creator) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
