package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlatformAccount represents a creator's connected account on a social platform
type PlatformAccount struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	CreatorID uuid.UUID `json:"creator_id" db:"creator_id" gorm:"not null;index"`
	Platform  Platform  `json:"platform" db:"platform" gorm:"not null;index"`
	Username  string    `json:"username" db:"username" gorm:"not null"`

	// OAuth credentials issued by the platform
	AccessToken    string     `json:"-" db:"access_token"`
	RefreshToken   string     `json:"-" db:"refresh_token"`
	TokenExpiresAt *time.Time `json:"token_expires_at" db:"token_expires_at"`

	// Sync state
	LastSyncedAt *time.Time `json:"last_synced_at" db:"last_synced_at"`
	SyncError    string     `json:"sync_error" db:"sync_error"`
	IsConnected  bool       `json:"is_connected" db:"is_connected" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Creator Creator `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID"`
}

// TableName sets the table name for the PlatformAccount model
func (PlatformAccount) TableName() string {
	return "platform_accounts"
}

// BeforeCreate assigns an ID when one is not already set
func (pa *PlatformAccount) BeforeCreate(tx *gorm.DB) error {
	if pa.ID == uuid.Nil {
		pa.ID = uuid.New()
	}
	return nil
}
