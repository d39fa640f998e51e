package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIKey grants access to a single environment. Only the SHA-256 digest of
// the key is stored; the cleartext is shown once at creation time.
type APIKey struct {
	ID            uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	EnvironmentID uuid.UUID  `json:"environment_id" gorm:"not null;type:uuid;index:idx_api_keys_environment"`
	Label         string     `json:"label" gorm:"not null"`
	HashedKey     string     `json:"-" gorm:"not null;uniqueIndex:idx_api_keys_hashed_key"`
	CreatedAt     time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`

	// Foreign Key Relations
	Environment *Environment `json:"environment,omitempty" gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID when none was provided.
func (k *APIKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (APIKey) TableName() string {
	return "api_keys"
}
