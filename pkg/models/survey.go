package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyType represents how a survey is delivered
type SurveyType string

const (
	SurveyTypeLink SurveyType = "link"
	SurveyTypeApp  SurveyType = "app"
)

// SurveyStatus represents the lifecycle state of a survey
type SurveyStatus string

const (
	SurveyStatusDraft      SurveyStatus = "draft"
	SurveyStatusInProgress SurveyStatus = "inProgress"
	SurveyStatusPaused     SurveyStatus = "paused"
	SurveyStatusCompleted  SurveyStatus = "completed"
)

// Survey represents a survey in the system
type Survey struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	EnvironmentID uuid.UUID `json:"environment_id" gorm:"not null;type:uuid;index:idx_surveys_environment"`
	Name          string    `json:"name" gorm:"not null"`
	Type          string    `json:"type" gorm:"not null;type:varchar(20);default:'link'"`
	Status        string    `json:"status" gorm:"not null;type:varchar(20);default:'draft'"`
	Description   *string   `json:"description,omitempty"`
	ShareKey      string    `json:"share_key" gorm:"not null;uniqueIndex:idx_surveys_share_key"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Environment *Environment `json:"environment,omitempty" gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`

	// One-to-Many Relations
	Responses []*Response `json:"responses,omitempty" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID and a share key when none were provided.
func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.ShareKey == "" {
		key, err := newShareKey()
		if err != nil {
			return err
		}
		s.ShareKey = key
	}
	return nil
}

// newShareKey returns a random URL-safe key for link surveys.
func newShareKey() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
