package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnvironmentType represents the type of an environment
type EnvironmentType string

const (
	EnvironmentTypeProduction  EnvironmentType = "production"
	EnvironmentTypeDevelopment EnvironmentType = "development"
)

// Environment is the isolation scope under which surveys, responses and
// tags are partitioned.
type Environment struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Type      string    `json:"type" gorm:"not null;type:varchar(20);default:'production'"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// One-to-Many Relations
	Surveys []*Survey `json:"surveys,omitempty" gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`
	Tags    []*Tag    `json:"tags,omitempty" gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`
	APIKeys []*APIKey `json:"api_keys,omitempty" gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID when none was provided.
func (e *Environment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
