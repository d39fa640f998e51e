package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag represents a named label scoped to an environment. Names are unique
// within an environment, not globally.
type Tag struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	EnvironmentID uuid.UUID `json:"environment_id" gorm:"not null;type:uuid;uniqueIndex:idx_tags_environment_name"`
	Name          string    `json:"name" gorm:"not null;uniqueIndex:idx_tags_environment_name"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Environment *Environment `json:"environment,omitempty" gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Responses []*Response `json:"responses,omitempty" gorm:"many2many:response_tags;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID when none was provided.
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TagsOnResponses is the join row between responses and tags. A response
// carries a tag at most once.
type TagsOnResponses struct {
	ResponseID uuid.UUID `json:"response_id" gorm:"primaryKey;type:uuid"`
	TagID      uuid.UUID `json:"tag_id" gorm:"primaryKey;type:uuid;index:idx_response_tags_tag"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for GORM
func (TagsOnResponses) TableName() string {
	return "response_tags"
}
