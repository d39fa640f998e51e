package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response represents a single survey submission. Data maps question
// identifiers to the submitted answer payload.
type Response struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	SurveyID  uuid.UUID      `json:"survey_id" gorm:"not null;type:uuid;index:idx_responses_survey"`
	Data      datatypes.JSON `json:"data" gorm:"not null"`
	Finished  bool           `json:"finished" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Survey *Survey `json:"survey,omitempty" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Tags []*Tag `json:"tags,omitempty" gorm:"many2many:response_tags;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID when none was provided.
func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
