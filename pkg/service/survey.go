package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"gorm.io/gorm"
)

// SurveyService manages surveys within an environment.
type SurveyService struct {
	db        *gorm.DB
	publicURL string
}

// NewSurveyService creates a new survey service. publicURL is the base URL
// share links are built from.
func NewSurveyService(db *gorm.DB, publicURL string) *SurveyService {
	return &SurveyService{db: db, publicURL: strings.TrimRight(publicURL, "/")}
}

// Create creates a survey in the given environment.
func (s *SurveyService) Create(ctx context.Context, environmentID uuid.UUID, name string, surveyType models.SurveyType, description *string) (*models.Survey, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Environment{}).
		Where("id = ?", environmentID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check environment: %w", err)
	}
	if count == 0 {
		return nil, ErrEnvironmentNotFound
	}

	survey := models.Survey{
		EnvironmentID: environmentID,
		Name:          name,
		Type:          string(surveyType),
		Status:        string(models.SurveyStatusDraft),
		Description:   description,
	}
	if err := s.db.WithContext(ctx).Create(&survey).Error; err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	return &survey, nil
}

// GetByID loads a survey scoped to an environment.
func (s *SurveyService) GetByID(ctx context.Context, environmentID, surveyID uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.WithContext(ctx).
		Where("id = ? AND environment_id = ?", surveyID, environmentID).
		First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSurveyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}
	return &survey, nil
}

// GetByRef resolves a survey from a full id or an id prefix, the way
// list output abbreviates them.
func (s *SurveyService) GetByRef(ctx context.Context, environmentID uuid.UUID, ref string) (*models.Survey, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.GetByID(ctx, environmentID, id)
	}

	var survey models.Survey
	// CAST instead of ::text so the lookup also runs on sqlite.
	err := s.db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Where("CAST(id AS TEXT) LIKE ?", ref+"%").
		First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSurveyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve survey: %w", err)
	}
	return &survey, nil
}

// List returns all surveys of an environment, newest first.
func (s *SurveyService) List(ctx context.Context, environmentID uuid.UUID) ([]*models.Survey, error) {
	var surveys []*models.Survey
	if err := s.db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("created_at DESC").
		Find(&surveys).Error; err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	return surveys, nil
}

// UpdateInput carries the mutable survey fields; nil means "leave as is".
type UpdateInput struct {
	Name        *string
	Status      *string
	Description *string
}

// Update applies the given changes to a survey.
func (s *SurveyService) Update(ctx context.Context, environmentID, surveyID uuid.UUID, input UpdateInput) (*models.Survey, error) {
	survey, err := s.GetByID(ctx, environmentID, surveyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		survey.Name = *input.Name
	}
	if input.Status != nil {
		switch models.SurveyStatus(*input.Status) {
		case models.SurveyStatusDraft, models.SurveyStatusInProgress,
			models.SurveyStatusPaused, models.SurveyStatusCompleted:
		default:
			return nil, ErrInvalidSurveyStatus
		}
		survey.Status = *input.Status
	}
	if input.Description != nil {
		survey.Description = input.Description
	}

	if err := s.db.WithContext(ctx).Save(survey).Error; err != nil {
		return nil, fmt.Errorf("failed to update survey: %w", err)
	}
	return survey, nil
}

// Delete removes a survey with its responses and their tag associations.
func (s *SurveyService) Delete(ctx context.Context, environmentID, surveyID uuid.UUID) error {
	survey, err := s.GetByID(ctx, environmentID, surveyID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("response_id IN (?)", tx.Model(&models.Response{}).
			Select("id").Where("survey_id = ?", survey.ID)).
			Delete(&models.TagsOnResponses{}).Error; err != nil {
			return fmt.Errorf("failed to delete response associations: %w", err)
		}
		if err := tx.Where("survey_id = ?", survey.ID).Delete(&models.Response{}).Error; err != nil {
			return fmt.Errorf("failed to delete responses: %w", err)
		}
		if err := tx.Delete(survey).Error; err != nil {
			return fmt.Errorf("failed to delete survey: %w", err)
		}
		return nil
	})
}

// ShareURL builds the public link for a link survey.
func (s *SurveyService) ShareURL(survey *models.Survey) string {
	return fmt.Sprintf("%s/s/%s", s.publicURL, survey.ShareKey)
}
