package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResponseService manages survey responses and their tag associations.
// Every lookup is scoped to an environment through the owning survey, so
// a caller never sees responses from another environment.
type ResponseService struct {
	db *gorm.DB
}

// NewResponseService creates a new response service
func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{db: db}
}

// surveyVisible checks that a survey exists in the given environment.
func (s *ResponseService) surveyVisible(ctx context.Context, environmentID, surveyID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Survey{}).
		Where("id = ? AND environment_id = ?", surveyID, environmentID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check survey: %w", err)
	}
	if count == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

// Create stores a submission for a survey.
func (s *ResponseService) Create(ctx context.Context, environmentID, surveyID uuid.UUID, data datatypes.JSON, finished bool) (*models.Response, error) {
	if err := s.surveyVisible(ctx, environmentID, surveyID); err != nil {
		return nil, err
	}

	if data == nil {
		data = datatypes.JSON([]byte("{}"))
	}
	response := models.Response{SurveyID: surveyID, Data: data, Finished: finished}
	if err := s.db.WithContext(ctx).Create(&response).Error; err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}
	return &response, nil
}

// GetByID loads a response with its tags, scoped to an environment via
// the owning survey.
func (s *ResponseService) GetByID(ctx context.Context, environmentID, responseID uuid.UUID) (*models.Response, error) {
	var response models.Response
	err := s.db.WithContext(ctx).Preload("Tags").
		Select("responses.*").
		Joins("JOIN surveys ON surveys.id = responses.survey_id").
		Where("responses.id = ? AND surveys.environment_id = ?", responseID, environmentID).
		First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load response: %w", err)
	}
	return &response, nil
}

// GetByRef resolves a response from a full id or an id prefix, the way
// list output abbreviates them.
func (s *ResponseService) GetByRef(ctx context.Context, environmentID uuid.UUID, ref string) (*models.Response, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.GetByID(ctx, environmentID, id)
	}

	var response models.Response
	// CAST instead of ::text so the lookup also runs on sqlite.
	err := s.db.WithContext(ctx).Preload("Tags").
		Select("responses.*").
		Joins("JOIN surveys ON surveys.id = responses.survey_id").
		Where("surveys.environment_id = ?", environmentID).
		Where("CAST(responses.id AS TEXT) LIKE ?", ref+"%").
		First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve response: %w", err)
	}
	return &response, nil
}

// List returns a survey's responses, newest first, tags preloaded.
func (s *ResponseService) List(ctx context.Context, environmentID, surveyID uuid.UUID) ([]*models.Response, error) {
	if err := s.surveyVisible(ctx, environmentID, surveyID); err != nil {
		return nil, err
	}

	var responses []*models.Response
	if err := s.db.WithContext(ctx).Preload("Tags").
		Where("survey_id = ?", surveyID).
		Order("created_at DESC").
		Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

// Finish marks a response as completed.
func (s *ResponseService) Finish(ctx context.Context, environmentID, responseID uuid.UUID) (*models.Response, error) {
	response, err := s.GetByID(ctx, environmentID, responseID)
	if err != nil {
		return nil, err
	}
	response.Finished = true
	if err := s.db.WithContext(ctx).Save(response).Error; err != nil {
		return nil, fmt.Errorf("failed to update response: %w", err)
	}
	return response, nil
}

// Delete removes a response and its tag associations.
func (s *ResponseService) Delete(ctx context.Context, environmentID, responseID uuid.UUID) error {
	response, err := s.GetByID(ctx, environmentID, responseID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("response_id = ?", response.ID).Delete(&models.TagsOnResponses{}).Error; err != nil {
			return fmt.Errorf("failed to delete response associations: %w", err)
		}
		if err := tx.Delete(&models.Response{}, "id = ?", response.ID).Error; err != nil {
			return fmt.Errorf("failed to delete response: %w", err)
		}
		return nil
	})
}

// AddTag applies a tag to a response. Both the response's survey and the
// tag must belong to the given environment.
func (s *ResponseService) AddTag(ctx context.Context, environmentID, responseID, tagID uuid.UUID) error {
	if _, err := s.GetByID(ctx, environmentID, responseID); err != nil {
		return err
	}

	var tag models.Tag
	err := s.db.WithContext(ctx).
		Where("id = ? AND environment_id = ?", tagID, environmentID).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTagNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load tag: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.TagsOnResponses{}).
		Where("response_id = ? AND tag_id = ?", responseID, tagID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check association: %w", err)
	}
	if count > 0 {
		return ErrTagAlreadyApplied
	}

	row := models.TagsOnResponses{ResponseID: responseID, TagID: tagID}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to apply tag: %w", err)
	}
	return nil
}

// RemoveTag detaches a tag from a response.
func (s *ResponseService) RemoveTag(ctx context.Context, environmentID, responseID, tagID uuid.UUID) error {
	if _, err := s.GetByID(ctx, environmentID, responseID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("response_id = ? AND tag_id = ?", responseID, tagID).
		Delete(&models.TagsOnResponses{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

// ExportCSV streams a survey's responses as CSV. The header carries the
// fixed columns followed by one column per question key, the sorted union
// over all responses; tags are joined with ";".
func (s *ResponseService) ExportCSV(ctx context.Context, environmentID, surveyID uuid.UUID, w io.Writer) error {
	responses, err := s.List(ctx, environmentID, surveyID)
	if err != nil {
		return err
	}

	parsed := make([]map[string]any, len(responses))
	keySet := map[string]struct{}{}
	for i, r := range responses {
		var data map[string]any
		if len(r.Data) > 0 {
			if err := json.Unmarshal(r.Data, &data); err != nil {
				return fmt.Errorf("failed to decode response %s: %w", r.ID, err)
			}
		}
		parsed[i] = data
		for k := range data {
			keySet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cw := csv.NewWriter(w)
	header := append([]string{"id", "created_at", "finished", "tags"}, keys...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, r := range responses {
		tagNames := make([]string, len(r.Tags))
		for j, t := range r.Tags {
			tagNames[j] = t.Name
		}
		sort.Strings(tagNames)

		row := []string{
			r.ID.String(),
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%t", r.Finished),
			strings.Join(tagNames, ";"),
		}
		for _, k := range keys {
			row = append(row, formatAnswer(parsed[i][k]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatAnswer renders a decoded answer value as a CSV cell. Multi-choice
// answers arrive as arrays and are joined with ";".
func formatAnswer(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	case bool:
		return fmt.Sprintf("%t", val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatAnswer(item)
		}
		return strings.Join(parts, ";")
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
