package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"gorm.io/gorm"
)

// TagService manages tags and the response-tag associations of a single
// database.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a new tag service
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// Create creates a tag in the given environment. Tag names are unique per
// environment.
func (s *TagService) Create(ctx context.Context, environmentID uuid.UUID, name string) (*models.Tag, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("environment_id = ? AND name = ?", environmentID, name).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if count > 0 {
		return nil, ErrTagNameTaken
	}

	tag := models.Tag{EnvironmentID: environmentID, Name: name}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

// GetByID loads a tag scoped to an environment.
func (s *TagService) GetByID(ctx context.Context, environmentID, tagID uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).
		Where("id = ? AND environment_id = ?", tagID, environmentID).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return &tag, nil
}

// GetByRef resolves a tag from a full id or an id prefix, the way list
// output abbreviates them.
func (s *TagService) GetByRef(ctx context.Context, environmentID uuid.UUID, ref string) (*models.Tag, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.GetByID(ctx, environmentID, id)
	}

	var tag models.Tag
	// CAST instead of ::text so the lookup also runs on sqlite.
	err := s.db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Where("CAST(id AS TEXT) LIKE ?", ref+"%").
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag: %w", err)
	}
	return &tag, nil
}

// List returns all tags of an environment in alphabetical order.
func (s *TagService) List(ctx context.Context, environmentID uuid.UUID) ([]*models.Tag, error) {
	var tags []*models.Tag
	if err := s.db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Rename changes a tag's name, keeping the per-environment uniqueness rule.
func (s *TagService) Rename(ctx context.Context, environmentID, tagID uuid.UUID, name string) (*models.Tag, error) {
	tag, err := s.GetByID(ctx, environmentID, tagID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("environment_id = ? AND name = ? AND id <> ?", environmentID, name, tagID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if count > 0 {
		return nil, ErrTagNameTaken
	}

	tag.Name = name
	if err := s.db.WithContext(ctx).Save(tag).Error; err != nil {
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}
	return tag, nil
}

// Delete removes a tag and all its response associations.
func (s *TagService) Delete(ctx context.Context, environmentID, tagID uuid.UUID) error {
	tag, err := s.GetByID(ctx, environmentID, tagID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.TagsOnResponses{}).Error; err != nil {
			return fmt.Errorf("failed to delete tag associations: %w", err)
		}
		if err := tx.Delete(tag).Error; err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}

// Merge collapses the source tag into the destination tag: every response
// association of the source is reassigned to the destination, responses
// carrying both end up with a single destination association, and the
// source tag is deleted. Returns the destination tag.
//
// The whole operation runs in one transaction. Racing merges of the same
// pair are serialized by the final source delete: when another merge
// already removed the source, the delete affects zero rows and the
// transaction rolls back with ErrTagNotFound.
func (s *TagService) Merge(ctx context.Context, environmentID, sourceID, destinationID uuid.UUID) (*models.Tag, error) {
	if sourceID == destinationID {
		return nil, ErrMergeSameTag
	}

	var destination models.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source models.Tag
		if err := tx.Where("id = ? AND environment_id = ?", sourceID, environmentID).
			First(&source).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return fmt.Errorf("failed to load source tag: %w", err)
		}
		if err := tx.Where("id = ? AND environment_id = ?", destinationID, environmentID).
			First(&destination).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return fmt.Errorf("failed to load destination tag: %w", err)
		}

		// Responses carrying both tags. Blindly reassigning the source
		// association on these would violate the (response_id, tag_id)
		// primary key, so their two associations collapse to one first.
		var collisions []uuid.UUID
		if err := tx.Model(&models.TagsOnResponses{}).
			Where("tag_id = ?", source.ID).
			Where("response_id IN (?)", tx.Model(&models.TagsOnResponses{}).
				Select("response_id").Where("tag_id = ?", destination.ID)).
			Pluck("response_id", &collisions).Error; err != nil {
			return fmt.Errorf("failed to find overlapping responses: %w", err)
		}

		if len(collisions) > 0 {
			if err := tx.Where("response_id IN ? AND tag_id IN ?",
				collisions, []uuid.UUID{source.ID, destination.ID}).
				Delete(&models.TagsOnResponses{}).Error; err != nil {
				return fmt.Errorf("failed to collapse overlapping associations: %w", err)
			}
			rows := make([]models.TagsOnResponses, 0, len(collisions))
			for _, responseID := range collisions {
				rows = append(rows, models.TagsOnResponses{ResponseID: responseID, TagID: destination.ID})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to recreate destination associations: %w", err)
			}
		}

		// Remaining source associations belong to responses that do not
		// carry the destination tag; a straight reassignment is safe.
		if err := tx.Model(&models.TagsOnResponses{}).
			Where("tag_id = ?", source.ID).
			Update("tag_id", destination.ID).Error; err != nil {
			return fmt.Errorf("failed to reassign associations: %w", err)
		}

		res := tx.Delete(&source)
		if res.Error != nil {
			return fmt.Errorf("failed to delete source tag: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent merge got here first.
			return ErrTagNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &destination, nil
}
