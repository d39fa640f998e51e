package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"gorm.io/gorm"
)

// EnvironmentService manages environments.
type EnvironmentService struct {
	db *gorm.DB
}

// NewEnvironmentService creates a new environment service
func NewEnvironmentService(db *gorm.DB) *EnvironmentService {
	return &EnvironmentService{db: db}
}

// Create creates an environment of the given type.
func (s *EnvironmentService) Create(ctx context.Context, envType models.EnvironmentType) (*models.Environment, error) {
	env := models.Environment{Type: string(envType)}
	if err := s.db.WithContext(ctx).Create(&env).Error; err != nil {
		return nil, fmt.Errorf("failed to create environment: %w", err)
	}
	return &env, nil
}

// GetByID loads an environment.
func (s *EnvironmentService) GetByID(ctx context.Context, environmentID uuid.UUID) (*models.Environment, error) {
	var env models.Environment
	err := s.db.WithContext(ctx).First(&env, "id = ?", environmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEnvironmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return &env, nil
}

// List returns all environments.
func (s *EnvironmentService) List(ctx context.Context) ([]*models.Environment, error) {
	var envs []*models.Environment
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&envs).Error; err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}
	return envs, nil
}
