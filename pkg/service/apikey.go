package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"gorm.io/gorm"
)

const apiKeyPrefix = "fb_"

// APIKeyService issues and authenticates environment-scoped API keys.
type APIKeyService struct {
	db *gorm.DB
}

// NewAPIKeyService creates a new API key service
func NewAPIKeyService(db *gorm.DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// Create issues a key for an environment and returns the record together
// with the cleartext key. The cleartext is not recoverable afterwards.
func (s *APIKeyService) Create(ctx context.Context, environmentID uuid.UUID, label string) (*models.APIKey, string, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Environment{}).
		Where("id = ?", environmentID).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check environment: %w", err)
	}
	if count == 0 {
		return nil, "", ErrEnvironmentNotFound
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", fmt.Errorf("failed to generate key: %w", err)
	}
	cleartext := apiKeyPrefix + hex.EncodeToString(raw)

	key := models.APIKey{
		EnvironmentID: environmentID,
		Label:         label,
		HashedKey:     hashKey(cleartext),
	}
	if err := s.db.WithContext(ctx).Create(&key).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create api key: %w", err)
	}
	return &key, cleartext, nil
}

// Authenticate resolves a cleartext key to its record and bumps LastUsedAt.
func (s *APIKeyService) Authenticate(ctx context.Context, cleartext string) (*models.APIKey, error) {
	if cleartext == "" {
		return nil, ErrInvalidAPIKey
	}

	var key models.APIKey
	err := s.db.WithContext(ctx).
		Where("hashed_key = ?", hashKey(cleartext)).
		First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidAPIKey
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}

	now := time.Now()
	key.LastUsedAt = &now
	if err := s.db.WithContext(ctx).Model(&key).Update("last_used_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to update api key: %w", err)
	}
	return &key, nil
}

// List returns an environment's keys.
func (s *APIKeyService) List(ctx context.Context, environmentID uuid.UUID) ([]*models.APIKey, error) {
	var keys []*models.APIKey
	if err := s.db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("created_at ASC").
		Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	return keys, nil
}

// Delete revokes a key.
func (s *APIKeyService) Delete(ctx context.Context, keyID uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.APIKey{}, "id = ?", keyID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete api key: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAPIKeyNotFound
	}
	return nil
}

func hashKey(cleartext string) string {
	sum := sha256.Sum256([]byte(cleartext))
	return hex.EncodeToString(sum[:])
}
