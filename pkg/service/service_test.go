package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"github.com/ranayash24/formbricks/pkg/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))
	return db
}

// newTestEnvironment creates an environment with one survey.
func newTestEnvironment(t *testing.T, db *gorm.DB) (*models.Environment, *models.Survey) {
	t.Helper()
	ctx := context.Background()

	env, err := NewEnvironmentService(db).Create(ctx, models.EnvironmentTypeDevelopment)
	require.NoError(t, err)

	survey, err := NewSurveyService(db, "http://localhost:8080").
		Create(ctx, env.ID, "Onboarding Feedback", models.SurveyTypeLink, nil)
	require.NoError(t, err)

	return env, survey
}

// newTestResponse stores a response with the given payload.
func newTestResponse(t *testing.T, db *gorm.DB, survey *models.Survey, data string) *models.Response {
	t.Helper()

	response, err := NewResponseService(db).
		Create(context.Background(), survey.EnvironmentID, survey.ID, datatypes.JSON([]byte(data)), true)
	require.NoError(t, err)
	return response
}

// responseTagIDs returns the tag ids currently attached to a response.
func responseTagIDs(t *testing.T, db *gorm.DB, responseID uuid.UUID) []uuid.UUID {
	t.Helper()

	var ids []uuid.UUID
	require.NoError(t, db.Model(&models.TagsOnResponses{}).
		Where("response_id = ?", responseID).
		Order("tag_id").
		Pluck("tag_id", &ids).Error)
	return ids
}
