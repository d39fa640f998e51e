package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyService_Create(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	surveys := NewSurveyService(db, "https://app.example.com")
	ctx := context.Background()

	description := "quarterly NPS"
	survey, err := surveys.Create(ctx, env.ID, "NPS", models.SurveyTypeLink, &description)
	require.NoError(t, err)
	assert.Equal(t, string(models.SurveyStatusDraft), survey.Status)
	assert.NotEmpty(t, survey.ShareKey)

	assert.Equal(t, "https://app.example.com/s/"+survey.ShareKey, surveys.ShareURL(survey))

	t.Run("missing environment", func(t *testing.T) {
		_, err := surveys.Create(ctx, uuid.New(), "x", models.SurveyTypeLink, nil)
		assert.ErrorIs(t, err, ErrEnvironmentNotFound)
	})
}

func TestSurveyService_Update(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	surveys := NewSurveyService(db, "http://localhost:8080")
	ctx := context.Background()

	status := string(models.SurveyStatusInProgress)
	updated, err := surveys.Update(ctx, env.ID, survey.ID, UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
	assert.Equal(t, survey.Name, updated.Name)

	t.Run("missing survey", func(t *testing.T) {
		_, err := surveys.Update(ctx, env.ID, uuid.New(), UpdateInput{Status: &status})
		assert.ErrorIs(t, err, ErrSurveyNotFound)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		bad := "archived"
		_, err := surveys.Update(ctx, env.ID, survey.ID, UpdateInput{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidSurveyStatus)

		// The survey keeps its last valid status.
		got, err := surveys.GetByID(ctx, env.ID, survey.ID)
		require.NoError(t, err)
		assert.Equal(t, string(models.SurveyStatusInProgress), got.Status)
	})
}

func TestSurveyService_Delete(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	surveys := NewSurveyService(db, "http://localhost:8080")
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	tag, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	response := newTestResponse(t, db, survey, `{}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, response.ID, tag.ID))

	require.NoError(t, surveys.Delete(ctx, env.ID, survey.ID))

	_, err = surveys.GetByID(ctx, env.ID, survey.ID)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
	_, err = responses.GetByID(ctx, env.ID, response.ID)
	assert.ErrorIs(t, err, ErrResponseNotFound)
	assert.Empty(t, responseTagIDs(t, db, response.ID))

	// The tag itself survives a survey deletion.
	_, err = tags.GetByID(ctx, env.ID, tag.ID)
	assert.NoError(t, err)
}

func TestSurveyService_EnvironmentScoping(t *testing.T) {
	db := newTestDB(t)
	_, survey := newTestEnvironment(t, db)
	otherEnv, err := NewEnvironmentService(db).Create(context.Background(), models.EnvironmentTypeProduction)
	require.NoError(t, err)

	surveys := NewSurveyService(db, "http://localhost:8080")
	_, err = surveys.GetByID(context.Background(), otherEnv.ID, survey.ID)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestSurveyService_GetByRef(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	surveys := NewSurveyService(db, "http://localhost:8080")
	ctx := context.Background()

	got, err := surveys.GetByRef(ctx, env.ID, survey.ID.String())
	require.NoError(t, err)
	assert.Equal(t, survey.ID, got.ID)

	got, err = surveys.GetByRef(ctx, env.ID, survey.ID.String()[:8])
	require.NoError(t, err)
	assert.Equal(t, survey.ID, got.ID)

	_, err = surveys.GetByRef(ctx, env.ID, "zzzz")
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}
