package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseService_Create(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)

	response := newTestResponse(t, db, survey, `{"q1":"fine"}`)
	assert.NotEqual(t, uuid.Nil, response.ID)
	assert.Equal(t, survey.ID, response.SurveyID)

	t.Run("missing survey", func(t *testing.T) {
		_, err := NewResponseService(db).Create(context.Background(), env.ID, uuid.New(), nil, false)
		assert.ErrorIs(t, err, ErrSurveyNotFound)
	})

	t.Run("survey in another environment is invisible", func(t *testing.T) {
		otherEnv, _ := newTestEnvironment(t, db)
		_, err := NewResponseService(db).Create(context.Background(), otherEnv.ID, survey.ID, nil, false)
		assert.ErrorIs(t, err, ErrSurveyNotFound)
	})
}

func TestResponseService_AddRemoveTag(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	tag, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	response := newTestResponse(t, db, survey, `{}`)

	require.NoError(t, responses.AddTag(ctx, env.ID, response.ID, tag.ID))

	t.Run("applying twice is rejected", func(t *testing.T) {
		assert.ErrorIs(t, responses.AddTag(ctx, env.ID, response.ID, tag.ID), ErrTagAlreadyApplied)
	})

	t.Run("tag from another environment is invisible", func(t *testing.T) {
		otherEnv, otherSurvey := newTestEnvironment(t, db)
		foreign, err := tags.Create(ctx, otherEnv.ID, "foreign")
		require.NoError(t, err)
		_ = otherSurvey

		assert.ErrorIs(t, responses.AddTag(ctx, env.ID, response.ID, foreign.ID), ErrTagNotFound)
	})

	loaded, err := responses.GetByID(ctx, env.ID, response.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "bug", loaded.Tags[0].Name)

	require.NoError(t, responses.RemoveTag(ctx, env.ID, response.ID, tag.ID))
	assert.Empty(t, responseTagIDs(t, db, response.ID))

	t.Run("removing a missing association", func(t *testing.T) {
		assert.ErrorIs(t, responses.RemoveTag(ctx, env.ID, response.ID, tag.ID), ErrTagNotFound)
	})
}

func TestResponseService_Delete(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	tag, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	response := newTestResponse(t, db, survey, `{}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, response.ID, tag.ID))

	require.NoError(t, responses.Delete(ctx, env.ID, response.ID))

	_, err = responses.GetByID(ctx, env.ID, response.ID)
	assert.ErrorIs(t, err, ErrResponseNotFound)
	assert.Empty(t, responseTagIDs(t, db, response.ID))
}

func TestResponseService_EnvironmentScoping(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	otherEnv, _ := newTestEnvironment(t, db)
	responses := NewResponseService(db)
	ctx := context.Background()

	response := newTestResponse(t, db, survey, `{"q1":"secret"}`)

	// The owning environment sees the response.
	_, err := responses.GetByID(ctx, env.ID, response.ID)
	require.NoError(t, err)

	// Another environment does not, for reads, lists, deletes or exports.
	_, err = responses.GetByID(ctx, otherEnv.ID, response.ID)
	assert.ErrorIs(t, err, ErrResponseNotFound)
	_, err = responses.List(ctx, otherEnv.ID, survey.ID)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
	assert.ErrorIs(t, responses.Delete(ctx, otherEnv.ID, response.ID), ErrResponseNotFound)
	var out bytes.Buffer
	assert.ErrorIs(t, responses.ExportCSV(ctx, otherEnv.ID, survey.ID, &out), ErrSurveyNotFound)

	// The failed foreign delete left the response in place.
	_, err = responses.GetByID(ctx, env.ID, response.ID)
	assert.NoError(t, err)
}

func TestResponseService_GetByRef(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	responses := NewResponseService(db)
	ctx := context.Background()

	response := newTestResponse(t, db, survey, `{}`)

	t.Run("full id", func(t *testing.T) {
		got, err := responses.GetByRef(ctx, env.ID, response.ID.String())
		require.NoError(t, err)
		assert.Equal(t, response.ID, got.ID)
	})

	t.Run("prefix from list output", func(t *testing.T) {
		got, err := responses.GetByRef(ctx, env.ID, response.ID.String()[:8])
		require.NoError(t, err)
		assert.Equal(t, response.ID, got.ID)
	})

	t.Run("prefix is scoped to the environment", func(t *testing.T) {
		otherEnv, _ := newTestEnvironment(t, db)
		_, err := responses.GetByRef(ctx, otherEnv.ID, response.ID.String()[:8])
		assert.ErrorIs(t, err, ErrResponseNotFound)
	})
}

func TestResponseService_ExportCSV(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	responses := NewResponseService(db)
	tags := NewTagService(db)
	ctx := context.Background()

	praise, err := tags.Create(ctx, env.ID, "praise")
	require.NoError(t, err)

	r1 := newTestResponse(t, db, survey, `{"q1":"great","q2":["a","b"]}`)
	_ = newTestResponse(t, db, survey, `{"q1":"meh","q3":4}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, r1.ID, praise.ID))

	var buf bytes.Buffer
	require.NoError(t, responses.ExportCSV(ctx, env.ID, survey.ID, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + two responses

	assert.Equal(t, []string{"id", "created_at", "finished", "tags", "q1", "q2", "q3"}, records[0])

	byID := map[string][]string{}
	for _, row := range records[1:] {
		byID[row[0]] = row
	}
	row1 := byID[r1.ID.String()]
	require.NotNil(t, row1)
	assert.Equal(t, "praise", row1[3])
	assert.Equal(t, "great", row1[4])
	assert.Equal(t, "a;b", row1[5])
	assert.Equal(t, "", row1[6])

	t.Run("missing survey", func(t *testing.T) {
		var out bytes.Buffer
		assert.ErrorIs(t, responses.ExportCSV(ctx, env.ID, uuid.New(), &out), ErrSurveyNotFound)
	})

	t.Run("empty survey still emits a header", func(t *testing.T) {
		emptyEnv, emptySurvey := newTestEnvironment(t, db)
		var out bytes.Buffer
		require.NoError(t, responses.ExportCSV(ctx, emptyEnv.ID, emptySurvey.ID, &out))

		records, err := csv.NewReader(&out).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"id", "created_at", "finished", "tags"}, records[0])
	})
}
