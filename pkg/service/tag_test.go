package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_Create(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	tags := NewTagService(db)
	ctx := context.Background()

	tag, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	assert.Equal(t, "bug", tag.Name)
	assert.Equal(t, env.ID, tag.EnvironmentID)
	assert.NotEqual(t, uuid.Nil, tag.ID)

	t.Run("duplicate name in same environment", func(t *testing.T) {
		_, err := tags.Create(ctx, env.ID, "bug")
		assert.ErrorIs(t, err, ErrTagNameTaken)
	})

	t.Run("same name allowed in another environment", func(t *testing.T) {
		otherEnv, err := NewEnvironmentService(db).Create(ctx, models.EnvironmentTypeProduction)
		require.NoError(t, err)

		other, err := tags.Create(ctx, otherEnv.ID, "bug")
		require.NoError(t, err)
		assert.Equal(t, "bug", other.Name)
	})
}

func TestTagService_Rename(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	tags := NewTagService(db)
	ctx := context.Background()

	bug, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	_, err = tags.Create(ctx, env.ID, "issue")
	require.NoError(t, err)

	renamed, err := tags.Rename(ctx, env.ID, bug.ID, "defect")
	require.NoError(t, err)
	assert.Equal(t, "defect", renamed.Name)

	t.Run("rename to existing name", func(t *testing.T) {
		_, err := tags.Rename(ctx, env.ID, bug.ID, "issue")
		assert.ErrorIs(t, err, ErrTagNameTaken)
	})

	t.Run("rename missing tag", func(t *testing.T) {
		_, err := tags.Rename(ctx, env.ID, uuid.New(), "anything")
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}

func TestTagService_Delete(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	tag, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	response := newTestResponse(t, db, survey, `{"q1":"broken"}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, response.ID, tag.ID))

	require.NoError(t, tags.Delete(ctx, env.ID, tag.ID))

	_, err = tags.GetByID(ctx, env.ID, tag.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)
	assert.Empty(t, responseTagIDs(t, db, response.ID))

	t.Run("delete missing tag", func(t *testing.T) {
		assert.ErrorIs(t, tags.Delete(ctx, env.ID, uuid.New()), ErrTagNotFound)
	})
}

func TestTagService_GetByRef(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	tags := NewTagService(db)
	ctx := context.Background()

	bug, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)

	t.Run("full id", func(t *testing.T) {
		got, err := tags.GetByRef(ctx, env.ID, bug.ID.String())
		require.NoError(t, err)
		assert.Equal(t, bug.ID, got.ID)
	})

	t.Run("prefix from list output", func(t *testing.T) {
		got, err := tags.GetByRef(ctx, env.ID, bug.ID.String()[:8])
		require.NoError(t, err)
		assert.Equal(t, bug.ID, got.ID)
	})

	t.Run("unknown prefix", func(t *testing.T) {
		_, err := tags.GetByRef(ctx, env.ID, "zzzz")
		assert.ErrorIs(t, err, ErrTagNotFound)
	})

	t.Run("prefix is scoped to the environment", func(t *testing.T) {
		otherEnv, err := NewEnvironmentService(db).Create(ctx, models.EnvironmentTypeProduction)
		require.NoError(t, err)
		_, err = tags.GetByRef(ctx, otherEnv.ID, bug.ID.String()[:8])
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}

func TestTagService_List(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	tags := NewTagService(db)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := tags.Create(ctx, env.ID, name)
		require.NoError(t, err)
	}

	list, err := tags.List(ctx, env.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "mid", list[1].Name)
	assert.Equal(t, "zeta", list[2].Name)
}

// The canonical merge scenario: "bug" and "issue" in one environment, r1
// tagged with both, r2 tagged with the source only. Merging bug -> issue
// deletes bug, leaves both responses tagged exactly once with issue, and
// leaves issue untouched.
func TestTagService_Merge(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	bug, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	issue, err := tags.Create(ctx, env.ID, "issue")
	require.NoError(t, err)

	r1 := newTestResponse(t, db, survey, `{"q1":"both"}`)
	r2 := newTestResponse(t, db, survey, `{"q1":"source only"}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, r1.ID, bug.ID))
	require.NoError(t, responses.AddTag(ctx, env.ID, r1.ID, issue.ID))
	require.NoError(t, responses.AddTag(ctx, env.ID, r2.ID, bug.ID))

	merged, err := tags.Merge(ctx, env.ID, bug.ID, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.ID, merged.ID)
	assert.Equal(t, "issue", merged.Name)

	// Source tag is gone.
	_, err = tags.GetByID(ctx, env.ID, bug.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)

	// Both responses carry exactly one association, to the destination.
	assert.Equal(t, []uuid.UUID{issue.ID}, responseTagIDs(t, db, r1.ID))
	assert.Equal(t, []uuid.UUID{issue.ID}, responseTagIDs(t, db, r2.ID))

	// No association references the deleted tag anywhere.
	var orphaned int64
	require.NoError(t, db.Model(&models.TagsOnResponses{}).
		Where("tag_id = ?", bug.ID).Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestTagService_Merge_SourceMissing(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	issue, err := tags.Create(ctx, env.ID, "issue")
	require.NoError(t, err)
	r1 := newTestResponse(t, db, survey, `{}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, r1.ID, issue.ID))

	_, err = tags.Merge(ctx, env.ID, uuid.New(), issue.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)

	// Nothing changed.
	assert.Equal(t, []uuid.UUID{issue.ID}, responseTagIDs(t, db, r1.ID))
	got, err := tags.GetByID(ctx, env.ID, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "issue", got.Name)
}

func TestTagService_Merge_DestinationMissing(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	bug, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	r1 := newTestResponse(t, db, survey, `{}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, r1.ID, bug.ID))

	_, err = tags.Merge(ctx, env.ID, bug.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTagNotFound)

	// The source tag and its association survive the failed merge.
	assert.Equal(t, []uuid.UUID{bug.ID}, responseTagIDs(t, db, r1.ID))
	_, err = tags.GetByID(ctx, env.ID, bug.ID)
	assert.NoError(t, err)
}

func TestTagService_Merge_RetryAfterSuccess(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	bug, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	issue, err := tags.Create(ctx, env.ID, "issue")
	require.NoError(t, err)
	r1 := newTestResponse(t, db, survey, `{}`)
	require.NoError(t, responses.AddTag(ctx, env.ID, r1.ID, bug.ID))

	_, err = tags.Merge(ctx, env.ID, bug.ID, issue.ID)
	require.NoError(t, err)

	// The retry reports NotFound and does not corrupt the destination.
	_, err = tags.Merge(ctx, env.ID, bug.ID, issue.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)
	assert.Equal(t, []uuid.UUID{issue.ID}, responseTagIDs(t, db, r1.ID))
}

func TestTagService_Merge_SameTag(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	tags := NewTagService(db)
	ctx := context.Background()

	bug, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)

	_, err = tags.Merge(ctx, env.ID, bug.ID, bug.ID)
	assert.ErrorIs(t, err, ErrMergeSameTag)

	_, err = tags.GetByID(ctx, env.ID, bug.ID)
	assert.NoError(t, err)
}

func TestTagService_Merge_EnvironmentScoped(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	otherEnv, err := NewEnvironmentService(db).Create(context.Background(), models.EnvironmentTypeProduction)
	require.NoError(t, err)

	tags := NewTagService(db)
	ctx := context.Background()

	bug, err := tags.Create(ctx, env.ID, "bug")
	require.NoError(t, err)
	foreign, err := tags.Create(ctx, otherEnv.ID, "issue")
	require.NoError(t, err)

	// A destination tag in another environment is not visible.
	_, err = tags.Merge(ctx, env.ID, bug.ID, foreign.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)

	_, err = tags.GetByID(ctx, env.ID, bug.ID)
	assert.NoError(t, err)
	_, err = tags.GetByID(ctx, otherEnv.ID, foreign.ID)
	assert.NoError(t, err)
}

func TestTagService_Merge_ManyResponses(t *testing.T) {
	db := newTestDB(t)
	env, survey := newTestEnvironment(t, db)
	tags := NewTagService(db)
	responses := NewResponseService(db)
	ctx := context.Background()

	src, err := tags.Create(ctx, env.ID, "src")
	require.NoError(t, err)
	dst, err := tags.Create(ctx, env.ID, "dst")
	require.NoError(t, err)

	// Mix of collision and source-only responses.
	var all []uuid.UUID
	for i := 0; i < 10; i++ {
		r := newTestResponse(t, db, survey, `{}`)
		require.NoError(t, responses.AddTag(ctx, env.ID, r.ID, src.ID))
		if i%2 == 0 {
			require.NoError(t, responses.AddTag(ctx, env.ID, r.ID, dst.ID))
		}
		all = append(all, r.ID)
	}

	_, err = tags.Merge(ctx, env.ID, src.ID, dst.ID)
	require.NoError(t, err)

	for _, id := range all {
		assert.Equal(t, []uuid.UUID{dst.ID}, responseTagIDs(t, db, id))
	}
}
