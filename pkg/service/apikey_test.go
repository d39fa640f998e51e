package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyService_CreateAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	keys := NewAPIKeyService(db)
	ctx := context.Background()

	key, cleartext, err := keys.Create(ctx, env.ID, "ci")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cleartext, "fb_"))
	assert.NotContains(t, key.HashedKey, cleartext)
	assert.Nil(t, key.LastUsedAt)

	authed, err := keys.Authenticate(ctx, cleartext)
	require.NoError(t, err)
	assert.Equal(t, key.ID, authed.ID)
	assert.Equal(t, env.ID, authed.EnvironmentID)
	assert.NotNil(t, authed.LastUsedAt)

	t.Run("unknown key", func(t *testing.T) {
		_, err := keys.Authenticate(ctx, "fb_deadbeef")
		assert.ErrorIs(t, err, ErrInvalidAPIKey)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := keys.Authenticate(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidAPIKey)
	})

	t.Run("missing environment", func(t *testing.T) {
		_, _, err := keys.Create(ctx, uuid.New(), "nope")
		assert.ErrorIs(t, err, ErrEnvironmentNotFound)
	})
}

func TestAPIKeyService_Delete(t *testing.T) {
	db := newTestDB(t)
	env, _ := newTestEnvironment(t, db)
	keys := NewAPIKeyService(db)
	ctx := context.Background()

	key, cleartext, err := keys.Create(ctx, env.ID, "ci")
	require.NoError(t, err)

	require.NoError(t, keys.Delete(ctx, key.ID))

	_, err = keys.Authenticate(ctx, cleartext)
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	assert.ErrorIs(t, keys.Delete(ctx, key.ID), ErrAPIKeyNotFound)
}
