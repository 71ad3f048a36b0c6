//go:build integration
// +build integration

package session

import (
	"context"
	"testing"
	"time"

	"github.com/roamvista/roamvista/internal/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	suite := setup(ctx, t)

	sess := suite.NewSession(ctx, t, "session-testing@roamvista.com")

	t.Run("touch session that dne", func(t *testing.T) {
		err := suite.Manager.TouchSession(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrSessionDNE)
	})

	t.Run("delete session that dne", func(t *testing.T) {
		err := suite.Manager.DeleteSession(ctx, *sess)
		assert.Nil(t, err)
	})

	t.Run("retrieve session that dne", func(t *testing.T) {
		_, err := suite.Manager.RetrieveSession(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrSessionDNE)
	})

	t.Run("create session", func(t *testing.T) {
		err := suite.Manager.CreateSession(ctx, *sess)
		assert.Nil(t, err)
	})

	t.Run("create session that already exists", func(t *testing.T) {
		err := suite.Manager.CreateSession(ctx, *sess)
		assert.ErrorIs(t, err, ErrSessionIDNotUnique)
	})

	t.Run("retrieve session", func(t *testing.T) {
		actual, err := suite.Manager.RetrieveSession(ctx, sess.ID)
		assert.Nil(t, err)
		assert.True(t, sess.Equal(*actual))
	})

	t.Run("touch session", func(t *testing.T) {
		err := suite.Manager.TouchSession(ctx, sess.ID)
		assert.Nil(t, err)

		actual, err := suite.Manager.RetrieveSession(ctx, sess.ID)
		assert.Nil(t, err)
		assert.WithinDuration(t, time.Now(), actual.LastActivityAt, time.Second)
	})

	t.Run("delete session", func(t *testing.T) {
		err := suite.Manager.DeleteSession(ctx, *sess)
		assert.Nil(t, err)
	})

	t.Run("create session again", func(t *testing.T) {
		err := suite.Manager.CreateSession(ctx, *sess)
		assert.Nil(t, err)
	})

	t.Run("invalidate user's sessions", func(t *testing.T) {
		err := suite.Manager.InvalidateUserSessionsBefore(
			ctx,
			sess.User.ID,
			time.Now(),
		)
		assert.Nil(t, err)
	})

	t.Run("retrieve invalidated session", func(t *testing.T) {
		_, err := suite.Manager.RetrieveSession(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrSessionDNE)
	})
}

func TestUpdateSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	suite := setup(ctx, t)

	sess := suite.CreateSession(ctx, t, "session-testing@roamvista.com")

	t.Run("update session refreshed at", func(t *testing.T) {
		now := time.Now()
		updateFn := func(sess *Session) { sess.RefreshedAt = now }

		updated, err := suite.Manager.UpdateSession(ctx, sess.ID, updateFn)
		assert.Nil(t, err)
		assert.Equal(t, now.Unix(), updated.RefreshedAt.Unix())
	})

	t.Run("update session role", func(t *testing.T) {
		updateFn := func(sess *Session) { sess.User.Role = RoleEditor }

		updated, err := suite.Manager.UpdateSession(ctx, sess.ID, updateFn)
		assert.Nil(t, err)
		assert.Equal(t, RoleEditor, updated.User.Role)
	})
}

// --- suite ---

type suite struct {
	Suite
}

func setup(ctx context.Context, t *testing.T) *suite {
	t.Helper()

	rsuite := redis.InitSuite(ctx, t)
	err := rsuite.Redis.FlushAll(ctx).Err()
	require.Nil(t, err)

	s := InitSuite(ctx, t)

	return &suite{
		Suite: *s,
	}
}
