//go:build integration
// +build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/roamvista/roamvista/cmd/blog/config"
	"github.com/roamvista/roamvista/cmd/blog/model"
	igorm "github.com/roamvista/roamvista/internal/gorm"
	"github.com/roamvista/roamvista/internal/migrate"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := setup(ctx, t)

	authorID := uuid.New()
	post := &model.Post{
		Title:    "Ten Days in Patagonia",
		Slug:     "ten-days-in-patagonia",
		Body:     "body",
		AuthorID: authorID,
	}

	t.Run("cache author", func(t *testing.T) {
		err := store.UpsertAuthor(ctx, &model.Author{
			ID:          authorID,
			DisplayName: "Jane",
			AvatarURL:   "https://media.roamvista.com/avatars/jane",
		})
		require.Nil(t, err)

		err = store.UpdateAuthorRole(ctx, authorID, session.RoleEditor)
		require.Nil(t, err)
	})

	t.Run("create and publish post", func(t *testing.T) {
		require.Nil(t, store.CreatePost(ctx, post))

		_, err := store.PublishPost(ctx, post.ID)
		require.Nil(t, err)
	})

	t.Run("post carries its author", func(t *testing.T) {
		found, err := store.PostBySlug(ctx, post.Slug)
		require.Nil(t, err)
		require.NotNil(t, found.Author)
		assert.Equal(t, "Jane", found.Author.DisplayName)
		assert.Equal(t, session.RoleEditor, found.Author.Role)
	})

	t.Run("published listing carries authors", func(t *testing.T) {
		posts, err := store.PublishedPosts(ctx, 20, 0)
		require.Nil(t, err)
		require.Len(t, posts, 1)
		require.NotNil(t, posts[0].Author)
		assert.Equal(t, "Jane", posts[0].Author.DisplayName)
	})

	t.Run("comments carry their authors", func(t *testing.T) {
		comment := &model.Comment{
			PostID:   post.ID,
			AuthorID: authorID,
			Body:     "comment",
		}
		require.Nil(t, store.CreateComment(ctx, comment))

		comments, err := store.Comments(ctx, post.ID)
		require.Nil(t, err)
		require.Len(t, comments, 1)
		require.NotNil(t, comments[0].Author)
		assert.Equal(t, "Jane", comments[0].Author.DisplayName)
	})

	t.Run("stories carry their authors", func(t *testing.T) {
		story := &model.Story{
			PostID:   post.ID,
			AuthorID: authorID,
			Body:     "story",
		}
		require.Nil(t, store.CreateStory(ctx, story))

		stories, err := store.Stories(ctx, post.ID)
		require.Nil(t, err)
		require.Len(t, stories, 1)
		require.NotNil(t, stories[0].Author)
		assert.Equal(t, "Jane", stories[0].Author.DisplayName)
	})

	t.Run("profile change reaches decorated reads", func(t *testing.T) {
		err := store.UpsertAuthor(ctx, &model.Author{
			ID:          authorID,
			DisplayName: "Jane R.",
		})
		require.Nil(t, err)

		found, err := store.PostBySlug(ctx, post.Slug)
		require.Nil(t, err)
		require.NotNil(t, found.Author)
		assert.Equal(t, "Jane R.", found.Author.DisplayName)

		// Role is untouched by the profile upsert.
		assert.Equal(t, session.RoleEditor, found.Author.Role)
	})
}

func setup(ctx context.Context, t *testing.T) *Store {
	t.Helper()

	cfg := config.Load()

	dbconn, err := igorm.Open(cfg.DSN())
	require.Nil(t, err)

	sqldb, err := dbconn.DB()
	require.Nil(t, err)
	require.Nil(t, migrate.Migrate(sqldb, cfg.Migrations()))

	for _, table := range []string{"stories", "comments", "posts", "authors"} {
		require.Nil(t, dbconn.WithContext(ctx).Exec("DELETE FROM "+table).Error)
	}

	return NewStore(dbconn)
}
