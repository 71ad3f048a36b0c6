package controller

import (
	"context"
	"testing"

	"github.com/roamvista/roamvista/cmd/blog/db"
	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	"github.com/roamvista/roamvista/cmd/blog/model"
	"github.com/roamvista/roamvista/internal/event"
	imodel "github.com/roamvista/roamvista/internal/model"
	"github.com/roamvista/roamvista/internal/session"
	"github.com/roamvista/roamvista/internal/storage"
	"github.com/roamvista/roamvista/internal/stream"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		title string
		exp   string
	}{
		"simple title":       {title: "Ten Days in Patagonia", exp: "ten-days-in-patagonia"},
		"punctuation":        {title: "Packing: what's essential?", exp: "packing-whats-essential"},
		"repeated spaces":    {title: "Slow  travel   wins", exp: "slow-travel-wins"},
		"leading whitespace": {title: "  The Alps ", exp: "the-alps"},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, test.exp, slugify(test.title))
		})
	}
}

func TestCreatePostSlugCollision(t *testing.T) {
	t.Parallel()

	editor := session.User{ID: uuid.New(), Role: session.RoleEditor}

	var attempts []string
	store := db.NewStoreMock(
		db.WithCreatePost(func(_ context.Context, post *model.Post) error {
			attempts = append(attempts, post.Slug)
			if len(attempts) == 1 {
				return berrors.ErrSlugAlreadyInUse
			}
			post.ID = uuid.New()
			return nil
		}),
	)

	ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

	post, err := ctrl.CreatePost(context.Background(), CreatePostInput{
		Actor: editor,
		Title: "Ten Days in Patagonia",
		Body:  "body",
	})
	require.Nil(t, err)

	require.Len(t, attempts, 2)
	require.Equal(t, "ten-days-in-patagonia", attempts[0])
	require.NotEqual(t, attempts[0], attempts[1])
	require.Contains(t, attempts[1], "ten-days-in-patagonia-")
	require.Equal(t, model.StatusDraft, post.Status)
	require.Equal(t, editor.ID, post.AuthorID)
}

func TestUpdatePostAuthorization(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()

	tests := map[string]struct {
		actor session.User
		exp   error
	}{
		"author": {
			actor: session.User{ID: authorID, Role: session.RoleEditor},
		},
		"administrator": {
			actor: session.User{ID: uuid.New(), Role: session.RoleAdmin},
		},
		"other editor": {
			actor: session.User{ID: uuid.New(), Role: session.RoleEditor},
			exp:   berrors.ErrNotPostAuthor,
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var writes int
			store := db.NewStoreMock(
				db.WithPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
					post := &model.Post{
						Model:    imodel.Model{ID: id},
						AuthorID: authorID,
						Status:   model.StatusDraft,
					}
					return post, nil
				}),
				db.WithUpdatePost(func(_ context.Context, id uuid.UUID, changes map[string]interface{}) (*model.Post, error) {
					writes++
					require.Equal(t, "new title", changes["title"])
					return &model.Post{Model: imodel.Model{ID: id}}, nil
				}),
			)

			ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

			_, err := ctrl.UpdatePost(context.Background(), UpdatePostInput{
				Actor:  test.actor,
				PostID: uuid.New(),
				Title:  "new title",
			})
			if test.exp != nil {
				require.ErrorIs(t, err, test.exp)

				// Denied before any write reaches the store.
				require.Zero(t, writes)
				return
			}

			require.Nil(t, err)
			require.Equal(t, 1, writes)
		})
	}
}

func TestPublishPost(t *testing.T) {
	t.Parallel()

	author := session.User{ID: uuid.New(), Role: session.RoleEditor}
	postID := uuid.New()

	store := db.NewStoreMock(
		db.WithPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
			post := &model.Post{
				Model:    imodel.Model{ID: id},
				Title:    "Ten Days in Patagonia",
				AuthorID: author.ID,
				Status:   model.StatusDraft,
			}
			return post, nil
		}),
		db.WithPublishPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
			post := &model.Post{
				Model:    imodel.Model{ID: id},
				Title:    "Ten Days in Patagonia",
				AuthorID: author.ID,
				Status:   model.StatusPublished,
			}
			return post, nil
		}),
	)

	var published []interface{}
	events := stream.NewClientMock(
		stream.WithWrite(func(_ context.Context, b []byte) error {
			e, err := event.Parse(b)
			require.Nil(t, err)
			published = append(published, e)
			return nil
		}),
	)

	ctrl := New(zap.NewNop(), store, events, storage.NewBlobStoreMock())

	post, err := ctrl.PublishPost(context.Background(), author, postID)
	require.Nil(t, err)
	require.True(t, post.Published())

	require.Len(t, published, 1)
	postPublished, ok := published[0].(*event.PostPublishedEvent)
	require.True(t, ok)
	require.Equal(t, postID, postPublished.PostID)
	require.Equal(t, author.ID, postPublished.AuthorID)
}

func TestUnpublishPost(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		actor session.User
		exp   error
	}{
		"editor": {
			actor: session.User{ID: uuid.New(), Role: session.RoleEditor},
		},
		"administrator": {
			actor: session.User{ID: uuid.New(), Role: session.RoleAdmin},
		},
		"regular": {
			actor: session.User{ID: uuid.New(), Role: session.RoleRegular},
			exp:   berrors.ErrNotModerator,
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var writes int
			store := db.NewStoreMock(
				db.WithPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
					post := &model.Post{
						Model:  imodel.Model{ID: id},
						Status: model.StatusPublished,
					}
					return post, nil
				}),
				db.WithUnpublishPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
					writes++
					post := &model.Post{
						Model:  imodel.Model{ID: id},
						Status: model.StatusDraft,
					}
					return post, nil
				}),
			)

			ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

			post, err := ctrl.UnpublishPost(context.Background(), test.actor, uuid.New())
			if test.exp != nil {
				require.ErrorIs(t, err, test.exp)
				require.Zero(t, writes)
				return
			}

			require.Nil(t, err)
			require.Equal(t, 1, writes)
			require.Equal(t, model.StatusDraft, post.Status)
			require.Nil(t, post.PublishedAt)
		})
	}
}

func TestRestorePost(t *testing.T) {
	t.Parallel()

	regular := session.User{ID: uuid.New(), Role: session.RoleRegular}
	editor := session.User{ID: uuid.New(), Role: session.RoleEditor}

	store := db.NewStoreMock(
		db.WithPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
			post := &model.Post{
				Model:  imodel.Model{ID: id},
				Status: model.StatusRemoved,
			}
			return post, nil
		}),
		db.WithRestorePost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
			post := &model.Post{
				Model:  imodel.Model{ID: id},
				Status: model.StatusDraft,
			}
			return post, nil
		}),
	)

	ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

	_, err := ctrl.RestorePost(context.Background(), regular, uuid.New())
	require.ErrorIs(t, err, berrors.ErrNotModerator)

	post, err := ctrl.RestorePost(context.Background(), editor, uuid.New())
	require.Nil(t, err)
	require.Equal(t, model.StatusDraft, post.Status)
}

func TestPostVisibility(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	author := session.User{ID: authorID, Role: session.RoleEditor}
	editor := session.User{ID: uuid.New(), Role: session.RoleEditor}
	regular := session.User{ID: uuid.New(), Role: session.RoleRegular}

	tests := map[string]struct {
		status  model.Status
		actor   *session.User
		visible bool
	}{
		"published to anonymous":  {status: model.StatusPublished, visible: true},
		"draft to anonymous":      {status: model.StatusDraft},
		"draft to author":         {status: model.StatusDraft, actor: &author, visible: true},
		"draft to moderator":      {status: model.StatusDraft, actor: &editor, visible: true},
		"draft to regular reader": {status: model.StatusDraft, actor: &regular},
		"removed to author":       {status: model.StatusRemoved, actor: &author},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := db.NewStoreMock(
				db.WithPostBySlug(func(_ context.Context, slug string) (*model.Post, error) {
					post := &model.Post{
						Model:    imodel.Model{ID: uuid.New()},
						Slug:     slug,
						AuthorID: authorID,
						Status:   test.status,
					}
					return post, nil
				}),
			)

			ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

			post, err := ctrl.Post(context.Background(), test.actor, "ten-days-in-patagonia")
			if !test.visible {
				require.ErrorIs(t, err, berrors.ErrPostDNE)
				return
			}

			require.Nil(t, err)
			require.Equal(t, "ten-days-in-patagonia", post.Slug)
		})
	}
}

func TestCreateCommentOnDraft(t *testing.T) {
	t.Parallel()

	store := db.NewStoreMock(
		db.WithPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
			post := &model.Post{
				Model:  imodel.Model{ID: id},
				Status: model.StatusDraft,
			}
			return post, nil
		}),
	)

	ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

	_, err := ctrl.CreateComment(
		context.Background(),
		session.User{ID: uuid.New(), Role: session.RoleRegular},
		uuid.New(),
		"great write-up",
	)
	require.ErrorIs(t, err, berrors.ErrPostDNE)
}

func TestCreateStory(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()

	tests := map[string]struct {
		actor  session.User
		status model.Status
		exp    error
	}{
		"author on published post": {
			actor:  session.User{ID: authorID, Role: session.RoleRegular},
			status: model.StatusPublished,
		},
		"administrator": {
			actor:  session.User{ID: uuid.New(), Role: session.RoleAdmin},
			status: model.StatusPublished,
		},
		"other reader": {
			actor:  session.User{ID: uuid.New(), Role: session.RoleRegular},
			status: model.StatusPublished,
			exp:    berrors.ErrNotPostAuthor,
		},
		"author on draft": {
			actor:  session.User{ID: authorID, Role: session.RoleRegular},
			status: model.StatusDraft,
			exp:    berrors.ErrPostDNE,
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var writes int
			store := db.NewStoreMock(
				db.WithPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
					post := &model.Post{
						Model:    imodel.Model{ID: id},
						AuthorID: authorID,
						Status:   test.status,
					}
					return post, nil
				}),
				db.WithCreateStory(func(_ context.Context, story *model.Story) error {
					writes++
					story.ID = uuid.New()
					return nil
				}),
			)

			ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

			story, err := ctrl.CreateStory(
				context.Background(),
				test.actor,
				uuid.New(),
				"The pass reopened in June.",
			)
			if test.exp != nil {
				require.ErrorIs(t, err, test.exp)
				require.Zero(t, writes)
				return
			}

			require.Nil(t, err)
			require.Equal(t, 1, writes)
			require.Equal(t, test.actor.ID, story.AuthorID)
		})
	}
}

func TestStoriesVisibility(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	author := session.User{ID: authorID, Role: session.RoleRegular}
	regular := session.User{ID: uuid.New(), Role: session.RoleRegular}

	tests := map[string]struct {
		status  model.Status
		actor   *session.User
		visible bool
	}{
		"published to anonymous":  {status: model.StatusPublished, visible: true},
		"draft to author":         {status: model.StatusDraft, actor: &author, visible: true},
		"draft to regular reader": {status: model.StatusDraft, actor: &regular},
		"removed to author":       {status: model.StatusRemoved, actor: &author},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := db.NewStoreMock(
				db.WithPost(func(_ context.Context, id uuid.UUID) (*model.Post, error) {
					post := &model.Post{
						Model:    imodel.Model{ID: id},
						AuthorID: authorID,
						Status:   test.status,
					}
					return post, nil
				}),
				db.WithStories(func(_ context.Context, postID uuid.UUID) ([]model.Story, error) {
					return []model.Story{{PostID: postID, AuthorID: authorID}}, nil
				}),
			)

			ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

			stories, err := ctrl.Stories(context.Background(), test.actor, uuid.New())
			if !test.visible {
				require.ErrorIs(t, err, berrors.ErrPostDNE)
				return
			}

			require.Nil(t, err)
			require.Len(t, stories, 1)
		})
	}
}

func TestRemoveStory(t *testing.T) {
	t.Parallel()

	storyAuthorID := uuid.New()

	tests := map[string]struct {
		actor session.User
		exp   error
	}{
		"story author": {
			actor: session.User{ID: storyAuthorID, Role: session.RoleRegular},
		},
		"editor": {
			actor: session.User{ID: uuid.New(), Role: session.RoleEditor},
		},
		"other reader": {
			actor: session.User{ID: uuid.New(), Role: session.RoleRegular},
			exp:   berrors.ErrNotStoryAuthor,
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var removals int
			store := db.NewStoreMock(
				db.WithStory(func(_ context.Context, id uuid.UUID) (*model.Story, error) {
					story := &model.Story{
						Model:    imodel.Model{ID: id},
						AuthorID: storyAuthorID,
					}
					return story, nil
				}),
				db.WithRemoveStory(func(context.Context, uuid.UUID) error {
					removals++
					return nil
				}),
			)

			ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

			err := ctrl.RemoveStory(context.Background(), test.actor, uuid.New())
			if test.exp != nil {
				require.ErrorIs(t, err, test.exp)
				require.Zero(t, removals)
				return
			}

			require.Nil(t, err)
			require.Equal(t, 1, removals)
		})
	}
}

func TestRemoveComment(t *testing.T) {
	t.Parallel()

	commentAuthorID := uuid.New()

	tests := map[string]struct {
		actor session.User
		exp   error
	}{
		"comment author": {
			actor: session.User{ID: commentAuthorID, Role: session.RoleRegular},
		},
		"editor": {
			actor: session.User{ID: uuid.New(), Role: session.RoleEditor},
		},
		"administrator": {
			actor: session.User{ID: uuid.New(), Role: session.RoleAdmin},
		},
		"other reader": {
			actor: session.User{ID: uuid.New(), Role: session.RoleRegular},
			exp:   berrors.ErrNotCommentAuthor,
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var removals int
			store := db.NewStoreMock(
				db.WithComment(func(_ context.Context, id uuid.UUID) (*model.Comment, error) {
					comment := &model.Comment{
						Model:    imodel.Model{ID: id},
						AuthorID: commentAuthorID,
					}
					return comment, nil
				}),
				db.WithRemoveComment(func(context.Context, uuid.UUID) error {
					removals++
					return nil
				}),
			)

			ctrl := New(zap.NewNop(), store, stream.NewClientMock(), storage.NewBlobStoreMock())

			err := ctrl.RemoveComment(context.Background(), test.actor, uuid.New())
			if test.exp != nil {
				require.ErrorIs(t, err, test.exp)
				require.Zero(t, removals)
				return
			}

			require.Nil(t, err)
			require.Equal(t, 1, removals)
		})
	}
}
