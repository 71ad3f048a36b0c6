package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roamvista/roamvista/cmd/blog/controller"
	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	"github.com/roamvista/roamvista/cmd/blog/model"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
	"github.com/roamvista/roamvista/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePostGating(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		role session.Role
		exp  expected
	}{
		"regular": {
			role: session.RoleRegular,
			exp:  expected{status: http.StatusCreated},
		},
		"editor": {
			role: session.RoleEditor,
			exp:  expected{status: http.StatusCreated},
		},
		"administrator": {
			role: session.RoleAdmin,
			exp:  expected{status: http.StatusCreated},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithCreatePost(func(_ context.Context, input controller.CreatePostInput) (*model.Post, error) {
					return &model.Post{
						Title:    input.Title,
						Slug:     "a-week-in-the-dolomites",
						Body:     input.Body,
						AuthorID: input.Actor.ID,
						Status:   model.StatusDraft,
					}, nil
				}),
			)
			api, manager := newAPI(t, ctrl)
			cookie := establishSession(t, manager, session.User{
				ID:   uuid.New(),
				Role: test.role,
			})

			resp := request(t, api, http.MethodPost, "/v1/post", map[string]interface{}{
				"title": "A Week in the Dolomites",
				"body":  "Pack light, start early.",
			}, cookie)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)

			if test.exp.status != http.StatusCreated {
				return
			}
			var post model.Post
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&post))
			require.Equal(t, model.StatusDraft, post.Status)
		})
	}
}

func TestCreatePostAnonymous(t *testing.T) {
	t.Parallel()

	api, _ := newAPI(t, NewControllerMock())

	resp := request(t, api, http.MethodPost, "/v1/post", map[string]interface{}{
		"title": "A Week in the Dolomites",
		"body":  "Pack light, start early.",
	}, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRemovePostGating(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		role session.Role
		exp  expected
	}{
		"editor": {
			role: session.RoleEditor,
			exp:  expected{status: http.StatusForbidden},
		},
		"administrator": {
			role: session.RoleAdmin,
			exp:  expected{status: http.StatusNoContent},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithRemovePost(func(context.Context, session.User, uuid.UUID) error {
					return nil
				}),
			)
			api, manager := newAPI(t, ctrl)
			cookie := establishSession(t, manager, session.User{
				ID:   uuid.New(),
				Role: test.role,
			})

			target := fmt.Sprintf("/v1/post/%s", uuid.NewString())
			resp := request(t, api, http.MethodDelete, target, nil, cookie)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)
		})
	}
}

func TestPublishPost(t *testing.T) {
	t.Parallel()

	postID := uuid.New()
	ctrl := NewControllerMock(
		WithPublishPost(func(_ context.Context, _ session.User, id uuid.UUID) (*model.Post, error) {
			require.Equal(t, postID, id)
			now := time.Now()
			return &model.Post{
				Slug:        "a-week-in-the-dolomites",
				Status:      model.StatusPublished,
				PublishedAt: &now,
			}, nil
		}),
	)
	api, manager := newAPI(t, ctrl)
	cookie := establishSession(t, manager, session.User{
		ID:   uuid.New(),
		Role: session.RoleEditor,
	})

	target := fmt.Sprintf("/v1/post/%s/publish", postID)
	resp := request(t, api, http.MethodPost, target, nil, cookie)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post model.Post
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&post))
	require.Equal(t, model.StatusPublished, post.Status)
	require.NotNil(t, post.PublishedAt)
}

func TestUnpublishPostGating(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		role session.Role
		exp  expected
	}{
		"regular": {
			role: session.RoleRegular,
			exp:  expected{status: http.StatusForbidden},
		},
		"editor": {
			role: session.RoleEditor,
			exp:  expected{status: http.StatusOK},
		},
		"administrator": {
			role: session.RoleAdmin,
			exp:  expected{status: http.StatusOK},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithUnpublishPost(func(context.Context, session.User, uuid.UUID) (*model.Post, error) {
					return &model.Post{Status: model.StatusDraft}, nil
				}),
			)
			api, manager := newAPI(t, ctrl)
			cookie := establishSession(t, manager, session.User{
				ID:   uuid.New(),
				Role: test.role,
			})

			target := fmt.Sprintf("/v1/post/%s/unpublish", uuid.NewString())
			resp := request(t, api, http.MethodPost, target, nil, cookie)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)

			if test.exp.status != http.StatusOK {
				return
			}
			var post model.Post
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&post))
			require.Equal(t, model.StatusDraft, post.Status)
			require.Nil(t, post.PublishedAt)
		})
	}
}

func TestRestorePost(t *testing.T) {
	t.Parallel()

	postID := uuid.New()
	ctrl := NewControllerMock(
		WithRestorePost(func(_ context.Context, _ session.User, id uuid.UUID) (*model.Post, error) {
			require.Equal(t, postID, id)
			return &model.Post{Status: model.StatusDraft}, nil
		}),
	)
	api, manager := newAPI(t, ctrl)
	cookie := establishSession(t, manager, session.User{
		ID:   uuid.New(),
		Role: session.RoleEditor,
	})

	target := fmt.Sprintf("/v1/post/%s/restore", postID)
	resp := request(t, api, http.MethodPost, target, nil, cookie)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post model.Post
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&post))
	require.Equal(t, model.StatusDraft, post.Status)
}

func TestPostVisibility(t *testing.T) {
	t.Parallel()

	t.Run("published post is public", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithPost(func(_ context.Context, actor *session.User, slug string) (*model.Post, error) {
				require.Nil(t, actor)
				return &model.Post{Slug: slug, Status: model.StatusPublished}, nil
			}),
		)
		api, _ := newAPI(t, ctrl)

		resp := request(t, api, http.MethodGet, "/v1/post/a-week-in-the-dolomites", nil, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("hidden post is not found", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithPost(func(context.Context, *session.User, string) (*model.Post, error) {
				return nil, berrors.ErrPostDNE
			}),
		)
		api, _ := newAPI(t, ctrl)

		resp := request(t, api, http.MethodGet, "/v1/post/unpublished-draft", nil, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPosts(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
		limit  int
		offset int
	}
	tests := map[string]struct {
		target string
		exp    expected
	}{
		"defaults": {
			target: "/v1/posts",
			exp:    expected{status: http.StatusOK, limit: 20, offset: 0},
		},
		"explicit page": {
			target: "/v1/posts?limit=5&offset=10",
			exp:    expected{status: http.StatusOK, limit: 5, offset: 10},
		},
		"limit too large": {
			target: "/v1/posts?limit=500",
			exp:    expected{status: http.StatusBadRequest},
		},
		"negative offset": {
			target: "/v1/posts?offset=-1",
			exp:    expected{status: http.StatusBadRequest},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithPosts(func(_ context.Context, limit, offset int) ([]model.Post, error) {
					require.Equal(t, test.exp.limit, limit)
					require.Equal(t, test.exp.offset, offset)
					return []model.Post{}, nil
				}),
			)
			api, _ := newAPI(t, ctrl)

			resp := request(t, api, http.MethodGet, test.target, nil, nil)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)
		})
	}
}

func TestCreateComment(t *testing.T) {
	t.Parallel()

	t.Run("on published post", func(t *testing.T) {
		t.Parallel()

		postID := uuid.New()
		userID := uuid.New()
		ctrl := NewControllerMock(
			WithCreateComment(func(_ context.Context, actor session.User, id uuid.UUID, body string) (*model.Comment, error) {
				require.Equal(t, userID, actor.ID)
				require.Equal(t, postID, id)
				return &model.Comment{PostID: id, AuthorID: actor.ID, Body: body}, nil
			}),
		)
		api, manager := newAPI(t, ctrl)
		cookie := establishSession(t, manager, session.User{ID: userID, Role: session.RoleRegular})

		target := fmt.Sprintf("/v1/post/%s/comments", postID)
		resp := request(t, api, http.MethodPost, target, map[string]interface{}{
			"body": "Saving this for September.",
		}, cookie)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("on hidden post", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithCreateComment(func(context.Context, session.User, uuid.UUID, string) (*model.Comment, error) {
				return nil, berrors.ErrPostDNE
			}),
		)
		api, manager := newAPI(t, ctrl)
		cookie := establishSession(t, manager, session.User{ID: uuid.New(), Role: session.RoleRegular})

		target := fmt.Sprintf("/v1/post/%s/comments", uuid.NewString())
		resp := request(t, api, http.MethodPost, target, map[string]interface{}{
			"body": "Saving this for September.",
		}, cookie)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		api, _ := newAPI(t, NewControllerMock())

		target := fmt.Sprintf("/v1/post/%s/comments", uuid.NewString())
		resp := request(t, api, http.MethodPost, target, map[string]interface{}{
			"body": "Saving this for September.",
		}, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRemoveComment(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		err error
		exp expected
	}{
		"allowed": {
			err: nil,
			exp: expected{status: http.StatusNoContent},
		},
		"not the author": {
			err: berrors.ErrNotCommentAuthor,
			exp: expected{status: http.StatusForbidden},
		},
		"comment does not exist": {
			err: berrors.ErrCommentDNE,
			exp: expected{status: http.StatusNotFound},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithRemoveComment(func(context.Context, session.User, uuid.UUID) error {
					return test.err
				}),
			)
			api, manager := newAPI(t, ctrl)
			cookie := establishSession(t, manager, session.User{ID: uuid.New(), Role: session.RoleRegular})

			target := fmt.Sprintf("/v1/comment/%s", uuid.NewString())
			resp := request(t, api, http.MethodDelete, target, nil, cookie)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)
		})
	}
}

func TestStories(t *testing.T) {
	t.Parallel()

	t.Run("on published post", func(t *testing.T) {
		t.Parallel()

		postID := uuid.New()
		ctrl := NewControllerMock(
			WithStories(func(_ context.Context, actor *session.User, id uuid.UUID) ([]model.Story, error) {
				require.Nil(t, actor)
				require.Equal(t, postID, id)
				return []model.Story{{PostID: id, Body: "The pass reopened in June."}}, nil
			}),
		)
		api, _ := newAPI(t, ctrl)

		target := fmt.Sprintf("/v1/post/%s/stories", postID)
		resp := request(t, api, http.MethodGet, target, nil, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stories []model.Story
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&stories))
		require.Len(t, stories, 1)
	})

	t.Run("on hidden post", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithStories(func(context.Context, *session.User, uuid.UUID) ([]model.Story, error) {
				return nil, berrors.ErrPostDNE
			}),
		)
		api, _ := newAPI(t, ctrl)

		target := fmt.Sprintf("/v1/post/%s/stories", uuid.NewString())
		resp := request(t, api, http.MethodGet, target, nil, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateStory(t *testing.T) {
	t.Parallel()

	t.Run("by the author", func(t *testing.T) {
		t.Parallel()

		postID := uuid.New()
		userID := uuid.New()
		ctrl := NewControllerMock(
			WithCreateStory(func(_ context.Context, actor session.User, id uuid.UUID, body string) (*model.Story, error) {
				require.Equal(t, userID, actor.ID)
				require.Equal(t, postID, id)
				return &model.Story{PostID: id, AuthorID: actor.ID, Body: body}, nil
			}),
		)
		api, manager := newAPI(t, ctrl)
		cookie := establishSession(t, manager, session.User{ID: userID, Role: session.RoleRegular})

		target := fmt.Sprintf("/v1/post/%s/stories", postID)
		resp := request(t, api, http.MethodPost, target, map[string]interface{}{
			"body": "The pass reopened in June.",
		}, cookie)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("by another user", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithCreateStory(func(context.Context, session.User, uuid.UUID, string) (*model.Story, error) {
				return nil, berrors.ErrNotPostAuthor
			}),
		)
		api, manager := newAPI(t, ctrl)
		cookie := establishSession(t, manager, session.User{ID: uuid.New(), Role: session.RoleRegular})

		target := fmt.Sprintf("/v1/post/%s/stories", uuid.NewString())
		resp := request(t, api, http.MethodPost, target, map[string]interface{}{
			"body": "The pass reopened in June.",
		}, cookie)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		api, _ := newAPI(t, NewControllerMock())

		target := fmt.Sprintf("/v1/post/%s/stories", uuid.NewString())
		resp := request(t, api, http.MethodPost, target, map[string]interface{}{
			"body": "The pass reopened in June.",
		}, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRemoveStory(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		err error
		exp expected
	}{
		"allowed": {
			err: nil,
			exp: expected{status: http.StatusNoContent},
		},
		"not the author": {
			err: berrors.ErrNotStoryAuthor,
			exp: expected{status: http.StatusForbidden},
		},
		"story does not exist": {
			err: berrors.ErrStoryDNE,
			exp: expected{status: http.StatusNotFound},
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithRemoveStory(func(context.Context, session.User, uuid.UUID) error {
					return test.err
				}),
			)
			api, manager := newAPI(t, ctrl)
			cookie := establishSession(t, manager, session.User{ID: uuid.New(), Role: session.RoleRegular})

			target := fmt.Sprintf("/v1/story/%s", uuid.NewString())
			resp := request(t, api, http.MethodDelete, target, nil, cookie)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)
		})
	}
}

func TestMyPosts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ctrl := NewControllerMock(
		WithPostsByAuthor(func(_ context.Context, authorID uuid.UUID) ([]model.Post, error) {
			require.Equal(t, userID, authorID)
			return []model.Post{{AuthorID: authorID, Status: model.StatusDraft}}, nil
		}),
	)
	api, manager := newAPI(t, ctrl)
	cookie := establishSession(t, manager, session.User{ID: userID, Role: session.RoleRegular})

	resp := request(t, api, http.MethodGet, "/v1/posts/mine", nil, cookie)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []model.Post
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 1)
}

func newAPI(t *testing.T, ctrl IController) (*API, *session.Mock) {
	t.Helper()

	manager := session.NewMock(time.Hour)

	api := NewAPI(
		zap.NewNop(),
		ctrl,
		ihttp.NewSessionMiddleware(zap.NewNop(), manager),
		validator.New(),
	)

	return api, manager
}

func establishSession(t *testing.T, manager *session.Mock, user session.User) *http.Cookie {
	t.Helper()

	id := fmt.Sprintf("session-%s", uuid.NewString())
	sess := session.New(id, user, time.Hour)
	require.Nil(t, manager.CreateSession(context.Background(), *sess))

	return &http.Cookie{Name: "_rv-session", Value: id}
}

func request(
	t *testing.T,
	api *API,
	method string,
	target string,
	body map[string]interface{},
	cookie *http.Cookie,
) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.Nil(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	api.Mux.ServeHTTP(rr, req)

	return rr.Result()
}
