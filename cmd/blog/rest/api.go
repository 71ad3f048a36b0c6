// Package rest is responsible for the blog service's HTTP API.
package rest

import (
	"context"
	"net/http"

	"github.com/roamvista/roamvista/cmd/blog/controller"
	"github.com/roamvista/roamvista/cmd/blog/model"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IController encompasses all business logic the API depends on.
type IController interface {
	CreatePost(ctx context.Context, input controller.CreatePostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, input controller.UpdatePostInput) (*model.Post, error)
	PublishPost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error)
	RemovePost(ctx context.Context, actor session.User, postID uuid.UUID) error
	Post(ctx context.Context, actor *session.User, slug string) (*model.Post, error)
	Posts(ctx context.Context, limit, offset int) ([]model.Post, error)
	PostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)
	CreateComment(ctx context.Context, actor session.User, postID uuid.UUID, body string) (*model.Comment, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	RemoveComment(ctx context.Context, actor session.User, commentID uuid.UUID) error
	UnpublishPost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error)
	RestorePost(ctx context.Context, actor session.User, postID uuid.UUID) (*model.Post, error)
	CreateStory(ctx context.Context, actor session.User, postID uuid.UUID, body string) (*model.Story, error)
	Stories(ctx context.Context, actor *session.User, postID uuid.UUID) ([]model.Story, error)
	RemoveStory(ctx context.Context, actor session.User, storyID uuid.UUID) error
}

// ISessionMiddleware encompasses the session middleware chain.
type ISessionMiddleware interface {
	InjectSessionIntoCtx() func(http.Handler) http.Handler
	Touch() func(http.Handler) http.Handler
	IsAuthenticated() func(http.Handler) http.Handler
	IsModerator() func(http.Handler) http.Handler
	HasRole(role session.Role) func(http.Handler) http.Handler
}

// NewAPI creates an API instance.
func NewAPI(
	logger *zap.Logger,
	ctrl IController,
	sessionMiddleware ISessionMiddleware,
	valid *validator.Validate,
) *API {
	api := API{
		Mux: chi.NewRouter(),

		logger: logger,
		ctrl:   ctrl,
		valid:  valid,
	}

	api.Mux.Use(
		middleware.RequestLogger(ihttp.NewZapLogFormatter(logger)),
		sessionMiddleware.InjectSessionIntoCtx(),
		sessionMiddleware.Touch(),
		middleware.SetHeader("Content-Type", "application/json"),
	)

	api.Mux.Route("/v1", func(router chi.Router) {
		router.Method(http.MethodGet, "/posts", Posts{API: api})
		router.Method(http.MethodGet, "/post/{slug}", Post{API: api})
		router.Method(http.MethodGet, "/post/{id}/comments", Comments{API: api})
		router.Method(http.MethodGet, "/post/{id}/stories", Stories{API: api})

		router.Group(func(router chi.Router) {
			router.Use(sessionMiddleware.IsAuthenticated())

			router.Method(http.MethodGet, "/posts/mine", MyPosts{API: api})
			router.Method(http.MethodPost, "/post", CreatePost{API: api})
			router.Method(http.MethodPatch, "/post/{id}", UpdatePost{API: api})
			router.Method(http.MethodPost, "/post/{id}/publish", PublishPost{API: api})
			router.Method(http.MethodPost, "/post/{id}/comments", CreateComment{API: api})
			router.Method(http.MethodDelete, "/comment/{id}", RemoveComment{API: api})
			router.Method(http.MethodPost, "/post/{id}/stories", CreateStory{API: api})
			router.Method(http.MethodDelete, "/story/{id}", RemoveStory{API: api})
		})

		router.Group(func(router chi.Router) {
			router.Use(sessionMiddleware.IsModerator())

			router.Method(http.MethodPost, "/post/{id}/unpublish", UnpublishPost{API: api})
			router.Method(http.MethodPost, "/post/{id}/restore", RestorePost{API: api})
		})

		router.Group(func(router chi.Router) {
			router.Use(sessionMiddleware.HasRole(session.RoleAdmin))

			router.Method(http.MethodDelete, "/post/{id}", RemovePost{API: api})
		})
	})

	return &api
}

// API is responsible for blog service HTTP API logic.
type API struct {
	Mux *chi.Mux

	logger *zap.Logger
	ctrl   IController
	valid  *validator.Validate
}

// urlUUID extracts the named UUID parameter from the request URL.
func urlUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
