// Package rest is responsible for the marketing service's HTTP API.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/roamvista/roamvista/cmd/marketing/controller"
	"github.com/roamvista/roamvista/cmd/marketing/model"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// minJoinDuration pads early-access joins so response time does not reveal
// whether an address was already on the list.
const minJoinDuration = 800 * time.Millisecond

// IController encompasses all business logic the API depends on.
type IController interface {
	JoinEarlyAccess(ctx context.Context, input controller.JoinEarlyAccessInput) error
	Signups(ctx context.Context) ([]model.Signup, error)
}

// ISessionMiddleware encompasses the session middleware chain.
type ISessionMiddleware interface {
	InjectSessionIntoCtx() func(http.Handler) http.Handler
	Touch() func(http.Handler) http.Handler
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
		router.Group(func(router chi.Router) {
			router.Use(ihttp.EnsureDuration(minJoinDuration))

			router.Method(http.MethodPost, "/early-access", JoinEarlyAccess{API: api})
		})

		router.Group(func(router chi.Router) {
			router.Use(sessionMiddleware.HasRole(session.RoleAdmin))

			router.Method(http.MethodGet, "/early-access", Signups{API: api})
		})
	})

	return &api
}

// API is responsible for marketing service HTTP API logic.
type API struct {
	Mux *chi.Mux

	logger *zap.Logger
	ctrl   IController
	valid  *validator.Validate
}
