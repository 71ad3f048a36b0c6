// Package rest is responsible for the user service's HTTP API.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/roamvista/roamvista/cmd/user/controller"
	"github.com/roamvista/roamvista/cmd/user/model"
	"github.com/roamvista/roamvista/cmd/user/openid"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// minCredentialDuration is the minimum duration of endpoints that process
// credentials. A uniform floor keeps response timing from leaking whether an
// account exists.
const minCredentialDuration = 800 * time.Millisecond

// IController encompasses all business logic the API depends on.
type IController interface {
	CreateUser(ctx context.Context, input controller.CreateUserInput) (*model.User, error)
	LoginUser(ctx context.Context, input controller.LoginUserInput) (*model.User, error)
	FederatedUser(ctx context.Context, input controller.FederatedUserInput) (*model.User, error)
	LogoutUserSession(ctx context.Context, sess session.Session) error
	LogoutAllUserSessions(ctx context.Context, sess session.Session) error
	VerifyEmail(ctx context.Context, hash string) (*model.User, error)
	ResendVerificationEmail(ctx context.Context, userID uuid.UUID) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, hash, password string) error
	UpdateProfile(ctx context.Context, input controller.UpdateProfileInput) (*model.User, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role session.Role) (*model.User, error)
	User(ctx context.Context, id uuid.UUID) (*model.User, error)
	Users(ctx context.Context) ([]model.User, error)
}

// ISessionManager encompasses the session interactions owned by the API.
type ISessionManager interface {
	CreateSession(ctx context.Context, sess session.Session) error
	RetrieveSession(ctx context.Context, sessionID string) (*session.Session, error)
	UpdateSession(ctx context.Context, sessionID string, updateFn func(*session.Session)) (*session.Session, error)
	DeleteSession(ctx context.Context, sess session.Session) error
}

// ISessionMiddleware encompasses the session middleware chain.
type ISessionMiddleware interface {
	InjectSessionIntoCtx() func(http.Handler) http.Handler
	Touch() func(http.Handler) http.Handler
	IsAuthenticated() func(http.Handler) http.Handler
	HasRole(role session.Role) func(http.Handler) http.Handler
}

// IOpenID encompasses the federated sign-in exchange.
type IOpenID interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*openid.Identity, error)
}

// NewAPI creates an API instance.
func NewAPI(
	logger *zap.Logger,
	ctrl IController,
	sessionMiddleware ISessionMiddleware,
	sessionManager ISessionManager,
	openID IOpenID,
	valid *validator.Validate,
	cookieOptions ihttp.CookieOptions,
) *API {
	api := API{
		Mux: chi.NewRouter(),

		logger:         logger,
		ctrl:           ctrl,
		sessionManager: sessionManager,
		openID:         openID,
		valid:          valid,
		cookieOptions:  cookieOptions,
	}

	api.Mux.Use(
		middleware.RequestLogger(ihttp.NewZapLogFormatter(logger)),
		sessionMiddleware.InjectSessionIntoCtx(),
		sessionMiddleware.Touch(),
		middleware.SetHeader("Content-Type", "application/json"),
	)

	api.Mux.Route("/v1", func(router chi.Router) {
		router.Group(func(router chi.Router) {
			router.Use(ihttp.EnsureDuration(minCredentialDuration))

			router.Method(http.MethodPost, "/user", CreateUser{API: api})
			router.Method(http.MethodPost, "/user/session", LoginUser{API: api})
			router.Method(http.MethodPost, "/user/forgot-password", ForgotPassword{API: api})
			router.Method(http.MethodPost, "/user/reset-password", ResetPassword{API: api})
		})

		router.Method(http.MethodGet, "/user/session", Session{API: api})
		router.Method(http.MethodPost, "/user/verify-email", VerifyEmail{API: api})
		router.Method(http.MethodGet, "/user/login/federated", FederatedLogin{API: api})
		router.Method(http.MethodGet, "/user/login/federated/callback", FederatedCallback{API: api})

		router.Group(func(router chi.Router) {
			router.Use(sessionMiddleware.IsAuthenticated())

			router.Method(http.MethodDelete, "/user/session", LogoutUser{API: api})
			router.Method(http.MethodDelete, "/user/sessions", LogoutAllUserSessions{API: api})
			router.Method(http.MethodPost, "/user/resend-verification", ResendVerification{API: api})
			router.Method(http.MethodPatch, "/user/profile", UpdateProfile{API: api})
			router.Method(http.MethodGet, "/user/session/stream", SessionStream{API: api})
		})

		router.Group(func(router chi.Router) {
			router.Use(sessionMiddleware.HasRole(session.RoleAdmin))

			router.Method(http.MethodGet, "/users", Users{API: api})
			router.Method(http.MethodPatch, "/user/role", UpdateUserRole{API: api})
		})
	})

	return &api
}

// API is responsible for user service HTTP API logic.
type API struct {
	Mux *chi.Mux

	logger         *zap.Logger
	ctrl           IController
	sessionManager ISessionManager
	openID         IOpenID
	valid          *validator.Validate
	cookieOptions  ihttp.CookieOptions
}
