package rest

import (
	"context"
	"errors"

	"github.com/roamvista/roamvista/cmd/user/controller"
	"github.com/roamvista/roamvista/cmd/user/model"
	"github.com/roamvista/roamvista/cmd/user/openid"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewControllerMock creates a new ControllerMock instance.
func NewControllerMock(options ...ControllerMockOption) *ControllerMock {
	mock := &ControllerMock{}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// ControllerMockOption is a function type that may configure a
// ControllerMock instance.
type ControllerMockOption func(*ControllerMock)

// WithCreateUser returns a ControllerMockOption that configures a
// ControllerMock to call fn when CreateUser is called.
func WithCreateUser(fn func(ctx context.Context, input controller.CreateUserInput) (*model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.createUser = fn }
}

// WithLoginUser returns a ControllerMockOption that configures a
// ControllerMock to call fn when LoginUser is called.
func WithLoginUser(fn func(ctx context.Context, input controller.LoginUserInput) (*model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.loginUser = fn }
}

// WithFederatedUser returns a ControllerMockOption that configures a
// ControllerMock to call fn when FederatedUser is called.
func WithFederatedUser(fn func(ctx context.Context, input controller.FederatedUserInput) (*model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.federatedUser = fn }
}

// WithLogoutUserSession returns a ControllerMockOption that configures a
// ControllerMock to call fn when LogoutUserSession is called.
func WithLogoutUserSession(fn func(ctx context.Context, sess session.Session) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.logoutUserSession = fn }
}

// WithLogoutAllUserSessions returns a ControllerMockOption that configures a
// ControllerMock to call fn when LogoutAllUserSessions is called.
func WithLogoutAllUserSessions(fn func(ctx context.Context, sess session.Session) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.logoutAllUserSessions = fn }
}

// WithVerifyEmail returns a ControllerMockOption that configures a
// ControllerMock to call fn when VerifyEmail is called.
func WithVerifyEmail(fn func(ctx context.Context, hash string) (*model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.verifyEmail = fn }
}

// WithResendVerificationEmail returns a ControllerMockOption that configures
// a ControllerMock to call fn when ResendVerificationEmail is called.
func WithResendVerificationEmail(fn func(ctx context.Context, userID uuid.UUID) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.resendVerificationEmail = fn }
}

// WithRequestPasswordReset returns a ControllerMockOption that configures a
// ControllerMock to call fn when RequestPasswordReset is called.
func WithRequestPasswordReset(fn func(ctx context.Context, email string) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.requestPasswordReset = fn }
}

// WithResetPassword returns a ControllerMockOption that configures a
// ControllerMock to call fn when ResetPassword is called.
func WithResetPassword(fn func(ctx context.Context, hash, password string) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.resetPassword = fn }
}

// WithUpdateProfile returns a ControllerMockOption that configures a
// ControllerMock to call fn when UpdateProfile is called.
func WithUpdateProfile(fn func(ctx context.Context, input controller.UpdateProfileInput) (*model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.updateProfile = fn }
}

// WithUpdateUserRole returns a ControllerMockOption that configures a
// ControllerMock to call fn when UpdateUserRole is called.
func WithUpdateUserRole(fn func(ctx context.Context, userID uuid.UUID, role session.Role) (*model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.updateUserRole = fn }
}

// WithUser returns a ControllerMockOption that configures a ControllerMock
// to call fn when User is called.
func WithUser(fn func(ctx context.Context, id uuid.UUID) (*model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.user = fn }
}

// WithUsers returns a ControllerMockOption that configures a ControllerMock
// to call fn when Users is called.
func WithUsers(fn func(ctx context.Context) ([]model.User, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.users = fn }
}

// ControllerMock provides an implementation for mock controller
// interactions. This is typically used for unit-testing.
type ControllerMock struct {
	createUser              func(ctx context.Context, input controller.CreateUserInput) (*model.User, error)
	loginUser               func(ctx context.Context, input controller.LoginUserInput) (*model.User, error)
	federatedUser           func(ctx context.Context, input controller.FederatedUserInput) (*model.User, error)
	logoutUserSession       func(ctx context.Context, sess session.Session) error
	logoutAllUserSessions   func(ctx context.Context, sess session.Session) error
	verifyEmail             func(ctx context.Context, hash string) (*model.User, error)
	resendVerificationEmail func(ctx context.Context, userID uuid.UUID) error
	requestPasswordReset    func(ctx context.Context, email string) error
	resetPassword           func(ctx context.Context, hash, password string) error
	updateProfile           func(ctx context.Context, input controller.UpdateProfileInput) (*model.User, error)
	updateUserRole          func(ctx context.Context, userID uuid.UUID, role session.Role) (*model.User, error)
	user                    func(ctx context.Context, id uuid.UUID) (*model.User, error)
	users                   func(ctx context.Context) ([]model.User, error)
}

// CreateUser calls the function configured with WithCreateUser.
func (mock ControllerMock) CreateUser(ctx context.Context, input controller.CreateUserInput) (*model.User, error) {
	if mock.createUser == nil {
		return nil, errUnconfigured
	}
	return mock.createUser(ctx, input)
}

// LoginUser calls the function configured with WithLoginUser.
func (mock ControllerMock) LoginUser(ctx context.Context, input controller.LoginUserInput) (*model.User, error) {
	if mock.loginUser == nil {
		return nil, errUnconfigured
	}
	return mock.loginUser(ctx, input)
}

// FederatedUser calls the function configured with WithFederatedUser.
func (mock ControllerMock) FederatedUser(ctx context.Context, input controller.FederatedUserInput) (*model.User, error) {
	if mock.federatedUser == nil {
		return nil, errUnconfigured
	}
	return mock.federatedUser(ctx, input)
}

// LogoutUserSession calls the function configured with
// WithLogoutUserSession.
func (mock ControllerMock) LogoutUserSession(ctx context.Context, sess session.Session) error {
	if mock.logoutUserSession == nil {
		return errUnconfigured
	}
	return mock.logoutUserSession(ctx, sess)
}

// LogoutAllUserSessions calls the function configured with
// WithLogoutAllUserSessions.
func (mock ControllerMock) LogoutAllUserSessions(ctx context.Context, sess session.Session) error {
	if mock.logoutAllUserSessions == nil {
		return errUnconfigured
	}
	return mock.logoutAllUserSessions(ctx, sess)
}

// VerifyEmail calls the function configured with WithVerifyEmail.
func (mock ControllerMock) VerifyEmail(ctx context.Context, hash string) (*model.User, error) {
	if mock.verifyEmail == nil {
		return nil, errUnconfigured
	}
	return mock.verifyEmail(ctx, hash)
}

// ResendVerificationEmail calls the function configured with
// WithResendVerificationEmail.
func (mock ControllerMock) ResendVerificationEmail(ctx context.Context, userID uuid.UUID) error {
	if mock.resendVerificationEmail == nil {
		return errUnconfigured
	}
	return mock.resendVerificationEmail(ctx, userID)
}

// RequestPasswordReset calls the function configured with
// WithRequestPasswordReset.
func (mock ControllerMock) RequestPasswordReset(ctx context.Context, email string) error {
	if mock.requestPasswordReset == nil {
		return errUnconfigured
	}
	return mock.requestPasswordReset(ctx, email)
}

// ResetPassword calls the function configured with WithResetPassword.
func (mock ControllerMock) ResetPassword(ctx context.Context, hash, password string) error {
	if mock.resetPassword == nil {
		return errUnconfigured
	}
	return mock.resetPassword(ctx, hash, password)
}

// UpdateProfile calls the function configured with WithUpdateProfile.
func (mock ControllerMock) UpdateProfile(ctx context.Context, input controller.UpdateProfileInput) (*model.User, error) {
	if mock.updateProfile == nil {
		return nil, errUnconfigured
	}
	return mock.updateProfile(ctx, input)
}

// UpdateUserRole calls the function configured with WithUpdateUserRole.
func (mock ControllerMock) UpdateUserRole(ctx context.Context, userID uuid.UUID, role session.Role) (*model.User, error) {
	if mock.updateUserRole == nil {
		return nil, errUnconfigured
	}
	return mock.updateUserRole(ctx, userID, role)
}

// User calls the function configured with WithUser.
func (mock ControllerMock) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if mock.user == nil {
		return nil, errUnconfigured
	}
	return mock.user(ctx, id)
}

// Users calls the function configured with WithUsers.
func (mock ControllerMock) Users(ctx context.Context) ([]model.User, error) {
	if mock.users == nil {
		return nil, errUnconfigured
	}
	return mock.users(ctx)
}

// NewOpenIDMock creates a new OpenIDMock instance.
func NewOpenIDMock(options ...OpenIDMockOption) *OpenIDMock {
	mock := &OpenIDMock{}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// OpenIDMockOption is a function type that may configure an OpenIDMock
// instance.
type OpenIDMockOption func(*OpenIDMock)

// WithAuthCodeURL returns an OpenIDMockOption that configures an OpenIDMock
// to call fn when AuthCodeURL is called.
func WithAuthCodeURL(fn func(state string) string) OpenIDMockOption {
	return func(mock *OpenIDMock) { mock.authCodeURL = fn }
}

// WithExchange returns an OpenIDMockOption that configures an OpenIDMock to
// call fn when Exchange is called.
func WithExchange(fn func(ctx context.Context, code string) (*openid.Identity, error)) OpenIDMockOption {
	return func(mock *OpenIDMock) { mock.exchange = fn }
}

// OpenIDMock provides an implementation for mock federated sign-in
// interactions. This is typically used for unit-testing.
type OpenIDMock struct {
	authCodeURL func(state string) string
	exchange    func(ctx context.Context, code string) (*openid.Identity, error)
}

// AuthCodeURL calls the function configured with WithAuthCodeURL.
func (mock OpenIDMock) AuthCodeURL(state string) string {
	if mock.authCodeURL == nil {
		return ""
	}
	return mock.authCodeURL(state)
}

// Exchange calls the function configured with WithExchange.
func (mock OpenIDMock) Exchange(ctx context.Context, code string) (*openid.Identity, error) {
	if mock.exchange == nil {
		return nil, errUnconfigured
	}
	return mock.exchange(ctx, code)
}
