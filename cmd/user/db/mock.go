package db

import (
	"context"
	"errors"

	"github.com/roamvista/roamvista/cmd/user/model"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewStoreMock creates a new StoreMock instance.
func NewStoreMock(options ...StoreMockOption) *StoreMock {
	mock := &StoreMock{}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// StoreMockOption is a function type that may configure a StoreMock
// instance.
type StoreMockOption func(*StoreMock)

// WithCreateUser returns a StoreMockOption that configures a StoreMock to
// call fn when CreateUser is called.
func WithCreateUser(fn func(ctx context.Context, user *model.User) error) StoreMockOption {
	return func(mock *StoreMock) { mock.createUser = fn }
}

// WithUser returns a StoreMockOption that configures a StoreMock to call fn
// when User is called.
func WithUser(fn func(ctx context.Context, id uuid.UUID) (*model.User, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.user = fn }
}

// WithUserByEmail returns a StoreMockOption that configures a StoreMock to
// call fn when UserByEmail is called.
func WithUserByEmail(fn func(ctx context.Context, email string) (*model.User, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.userByEmail = fn }
}

// WithUsers returns a StoreMockOption that configures a StoreMock to call fn
// when Users is called.
func WithUsers(fn func(ctx context.Context) ([]model.User, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.users = fn }
}

// WithUpdateUserRole returns a StoreMockOption that configures a StoreMock
// to call fn when UpdateUserRole is called.
func WithUpdateUserRole(fn func(ctx context.Context, id uuid.UUID, role session.Role) (*model.User, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.updateUserRole = fn }
}

// WithUpdateUserProfile returns a StoreMockOption that configures a
// StoreMock to call fn when UpdateUserProfile is called.
func WithUpdateUserProfile(fn func(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.User, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.updateUserProfile = fn }
}

// WithUpdateUserPassword returns a StoreMockOption that configures a
// StoreMock to call fn when UpdateUserPassword is called.
func WithUpdateUserPassword(fn func(ctx context.Context, userID, resetID uuid.UUID, password []byte, salt string) error) StoreMockOption {
	return func(mock *StoreMock) { mock.updateUserPassword = fn }
}

// WithVerifyEmail returns a StoreMockOption that configures a StoreMock to
// call fn when VerifyEmail is called.
func WithVerifyEmail(fn func(ctx context.Context, hash string) (*model.User, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.verifyEmail = fn }
}

// WithResendVerificationEmail returns a StoreMockOption that configures a
// StoreMock to call fn when ResendVerificationEmail is called.
func WithResendVerificationEmail(fn func(ctx context.Context, id uuid.UUID, hash string) (*model.User, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.resendVerificationEmail = fn }
}

// WithCreatePasswordReset returns a StoreMockOption that configures a
// StoreMock to call fn when CreatePasswordReset is called.
func WithCreatePasswordReset(fn func(ctx context.Context, email, resetHash string) (*model.PasswordReset, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.createPasswordReset = fn }
}

// WithPasswordResetByHash returns a StoreMockOption that configures a
// StoreMock to call fn when PasswordResetByHash is called.
func WithPasswordResetByHash(fn func(ctx context.Context, hash string) (*model.PasswordReset, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.passwordResetByHash = fn }
}

// StoreMock provides an implementation for mock user store interactions.
// This is typically used for unit-testing.
type StoreMock struct {
	createUser              func(ctx context.Context, user *model.User) error
	user                    func(ctx context.Context, id uuid.UUID) (*model.User, error)
	userByEmail             func(ctx context.Context, email string) (*model.User, error)
	users                   func(ctx context.Context) ([]model.User, error)
	updateUserRole          func(ctx context.Context, id uuid.UUID, role session.Role) (*model.User, error)
	updateUserProfile       func(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.User, error)
	updateUserPassword      func(ctx context.Context, userID, resetID uuid.UUID, password []byte, salt string) error
	verifyEmail             func(ctx context.Context, hash string) (*model.User, error)
	resendVerificationEmail func(ctx context.Context, id uuid.UUID, hash string) (*model.User, error)
	createPasswordReset     func(ctx context.Context, email, resetHash string) (*model.PasswordReset, error)
	passwordResetByHash     func(ctx context.Context, hash string) (*model.PasswordReset, error)
}

// CreateUser calls the function configured with WithCreateUser.
func (mock StoreMock) CreateUser(ctx context.Context, user *model.User) error {
	if mock.createUser == nil {
		return errUnconfigured
	}
	return mock.createUser(ctx, user)
}

// User calls the function configured with WithUser.
func (mock StoreMock) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if mock.user == nil {
		return nil, errUnconfigured
	}
	return mock.user(ctx, id)
}

// UserByEmail calls the function configured with WithUserByEmail.
func (mock StoreMock) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	if mock.userByEmail == nil {
		return nil, errUnconfigured
	}
	return mock.userByEmail(ctx, email)
}

// Users calls the function configured with WithUsers.
func (mock StoreMock) Users(ctx context.Context) ([]model.User, error) {
	if mock.users == nil {
		return nil, errUnconfigured
	}
	return mock.users(ctx)
}

// UpdateUserRole calls the function configured with WithUpdateUserRole.
func (mock StoreMock) UpdateUserRole(ctx context.Context, id uuid.UUID, role session.Role) (*model.User, error) {
	if mock.updateUserRole == nil {
		return nil, errUnconfigured
	}
	return mock.updateUserRole(ctx, id, role)
}

// UpdateUserProfile calls the function configured with WithUpdateUserProfile.
func (mock StoreMock) UpdateUserProfile(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.User, error) {
	if mock.updateUserProfile == nil {
		return nil, errUnconfigured
	}
	return mock.updateUserProfile(ctx, id, changes)
}

// UpdateUserPassword calls the function configured with
// WithUpdateUserPassword.
func (mock StoreMock) UpdateUserPassword(ctx context.Context, userID, resetID uuid.UUID, password []byte, salt string) error {
	if mock.updateUserPassword == nil {
		return errUnconfigured
	}
	return mock.updateUserPassword(ctx, userID, resetID, password, salt)
}

// VerifyEmail calls the function configured with WithVerifyEmail.
func (mock StoreMock) VerifyEmail(ctx context.Context, hash string) (*model.User, error) {
	if mock.verifyEmail == nil {
		return nil, errUnconfigured
	}
	return mock.verifyEmail(ctx, hash)
}

// ResendVerificationEmail calls the function configured with
// WithResendVerificationEmail.
func (mock StoreMock) ResendVerificationEmail(ctx context.Context, id uuid.UUID, hash string) (*model.User, error) {
	if mock.resendVerificationEmail == nil {
		return nil, errUnconfigured
	}
	return mock.resendVerificationEmail(ctx, id, hash)
}

// CreatePasswordReset calls the function configured with
// WithCreatePasswordReset.
func (mock StoreMock) CreatePasswordReset(ctx context.Context, email, resetHash string) (*model.PasswordReset, error) {
	if mock.createPasswordReset == nil {
		return nil, errUnconfigured
	}
	return mock.createPasswordReset(ctx, email, resetHash)
}

// PasswordResetByHash calls the function configured with
// WithPasswordResetByHash.
func (mock StoreMock) PasswordResetByHash(ctx context.Context, hash string) (*model.PasswordReset, error) {
	if mock.passwordResetByHash == nil {
		return nil, errUnconfigured
	}
	return mock.passwordResetByHash(ctx, hash)
}
