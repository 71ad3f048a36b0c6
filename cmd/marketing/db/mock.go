package db

import (
	"context"
	"errors"

	"github.com/roamvista/roamvista/cmd/marketing/model"

	"github.com/google/uuid"
)

var errUnconfigured = errors.New("mock unconfigured")

// NewStoreMock creates a StoreMock instance.
func NewStoreMock(options ...StoreMockOption) *StoreMock {
	mock := &StoreMock{}
	for _, option := range options {
		option(mock)
	}
	return mock
}

// StoreMockOption is a function type that may configure a StoreMock instance.
type StoreMockOption func(*StoreMock)

// WithCreateSignup returns a StoreMockOption that configures the StoreMock's
// CreateSignup implementation.
func WithCreateSignup(fn func(context.Context, *model.Signup) error) StoreMockOption {
	return func(mock *StoreMock) { mock.createSignup = fn }
}

// WithConfirmSignup returns a StoreMockOption that configures the StoreMock's
// ConfirmSignup implementation.
func WithConfirmSignup(fn func(context.Context, uuid.UUID) error) StoreMockOption {
	return func(mock *StoreMock) { mock.confirmSignup = fn }
}

// WithSignups returns a StoreMockOption that configures the StoreMock's
// Signups implementation.
func WithSignups(fn func(context.Context) ([]model.Signup, error)) StoreMockOption {
	return func(mock *StoreMock) { mock.signups = fn }
}

// StoreMock is responsible for mocking marketing store logic. Typically used
// for testing purposes.
type StoreMock struct {
	createSignup  func(context.Context, *model.Signup) error
	confirmSignup func(context.Context, uuid.UUID) error
	signups       func(context.Context) ([]model.Signup, error)
}

// CreateSignup calls the configured CreateSignup implementation.
func (m StoreMock) CreateSignup(ctx context.Context, signup *model.Signup) error {
	if m.createSignup == nil {
		return errUnconfigured
	}
	return m.createSignup(ctx, signup)
}

// ConfirmSignup calls the configured ConfirmSignup implementation.
func (m StoreMock) ConfirmSignup(ctx context.Context, id uuid.UUID) error {
	if m.confirmSignup == nil {
		return errUnconfigured
	}
	return m.confirmSignup(ctx, id)
}

// Signups calls the configured Signups implementation.
func (m StoreMock) Signups(ctx context.Context) ([]model.Signup, error) {
	if m.signups == nil {
		return nil, errUnconfigured
	}
	return m.signups(ctx)
}
