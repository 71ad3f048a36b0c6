package rest

import (
	"context"
	"errors"

	"github.com/roamvista/roamvista/cmd/marketing/controller"
	"github.com/roamvista/roamvista/cmd/marketing/model"
)

var errUnconfigured = errors.New("mock unconfigured")

// NewControllerMock creates a ControllerMock instance.
func NewControllerMock(options ...ControllerMockOption) *ControllerMock {
	mock := &ControllerMock{}
	for _, option := range options {
		option(mock)
	}
	return mock
}

// ControllerMockOption is a function type that may configure a ControllerMock
// instance.
type ControllerMockOption func(*ControllerMock)

// WithJoinEarlyAccess returns a ControllerMockOption that configures the
// ControllerMock's JoinEarlyAccess implementation.
func WithJoinEarlyAccess(fn func(context.Context, controller.JoinEarlyAccessInput) error) ControllerMockOption {
	return func(mock *ControllerMock) { mock.joinEarlyAccess = fn }
}

// WithSignups returns a ControllerMockOption that configures the
// ControllerMock's Signups implementation.
func WithSignups(fn func(context.Context) ([]model.Signup, error)) ControllerMockOption {
	return func(mock *ControllerMock) { mock.signups = fn }
}

// ControllerMock is responsible for mocking marketing controller logic.
// Typically used for testing purposes.
type ControllerMock struct {
	joinEarlyAccess func(context.Context, controller.JoinEarlyAccessInput) error
	signups         func(context.Context) ([]model.Signup, error)
}

// JoinEarlyAccess calls the configured JoinEarlyAccess implementation.
func (m ControllerMock) JoinEarlyAccess(ctx context.Context, input controller.JoinEarlyAccessInput) error {
	if m.joinEarlyAccess == nil {
		return errUnconfigured
	}
	return m.joinEarlyAccess(ctx, input)
}

// Signups calls the configured Signups implementation.
func (m ControllerMock) Signups(ctx context.Context) ([]model.Signup, error) {
	if m.signups == nil {
		return nil, errUnconfigured
	}
	return m.signups(ctx)
}
