package email

import (
	"context"
	"errors"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewEmailerMock creates a new EmailerMock instance.
func NewEmailerMock(options ...EmailerMockOption) *EmailerMock {
	mock := &EmailerMock{}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// EmailerMockOption is a function type that may configure an EmailerMock
// instance.
type EmailerMockOption func(*EmailerMock)

// WithSendPasswordReset returns an EmailerMockOption that configures an
// EmailerMock to call fn when SendPasswordReset is called.
func WithSendPasswordReset(fn sendFunc) EmailerMockOption {
	return func(mock *EmailerMock) { mock.sendPasswordReset = fn }
}

// WithSendVerifyEmail returns an EmailerMockOption that configures an
// EmailerMock to call fn when SendVerifyEmail is called.
func WithSendVerifyEmail(fn sendFunc) EmailerMockOption {
	return func(mock *EmailerMock) { mock.sendVerifyEmail = fn }
}

// WithSendEarlyAccessConfirmation returns an EmailerMockOption that
// configures an EmailerMock to call fn when SendEarlyAccessConfirmation is
// called.
func WithSendEarlyAccessConfirmation(fn sendFunc) EmailerMockOption {
	return func(mock *EmailerMock) { mock.sendEarlyAccessConfirmation = fn }
}

type sendFunc func(ctx context.Context, to, value string) error

// EmailerMock provides an implementation for mock emailer interactions. This
// is typically used for unit-testing.
type EmailerMock struct {
	sendPasswordReset           sendFunc
	sendVerifyEmail             sendFunc
	sendEarlyAccessConfirmation sendFunc
}

// SendPasswordReset calls the function configured with WithSendPasswordReset.
func (mock EmailerMock) SendPasswordReset(ctx context.Context, to, hash string) error {
	if mock.sendPasswordReset == nil {
		return errUnconfigured
	}
	return mock.sendPasswordReset(ctx, to, hash)
}

// SendVerifyEmail calls the function configured with WithSendVerifyEmail.
func (mock EmailerMock) SendVerifyEmail(ctx context.Context, to, hash string) error {
	if mock.sendVerifyEmail == nil {
		return errUnconfigured
	}
	return mock.sendVerifyEmail(ctx, to, hash)
}

// SendEarlyAccessConfirmation calls the function configured with
// WithSendEarlyAccessConfirmation.
func (mock EmailerMock) SendEarlyAccessConfirmation(ctx context.Context, to, name string) error {
	if mock.sendEarlyAccessConfirmation == nil {
		return errUnconfigured
	}
	return mock.sendEarlyAccessConfirmation(ctx, to, name)
}
