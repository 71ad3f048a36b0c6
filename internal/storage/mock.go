package storage

import (
	"context"
	"errors"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewBlobStoreMock creates a new BlobStoreMock instance.
func NewBlobStoreMock(options ...BlobStoreMockOption) *BlobStoreMock {
	mock := &BlobStoreMock{}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// BlobStoreMockOption is a function type that may configure a BlobStoreMock
// instance.
type BlobStoreMockOption func(*BlobStoreMock)

// WithPut returns a BlobStoreMockOption that configures a BlobStoreMock to
// call fn when Put is called.
func WithPut(fn putFunc) BlobStoreMockOption {
	return func(mock *BlobStoreMock) { mock.put = fn }
}

type putFunc func(ctx context.Context, key string, b []byte, contentType string) (string, error)

// BlobStoreMock provides an implementation for mock blob storage
// interactions. This is typically used for unit-testing.
type BlobStoreMock struct {
	put putFunc
}

// Put calls the function configured with WithPut.
func (mock BlobStoreMock) Put(ctx context.Context, key string, b []byte, contentType string) (string, error) {
	if mock.put == nil {
		return "", errUnconfigured
	}
	return mock.put(ctx, key, b, contentType)
}
