package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/roamvista/roamvista/cmd/marketing/db"
	merrors "github.com/roamvista/roamvista/cmd/marketing/errors"
	"github.com/roamvista/roamvista/cmd/marketing/model"
	"github.com/roamvista/roamvista/internal/email"
	"github.com/roamvista/roamvista/internal/event"
	"github.com/roamvista/roamvista/internal/stream"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJoinEarlyAccess(t *testing.T) {
	t.Parallel()

	signupID := uuid.New()
	var emails int64
	var published [][]byte

	var confirms int64
	store := db.NewStoreMock(
		db.WithCreateSignup(func(_ context.Context, signup *model.Signup) error {
			require.Equal(t, "wanderer@example.com", signup.Email)
			signup.ID = signupID
			return nil
		}),
		db.WithConfirmSignup(func(_ context.Context, id uuid.UUID) error {
			atomic.AddInt64(&confirms, 1)
			require.Equal(t, signupID, id)
			return nil
		}),
	)
	emailer := email.NewEmailerMock(
		email.WithSendEarlyAccessConfirmation(func(_ context.Context, to, name string) error {
			atomic.AddInt64(&emails, 1)
			require.Equal(t, "wanderer@example.com", to)
			require.Equal(t, "Wanda", name)
			return nil
		}),
	)
	events := stream.NewClientMock(
		stream.WithWrite(func(_ context.Context, b []byte) error {
			published = append(published, b)
			return nil
		}),
	)

	ctrl := New(zap.NewNop(), store, emailer, events)

	err := ctrl.JoinEarlyAccess(context.Background(), JoinEarlyAccessInput{
		Email:  "Wanderer@Example.com",
		Name:   "Wanda",
		Source: "homepage",
	})
	require.Nil(t, err)
	require.Equal(t, int64(1), emails)
	require.Equal(t, int64(1), confirms)

	require.Len(t, published, 1)
	e, err := event.Parse(published[0])
	require.Nil(t, err)
	joined, ok := e.(*event.EarlyAccessJoinedEvent)
	require.True(t, ok)
	require.Equal(t, signupID, joined.SignupID)
	require.Equal(t, "wanderer@example.com", joined.Email)
}

func TestJoinEarlyAccessTwice(t *testing.T) {
	t.Parallel()

	var emails int64

	store := db.NewStoreMock(
		db.WithCreateSignup(func(context.Context, *model.Signup) error {
			return merrors.ErrEmailAlreadyJoined
		}),
	)
	emailer := email.NewEmailerMock(
		email.WithSendEarlyAccessConfirmation(func(context.Context, string, string) error {
			atomic.AddInt64(&emails, 1)
			return nil
		}),
	)
	events := stream.NewClientMock(
		stream.WithWrite(func(context.Context, []byte) error {
			t.Error("no event expected for a repeat join")
			return nil
		}),
	)

	ctrl := New(zap.NewNop(), store, emailer, events)

	// A repeat join reads nothing back from the store; the caller learns
	// nothing about the existing signup.
	err := ctrl.JoinEarlyAccess(context.Background(), JoinEarlyAccessInput{
		Email: "wanderer@example.com",
		Name:  "Wanda",
	})
	require.Nil(t, err)
	require.Zero(t, emails)
}

func TestJoinEarlyAccessEmailFailure(t *testing.T) {
	t.Parallel()

	store := db.NewStoreMock(
		db.WithCreateSignup(func(context.Context, *model.Signup) error { return nil }),
		db.WithConfirmSignup(func(context.Context, uuid.UUID) error {
			t.Error("signup must not be confirmed when delivery fails")
			return nil
		}),
	)
	emailer := email.NewEmailerMock(
		email.WithSendEarlyAccessConfirmation(func(context.Context, string, string) error {
			return errSMTP
		}),
	)
	events := stream.NewClientMock(
		stream.WithWrite(func(context.Context, []byte) error { return nil }),
	)

	ctrl := New(zap.NewNop(), store, emailer, events)

	// A confirmation delivery failure does not fail the join.
	err := ctrl.JoinEarlyAccess(context.Background(), JoinEarlyAccessInput{
		Email: "wanderer@example.com",
		Name:  "Wanda",
	})
	require.Nil(t, err)
}

var errSMTP = errors.New("smtp unavailable")
