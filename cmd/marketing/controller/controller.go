// Package controller is responsible for marketing service business logic.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	merrors "github.com/roamvista/roamvista/cmd/marketing/errors"
	"github.com/roamvista/roamvista/cmd/marketing/model"
	"github.com/roamvista/roamvista/internal/event"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IStore encompasses all interactions with the marketing store.
type IStore interface {
	CreateSignup(ctx context.Context, signup *model.Signup) error
	ConfirmSignup(ctx context.Context, id uuid.UUID) error
	Signups(ctx context.Context) ([]model.Signup, error)
}

// IEmailer encompasses all emails sent by the marketing service.
type IEmailer interface {
	SendEarlyAccessConfirmation(ctx context.Context, to, name string) error
}

// IStream encompasses all write interactions with the event stream.
type IStream interface {
	Write(ctx context.Context, b []byte) error
}

// New creates a Controller instance.
func New(logger *zap.Logger, store IStore, emailer IEmailer, stream IStream) *Controller {
	return &Controller{
		logger:  logger,
		store:   store,
		emailer: emailer,
		stream:  stream,
	}
}

// Controller is responsible for marketing service business logic.
type Controller struct {
	logger  *zap.Logger
	store   IStore
	emailer IEmailer
	stream  IStream
}

// JoinEarlyAccessInput is the input for the Controller.JoinEarlyAccess
// method.
type JoinEarlyAccessInput struct {
	Email  string
	Name   string
	Source string
}

// JoinEarlyAccess adds the passed email address to the early-access list.
// Joining with an address already on the list succeeds without touching the
// existing signup, so the response never reveals whether the address was
// already on the list; the confirmation email is only sent once.
func (ctrl Controller) JoinEarlyAccess(ctx context.Context, input JoinEarlyAccessInput) error {
	signup := &model.Signup{
		Email:  strings.ToLower(input.Email),
		Name:   input.Name,
		Source: input.Source,
	}

	err := ctrl.store.CreateSignup(ctx, signup)
	if errors.Is(err, merrors.ErrEmailAlreadyJoined) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("while creating signup: %w", err)
	}

	if err := ctrl.emailer.SendEarlyAccessConfirmation(ctx, signup.Email, signup.Name); err != nil {
		ctrl.logger.Error("send early-access confirmation", zap.Error(err))
	} else if err := ctrl.store.ConfirmSignup(ctx, signup.ID); err != nil {
		ctrl.logger.Error("confirm signup", zap.Error(err))
	}

	ctrl.publish(ctx, event.NewEarlyAccessJoinedEvent(signup.ID, signup.Email))

	return nil
}

// Signups retrieves all early-access signups.
func (ctrl Controller) Signups(ctx context.Context) ([]model.Signup, error) {
	return ctrl.store.Signups(ctx)
}

// publish writes the passed event to the event stream. Failures are logged;
// they never fail the owning operation.
func (ctrl Controller) publish(ctx context.Context, e interface{}) {
	b, err := json.Marshal(e)
	if err != nil {
		ctrl.logger.Error("marshal event", zap.Error(err))
		return
	}
	if err := ctrl.stream.Write(ctx, b); err != nil {
		ctrl.logger.Error("write event", zap.Error(err))
	}
}
