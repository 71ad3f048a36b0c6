// Package consumer maintains the blog service's author records from the
// site event stream.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roamvista/roamvista/cmd/blog/model"
	"github.com/roamvista/roamvista/internal/event"
	"github.com/roamvista/roamvista/internal/session"
	"github.com/roamvista/roamvista/internal/stream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// claimIdle is how long a message may sit unacknowledged with another
// consumer before this consumer claims it.
const claimIdle = 5 * time.Minute

// IStore encompasses the store interactions owned by the consumer.
type IStore interface {
	UpsertAuthor(ctx context.Context, author *model.Author) error
	UpdateAuthorRole(ctx context.Context, id uuid.UUID, role session.Role) error
}

// IStream encompasses all read interactions with the event stream.
type IStream interface {
	Claim(ctx context.Context, idle time.Duration) (*stream.Message, error)
	Read(ctx context.Context) (*stream.Message, error)
	Ack(ctx context.Context, m *stream.Message) error
}

// New creates a Consumer instance.
func New(logger *zap.Logger, store IStore, events IStream) *Consumer {
	return &Consumer{
		logger: logger,
		store:  store,
		events: events,
	}
}

// Consumer reads the site event stream and folds user changes into the blog
// service's author records.
type Consumer struct {
	logger *zap.Logger
	store  IStore
	events IStream
}

// Launch processes stream messages until the passed context is cancelled.
// Pending messages abandoned by other consumers are claimed first.
func (c Consumer) Launch(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		message, err := c.events.Claim(ctx, claimIdle)
		if errors.Is(err, stream.ErrNoPending) {
			message, err = c.events.Read(ctx)
		}
		if err != nil {
			return fmt.Errorf("consume stream: %w", err)
		}

		if err := c.process(ctx, message); err != nil {
			// Leave the message pending; it is retried via Claim.
			c.logger.Error("process stream message", zap.String("id", message.ID), zap.Error(err))
			continue
		}

		if err := c.events.Ack(ctx, message); err != nil {
			c.logger.Error("ack stream message", zap.String("id", message.ID), zap.Error(err))
		}
	}
}

func (c Consumer) process(ctx context.Context, m *stream.Message) error {
	parsed, err := event.Parse(m.Payload)
	if err != nil {
		return fmt.Errorf("parse stream message: %w", err)
	}

	switch e := parsed.(type) {
	case *event.UserSignedUpEvent:
		if err := c.store.UpsertAuthor(ctx, &model.Author{
			ID:          e.UserID,
			DisplayName: e.DisplayName,
		}); err != nil {
			return err
		}
		return c.store.UpdateAuthorRole(ctx, e.UserID, e.Role)
	case *event.ProfileUpdatedEvent:
		return c.store.UpsertAuthor(ctx, &model.Author{
			ID:          e.UserID,
			DisplayName: e.DisplayName,
			AvatarURL:   e.AvatarURL,
		})
	case *event.RoleChangedEvent:
		return c.store.UpdateAuthorRole(ctx, e.UserID, e.Role)
	default:
		// Not every site event concerns the blog.
		return nil
	}
}
