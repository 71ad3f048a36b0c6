package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/roamvista/roamvista/cmd/blog/db"
	"github.com/roamvista/roamvista/cmd/blog/model"
	"github.com/roamvista/roamvista/internal/event"
	"github.com/roamvista/roamvista/internal/session"
	"github.com/roamvista/roamvista/internal/stream"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLaunch(t *testing.T) {
	t.Parallel()

	signedUp := uuid.New()
	updated := uuid.New()
	posted := uuid.New()

	messages := make(chan *stream.Message, 4)
	messages <- message(t, "1-0", event.NewUserSignedUpEvent(signedUp, "jane@roamvista.com", "Jane", session.RoleRegular))
	messages <- message(t, "2-0", event.NewProfileUpdatedEvent(updated, "Ed", "https://media.roamvista.com/avatars/ed"))
	messages <- message(t, "3-0", event.NewPostPublishedEvent(posted, uuid.New(), "Ten Days in Patagonia"))
	messages <- message(t, "4-0", event.NewRoleChangedEvent(signedUp, session.RoleEditor))

	acked := make(chan string, 4)

	events := stream.NewClientMock(
		stream.WithClaim(func(context.Context, time.Duration) (*stream.Message, error) {
			return nil, stream.ErrNoPending
		}),
		stream.WithRead(func(ctx context.Context) (*stream.Message, error) {
			select {
			case m := <-messages:
				return m, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}),
		stream.WithAck(func(_ context.Context, m *stream.Message) error {
			acked <- m.ID
			return nil
		}),
	)

	var authors []*model.Author
	roles := make(map[uuid.UUID]session.Role)
	store := db.NewStoreMock(
		db.WithUpsertAuthor(func(_ context.Context, author *model.Author) error {
			authors = append(authors, author)
			return nil
		}),
		db.WithUpdateAuthorRole(func(_ context.Context, id uuid.UUID, role session.Role) error {
			roles[id] = role
			return nil
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(zap.NewNop(), store, events).Launch(ctx)
	}()

	// All four messages are acknowledged, the post event included.
	for _, exp := range []string{"1-0", "2-0", "3-0", "4-0"} {
		select {
		case id := <-acked:
			require.Equal(t, exp, id)
		case <-time.After(time.Second):
			t.Fatal("message not acknowledged")
		}
	}

	cancel()
	require.NotNil(t, <-done)

	// Only the user events touch the author records.
	require.Len(t, authors, 2)
	require.Equal(t, signedUp, authors[0].ID)
	require.Equal(t, "Jane", authors[0].DisplayName)
	require.Equal(t, updated, authors[1].ID)
	require.Equal(t, "Ed", authors[1].DisplayName)
	require.Equal(t, "https://media.roamvista.com/avatars/ed", authors[1].AvatarURL)

	// The signup seeds a regular role; the role change overwrites it.
	require.Equal(t, session.RoleEditor, roles[signedUp])
}

func message(t *testing.T, id string, e interface{}) *stream.Message {
	t.Helper()

	b, err := json.Marshal(e)
	require.Nil(t, err)

	return &stream.Message{ID: id, Payload: b}
}
