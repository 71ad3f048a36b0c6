package event

import (
	"encoding/json"
	"testing"

	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	postID := uuid.New()

	tests := map[string]struct {
		event interface{}
	}{
		"user signed up": {
			event: NewUserSignedUpEvent(userID, "jane@roamvista.com", "Jane", session.RoleRegular),
		},
		"role changed": {
			event: NewRoleChangedEvent(userID, session.RoleEditor),
		},
		"profile updated": {
			event: NewProfileUpdatedEvent(userID, "Jane", "https://cdn.roamvista.com/avatars/jane.png"),
		},
		"post published": {
			event: NewPostPublishedEvent(postID, userID, "Three days in Lisbon"),
		},
		"early access joined": {
			event: NewEarlyAccessJoinedEvent(uuid.New(), "new@roamvista.com"),
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(test.event)
			require.Nil(t, err)

			parsed, err := Parse(b)
			require.Nil(t, err)

			b2, err := json.Marshal(parsed)
			require.Nil(t, err)
			require.JSONEq(t, string(b), string(b2))
		})
	}
}

func TestParseUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"kind": "not_a_kind"}`))
	require.NotNil(t, err)
}
