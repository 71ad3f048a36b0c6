// Package event provides types relevant to signal service changes outward to
// event consumers.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

var errKindInvalid = errors.New("kind is not string type")

// Parse accepts a slice of bytes (b) and decodes these bytes into the
// appropriate event type.
func Parse(b []byte) (interface{}, error) {
	m := make(map[string]interface{})
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal event; error: %w", err)
	}

	str, ok := m["kind"].(string)
	if !ok {
		return nil, errKindInvalid
	}

	var event interface{}
	switch Kind(str) {
	case UserSignedUp:
		event = &UserSignedUpEvent{}
	case RoleChanged:
		event = &RoleChangedEvent{}
	case ProfileUpdated:
		event = &ProfileUpdatedEvent{}
	case PostPublished:
		event = &PostPublishedEvent{}
	case EarlyAccessJoined:
		event = &EarlyAccessJoinedEvent{}
	default:
		return nil, fmt.Errorf("unexpected event; kind: %s, error: %w", str, errKindInvalid)
	}

	if err := json.Unmarshal(b, event); err != nil {
		return nil, fmt.Errorf("unmarshal event; type: %T, error: %w", event, err)
	}

	return event, nil
}

type Kind string

const (
	UserSignedUp      Kind = "user_signed_up"
	RoleChanged       Kind = "role_changed"
	ProfileUpdated    Kind = "profile_updated"
	PostPublished     Kind = "post_published"
	EarlyAccessJoined Kind = "early_access_joined"
)

// New creates a new Event instance.
func New(kind Kind) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// Event is a generic Roamvista system event.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSignedUpEvent is fired when a new user account has been created.
type UserSignedUpEvent struct {
	Event
	UserID      uuid.UUID    `json:"userId"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	Role        session.Role `json:"role"`
}

// NewUserSignedUpEvent creates a new UserSignedUpEvent instance.
func NewUserSignedUpEvent(userID uuid.UUID, email, displayName string, role session.Role) UserSignedUpEvent {
	return UserSignedUpEvent{
		Event:       New(UserSignedUp),
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
	}
}

// RoleChangedEvent is fired when an administrator changes a user's role.
type RoleChangedEvent struct {
	Event
	UserID uuid.UUID    `json:"userId"`
	Role   session.Role `json:"role"`
}

// NewRoleChangedEvent creates a new RoleChangedEvent instance.
func NewRoleChangedEvent(userID uuid.UUID, role session.Role) RoleChangedEvent {
	return RoleChangedEvent{
		Event:  New(RoleChanged),
		UserID: userID,
		Role:   role,
	}
}

// ProfileUpdatedEvent is fired when a user updates their display name or
// avatar.
type ProfileUpdatedEvent struct {
	Event
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
}

// NewProfileUpdatedEvent creates a new ProfileUpdatedEvent instance.
func NewProfileUpdatedEvent(userID uuid.UUID, displayName, avatarURL string) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		Event:       New(ProfileUpdated),
		UserID:      userID,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
	}
}

// PostPublishedEvent is fired when a blog post becomes publicly visible.
type PostPublishedEvent struct {
	Event
	PostID   uuid.UUID `json:"postId"`
	AuthorID uuid.UUID `json:"authorId"`
	Title    string    `json:"title"`
}

// NewPostPublishedEvent creates a new PostPublishedEvent instance.
func NewPostPublishedEvent(postID, authorID uuid.UUID, title string) PostPublishedEvent {
	return PostPublishedEvent{
		Event:    New(PostPublished),
		PostID:   postID,
		AuthorID: authorID,
		Title:    title,
	}
}

// EarlyAccessJoinedEvent is fired when a visitor joins the early-access list.
type EarlyAccessJoinedEvent struct {
	Event
	SignupID uuid.UUID `json:"signupId"`
	Email    string    `json:"email"`
}

// NewEarlyAccessJoinedEvent creates a new EarlyAccessJoinedEvent instance.
func NewEarlyAccessJoinedEvent(signupID uuid.UUID, email string) EarlyAccessJoinedEvent {
	return EarlyAccessJoinedEvent{
		Event:    New(EarlyAccessJoined),
		SignupID: signupID,
		Email:    email,
	}
}
