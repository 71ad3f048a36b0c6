package session

import (
	"github.com/google/uuid"
)

// User is a session user. It is expected that this type is used across
// Roamvista services to represent users via stateful sessions.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Role        Role      `json:"role"`
}

func (u User) Equal(u2 User) bool {
	equal := true
	equal = equal && (u.ID == u2.ID)
	equal = equal && (u.Email == u2.Email)
	equal = equal && (u.DisplayName == u2.DisplayName)
	equal = equal && (u.AvatarURL == u2.AvatarURL)
	equal = equal && (u.Role == u2.Role)

	return equal
}

// Role is a user's authorization role. It is the single authority for gating
// moderation and administration surfaces.
type Role string

const (
	// RoleRegular is the default role assigned to every new user.
	RoleRegular Role = "regular"

	// RoleEditor may access moderation views but may not delete content or
	// manage other users' roles.
	RoleEditor Role = "editor"

	// RoleAdmin may access moderation views, delete content, and manage other
	// users' roles.
	RoleAdmin Role = "administrator"
)

// Valid reports whether the role belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleRegular, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// Moderator reports whether the role grants access to moderation views.
func (r Role) Moderator() bool {
	return r == RoleEditor || r == RoleAdmin
}
