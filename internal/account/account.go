// Package account maintains the current authenticated identity and its
// authorization role as a single reactive value, derived from an identity
// provider's session stream and the user profile store. It is the in-process
// authority consulted for gating moderation and administration surfaces.
package account

import (
	"time"

	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

// Identity is an authenticated principal issued by the identity provider.
// The application never mutates identities directly except through
// provider-exposed update operations.
type Identity struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
}

// Profile is the application's authorization record for an Identity, keyed
// by identity ID. It is created lazily, with role "regular", the first time
// an identity is observed with no existing record.
type Profile struct {
	ID          uuid.UUID    `json:"id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	AvatarURL   string       `json:"avatarUrl,omitempty"`
	Role        session.Role `json:"role"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Session is the in-memory projection of the current identity and role. It
// is never persisted; it is reconstructed on every process start by
// re-subscribing to the identity provider's session stream.
//
// A session is always in exactly one of three states: loading (initial),
// authenticated (identity and role both populated), or anonymous. The role
// is never populated while the identity is absent.
type Session struct {
	Identity *Identity    `json:"identity,omitempty"`
	Role     session.Role `json:"role,omitempty"`
	Loading  bool         `json:"loading"`
}

// Authenticated reports whether the session carries an identity.
func (s Session) Authenticated() bool {
	return s.Identity != nil
}

// Anonymous reports whether the session has resolved to no identity.
func (s Session) Anonymous() bool {
	return !s.Loading && s.Identity == nil
}
