package account

import (
	"context"

	"github.com/google/uuid"
)

// IdentityProvider encompasses all interactions with the external identity
// provider. Implementations must deliver a nil identity on the subscription
// when the principal signs out or the provider session lapses.
type IdentityProvider interface {
	// Subscribe registers fn to receive every session-stream event, starting
	// with the current one. The returned cancel function must release the
	// subscription; it must be safe to call more than once.
	Subscribe(fn func(*Identity)) (cancel func())

	SignInWithPassword(ctx context.Context, email, password string) error
	CreateIdentity(ctx context.Context, email, password, displayName string) (*Identity, error)
	BeginFederatedFlow(ctx context.Context) (*Identity, error)
	SignOut(ctx context.Context) error
	UpdateIdentityProfile(ctx context.Context, id uuid.UUID, displayName, avatarURL string) error
}

// ProfileStore encompasses all interactions with the profile ("users")
// collection, keyed by identity ID.
type ProfileStore interface {
	// Profile retrieves the profile for the passed identity ID. ErrProfileDNE
	// is returned when no record exists.
	Profile(ctx context.Context, id uuid.UUID) (*Profile, error)

	// CreateProfileIfAbsent writes the passed profile only if no record exists
	// for its ID. The stored profile is returned in either case; created
	// indicates whether a write occurred. The write must be conditional so
	// concurrent first sign-ins cannot produce conflicting records.
	CreateProfileIfAbsent(ctx context.Context, profile *Profile) (stored *Profile, created bool, err error)

	// UpdateProfile merges the passed fields into the profile record. Keys
	// must come from the Field constants; implementations reject unknown
	// keys.
	UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

// Field keys recognized by ProfileStore.UpdateProfile.
const (
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"
	FieldEmail       = "email"
)

// BlobStore stores user-uploaded media. Only avatar updates pass through it.
type BlobStore interface {
	Put(ctx context.Context, key string, b []byte, contentType string) (string, error)
}
