package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewProviderMock creates a new ProviderMock instance.
func NewProviderMock(options ...ProviderMockOption) *ProviderMock {
	mock := &ProviderMock{
		mutex:       new(sync.Mutex),
		subscribers: make(map[int]func(*Identity)),
	}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// ProviderMockOption is a function type that may configure a ProviderMock
// instance.
type ProviderMockOption func(*ProviderMock)

// WithSignInWithPassword returns a ProviderMockOption that configures a
// ProviderMock to call fn when SignInWithPassword is called.
func WithSignInWithPassword(fn func(ctx context.Context, email, password string) error) ProviderMockOption {
	return func(mock *ProviderMock) { mock.signInWithPassword = fn }
}

// WithCreateIdentity returns a ProviderMockOption that configures a
// ProviderMock to call fn when CreateIdentity is called.
func WithCreateIdentity(fn func(ctx context.Context, email, password, displayName string) (*Identity, error)) ProviderMockOption {
	return func(mock *ProviderMock) { mock.createIdentity = fn }
}

// WithBeginFederatedFlow returns a ProviderMockOption that configures a
// ProviderMock to call fn when BeginFederatedFlow is called.
func WithBeginFederatedFlow(fn func(ctx context.Context) (*Identity, error)) ProviderMockOption {
	return func(mock *ProviderMock) { mock.beginFederatedFlow = fn }
}

// WithSignOut returns a ProviderMockOption that configures a ProviderMock to
// call fn when SignOut is called.
func WithSignOut(fn func(ctx context.Context) error) ProviderMockOption {
	return func(mock *ProviderMock) { mock.signOut = fn }
}

// WithUpdateIdentityProfile returns a ProviderMockOption that configures a
// ProviderMock to call fn when UpdateIdentityProfile is called.
func WithUpdateIdentityProfile(fn func(ctx context.Context, id uuid.UUID, displayName, avatarURL string) error) ProviderMockOption {
	return func(mock *ProviderMock) { mock.updateIdentityProfile = fn }
}

// ProviderMock provides an implementation for mock IdentityProvider
// interactions and a hand-driven session stream. This is typically used for
// unit-testing.
type ProviderMock struct {
	signInWithPassword    func(ctx context.Context, email, password string) error
	createIdentity        func(ctx context.Context, email, password, displayName string) (*Identity, error)
	beginFederatedFlow    func(ctx context.Context) (*Identity, error)
	signOut               func(ctx context.Context) error
	updateIdentityProfile func(ctx context.Context, id uuid.UUID, displayName, avatarURL string) error

	mutex       *sync.Mutex
	subscribers map[int]func(*Identity)
	nextSub     int
}

// Subscribe registers fn with the mock's session stream. Use Emit to drive
// events.
func (mock *ProviderMock) Subscribe(fn func(*Identity)) func() {
	mock.mutex.Lock()
	defer mock.mutex.Unlock()

	id := mock.nextSub
	mock.nextSub++
	mock.subscribers[id] = fn

	return func() {
		mock.mutex.Lock()
		defer mock.mutex.Unlock()
		delete(mock.subscribers, id)
	}
}

// Emit synchronously delivers the passed identity to every live subscriber.
func (mock *ProviderMock) Emit(identity *Identity) {
	mock.mutex.Lock()
	fns := make([]func(*Identity), 0, len(mock.subscribers))
	for _, fn := range mock.subscribers {
		fns = append(fns, fn)
	}
	mock.mutex.Unlock()

	for _, fn := range fns {
		fn(identity)
	}
}

// SubscriberCount reports the number of live subscriptions. Typically used to
// assert the guaranteed-release discipline.
func (mock *ProviderMock) SubscriberCount() int {
	mock.mutex.Lock()
	defer mock.mutex.Unlock()
	return len(mock.subscribers)
}

// SignInWithPassword calls the function configured with
// WithSignInWithPassword.
func (mock *ProviderMock) SignInWithPassword(ctx context.Context, email, password string) error {
	if mock.signInWithPassword == nil {
		return errUnconfigured
	}
	return mock.signInWithPassword(ctx, email, password)
}

// CreateIdentity calls the function configured with WithCreateIdentity.
func (mock *ProviderMock) CreateIdentity(ctx context.Context, email, password, displayName string) (*Identity, error) {
	if mock.createIdentity == nil {
		return nil, errUnconfigured
	}
	return mock.createIdentity(ctx, email, password, displayName)
}

// BeginFederatedFlow calls the function configured with
// WithBeginFederatedFlow.
func (mock *ProviderMock) BeginFederatedFlow(ctx context.Context) (*Identity, error) {
	if mock.beginFederatedFlow == nil {
		return nil, errUnconfigured
	}
	return mock.beginFederatedFlow(ctx)
}

// SignOut calls the function configured with WithSignOut.
func (mock *ProviderMock) SignOut(ctx context.Context) error {
	if mock.signOut == nil {
		return errUnconfigured
	}
	return mock.signOut(ctx)
}

// UpdateIdentityProfile calls the function configured with
// WithUpdateIdentityProfile.
func (mock *ProviderMock) UpdateIdentityProfile(ctx context.Context, id uuid.UUID, displayName, avatarURL string) error {
	if mock.updateIdentityProfile == nil {
		return errUnconfigured
	}
	return mock.updateIdentityProfile(ctx, id, displayName, avatarURL)
}

// NewProfileStoreMemory creates an in-memory ProfileStore. This is typically
// used for unit-testing; the conditional create matches the semantics of the
// production store.
func NewProfileStoreMemory() *ProfileStoreMemory {
	return &ProfileStoreMemory{
		mutex:    new(sync.Mutex),
		profiles: make(map[uuid.UUID]Profile),
	}
}

// ProfileStoreMemory is a mutex-guarded, map-backed ProfileStore.
type ProfileStoreMemory struct {
	mutex    *sync.Mutex
	profiles map[uuid.UUID]Profile

	// Reads, CreateAttempts and Updates count store round trips, enabling
	// zero-round-trip assertions.
	Reads          int
	CreateAttempts int
	Updates        int
}

func (s *ProfileStoreMemory) Profile(_ context.Context, id uuid.UUID) (*Profile, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.Reads++

	profile, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileDNE
	}
	return &profile, nil
}

func (s *ProfileStoreMemory) CreateProfileIfAbsent(_ context.Context, profile *Profile) (*Profile, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.CreateAttempts++

	if stored, ok := s.profiles[profile.ID]; ok {
		return &stored, false, nil
	}

	s.profiles[profile.ID] = *profile
	stored := *profile
	return &stored, true, nil
}

func (s *ProfileStoreMemory) UpdateProfile(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.Updates++

	profile, ok := s.profiles[id]
	if !ok {
		return ErrProfileDNE
	}

	for key, value := range fields {
		switch key {
		case FieldDisplayName:
			profile.DisplayName = value.(string)
		case FieldAvatarURL:
			profile.AvatarURL = value.(string)
		case FieldEmail:
			profile.Email = value.(string)
		default:
			return fmt.Errorf("unrecognized profile field: %s", key)
		}
	}

	s.profiles[id] = profile
	return nil
}
