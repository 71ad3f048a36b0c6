package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/roamvista/roamvista/internal/session"

	"go.uber.org/zap"
)

// ErrAlreadyStarted indicates Start was called on a Tracker that already
// holds a provider subscription.
var ErrAlreadyStarted = errors.New("tracker already started")

// NewTracker creates a Tracker. The session begins in the loading state and
// resolves once Start has been called and the provider delivers its first
// event.
func NewTracker(
	logger *zap.Logger,
	provider IdentityProvider,
	profiles ProfileStore,
	blobs BlobStore,
) *Tracker {
	return &Tracker{
		logger:      logger,
		provider:    provider,
		profiles:    profiles,
		blobs:       blobs,
		mutex:       new(sync.Mutex),
		sess:        Session{Loading: true},
		subscribers: make(map[int]chan Session),
	}
}

// Tracker owns the process's Session value. It holds exactly one
// subscription to the identity provider's session stream for its lifetime;
// the stream is the single source of truth, and every event from it
// supersedes any optimistic local update.
//
// Tracker instances are injectable; tests construct isolated instances with
// mock collaborators rather than sharing an ambient global.
type Tracker struct {
	logger   *zap.Logger
	provider IdentityProvider
	profiles ProfileStore
	blobs    BlobStore

	mutex       *sync.Mutex
	sess        Session
	inflight    bool
	started     bool
	cancel      func()
	done        chan struct{}
	subscribers map[int]chan Session
	nextSub     int
}

// Start subscribes to the identity provider's session stream. The
// subscription is released when ctx is cancelled or Stop is called,
// whichever comes first.
func (t *Tracker) Start(ctx context.Context) error {
	t.mutex.Lock()
	if t.started {
		t.mutex.Unlock()
		return ErrAlreadyStarted
	}
	t.started = true
	t.done = make(chan struct{})
	t.mutex.Unlock()

	cancel := t.provider.Subscribe(func(identity *Identity) {
		t.handleEvent(ctx, identity)
	})

	t.mutex.Lock()
	if t.done == nil {
		// Stopped while subscribing.
		t.mutex.Unlock()
		cancel()
		return nil
	}
	t.cancel = cancel
	done := t.done
	t.mutex.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			t.Stop()
		case <-done:
		}
	}()

	return nil
}

// Stop releases the provider subscription. Stop is safe to call more than
// once.
func (t *Tracker) Stop() {
	t.mutex.Lock()
	cancel := t.cancel
	t.cancel = nil
	done := t.done
	t.done = nil
	t.mutex.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		close(done)
	}
}

// Snapshot returns the current Session value.
func (t *Tracker) Snapshot() Session {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.sess
}

// Subscribe registers a subscriber channel that receives the session each
// time it changes. Slow subscribers observe the latest value rather than
// every intermediate one. The returned cancel function releases the
// subscription and must be called on every exit path of the consumer.
func (t *Tracker) Subscribe() (<-chan Session, func()) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	id := t.nextSub
	t.nextSub++

	ch := make(chan Session, 1)
	t.subscribers[id] = ch

	return ch, func() {
		t.mutex.Lock()
		defer t.mutex.Unlock()
		delete(t.subscribers, id)
	}
}

// SignIn delegates to the identity provider. On success the provider's
// session stream drives the state transition; this call mutates no state
// directly. ErrInvalidCredentials is returned when the provider rejects the
// pair.
func (t *Tracker) SignIn(ctx context.Context, email, password string) error {
	if err := t.begin(); err != nil {
		return err
	}
	defer t.end()

	return t.provider.SignInWithPassword(ctx, email, password)
}

// SignUp creates a new identity via the provider, then creates the identity's
// profile record with role "regular". ErrEmailAlreadyInUse and
// ErrWeakPassword are returned as surfaced by the provider.
func (t *Tracker) SignUp(ctx context.Context, email, password, displayName string) error {
	if err := t.begin(); err != nil {
		return err
	}
	defer t.end()

	identity, err := t.provider.CreateIdentity(ctx, email, password, displayName)
	if err != nil {
		return err
	}

	_, _, err = t.profiles.CreateProfileIfAbsent(ctx, &Profile{
		ID:          identity.ID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Role:        session.RoleRegular,
		CreatedAt:   time.Now(),
	})
	return err
}

// SignInWithProvider opens the provider-managed federated sign-in flow. On a
// first-time federated sign-in the identity's profile record is created with
// role "regular"; the conditional write leaves an existing record untouched.
// ErrFlowCanceled is returned when the user abandons the flow.
func (t *Tracker) SignInWithProvider(ctx context.Context) error {
	if err := t.begin(); err != nil {
		return err
	}
	defer t.end()

	identity, err := t.provider.BeginFederatedFlow(ctx)
	if err != nil {
		return err
	}

	_, _, err = t.profiles.CreateProfileIfAbsent(ctx, &Profile{
		ID:          identity.ID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		AvatarURL:   identity.AvatarURL,
		Role:        session.RoleRegular,
		CreatedAt:   time.Now(),
	})
	return err
}

// SignOut delegates to the provider and resolves the session to anonymous.
// Provider errors are logged, not surfaced; there is no recovery action
// available to the caller, and the session lands in the anonymous state
// regardless.
func (t *Tracker) SignOut(ctx context.Context) {
	if err := t.provider.SignOut(ctx); err != nil {
		t.logger.Error("provider sign-out", zap.Error(err))
	}

	t.setSession(Session{})
}

// UpdateProfileInput is the input for the Tracker.UpdateProfile method. A
// zero DisplayName leaves the display name unchanged; an empty Avatar skips
// the blob upload.
type UpdateProfileInput struct {
	DisplayName       string
	Avatar            []byte
	AvatarContentType string
}

// UpdateProfile writes the display name and avatar through the provider and
// merges them into the profile record, uploading the avatar blob first when
// one is passed. ErrNotAuthenticated is returned, before any round trip,
// when the session is anonymous. The local session is updated optimistically
// and superseded by the next provider stream event.
func (t *Tracker) UpdateProfile(ctx context.Context, input UpdateProfileInput) error {
	snap := t.Snapshot()
	if !snap.Authenticated() {
		return ErrNotAuthenticated
	}

	if err := t.begin(); err != nil {
		return err
	}
	defer t.end()

	identity := *snap.Identity

	avatarURL := identity.AvatarURL
	if len(input.Avatar) > 0 {
		url, err := t.blobs.Put(
			ctx,
			fmt.Sprintf("avatars/%s", identity.ID),
			input.Avatar,
			input.AvatarContentType,
		)
		if err != nil {
			return err
		}
		avatarURL = url
	}

	displayName := identity.DisplayName
	if input.DisplayName != "" {
		displayName = input.DisplayName
	}

	if err := t.provider.UpdateIdentityProfile(ctx, identity.ID, displayName, avatarURL); err != nil {
		return err
	}

	fields := map[string]interface{}{
		FieldDisplayName: displayName,
		FieldAvatarURL:   avatarURL,
	}
	if err := t.profiles.UpdateProfile(ctx, identity.ID, fields); err != nil {
		return err
	}

	identity.DisplayName = displayName
	identity.AvatarURL = avatarURL
	t.setSession(Session{Identity: &identity, Role: snap.Role})

	return nil
}

// handleEvent applies a provider session-stream event. A nil identity
// resolves the session to anonymous. A non-nil identity completes the
// authenticated transition only once its profile record is resolved; a
// missing record is created with role "regular" before the transition
// completes, so an authenticated session is never observed without a role.
func (t *Tracker) handleEvent(ctx context.Context, identity *Identity) {
	if identity == nil {
		t.setSession(Session{})
		return
	}

	profile, err := t.profiles.Profile(ctx, identity.ID)
	if errors.Is(err, ErrProfileDNE) {
		profile, _, err = t.profiles.CreateProfileIfAbsent(ctx, &Profile{
			ID:          identity.ID,
			Email:       identity.Email,
			DisplayName: identity.DisplayName,
			AvatarURL:   identity.AvatarURL,
			Role:        session.RoleRegular,
			CreatedAt:   time.Now(),
		})
	}
	if err != nil {
		// No automatic retries; the session stays in its previous state until
		// the next stream event.
		t.logger.Error("resolving profile", zap.Stringer("identity", identity.ID), zap.Error(err))
		return
	}

	t.setSession(Session{Identity: identity, Role: profile.Role})
}

func (t *Tracker) setSession(sess Session) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sess = sess

	for _, ch := range t.subscribers {
		select {
		case ch <- sess:
		default:
			// Replace the undelivered value so the subscriber sees the latest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- sess:
			default:
			}
		}
	}
}

func (t *Tracker) begin() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.inflight {
		return ErrOperationPending
	}
	t.inflight = true
	return nil
}

func (t *Tracker) end() {
	t.mutex.Lock()
	t.inflight = false
	t.mutex.Unlock()
}
