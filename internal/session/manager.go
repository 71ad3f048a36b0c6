package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

var (
	// ErrSessionIDNotUnique indicates that the session ID used to create a
	// session is already being used by another session.
	ErrSessionIDNotUnique = errors.New("session ID is not unique")

	// ErrSessionDNE indicates that an interaction was attempted against a
	// session that does not exist.
	ErrSessionDNE = errors.New("session does not exist")

	// ErrSessionStale indicates that the session user has not been reloaded
	// from the user store recently, and should be refreshed before being
	// trusted.
	ErrSessionStale = errors.New("session is stale")
)

// NewManager creates a Manager instance. Sessions that go untouched for the
// expiration duration cease to exist.
func NewManager(logger *zap.Logger, rdb *redis.Client, expiration time.Duration) *Manager {
	return &Manager{
		logger:     logger,
		redis:      rdb,
		expiration: expiration,
	}
}

// Manager manages Session interactions against Redis.
type Manager struct {
	logger     *zap.Logger
	redis      *redis.Client
	expiration time.Duration
}

// staleAfter is the duration after which a session's user details must be
// reloaded from the user store. Role changes propagate to live sessions
// within this window.
const staleAfter = 5 * time.Minute

// CreateSession creates a new Session. This session should not already exist.
// If it does, ErrSessionIDNotUnique is returned.
func (m Manager) CreateSession(ctx context.Context, sess Session) error {
	if err := m.setnx(ctx, keygen(sessionPrefix, sess.ID), sess); err != nil {
		return err
	}

	return m.setnx(ctx, keygen(lastActivityAtPrefix, sess.ID), sess.LastActivityAt)
}

// RetrieveSession gets the Session related to the sessionID passed. If the
// session user has not been refreshed within the staleness window,
// ErrSessionStale is returned alongside the session.
func (m Manager) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	var sess Session
	if err := m.get(ctx, keygen(sessionPrefix, sessionID), &sess); err != nil {
		return nil, err
	}

	res, err := m.redis.Get(ctx, keygen(invalidateUserSessionsPrefix, sess.User.ID.String())).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if err == nil {
		var invalidAt time.Time
		if err := decode([]byte(res), &invalidAt); err != nil {
			return nil, err
		}
		if sess.CreatedAt.Before(invalidAt) {
			if err := m.DeleteSession(ctx, sess); err != nil {
				return nil, err
			}
			return nil, ErrSessionDNE
		}
	}

	var lastActivityAt time.Time
	if err := m.get(ctx, keygen(lastActivityAtPrefix, sessionID), &lastActivityAt); err != nil {
		return nil, err
	}
	sess.LastActivityAt = lastActivityAt

	if sess.Stale() {
		return &sess, ErrSessionStale
	}

	return &sess, nil
}

// TouchSession updates the LastActivityAt field of the session identified by
// sessionID and extends its expiration. The session must already exist.
func (m Manager) TouchSession(ctx context.Context, sessionID string) error {
	if err := m.setxx(ctx, keygen(lastActivityAtPrefix, sessionID), time.Now()); err != nil {
		return err
	}

	set, err := m.redis.Expire(ctx, keygen(sessionPrefix, sessionID), m.expiration).Result()
	if err != nil {
		return err
	}
	if !set {
		return ErrSessionDNE
	}

	return nil
}

// UpdateSession applies updateFn to the session identified by sessionID and
// persists the result. The updated session is returned.
func (m Manager) UpdateSession(
	ctx context.Context,
	sessionID string,
	updateFn func(*Session),
) (*Session, error) {
	var sess Session
	if err := m.get(ctx, keygen(sessionPrefix, sessionID), &sess); err != nil {
		return nil, err
	}

	updateFn(&sess)

	if err := m.setxx(ctx, keygen(sessionPrefix, sessionID), sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// DeleteSession deletes the specified Session.
func (m Manager) DeleteSession(ctx context.Context, sess Session) error {
	if _, err := m.redis.Del(ctx, keygen(sessionPrefix, sess.ID)).Result(); err != nil {
		return err
	}

	if _, err := m.redis.Del(ctx, keygen(lastActivityAtPrefix, sess.ID)).Result(); err != nil {
		return err
	}

	return nil
}

// InvalidateUserSessionsBefore marks all of the user's sessions created
// before dt as invalid. Invalidated sessions are deleted on their next
// retrieval.
func (m Manager) InvalidateUserSessionsBefore(
	ctx context.Context,
	userID fmt.Stringer,
	dt time.Time,
) error {
	b, err := encode(dt)
	if err != nil {
		return err
	}

	if _, err := m.redis.Set(
		ctx,
		keygen(invalidateUserSessionsPrefix, userID.String()),
		b,
		0,
	).Result(); err != nil {
		return err
	}

	return nil
}

func (m Manager) setxx(ctx context.Context, key string, val interface{}) error {
	b, err := encode(val)
	if err != nil {
		return err
	}

	set, err := m.redis.SetXX(ctx, key, b, m.expiration).Result()
	if err != nil {
		return err
	}
	if !set {
		return ErrSessionDNE
	}

	return nil
}

func (m Manager) setnx(ctx context.Context, key string, val interface{}) error {
	b, err := encode(val)
	if err != nil {
		return err
	}

	set, err := m.redis.SetNX(ctx, key, b, m.expiration).Result()
	if err != nil {
		return err
	}
	if !set {
		return ErrSessionIDNotUnique
	}
	return nil
}

func (m Manager) get(ctx context.Context, key string, dst interface{}) error {
	res, err := m.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrSessionDNE
	}
	if err != nil {
		return err
	}

	return decode([]byte(res), dst)
}

// --- helpers ---

const (
	sessionPrefix                = "roamvista-session-"
	lastActivityAtPrefix         = "last-activity-at-"
	invalidateUserSessionsPrefix = "invalidate-user-sessions-"
)

func keygen(prefix, id string) string {
	return fmt.Sprintf("%s%s", prefix, id)
}

func encode(obj interface{}) ([]byte, error) {
	return msgpack.Marshal(obj)
}

func decode(b []byte, obj interface{}) error {
	return msgpack.Unmarshal(b, obj)
}
