package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/roamvista/roamvista/internal/session"

	"go.uber.org/zap"
)

// ISessionManager encompasses all manners by which the middleware interacts
// with sessions.
type ISessionManager interface {
	RetrieveSession(context.Context, string) (*session.Session, error)
	TouchSession(context.Context, string) error
	DeleteSession(context.Context, session.Session) error
}

// NewSessionMiddleware creates a SessionMiddleware instance.
func NewSessionMiddleware(logger *zap.Logger, manager ISessionManager) *SessionMiddleware {
	return &SessionMiddleware{
		logger:  logger,
		manager: manager,
	}
}

// SessionMiddleware provides session-related middleware. The typical chain is
// InjectSessionIntoCtx -> Touch -> IsAuthenticated/HasRole.
type SessionMiddleware struct {
	logger  *zap.Logger
	manager ISessionManager
}

// InjectSessionIntoCtx retrieves the request's session, if there is one, and
// stores it on the request context. Requests without a session pass through
// untouched; gating is left to IsAuthenticated, IsModerator and HasRole.
func (m SessionMiddleware) InjectSessionIntoCtx() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sessionID := SessionFromRequest(r)
				if sessionID == "" {
					next.ServeHTTP(w, r)
					return
				}

				sess, err := m.manager.RetrieveSession(r.Context(), sessionID)
				if errors.Is(err, session.ErrSessionDNE) {
					next.ServeHTTP(w, r)
					return
				}
				// A stale session remains usable; the session endpoint is
				// responsible for refreshing it.
				if err != nil && !errors.Is(err, session.ErrSessionStale) {
					ErrInternal(m.logger, w, err)
					return
				}

				if sess.AbsoluteExpiration.Before(time.Now()) {
					if err := m.manager.DeleteSession(r.Context(), *sess); err != nil {
						m.logger.Error("deleting expired session", zap.Error(err))
					}
					next.ServeHTTP(w, r)
					return
				}

				ctx := session.WithSession(r.Context(), sess)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// Touch extends the context session's expiration. Requests without a context
// session pass through untouched.
func (m SessionMiddleware) Touch() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sess, ok := session.FromContext(r.Context())
				if !ok {
					next.ServeHTTP(w, r)
					return
				}

				err := m.manager.TouchSession(r.Context(), sess.ID)
				if err != nil && !errors.Is(err, session.ErrSessionDNE) {
					ErrInternal(m.logger, w, err)
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}

// IsAuthenticated rejects requests that do not carry a context session.
func (m SessionMiddleware) IsAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if _, ok := session.FromContext(r.Context()); !ok {
					ErrUnauthorized(w)
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}

// IsModerator rejects requests whose session role does not grant access to
// moderation views.
func (m SessionMiddleware) IsModerator() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sess, ok := session.FromContext(r.Context())
				if !ok {
					ErrUnauthorized(w)
					return
				}
				if !sess.User.Role.Moderator() {
					ErrForbidden(w)
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}

// HasRole rejects requests whose session role is not the passed role.
func (m SessionMiddleware) HasRole(role session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sess, ok := session.FromContext(r.Context())
				if !ok {
					ErrUnauthorized(w)
					return
				}
				if sess.User.Role != role {
					ErrForbidden(w)
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}
