package rest

import (
	"errors"
	"net/http"
	"time"

	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const sessionPollInterval = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// sessionEvent is a single message on the session stream. Authenticated
// carries whether the session is still live; User is unset once it is not.
type sessionEvent struct {
	Authenticated bool          `json:"authenticated"`
	User          *session.User `json:"user,omitempty"`
}

// SessionStream is responsible for pushing session changes to the client
// over a websocket. Clients receive the current state on connect, an update
// whenever the session user changes, and a final anonymous event when the
// session ends.
type SessionStream struct{ API }

func (ep SessionStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ep.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	last := sess.User
	if err := conn.WriteJSON(sessionEvent{Authenticated: true, User: &last}); err != nil {
		return
	}

	ticker := time.NewTicker(sessionPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		current, err := ep.sessionManager.RetrieveSession(r.Context(), sess.ID)
		if errors.Is(err, session.ErrSessionDNE) {
			// Signed out elsewhere or invalidated. Tell the client, then
			// close.
			_ = conn.WriteJSON(sessionEvent{Authenticated: false})
			return
		}
		if err != nil && !errors.Is(err, session.ErrSessionStale) {
			ep.logger.Error("session stream retrieve", zap.Error(err))
			return
		}

		if current.AbsoluteExpiration.Before(time.Now()) {
			_ = conn.WriteJSON(sessionEvent{Authenticated: false})
			return
		}

		if current.User.Equal(last) {
			continue
		}

		last = current.User
		if err := conn.WriteJSON(sessionEvent{Authenticated: true, User: &last}); err != nil {
			return
		}
	}
}
