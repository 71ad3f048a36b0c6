package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// Session is responsible for current-session reads. Clients resolve their
// loading state from this endpoint on page load. Stale sessions are reloaded
// from the user store before being returned, so role changes land without a
// re-login.
type Session struct{ API }

func (ep Session) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !sess.Stale() {
		if err := json.NewEncoder(w).Encode(sess); err != nil {
			ihttp.ErrInternal(ep.logger, w, err)
		}
		return
	}

	user, err := ep.ctrl.User(r.Context(), sess.User.ID)
	if errors.Is(err, uerrors.ErrUserDNE) {
		// The user is gone; the session follows.
		if err := ep.sessionManager.DeleteSession(r.Context(), *sess); err != nil {
			ihttp.ErrInternal(ep.logger, w, err)
			return
		}
		ihttp.ClearSessionCookie(w, ep.cookieOptions)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	refreshed, err := ep.sessionManager.UpdateSession(
		r.Context(),
		sess.ID,
		func(sess *session.Session) {
			sess.User = user.ToSessionUser()
			sess.RefreshedAt = time.Now()
		},
	)
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(refreshed); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}
