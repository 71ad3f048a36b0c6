package rest

import (
	"net/http"

	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// LogoutUser is responsible for single-session sign-out requests.
type LogoutUser struct{ API }

func (ep LogoutUser) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	if err := ep.ctrl.LogoutUserSession(r.Context(), *sess); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ihttp.ClearSessionCookie(w, ep.cookieOptions)
	w.WriteHeader(http.StatusNoContent)
}

// LogoutAllUserSessions is responsible for all-session sign-out requests.
type LogoutAllUserSessions struct{ API }

func (ep LogoutAllUserSessions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	if err := ep.ctrl.LogoutAllUserSessions(r.Context(), *sess); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ihttp.ClearSessionCookie(w, ep.cookieOptions)
	w.WriteHeader(http.StatusNoContent)
}
