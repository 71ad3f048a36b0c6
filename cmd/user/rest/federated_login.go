package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/roamvista/roamvista/cmd/user/controller"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/rand"
)

const (
	oidcStateKey    = "_rv-oidc-state"
	oidcStateLength = 32
	oidcStateMaxAge = 10 * time.Minute
)

var errStateMismatch = errors.New("oidc state mismatch")

// FederatedLogin is responsible for opening the federated sign-in flow. The
// client is redirected to the identity provider.
type FederatedLogin struct{ API }

func (ep FederatedLogin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := rand.GenerateString(oidcStateLength)
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oidcStateKey,
		Value:    state,
		Domain:   ep.cookieOptions.Domain,
		Path:     "/",
		MaxAge:   int(oidcStateMaxAge.Seconds()),
		Secure:   ep.cookieOptions.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, ep.openID.AuthCodeURL(state), http.StatusFound)
}

// FederatedCallback is responsible for completing the federated sign-in
// flow. The provider redirects here with an authorization code. A user who
// abandoned the flow arrives without one and is sent back to the sign-in
// page.
type FederatedCallback struct{ API }

func (ep FederatedCallback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=canceled", http.StatusFound)
		return
	}

	stateCookie, err := r.Cookie(oidcStateKey)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		ihttp.ErrBadRequest(ep.logger, w, errStateMismatch)
		return
	}

	identity, err := ep.openID.Exchange(r.Context(), code)
	if err != nil {
		ihttp.ErrUnauthorized(w)
		return
	}

	user, err := ep.ctrl.FederatedUser(r.Context(), controller.FederatedUserInput{
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		AvatarURL:   identity.AvatarURL,
	})
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if _, err := ep.createSession(r.Context(), w, user); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
