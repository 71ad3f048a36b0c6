package rest

import (
	"encoding/json"
	"net/http"

	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// VerifyEmail is responsible for email verification requests.
type VerifyEmail struct{ API }

func (ep VerifyEmail) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Hash string `json:"hash" validate:"required"`
	}

	var b body
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if err := ep.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	_, err := ep.ctrl.VerifyEmail(r.Context(), b.Hash)
	if _, ok := uerrors.AsHashError(err); ok {
		ihttp.ErrNotFound(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResendVerification is responsible for verification email resend requests.
type ResendVerification struct{ API }

func (ep ResendVerification) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	if err := ep.ctrl.ResendVerificationEmail(r.Context(), sess.User.ID); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
