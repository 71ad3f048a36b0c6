package rest

import (
	"encoding/json"
	"net/http"

	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
)

// ResetPassword is responsible for password reset completion requests.
type ResetPassword struct{ API }

func (ep ResetPassword) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Hash     string `json:"hash" validate:"required"`
		Password string `json:"password" validate:"required,password"`
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

	err := ep.ctrl.ResetPassword(r.Context(), b.Hash, b.Password)
	if _, ok := uerrors.AsHashError(err); ok {
		ihttp.ErrForbidden(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	// Every session the user held is now invalid.
	ihttp.ClearSessionCookie(w, ep.cookieOptions)
	w.WriteHeader(http.StatusNoContent)
}
