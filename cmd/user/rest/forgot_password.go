package rest

import (
	"encoding/json"
	"net/http"

	ihttp "github.com/roamvista/roamvista/internal/http"
)

// ForgotPassword is responsible for password reset requests.
type ForgotPassword struct{ API }

func (ep ForgotPassword) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Email string `json:"email" validate:"required,email"`
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

	if err := ep.ctrl.RequestPasswordReset(r.Context(), b.Email); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
