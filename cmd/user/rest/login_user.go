package rest

import (
	"encoding/json"
	"net/http"

	"github.com/roamvista/roamvista/cmd/user/controller"
	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
)

// LoginUser is responsible for password sign-in requests.
type LoginUser struct{ API }

func (ep LoginUser) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
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

	user, err := ep.ctrl.LoginUser(r.Context(), controller.LoginUserInput{
		Email:    b.Email,
		Password: b.Password,
	})
	if _, ok := uerrors.AsAuthError(err); ok {
		ihttp.ErrUnauthorized(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	sess, err := ep.createSession(r.Context(), w, user)
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(sess); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}
