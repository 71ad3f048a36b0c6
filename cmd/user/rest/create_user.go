package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roamvista/roamvista/cmd/user/controller"
	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
)

// CreateUser is responsible for user sign-up requests.
type CreateUser struct{ API }

func (ep CreateUser) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,password"`
		DisplayName string `json:"displayName" validate:"required,displayname"`
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

	user, err := ep.ctrl.CreateUser(r.Context(), controller.CreateUserInput{
		Email:       b.Email,
		Password:    b.Password,
		DisplayName: b.DisplayName,
	})
	if errors.Is(err, uerrors.ErrEmailAlreadyInUse) {
		ihttp.ErrConflict(w)
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
