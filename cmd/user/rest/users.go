package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

// Users is responsible for administrator user-list requests.
type Users struct{ API }

func (ep Users) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := ep.ctrl.Users(r.Context())
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(users); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// UpdateUserRole is responsible for administrator role changes.
type UpdateUserRole struct{ API }

func (ep UpdateUserRole) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		UserID uuid.UUID    `json:"userId" validate:"required"`
		Role   session.Role `json:"role" validate:"required"`
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
	if !b.Role.Valid() {
		ihttp.ErrBadRequest(ep.logger, w, errRoleInvalid)
		return
	}

	user, err := ep.ctrl.UpdateUserRole(r.Context(), b.UserID, b.Role)
	if errors.Is(err, uerrors.ErrUserDNE) {
		ihttp.ErrNotFound(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(user); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

var errRoleInvalid = errors.New("role invalid")
