package rest

import (
	"encoding/json"
	"net/http"

	"github.com/roamvista/roamvista/cmd/marketing/controller"
	ihttp "github.com/roamvista/roamvista/internal/http"
)

// JoinEarlyAccess is responsible for early-access join requests.
type JoinEarlyAccess struct{ API }

func (ep JoinEarlyAccess) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Email  string `json:"email" validate:"required,email"`
		Name   string `json:"name" validate:"max=120"`
		Source string `json:"source" validate:"max=60"`
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

	err := ep.ctrl.JoinEarlyAccess(r.Context(), controller.JoinEarlyAccessInput{
		Email:  b.Email,
		Name:   b.Name,
		Source: b.Source,
	})
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	// The body stays empty so repeat joins are indistinguishable from first
	// joins.
	w.WriteHeader(http.StatusCreated)
}

// Signups is responsible for the admin early-access listing.
type Signups struct{ API }

func (ep Signups) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	signups, err := ep.ctrl.Signups(r.Context())
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(signups); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}
