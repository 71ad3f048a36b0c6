package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// Comments is responsible for the public comment listing of a post.
type Comments struct{ API }

func (ep Comments) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	postID, err := urlUUID(r, "id")
	if err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	comments, err := ep.ctrl.Comments(r.Context(), postID)
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(comments); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// CreateComment is responsible for comment creation requests.
type CreateComment struct{ API }

func (ep CreateComment) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	postID, err := urlUUID(r, "id")
	if err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	type body struct {
		Body string `json:"body" validate:"required,max=4000"`
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

	comment, err := ep.ctrl.CreateComment(r.Context(), sess.User, postID, b.Body)
	if errors.Is(err, berrors.ErrPostDNE) {
		ihttp.ErrNotFound(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(comment); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// RemoveComment is responsible for comment removal requests.
type RemoveComment struct{ API }

func (ep RemoveComment) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	commentID, err := urlUUID(r, "id")
	if err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	err = ep.ctrl.RemoveComment(r.Context(), sess.User, commentID)
	if errors.Is(err, berrors.ErrCommentDNE) {
		ihttp.ErrNotFound(w)
		return
	}
	if _, ok := berrors.AsPermissionError(err); ok {
		ihttp.ErrForbidden(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
