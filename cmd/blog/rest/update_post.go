package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roamvista/roamvista/cmd/blog/controller"
	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// UpdatePost is responsible for post edit requests.
type UpdatePost struct{ API }

func (ep UpdatePost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		Title   string `json:"title" validate:"omitempty,max=160"`
		Body    string `json:"body"`
		Excerpt string `json:"excerpt" validate:"max=400"`
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

	post, err := ep.ctrl.UpdatePost(r.Context(), controller.UpdatePostInput{
		Actor:   sess.User,
		PostID:  postID,
		Title:   b.Title,
		Body:    b.Body,
		Excerpt: b.Excerpt,
	})
	if done := ep.writePostError(w, err); done {
		return
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// PublishPost is responsible for draft publication requests.
type PublishPost struct{ API }

func (ep PublishPost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	post, err := ep.ctrl.PublishPost(r.Context(), sess.User, postID)
	if done := ep.writePostError(w, err); done {
		return
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// UnpublishPost is responsible for moderator unpublish requests.
type UnpublishPost struct{ API }

func (ep UnpublishPost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	post, err := ep.ctrl.UnpublishPost(r.Context(), sess.User, postID)
	if done := ep.writePostError(w, err); done {
		return
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// RestorePost is responsible for moderator restore requests.
type RestorePost struct{ API }

func (ep RestorePost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	post, err := ep.ctrl.RestorePost(r.Context(), sess.User, postID)
	if done := ep.writePostError(w, err); done {
		return
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// RemovePost is responsible for administrator take-down requests.
type RemovePost struct{ API }

func (ep RemovePost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	err = ep.ctrl.RemovePost(r.Context(), sess.User, postID)
	if done := ep.writePostError(w, err); done {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writePostError translates controller post errors into HTTP responses. It
// reports whether a response was written.
func (api API) writePostError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, berrors.ErrPostDNE):
		ihttp.ErrNotFound(w)
	default:
		if _, ok := berrors.AsPermissionError(err); ok {
			ihttp.ErrForbidden(w)
			return true
		}
		ihttp.ErrInternal(api.logger, w, err)
	}
	return true
}
