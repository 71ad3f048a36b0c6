package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// Stories is responsible for the follow-up story listing of a post. Stories
// follow the owning post's visibility, so drafts expose their stories to the
// author and moderators only.
type Stories struct{ API }

func (ep Stories) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	postID, err := urlUUID(r, "id")
	if err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	var actor *session.User
	if sess, ok := session.FromContext(r.Context()); ok {
		actor = &sess.User
	}

	stories, err := ep.ctrl.Stories(r.Context(), actor, postID)
	if errors.Is(err, berrors.ErrPostDNE) {
		ihttp.ErrNotFound(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(stories); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// CreateStory is responsible for follow-up story creation requests.
type CreateStory struct{ API }

func (ep CreateStory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		Body string `json:"body" validate:"required,max=8000"`
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

	story, err := ep.ctrl.CreateStory(r.Context(), sess.User, postID, b.Body)
	if errors.Is(err, berrors.ErrPostDNE) {
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

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(story); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// RemoveStory is responsible for follow-up story removal requests.
type RemoveStory struct{ API }

func (ep RemoveStory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	storyID, err := urlUUID(r, "id")
	if err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	err = ep.ctrl.RemoveStory(r.Context(), sess.User, storyID)
	if errors.Is(err, berrors.ErrStoryDNE) {
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
