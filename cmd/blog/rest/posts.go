package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	berrors "github.com/roamvista/roamvista/cmd/blog/errors"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Posts is responsible for the public published-post listing.
type Posts struct{ API }

func (ep Posts) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			ihttp.ErrBadRequest(ep.logger, w, errInvalidPage)
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ihttp.ErrBadRequest(ep.logger, w, errInvalidPage)
			return
		}
		offset = parsed
	}

	posts, err := ep.ctrl.Posts(r.Context(), limit, offset)
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(posts); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

var errInvalidPage = errors.New("invalid page parameters")

// Post is responsible for single-post reads.
type Post struct{ API }

func (ep Post) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var actor *session.User
	if sess, ok := session.FromContext(r.Context()); ok {
		actor = &sess.User
	}

	post, err := ep.ctrl.Post(r.Context(), actor, chi.URLParam(r, "slug"))
	if errors.Is(err, berrors.ErrPostDNE) {
		ihttp.ErrNotFound(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}

// MyPosts is responsible for the acting author's post listing, drafts
// included.
type MyPosts struct{ API }

func (ep MyPosts) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	posts, err := ep.ctrl.PostsByAuthor(r.Context(), sess.User.ID)
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(posts); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}
