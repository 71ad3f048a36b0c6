package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roamvista/roamvista/cmd/blog/controller"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// maxCoverImageBytes bounds the decoded cover image payload.
const maxCoverImageBytes = 4 << 20

var (
	errCoverImageTooLarge    = errors.New("cover image exceeds maximum size")
	errCoverImageContentType = errors.New("cover image content type required")
)

// CreatePost is responsible for draft creation requests.
type CreatePost struct{ API }

func (ep CreatePost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	type body struct {
		Title                 string `json:"title" validate:"required,max=160"`
		Body                  string `json:"body" validate:"required"`
		Excerpt               string `json:"excerpt" validate:"max=400"`
		CoverImage            []byte `json:"coverImage"`
		CoverImageContentType string `json:"coverImageContentType" validate:"omitempty,oneof=image/png image/jpeg image/webp"`
	}

	var b body
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCoverImageBytes*2)).Decode(&b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if err := ep.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if len(b.CoverImage) > maxCoverImageBytes {
		ihttp.ErrBadRequest(ep.logger, w, errCoverImageTooLarge)
		return
	}
	if len(b.CoverImage) > 0 && b.CoverImageContentType == "" {
		ihttp.ErrBadRequest(ep.logger, w, errCoverImageContentType)
		return
	}

	post, err := ep.ctrl.CreatePost(r.Context(), controller.CreatePostInput{
		Actor:                 sess.User,
		Title:                 b.Title,
		Body:                  b.Body,
		Excerpt:               b.Excerpt,
		CoverImage:            b.CoverImage,
		CoverImageContentType: b.CoverImageContentType,
	})
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(post); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}
