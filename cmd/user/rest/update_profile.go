package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roamvista/roamvista/cmd/user/controller"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/session"
)

// maxAvatarBytes bounds the decoded avatar payload.
const maxAvatarBytes = 1 << 20

var (
	errAvatarTooLarge    = errors.New("avatar exceeds maximum size")
	errAvatarContentType = errors.New("avatar content type required")
)

// UpdateProfile is responsible for display name and avatar updates.
type UpdateProfile struct{ API }

func (ep UpdateProfile) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		ihttp.ErrUnauthorized(w)
		return
	}

	type body struct {
		DisplayName       string `json:"displayName" validate:"omitempty,displayname"`
		Avatar            []byte `json:"avatar"`
		AvatarContentType string `json:"avatarContentType" validate:"omitempty,oneof=image/png image/jpeg image/webp"`
	}

	var b body
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAvatarBytes*2)).Decode(&b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if err := ep.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if len(b.Avatar) > maxAvatarBytes {
		ihttp.ErrBadRequest(ep.logger, w, errAvatarTooLarge)
		return
	}
	if len(b.Avatar) > 0 && b.AvatarContentType == "" {
		ihttp.ErrBadRequest(ep.logger, w, errAvatarContentType)
		return
	}

	user, err := ep.ctrl.UpdateProfile(r.Context(), controller.UpdateProfileInput{
		UserID:            sess.User.ID,
		SessionID:         sess.ID,
		DisplayName:       b.DisplayName,
		Avatar:            b.Avatar,
		AvatarContentType: b.AvatarContentType,
	})
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(user); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
	}
}
