package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/roamvista/roamvista/cmd/user/model"
	ihttp "github.com/roamvista/roamvista/internal/http"
	"github.com/roamvista/roamvista/internal/rand"
	"github.com/roamvista/roamvista/internal/session"
)

const (
	sessionIDLength = 32

	// sessionAbsoluteDuration is how long a session may live regardless of
	// activity.
	sessionAbsoluteDuration = 48 * time.Hour
)

// createSession establishes a session for the passed user and writes its
// cookie to the client.
func (api API) createSession(
	ctx context.Context,
	w http.ResponseWriter,
	user *model.User,
) (*session.Session, error) {
	id, err := rand.GenerateString(sessionIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	sess := session.New(id, user.ToSessionUser(), sessionAbsoluteDuration)
	if err := api.sessionManager.CreateSession(ctx, *sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ihttp.SetSessionCookie(w, sess.ID, api.cookieOptions)

	return sess, nil
}
