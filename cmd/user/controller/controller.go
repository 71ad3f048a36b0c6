// Package controller is responsible for user service business logic.
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roamvista/roamvista/cmd/user/admins"
	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	"github.com/roamvista/roamvista/cmd/user/model"
	"github.com/roamvista/roamvista/internal/event"
	"github.com/roamvista/roamvista/internal/rand"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

const (
	hashLength = 32

	// resetExpiration is how long a password reset remains usable after it is
	// requested.
	resetExpiration = 30 * time.Minute
)

var (
	errPasswordInvalid = uerrors.AuthError("password invalid")
	errResetExpired    = uerrors.HashError("password reset expired")
	errResetCompleted  = uerrors.HashError("password reset already completed")
)

// IStore encompasses all interactions with the user store.
type IStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	User(ctx context.Context, id uuid.UUID) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	Users(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role session.Role) (*model.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID, resetID uuid.UUID, password []byte, salt string) error
	VerifyEmail(ctx context.Context, hash string) (*model.User, error)
	ResendVerificationEmail(ctx context.Context, id uuid.UUID, hash string) (*model.User, error)
	CreatePasswordReset(ctx context.Context, email, resetHash string) (*model.PasswordReset, error)
	PasswordResetByHash(ctx context.Context, hash string) (*model.PasswordReset, error)
}

// IEmailer encompasses all interactions with the transactional email
// provider.
type IEmailer interface {
	SendPasswordReset(ctx context.Context, to, hash string) error
	SendVerifyEmail(ctx context.Context, to, hash string) error
}

// IStream encompasses all write interactions with the event stream.
type IStream interface {
	Write(ctx context.Context, b []byte) error
}

// ISessionManager encompasses the session interactions owned by the
// controller.
type ISessionManager interface {
	DeleteSession(ctx context.Context, sess session.Session) error
	InvalidateUserSessionsBefore(ctx context.Context, userID fmt.Stringer, dt time.Time) error
	UpdateSession(ctx context.Context, sessionID string, updateFn func(*session.Session)) (*session.Session, error)
}

// IBlobStore stores user-uploaded media.
type IBlobStore interface {
	Put(ctx context.Context, key string, b []byte, contentType string) (string, error)
}

// New creates a Controller instance.
func New(
	logger *zap.Logger,
	store IStore,
	emailer IEmailer,
	stream IStream,
	sessions ISessionManager,
	blobs IBlobStore,
	adminSet []string,
) *Controller {
	return &Controller{
		logger:   logger,
		store:    store,
		emailer:  emailer,
		stream:   stream,
		sessions: sessions,
		blobs:    blobs,
		adminSet: adminSet,
	}
}

// Controller is responsible for user service business logic.
type Controller struct {
	logger   *zap.Logger
	store    IStore
	emailer  IEmailer
	stream   IStream
	sessions ISessionManager
	blobs    IBlobStore
	adminSet []string
}

// CreateUserInput is the input for the Controller.CreateUser method.
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
}

// CreateUser creates a new user account and sends its verification email.
// The user's role is "regular" unless the email address belongs to the
// configured administrator set.
func (ctrl Controller) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	salt, err := rand.GenerateString(hashLength)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	verificationHash, err := rand.GenerateString(hashLength)
	if err != nil {
		return nil, fmt.Errorf("generate verification hash: %w", err)
	}

	role := session.RoleRegular
	if admins.Contains(ctrl.adminSet, input.Email) {
		role = session.RoleAdmin
	}

	user := &model.User{
		Email:            input.Email,
		DisplayName:      input.DisplayName,
		Password:         hashPassword(input.Password, salt),
		Salt:             salt,
		Role:             role,
		VerificationHash: verificationHash,
	}
	if err := ctrl.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := ctrl.emailer.SendVerifyEmail(ctx, user.Email, user.VerificationHash); err != nil {
		return nil, fmt.Errorf("send verify email: %w", err)
	}

	ctrl.publish(ctx, event.NewUserSignedUpEvent(user.ID, user.Email, user.DisplayName, user.Role))

	return user, nil
}

// LoginUserInput is the input for the Controller.LoginUser method.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUser checks the passed credentials against the user store. An
// AuthError is returned when the email address is not recognized or the
// password does not match; the two cases are indistinguishable to the
// caller.
func (ctrl Controller) LoginUser(ctx context.Context, input LoginUserInput) (*model.User, error) {
	user, err := ctrl.store.UserByEmail(ctx, input.Email)
	if errors.Is(err, uerrors.ErrUserDNE) {
		return nil, errPasswordInvalid
	}
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(user.Password, hashPassword(input.Password, user.Salt)) {
		return nil, errPasswordInvalid
	}

	return user, nil
}

// FederatedUserInput is the input for the Controller.FederatedUser method.
type FederatedUserInput struct {
	Email       string
	DisplayName string
	AvatarURL   string
}

// FederatedUser retrieves the user associated with the passed federated
// identity, creating the account on a first-time sign-in. The create is
// conditional on the email address; concurrent first sign-ins resolve to a
// single account. Federated email addresses arrive verified by the identity
// provider.
func (ctrl Controller) FederatedUser(ctx context.Context, input FederatedUserInput) (*model.User, error) {
	role := session.RoleRegular
	if admins.Contains(ctrl.adminSet, input.Email) {
		role = session.RoleAdmin
	}

	// The verification hash is never sent; it exists to satisfy the user
	// schema's uniqueness.
	verificationHash, err := rand.GenerateString(hashLength)
	if err != nil {
		return nil, fmt.Errorf("generate verification hash: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Email:            input.Email,
		DisplayName:      input.DisplayName,
		AvatarURL:        input.AvatarURL,
		Role:             role,
		VerificationHash: verificationHash,
		VerifiedAt:       &now,
	}

	err = ctrl.store.CreateUser(ctx, user)
	if errors.Is(err, uerrors.ErrEmailAlreadyInUse) {
		return ctrl.store.UserByEmail(ctx, input.Email)
	}
	if err != nil {
		return nil, err
	}

	ctrl.publish(ctx, event.NewUserSignedUpEvent(user.ID, user.Email, user.DisplayName, user.Role))

	return user, nil
}

// LogoutUserSession deletes the passed session.
func (ctrl Controller) LogoutUserSession(ctx context.Context, sess session.Session) error {
	return ctrl.sessions.DeleteSession(ctx, sess)
}

// LogoutAllUserSessions invalidates every session belonging to the passed
// session's user, the passed session included.
func (ctrl Controller) LogoutAllUserSessions(ctx context.Context, sess session.Session) error {
	if err := ctrl.sessions.InvalidateUserSessionsBefore(ctx, sess.User.ID, time.Now()); err != nil {
		return err
	}
	return ctrl.sessions.DeleteSession(ctx, sess)
}

// VerifyEmail marks the user associated with the passed verification hash
// verified.
func (ctrl Controller) VerifyEmail(ctx context.Context, hash string) (*model.User, error) {
	return ctrl.store.VerifyEmail(ctx, hash)
}

// ResendVerificationEmail replaces the user's verification hash and sends a
// fresh verification email.
func (ctrl Controller) ResendVerificationEmail(ctx context.Context, userID uuid.UUID) error {
	hash, err := rand.GenerateString(hashLength)
	if err != nil {
		return fmt.Errorf("generate verification hash: %w", err)
	}

	user, err := ctrl.store.ResendVerificationEmail(ctx, userID, hash)
	if err != nil {
		return err
	}

	return ctrl.emailer.SendVerifyEmail(ctx, user.Email, user.VerificationHash)
}

// RequestPasswordReset creates a password reset for the user associated with
// the passed email address and sends its reset email. An unrecognized email
// address is not an error; the caller cannot probe for account existence.
func (ctrl Controller) RequestPasswordReset(ctx context.Context, email string) error {
	hash, err := rand.GenerateString(hashLength)
	if err != nil {
		return fmt.Errorf("generate reset hash: %w", err)
	}

	_, err = ctrl.store.CreatePasswordReset(ctx, email, hash)
	if errors.Is(err, uerrors.ErrUserDNE) {
		return nil
	}
	if err != nil {
		return err
	}

	return ctrl.emailer.SendPasswordReset(ctx, email, hash)
}

// ResetPassword sets a new password for the user associated with the passed
// reset hash, and invalidates all of the user's sessions.
func (ctrl Controller) ResetPassword(ctx context.Context, hash, password string) error {
	reset, err := ctrl.store.PasswordResetByHash(ctx, hash)
	if err != nil {
		return err
	}
	if reset.IsCompleted() {
		return errResetCompleted
	}
	if time.Since(reset.RequestedAt) > resetExpiration {
		return errResetExpired
	}

	salt, err := rand.GenerateString(hashLength)
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	if err := ctrl.store.UpdateUserPassword(
		ctx,
		reset.UserID,
		reset.ID,
		hashPassword(password, salt),
		salt,
	); err != nil {
		return err
	}

	return ctrl.sessions.InvalidateUserSessionsBefore(ctx, reset.UserID, time.Now())
}

// UpdateProfileInput is the input for the Controller.UpdateProfile method.
type UpdateProfileInput struct {
	UserID            uuid.UUID
	SessionID         string
	DisplayName       string
	Avatar            []byte
	AvatarContentType string
}

// UpdateProfile applies the passed display name and avatar to the user,
// uploading the avatar blob first when one is passed. The user's current
// session is updated in place so the change is visible without a re-login.
func (ctrl Controller) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*model.User, error) {
	changes := make(map[string]interface{})
	if input.DisplayName != "" {
		changes["display_name"] = input.DisplayName
	}

	if len(input.Avatar) > 0 {
		url, err := ctrl.blobs.Put(
			ctx,
			fmt.Sprintf("avatars/%s", input.UserID),
			input.Avatar,
			input.AvatarContentType,
		)
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		changes["avatar_url"] = url
	}

	user, err := ctrl.store.UpdateUserProfile(ctx, input.UserID, changes)
	if err != nil {
		return nil, err
	}

	if _, err := ctrl.sessions.UpdateSession(ctx, input.SessionID, func(sess *session.Session) {
		sess.User = user.ToSessionUser()
	}); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctrl.publish(ctx, event.NewProfileUpdatedEvent(user.ID, user.DisplayName, user.AvatarURL))

	return user, nil
}

// UpdateUserRole sets the role of the user associated with the passed ID.
// The user's sessions are invalidated so the new role takes effect on their
// next request.
func (ctrl Controller) UpdateUserRole(ctx context.Context, userID uuid.UUID, role session.Role) (*model.User, error) {
	user, err := ctrl.store.UpdateUserRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	if err := ctrl.sessions.InvalidateUserSessionsBefore(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}

	ctrl.publish(ctx, event.NewRoleChangedEvent(user.ID, user.Role))

	return user, nil
}

// User retrieves the user associated with the passed ID.
func (ctrl Controller) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return ctrl.store.User(ctx, id)
}

// Users retrieves all users.
func (ctrl Controller) Users(ctx context.Context) ([]model.User, error) {
	return ctrl.store.Users(ctx)
}

// publish writes the passed event to the event stream. Publishing is
// best-effort; a stream error never fails the owning operation.
func (ctrl Controller) publish(ctx context.Context, e interface{}) {
	b, err := json.Marshal(e)
	if err != nil {
		ctrl.logger.Error("marshal event", zap.Error(err))
		return
	}
	if err := ctrl.stream.Write(ctx, b); err != nil {
		ctrl.logger.Error("write event", zap.Error(err))
	}
}

func hashPassword(password, salt string) []byte {
	return argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, hashLength)
}
