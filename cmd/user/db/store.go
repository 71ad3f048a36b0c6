// Package db is responsible for user service interactions with postgres.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uerrors "github.com/roamvista/roamvista/cmd/user/errors"
	"github.com/roamvista/roamvista/cmd/user/model"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewStore creates a Store instance.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Store provides user service access to postgres.
type Store struct {
	db *gorm.DB
}

// CreateUser creates the passed user. ErrEmailAlreadyInUse is returned when
// the user's email address belongs to an existing user.
func (s Store) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return uerrors.ErrEmailAlreadyInUse
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// User retrieves the user associated with the passed ID.
func (s Store) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := new(model.User)
	err := s.db.WithContext(ctx).Preload("PasswordResets").First(user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrUserDNE
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve user: %w", err)
	}
	return user, nil
}

// UserByEmail retrieves the user associated with the passed email address.
func (s Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := new(model.User)
	err := s.db.WithContext(ctx).Where("email = ?", email).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrUserDNE
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve user by email: %w", err)
	}
	return user, nil
}

// Users retrieves all users ordered by creation time.
func (s Store) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("retrieve users: %w", err)
	}
	return users, nil
}

// UpdateUserRole sets the role of the user associated with the passed ID.
func (s Store) UpdateUserRole(ctx context.Context, id uuid.UUID, role session.Role) (*model.User, error) {
	user := new(model.User)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(user, id).Error; err != nil {
			return err
		}
		user.Role = role
		return tx.Model(user).Update("role", role).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrUserDNE
	}
	if err != nil {
		return nil, fmt.Errorf("update user role: %w", err)
	}
	return user, nil
}

// UpdateUserProfile applies the passed changes to the user associated with
// the passed ID. Recognized keys are "display_name" and "avatar_url".
func (s Store) UpdateUserProfile(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*model.User, error) {
	user := new(model.User)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(user, id).Error; err != nil {
			return err
		}
		return tx.Model(user).Updates(changes).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrUserDNE
	}
	if err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return user, nil
}

// UpdateUserPassword sets the password of the user associated with the
// passed ID and marks the associated password reset completed.
func (s Store) UpdateUserPassword(ctx context.Context, userID, resetID uuid.UUID, password []byte, salt string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"password": password, "salt": salt}).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&model.PasswordReset{}).Where("id = ?", resetID).
			Update("completed_at", &now).Error
	})
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// VerifyEmail marks the user associated with the passed verification hash
// verified. ErrVerificationHashNotRecognized is returned when the hash does
// not belong to a user.
func (s Store) VerifyEmail(ctx context.Context, hash string) (*model.User, error) {
	user := new(model.User)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("verification_hash = ?", hash).First(user).Error; err != nil {
			return err
		}
		if user.IsVerified() {
			return nil
		}
		now := time.Now()
		user.VerifiedAt = &now
		return tx.Model(user).Update("verified_at", &now).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrVerificationHashNotRecognized
	}
	if err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}
	return user, nil
}

// ResendVerificationEmail replaces the verification hash of the user
// associated with the passed ID.
func (s Store) ResendVerificationEmail(ctx context.Context, id uuid.UUID, hash string) (*model.User, error) {
	user := new(model.User)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(user, id).Error; err != nil {
			return err
		}
		user.VerificationHash = hash
		user.VerifiedAt = nil
		return tx.Model(user).
			Updates(map[string]interface{}{"verification_hash": hash, "verified_at": nil}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrUserDNE
	}
	if err != nil {
		return nil, fmt.Errorf("resend verification email: %w", err)
	}
	return user, nil
}

// CreatePasswordReset creates a password reset for the user associated with
// the passed email address. ErrUserDNE is returned when the email address
// does not belong to a user.
func (s Store) CreatePasswordReset(ctx context.Context, email, resetHash string) (*model.PasswordReset, error) {
	reset := new(model.PasswordReset)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := new(model.User)
		if err := tx.Where("email = ?", email).First(user).Error; err != nil {
			return err
		}
		reset.UserID = user.ID
		reset.ResetHash = resetHash
		reset.RequestedAt = time.Now()
		return tx.Create(reset).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrUserDNE
	}
	if err != nil {
		return nil, fmt.Errorf("create password reset: %w", err)
	}
	return reset, nil
}

// PasswordResetByHash retrieves the password reset associated with the
// passed hash. ErrResetHashNotRecognized is returned when the hash does not
// belong to a password reset.
func (s Store) PasswordResetByHash(ctx context.Context, hash string) (*model.PasswordReset, error) {
	reset := new(model.PasswordReset)
	err := s.db.WithContext(ctx).Where("reset_hash = ?", hash).First(reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrResetHashNotRecognized
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve password reset: %w", err)
	}
	return reset, nil
}

// 23505 is the postgres unique_violation code. The postgres driver does not
// expose a typed error at this layer.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
