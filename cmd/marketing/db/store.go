// Package db is responsible for marketing service persistence.
package db

import (
	"context"
	"strings"

	merrors "github.com/roamvista/roamvista/cmd/marketing/errors"
	"github.com/roamvista/roamvista/cmd/marketing/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewStore creates a Store instance.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Store is responsible for marketing service db interactions.
type Store struct {
	db *gorm.DB
}

// CreateSignup creates the passed signup. ErrEmailAlreadyJoined is returned
// if the email address is already on the list.
func (s Store) CreateSignup(ctx context.Context, signup *model.Signup) error {
	if err := s.db.WithContext(ctx).Create(signup).Error; err != nil {
		if isUniqueViolation(err) {
			return merrors.ErrEmailAlreadyJoined
		}
		return err
	}
	return nil
}

// ConfirmSignup marks the signup with the passed ID confirmed.
func (s Store) ConfirmSignup(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&model.Signup{}).
		Where("id = ?", id).
		Update("confirmed_at", gorm.Expr("now()"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return merrors.ErrSignupDNE
	}
	return nil
}

// Signups retrieves all early-access signups, newest first.
func (s Store) Signups(ctx context.Context) ([]model.Signup, error) {
	var signups []model.Signup
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&signups).Error; err != nil {
		return nil, err
	}
	return signups, nil
}

func isUniqueViolation(err error) bool {
	// 23505 is the postgres unique_violation code.
	return err != nil && strings.Contains(err.Error(), "23505")
}
