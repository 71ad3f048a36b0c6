package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/roamvista/roamvista/cmd/user/model"
	"github.com/roamvista/roamvista/internal/account"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Profile retrieves the profile associated with the passed identity ID.
// account.ErrProfileDNE is returned when no record exists.
func (s Store) Profile(ctx context.Context, id uuid.UUID) (*account.Profile, error) {
	user := new(model.User)
	err := s.db.WithContext(ctx).First(user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrProfileDNE
	}
	if err != nil {
		return nil, fmt.Errorf("retrieve profile: %w", err)
	}
	return userToProfile(user), nil
}

// CreateProfileIfAbsent creates the passed profile unless a record with its
// ID already exists. The write is conditional at the database, so concurrent
// first sign-ins for the same identity resolve to a single record. The
// stored profile is returned along with whether this call created it.
func (s Store) CreateProfileIfAbsent(ctx context.Context, profile *account.Profile) (*account.Profile, bool, error) {
	user := &model.User{
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Role:        profile.Role,
	}
	user.ID = profile.ID

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(user)
	if res.Error != nil {
		return nil, false, fmt.Errorf("create profile: %w", res.Error)
	}

	created := res.RowsAffected == 1
	if created {
		return userToProfile(user), true, nil
	}

	stored, err := s.Profile(ctx, profile.ID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

// UpdateProfile applies the passed changes to the profile associated with
// the passed identity ID. The account.Field keys match the users table's
// column names, so changes pass through to the row unmodified; unknown keys
// are rejected before the write.
func (s Store) UpdateProfile(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	for key := range changes {
		switch key {
		case account.FieldDisplayName, account.FieldAvatarURL, account.FieldEmail:
		default:
			return fmt.Errorf("unrecognized profile field: %s", key)
		}
	}

	_, err := s.UpdateUserProfile(ctx, id, changes)
	return err
}

func userToProfile(user *model.User) *account.Profile {
	return &account.Profile{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}
