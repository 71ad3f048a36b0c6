package model

import (
	"time"

	"github.com/roamvista/roamvista/internal/model"
	"github.com/roamvista/roamvista/internal/session"

	"github.com/google/uuid"
)

// User is a Roamvista community member.
type User struct {
	model.Model
	Email            string       `json:"email" gorm:"uniqueIndex"`
	DisplayName      string       `json:"displayName"`
	AvatarURL        string       `json:"avatarUrl"`
	Password         []byte       `json:"-"`
	Salt             string       `json:"-"`
	Role             session.Role `json:"role"`
	VerificationHash string       `json:"-" gorm:"uniqueIndex"`
	VerifiedAt       *time.Time   `json:"verifiedAt"`

	PasswordResets []PasswordReset `json:"-"`
}

// IsVerified checks if the user instance has been verified.
func (u User) IsVerified() bool { return u.VerifiedAt != nil }

// Scrub removes sensitive information from the user instance.
func (u *User) Scrub() {
	u.Model.Scrub()
	u.Password = nil
	u.Salt = ""
	u.VerificationHash = ""
	for i := range u.PasswordResets {
		u.PasswordResets[i].Scrub()
	}
}

// ToSessionUser converts the user instance into a session.User.
func (u User) ToSessionUser() session.User {
	return session.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
	}
}

// PasswordReset is a single-use, expiring token enabling a user to reset
// their password.
type PasswordReset struct {
	model.Model
	UserID      uuid.UUID  `json:"-"`
	ResetHash   string     `json:"-" gorm:"uniqueIndex"`
	RequestedAt time.Time  `json:"requestedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// IsCompleted checks if the password reset instance has been completed.
func (r PasswordReset) IsCompleted() bool { return r.CompletedAt != nil }

// Scrub removes sensitive information from the password reset instance.
func (r *PasswordReset) Scrub() {
	r.Model.Scrub()
	r.UserID = uuid.Nil
	r.ResetHash = ""
}
