// Package model is responsible for marketing service entities.
package model

import (
	"time"

	"github.com/roamvista/roamvista/internal/model"
)

// Signup is a visitor who joined the early-access list.
type Signup struct {
	model.Model
	Email       string     `json:"email" gorm:"uniqueIndex"`
	Name        string     `json:"name"`
	Source string `json:"source"`
	// ConfirmedAt records when the confirmation email was delivered.
	ConfirmedAt *time.Time `json:"confirmedAt"`
}
