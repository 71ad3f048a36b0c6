// Package errors is responsible for marketing service errors.
package errors

import "errors"

var (
	// ErrEmailAlreadyJoined indicates the email address is already on the
	// early-access list.
	ErrEmailAlreadyJoined = errors.New("email already joined")

	// ErrSignupDNE indicates the signup does not exist.
	ErrSignupDNE = errors.New("signup does not exist")
)
