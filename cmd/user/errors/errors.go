// Package errors defines the user service's error types.
package errors

import "errors"

// AuthError indicates an authentication related error has occurred.
type AuthError string

// Error describes the AuthError instance.
func (e AuthError) Error() string { return "auth error: " + string(e) }

// AsAuthError attempts to represent the passed error as an AuthError.
func AsAuthError(err error) (AuthError, bool) {
	var authErr AuthError
	if ok := errors.As(err, &authErr); !ok {
		return "", false
	}
	return authErr, true
}

// EmailAddressError indicates an error related to a user's email address has
// occurred.
type EmailAddressError string

// Error describes the EmailAddressError instance.
func (e EmailAddressError) Error() string { return "email address error: " + string(e) }

// HashError indicates an error related to a single-use hash has occurred.
type HashError string

// Error describes the HashError instance.
func (e HashError) Error() string { return "hash error: " + string(e) }

// AsHashError attempts to represent the passed error as a HashError.
func AsHashError(err error) (HashError, bool) {
	var hashErr HashError
	if ok := errors.As(err, &hashErr); !ok {
		return "", false
	}
	return hashErr, true
}

var (
	// ErrUserDNE indicates that an interaction was attempted against a user
	// that does not exist.
	ErrUserDNE = errors.New("user does not exist")

	// ErrEmailAlreadyInUse indicates a user creation was attempted with an
	// email address that belongs to an existing user.
	ErrEmailAlreadyInUse = EmailAddressError("email address already in use")

	// ErrResetHashNotRecognized indicates a password reset was attempted with
	// a hash that is not recognized.
	ErrResetHashNotRecognized = HashError("reset hash not recognized")

	// ErrVerificationHashNotRecognized indicates an email verification was
	// attempted with a hash that is not recognized.
	ErrVerificationHashNotRecognized = HashError("verification hash not recognized")
)
