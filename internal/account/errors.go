package account

import "errors"

var (
	// ErrInvalidCredentials indicates the identity provider rejected the
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyInUse indicates an identity already exists for the email.
	ErrEmailAlreadyInUse = errors.New("email already in-use")

	// ErrWeakPassword indicates the identity provider rejected the password as
	// too weak.
	ErrWeakPassword = errors.New("password too weak")

	// ErrFlowCanceled indicates the user abandoned the provider-managed
	// federated sign-in flow.
	ErrFlowCanceled = errors.New("federated sign-in flow canceled")

	// ErrNotAuthenticated indicates an operation requiring an authenticated
	// session was attempted while the session was anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrOperationPending indicates an identity-mutating operation was
	// attempted while another was still outstanding.
	ErrOperationPending = errors.New("operation already pending")

	// ErrProfileDNE indicates no profile record exists for the identity.
	ErrProfileDNE = errors.New("profile does not exist")
)
