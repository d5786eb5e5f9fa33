package domain

import "errors"

var (
	// Session lifecycle.
	ErrAuthFailed          = errors.New("signer authentication failed")
	ErrAccountProvisioning = errors.New("account provisioning failed")
	ErrNotActive           = errors.New("session is not active")
	ErrNotAuthenticated    = errors.New("signer is not authenticated")

	// Caller input, rejected before any network call.
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidAddress = errors.New("invalid address")

	// Submission and confirmation.
	ErrSubmissionFailed     = errors.New("user operation rejected by backend")
	ErrConfirmationTimeout  = errors.New("timed out waiting for user operation confirmation")
	ErrConcurrentSubmission = errors.New("another user operation is already in flight")

	// Chain registry.
	ErrUnknownChain = errors.New("unknown chain")

	// Relay trust boundary.
	ErrOriginRejected  = errors.New("message origin is not trusted")
	ErrIntentMalformed = errors.New("transaction intent is malformed")
)
