package services

import "errors"

// Service-level sentinel errors. Handlers map these to HTTP status codes
// with errors.Is; everything else is treated as an internal error.
var (
	// ErrValidationFailed marks requests with missing or malformed fields.
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmailTaken is returned for duplicate registrations, whether caught
	// by the lookup or by the unique index on insert.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrInvalidCredentials deliberately does not reveal whether the email
	// or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated marks missing, malformed or expired session tokens.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden marks role mismatches on role-specific operations.
	ErrForbidden = errors.New("forbidden")

	// ErrAccountNotFound marks profile operations on unknown accounts.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTeacherNotFound marks contact requests addressed to unknown teachers.
	ErrTeacherNotFound = errors.New("teacher not found")

	// ErrStoreUnavailable wraps persistence failures. The core never retries;
	// retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("storage unavailable")
)
