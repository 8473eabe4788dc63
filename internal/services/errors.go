package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP statuses with errors.Is; anything else is a 500.
var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot tell which one was wrong.
	ErrInvalidCredentials = errors.New("bad email or password")

	// ErrNotFound covers absent resources and resources owned by another
	// user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)
