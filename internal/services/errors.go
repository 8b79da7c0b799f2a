// Package services defines the business logic for accounts and translation
// requests. This file centralizes the service-level error values so they can
// be consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages, redirects, or HTTP status codes is
// performed at the handler layer.
package services

import "errors"

var (
	// ErrValidation is returned when a submission or registration is missing
	// required fields (empty input text, missing email, short password).
	ErrValidation = errors.New("missing or invalid required fields")

	// ErrPasswordMismatch is returned when registration passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a bad email/password pair. The
	// two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRequestNotFound indicates the requested translation record does not
	// exist or is not visible to the current user.
	ErrRequestNotFound = errors.New("translation request not found")
)
