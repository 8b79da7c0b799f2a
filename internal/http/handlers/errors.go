// Package handlers defines the HTTP-layer error codes used across all API
// endpoints. These codes give clients a stable, machine-readable taxonomy
// alongside the human-readable messages; handlers pick the most specific
// code and pass it to fail() with the matching HTTP status.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeValidation       = "validation_error"
	ErrCodeSubmitFailed     = "submit_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
