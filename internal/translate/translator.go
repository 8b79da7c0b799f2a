// Package translate defines the translation provider contract consumed by
// the poller, plus the concrete clients: an HTTP provider for real use and a
// static stub for tests and offline demos.
//
// Provider outcomes are explicit: a call either yields a Result or a
// *ProviderError describing why it failed, so callers can handle failures
// exhaustively instead of catching everything around the call.
package translate

import (
	"context"
	"fmt"
)

// Result is a successful provider outcome.
type Result struct {
	// Text is the translated text.
	Text string
	// Detected is the provider-reported source language, if any.
	Detected string
}

// ProviderError describes a failed provider call: transport error, non-2xx
// status, or a malformed response body.
type ProviderError struct {
	// Reason is a short machine-friendly label: "transport", "status", "decode".
	Reason string
	// Status is the HTTP status code when Reason is "status", zero otherwise.
	Status int
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation provider: %s: %v", e.Reason, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("translation provider: %s: http %d", e.Reason, e.Status)
	}
	return fmt.Sprintf("translation provider: %s", e.Reason)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *ProviderError) Unwrap() error { return e.Err }

// Translator converts text into the target language.
//
// Implementations must be safe for concurrent use and honor ctx for
// cancellation and timeouts.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (Result, error)
}

// Static is a deterministic stub translator that prefixes the input text.
// Used in tests and when no provider is configured.
type Static struct {
	// Prefix defaults to "translated_" when empty.
	Prefix string
}

// Translate implements Translator.
func (s Static) Translate(ctx context.Context, text, targetLanguage string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, &ProviderError{Reason: "transport", Err: err}
	}
	p := s.Prefix
	if p == "" {
		p = "translated_"
	}
	return Result{Text: p + text}, nil
}
