package content

import "errors"

var (
	// ErrOffline is returned when a generation call is attempted while
	// the connectivity check reports the system offline. No network call
	// is made.
	ErrOffline = errors.New("no internet connection")

	// ErrEmptyResult is returned when the provider responds with empty
	// or unusable content. Callers treat this as zero results, never as
	// a crash — and never as a vacuous perfect score.
	ErrEmptyResult = errors.New("provider returned no usable content")
)
