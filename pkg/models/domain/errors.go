package domain

import "errors"

var (
	// ErrNotConfigured is returned when an operation needs a client and no API URL has been set.
	ErrNotConfigured = errors.New("client not configured")
	// ErrCancelled is returned by prompts the user dismissed.
	ErrCancelled = errors.New("cancelled by user")
)
