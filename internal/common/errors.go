// Package common defines sentinel errors shared by the shopadmin client
// layers. Callers should match them with errors.Is.
package common

import "errors"

var (
	// ErrValidation marks a request rejected locally before any network call.
	ErrValidation = errors.New("validation error")

	// ErrNotAuthenticated is returned by operations that need a session when
	// the session store is anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned by snapshot lookups that miss.
	ErrNotFound = errors.New("not found")

	// ErrEmptyPatch is returned when an update carries no fields at all.
	ErrEmptyPatch = errors.New("update has no fields")
)
