// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input errors detected before any request is sent.
	ErrValidation = errors.New("validation error")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")

	// Superuser operations need a configured password.
	ErrNoSuperuserPassword = errors.New("superuser password is not configured")
)
