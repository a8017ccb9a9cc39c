// Package login signs the admin in with e-mail and password.
package login

import "errors"

var (
	// ErrInvalidFormData is shown when the form misses a field or the e-mail is malformed.
	ErrInvalidFormData = errors.New("fill in email and password")

	// ErrInternalServerError is shown when the session could not be created.
	ErrInternalServerError = errors.New("internal server error")
)
