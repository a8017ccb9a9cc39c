package auth

import "errors"

var (
	// ErrUserExists is returned when attempting to create a user with an email that already exists.
	ErrUserExists = errors.New("user with this email already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyCredentials is returned when email or password is empty.
	ErrEmptyCredentials = errors.New("email and password are required")

	// ErrLastActiveUser is returned when a change would leave no account able to sign in.
	ErrLastActiveUser = errors.New("at least one active account is required")

	// ErrInvalidCredentials is what callers show the visitor for any failed sign-in,
	// so the response does not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
