package store

import "errors"

var (
	// ErrNotFound is returned for rows that do not exist or belong to a
	// different user. Callers cannot tell the two cases apart, which
	// keeps resource existence unprobeable across accounts.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned both for an unknown email and a
	// wrong password so login failures cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrTitleRequired = errors.New("title is required")
)
