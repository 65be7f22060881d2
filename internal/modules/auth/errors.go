package auth

import "errors"

var (
	ErrEmailAlreadyTaken  = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role must be renter or branch_owner")
	ErrUserNotFound       = errors.New("user not found")
)
