package util

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionRequired    = errors.New("sign in required")
	ErrRemoteNotEmpty     = errors.New("account already has progress")
	ErrRemoteUnavailable  = errors.New("remote storage unavailable")
)
