package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
	ErrPhoneTaken    = errors.New("phone number already registered")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid or expired token")

	// Reset token lifecycle errors.
	ErrResetTokenNotFound = errors.New("invalid token")
	ErrResetTokenExpired  = errors.New("token is invalid or has expired")
	ErrResetTokenUsed     = errors.New("token has already been used")

	// Notification dispatch errors.
	ErrNoActiveProvider    = errors.New("no active email provider configured")
	ErrUnsupportedProvider = errors.New("unsupported email provider type")
	ErrEmailLogNotFound    = errors.New("email log not found")
)
