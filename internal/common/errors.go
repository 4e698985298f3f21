// Package common defines shared constants and sentinel errors used across
// client and server layers of the expense tracker. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorUnauthorized = errors.New("invalid credentials")
	ErrorValidation   = errors.New("validation error")

	// Upload errors.
	ErrorNoFile           = errors.New("no file uploaded")
	ErrorUnsupportedMedia = errors.New("unsupported media type")
	ErrorFileTooLarge     = errors.New("file too large")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)
