// Package common defines shared constants and sentinel errors used across
// FitTrack server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Credential codec errors. ErrHashingFailure means the hashing primitive
	// could not do its work; ErrCorruptHash means a stored hash failed to
	// parse during verification. Neither is ever treated as a match.
	ErrHashingFailure = errors.New("password hashing failure")
	ErrCorruptHash    = errors.New("stored password hash is corrupt")
)
