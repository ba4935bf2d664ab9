// Package common defines shared constants and sentinel errors used across
// the Heart Disease Predictor components. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound is also returned when a
	// record exists but belongs to another identity, so callers cannot
	// distinguish the two cases.
	ErrorNotFound       = errors.New("not found")
	ErrDuplicateAccount = errors.New("account already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (malformed payload, bad categorical value).
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
