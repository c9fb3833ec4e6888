// Package common defines shared constants and sentinel errors used across
// the client and server layers of gophwallet. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrStorage            = errors.New("storage error")
	ErrHash               = errors.New("hash error")
	ErrorInternal         = errors.New("internal error")

	// Auth errors. Every token failure also matches ErrAuthentication.
	ErrAuthentication = errors.New("authentication failed")
	ErrInvalidToken   = fmt.Errorf("%w: invalid token", ErrAuthentication)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrAuthentication)
	ErrMalformedToken = fmt.Errorf("%w: malformed token", ErrAuthentication)
)

// Validationf returns an ErrValidation carrying a field-level message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
