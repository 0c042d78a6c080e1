package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the given email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned on signup when the email is taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrSessionNotFound is returned when no session matches the refresh token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when the session was revoked (logout or rotation).
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when the session outlived its TTL.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidRefreshToken is returned for malformed refresh token values.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
