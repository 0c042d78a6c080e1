package entity

import "time"

// Session is one refresh-token lifetime for a user. The ID is the
// refresh token itself, so possession of the ID is possession of the
// session.
type Session struct {
	// ID is the refresh token value (64-character hex string).
	ID     string
	UserID uint

	// UserAgent and IPAddress record the client that opened the
	// session, for audit purposes.
	UserAgent string
	IPAddress string

	CreatedAt time.Time
	ExpiresAt time.Time

	// RevokedAt is nil while the session is live.
	RevokedAt *time.Time
}

// IsExpired reports whether the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked reports whether the session was explicitly revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid reports whether the session can still be used to refresh tokens.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
