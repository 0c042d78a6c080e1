package usecase

import (
	"context"

	"mindscan_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts refresh-session storage. The Redis store
// and the SQLite fallback both satisfy it; which one is wired depends
// on whether Redis is available at startup.
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマー（usecase）が定義します。
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID looks a session up by its refresh token value.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// FindByUserID returns the live sessions owned by a user.
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error)

	// Revoke marks a single session as revoked.
	Revoke(ctx context.Context, id string) error

	// RevokeAllByUserID revokes every session a user owns.
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired purges expired sessions and reports how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)

	// CountByUserID returns the number of live sessions for a user.
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID drops the user's oldest session, enforcing the
	// per-user session cap.
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}
