// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mindscan_backend/internal/feature/auth/domain/entity"
	"mindscan_backend/internal/feature/auth/usecase"
)

// sessionSQLite はSessionRepositoryのGORM実装です。
// Redisが構成されていない環境向けのフォールバックのセッションストアです。
type sessionSQLite struct {
	db *gorm.DB
}

var _ usecase.SessionRepository = (*sessionSQLite)(nil)

// NewSessionSQLite はsessionSQLiteの新しいインスタンスを生成します。
func NewSessionSQLite(db *gorm.DB) *sessionSQLite {
	return &sessionSQLite{db: db}
}

// live narrows a query to sessions that are neither revoked nor expired.
func (r *sessionSQLite) live(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, time.Now())
}

// Create persists a new session row.
func (r *sessionSQLite) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(toSessionModel(session)).Error
}

// FindByID looks a session up by its refresh token value.
func (r *sessionSQLite) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// FindByUserID returns the user's live sessions, oldest first.
func (r *sessionSQLite) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	var models []SessionModel
	if err := r.live(ctx, userID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, 0, len(models))
	for i := range models {
		sessions = append(sessions, models[i].toEntity())
	}
	return sessions, nil
}

// Revoke stamps RevokedAt on a single session.
func (r *sessionSQLite) Revoke(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// RevokeAllByUserID stamps RevokedAt on every live session the user owns.
func (r *sessionSQLite) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}

// DeleteExpired purges sessions past their expiry and reports the count.
// cmd/reap が定期実行で呼び出します。
func (r *sessionSQLite) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&SessionModel{})
	return result.RowsAffected, result.Error
}

// CountByUserID returns how many live sessions the user owns.
func (r *sessionSQLite) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.live(ctx, userID).Model(&SessionModel{}).Count(&count).Error
	return count, err
}

// DeleteOldestByUserID drops the user's oldest live session. A user at the
// session cap loses their oldest session rather than being denied login.
func (r *sessionSQLite) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var oldest SessionModel
	err := r.live(ctx, userID).Order("created_at ASC").First(&oldest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", oldest.ID).Error
}
