// Package session provides the Redis-backed refresh session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindscan_backend/internal/feature/auth/domain/entity"
	"mindscan_backend/internal/feature/auth/usecase"
)

// revokedSessionTTL is how long a revoked session is kept so that reuse of
// a revoked refresh token can be told apart from an unknown one.
const revokedSessionTTL = 24 * time.Hour

// SessionRedis はusecase.SessionRepositoryのRedis実装です。
// セッション本体はJSONでキーに、ユーザーごとの所有セッション一覧はSetに保持します。
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis はSessionRedisの新しいインスタンスを生成します。
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{client: client, prefix: prefix}
}

func (sr *SessionRedis) sessionKey(id string) string {
	return sr.prefix + ":" + id
}

func (sr *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", sr.prefix, userID)
}

func encodeSession(session *entity.Session) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*entity.Session, error) {
	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Create stores the session JSON under its token key and registers the
// token in the owner's session set. The key TTL mirrors ExpiresAt.
func (sr *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	// 2つの書き込みを1ラウンドトリップにまとめる
	_, err = sr.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sr.sessionKey(session.ID), data, ttl)
		pipe.SAdd(ctx, sr.userSessionsKey(session.UserID), session.ID)
		return nil
	})
	return err
}

// FindByID returns the session stored under the given token, or
// usecase.ErrSessionNotFound once Redis has expired it.
func (sr *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := sr.client.Get(ctx, sr.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(data)
}

// FindByUserID walks the owner's session set and returns the sessions that
// are still valid. Set members whose keys have expired are pruned along the
// way, so the set does not grow without bound.
func (sr *SessionRedis) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	ids, err := sr.client.SMembers(ctx, sr.userSessionsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, 0, len(ids))
	for _, id := range ids {
		session, err := sr.FindByID(ctx, id)
		if errors.Is(err, usecase.ErrSessionNotFound) {
			sr.client.SRem(ctx, sr.userSessionsKey(userID), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if session.IsValid() {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// Revoke stamps RevokedAt and rewrites the session with a short TTL.
func (sr *SessionRedis) Revoke(ctx context.Context, id string) error {
	session, err := sr.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	session.RevokedAt = &now

	data, err := encodeSession(session)
	if err != nil {
		return err
	}
	return sr.client.Set(ctx, sr.sessionKey(id), data, revokedSessionTTL).Err()
}

// RevokeAllByUserID revokes every session in the owner's set.
func (sr *SessionRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := sr.client.SMembers(ctx, sr.userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := sr.Revoke(ctx, id); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return err
		}
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired session keys itself.
func (sr *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// CountByUserID returns the number of valid sessions the user owns.
func (sr *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	sessions, err := sr.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// DeleteOldestByUserID removes the user's oldest valid session, enforcing
// the per-user session cap.
func (sr *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	sessions, err := sr.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	oldest := sessions[0]
	for _, candidate := range sessions[1:] {
		if candidate.CreatedAt.Before(oldest.CreatedAt) {
			oldest = candidate
		}
	}

	if err := sr.client.Del(ctx, sr.sessionKey(oldest.ID)).Err(); err != nil {
		return err
	}
	return sr.client.SRem(ctx, sr.userSessionsKey(userID), oldest.ID).Err()
}
